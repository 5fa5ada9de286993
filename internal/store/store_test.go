package store

import (
	"testing"
	"time"

	"github.com/nroussel/gutlog/internal/journal"
)

// Accessor is used ONLY for testing higher layers.
// It defines the subset of Store methods that the scoring layer needs.
type Accessor interface {
	MovementsOn(day string) ([]journal.Movement, error)
	Survey(day string) (*journal.Survey, error)
	ScoreFor(day string) (int, bool, error)
	UpsertScore(day string, score int) error
	DeleteScore(day string) error
}

// Verify Store implements Accessor at compile time.
var _ Accessor = (*Store)(nil)

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	for _, table := range []string{"movements", "surveys", "score_history", "notes"} {
		var name string
		err := st.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s not created: %v", table, err)
		}
	}
}

func TestSaveMovement(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	m, err := st.SaveMovement(journal.Movement{
		OccurredAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local),
		Bristol:    4,
		Blood:      true,
	})
	if err != nil {
		t.Fatalf("SaveMovement failed: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected minted ID for new movement")
	}

	// Editing rewrites every field under the same id.
	m.Bristol = 6
	m.Blood = false
	if _, err := st.SaveMovement(m); err != nil {
		t.Fatalf("SaveMovement edit failed: %v", err)
	}

	got, err := st.MovementByID(m.ID)
	if err != nil {
		t.Fatalf("MovementByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected movement, got nil")
	}
	if got.Bristol != 6 || got.Blood {
		t.Errorf("edit not applied: bristol=%d blood=%v", got.Bristol, got.Blood)
	}

	all, err := st.Movements()
	if err != nil {
		t.Fatalf("Movements failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 movement after edit, got %d", len(all))
	}
}

func TestMovementsOnDayWindow(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	times := []time.Time{
		time.Date(2026, 3, 13, 23, 59, 0, 0, time.Local), // previous day
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local),   // inclusive start
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local),
		time.Date(2026, 3, 14, 23, 59, 59, 0, time.Local),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), // exclusive end
	}
	for _, ts := range times {
		if _, err := st.SaveMovement(journal.Movement{OccurredAt: ts, Bristol: 4}); err != nil {
			t.Fatalf("SaveMovement failed: %v", err)
		}
	}

	got, err := st.MovementsOn("2026-03-14")
	if err != nil {
		t.Fatalf("MovementsOn failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 movements inside the day window, got %d", len(got))
	}

	if _, err := st.MovementsOn("bogus"); err == nil {
		t.Error("expected error for malformed day key")
	}
}

func TestDeleteMovement(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	m, err := st.SaveMovement(journal.Movement{OccurredAt: time.Now(), Bristol: 5})
	if err != nil {
		t.Fatalf("SaveMovement failed: %v", err)
	}
	if err := st.DeleteMovement(m.ID); err != nil {
		t.Fatalf("DeleteMovement failed: %v", err)
	}

	got, err := st.MovementByID(m.ID)
	if err != nil {
		t.Fatalf("MovementByID failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}

	// Unknown id is a no-op, not an error.
	if err := st.DeleteMovement("missing"); err != nil {
		t.Errorf("DeleteMovement(missing) = %v, want nil", err)
	}
}

func TestSurveyUpsert(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	got, err := st.Survey("2026-03-14")
	if err != nil {
		t.Fatalf("Survey failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil survey before submission")
	}

	sv := journal.Survey{
		Day:           "2026-03-14",
		Incontinence:  journal.No,
		Pain:          journal.PainMild,
		State:         journal.StateGood,
		Antidiarrheal: journal.No,
	}
	if err := st.SaveSurvey(sv); err != nil {
		t.Fatalf("SaveSurvey failed: %v", err)
	}

	// Same-day edit overwrites.
	sv.Pain = journal.PainSevere
	if err := st.SaveSurvey(sv); err != nil {
		t.Fatalf("SaveSurvey overwrite failed: %v", err)
	}

	got, err = st.Survey("2026-03-14")
	if err != nil {
		t.Fatalf("Survey failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected survey, got nil")
	}
	if got.Pain != journal.PainSevere {
		t.Errorf("pain = %q, want %q", got.Pain, journal.PainSevere)
	}
}

func TestScoreHistoryUniquePerDay(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.UpsertScore("2026-03-14", 5); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}
	if err := st.UpsertScore("2026-03-14", 7); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}
	if err := st.UpsertScore("2026-03-13", 2); err != nil {
		t.Fatalf("UpsertScore failed: %v", err)
	}

	history, err := st.ScoreHistory()
	if err != nil {
		t.Fatalf("ScoreHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries (one per day), got %d", len(history))
	}
	// Most recent first.
	if history[0].Day != "2026-03-14" || history[0].Score != 7 {
		t.Errorf("history[0] = %+v, want 2026-03-14/7", history[0])
	}

	score, ok, err := st.ScoreFor("2026-03-13")
	if err != nil || !ok || score != 2 {
		t.Errorf("ScoreFor(2026-03-13) = %d/%v/%v, want 2/true/nil", score, ok, err)
	}

	if err := st.DeleteScore("2026-03-14"); err != nil {
		t.Fatalf("DeleteScore failed: %v", err)
	}
	if _, ok, _ := st.ScoreFor("2026-03-14"); ok {
		t.Error("expected no entry after DeleteScore")
	}
}

func TestNotesRoundTrip(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	n, err := st.SaveNote(journal.Note{
		Day:              "2026-03-14",
		CreatedAt:        time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local),
		Content:          "coffee with breakfast #coffee",
		Tags:             []string{"coffee"},
		SharedWithDoctor: true,
		Category:         "diet",
	})
	if err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}
	if n.ID == "" {
		t.Fatal("expected minted note ID")
	}

	notes, err := st.Notes()
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	got := notes[0]
	if len(got.Tags) != 1 || got.Tags[0] != "coffee" {
		t.Errorf("tags = %v, want [coffee]", got.Tags)
	}
	if !got.SharedWithDoctor || got.Category != "diet" {
		t.Errorf("flags not persisted: %+v", got)
	}
}

func TestNotesCorruptTags(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	// Inject a row with unparseable tags directly.
	_, err = st.db.Exec(`
		INSERT INTO notes (id, day, created_at, content, tags)
		VALUES ('bad', '2026-03-14', ?, 'hello', '{not json')
	`, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	notes, err := st.Notes()
	if err != nil {
		t.Fatalf("Notes should tolerate corrupt tags: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Tags != nil {
		t.Errorf("corrupt tags should degrade to nil, got %v", notes[0].Tags)
	}
}
