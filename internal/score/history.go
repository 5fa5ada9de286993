package score

import (
	"fmt"

	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/logging"
)

// HistoryStore is the slice of the event store the history maintainer needs.
// *store.Store satisfies it.
type HistoryStore interface {
	MovementsOn(day string) ([]journal.Movement, error)
	Survey(day string) (*journal.Survey, error)
	ScoreFor(day string) (int, bool, error)
	UpsertScore(day string, score int) error
	DeleteScore(day string) error
}

// Recompute rebuilds the persisted score for one day after a movement
// belonging to it was created, edited, or deleted. An incomplete day (no
// survey) drops out of history; a computable day is upserted. Calling twice
// with no intervening data change stores the same result both times.
func Recompute(st HistoryStore, day string) error {
	if !journal.ValidDay(day) {
		return fmt.Errorf("invalid day key %q", day)
	}

	movements, err := st.MovementsOn(day)
	if err != nil {
		return fmt.Errorf("load movements for %s: %w", day, err)
	}
	survey, err := st.Survey(day)
	if err != nil {
		return fmt.Errorf("load survey for %s: %w", day, err)
	}

	total, ok := Compute(day, movements, survey)
	if !ok {
		// Provisional scores are never retained in history.
		if _, exists, err := st.ScoreFor(day); err != nil {
			return err
		} else if exists {
			logging.Debug("Removing incomplete day from score history", "day", day)
			return st.DeleteScore(day)
		}
		return nil
	}

	return st.UpsertScore(day, total)
}

// RebuildHistory recomputes every listed day. Used by the maintenance CLI
// after bulk imports or when the scoring rules change.
func RebuildHistory(st HistoryStore, days []string) error {
	for _, day := range days {
		if err := Recompute(st, day); err != nil {
			return err
		}
	}
	return nil
}
