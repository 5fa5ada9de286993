package correlation

import (
	"fmt"
	"testing"
	"time"

	"github.com/nroussel/gutlog/internal/journal"
)

// movementOn builds a movement on the given day at the given hour.
func movementOn(day string, hour int, blood bool) journal.Movement {
	start, _, err := journal.DayBounds(day)
	if err != nil {
		panic(err)
	}
	return journal.Movement{
		ID:         fmt.Sprintf("%s-%02d", day, hour),
		OccurredAt: start.Add(time.Duration(hour) * time.Hour),
		Bristol:    5,
		Blood:      blood,
	}
}

func noteOn(day string, tags ...string) journal.Note {
	start, _, _ := journal.DayBounds(day)
	return journal.Note{
		ID:        "note-" + day,
		Day:       day,
		CreatedAt: start.Add(9 * time.Hour),
		Content:   "note",
		Tags:      tags,
	}
}

func TestAnalyzeEmptyJournal(t *testing.T) {
	if got := Analyze(nil, Series{}, DefaultOptions()); len(got) != 0 {
		t.Errorf("expected no results for empty journal, got %d", len(got))
	}

	// Notes without tags are equally silent.
	notes := []journal.Note{noteOn("2026-03-14")}
	if got := Analyze(notes, Series{}, DefaultOptions()); len(got) != 0 {
		t.Errorf("expected no results for tagless notes, got %d", len(got))
	}
}

func TestAnalyzeOccurrenceThreshold(t *testing.T) {
	// Strong shift, but the tag only occurs twice: below the default
	// threshold of 3 it must never appear, for any metric.
	series := Series{
		"2026-03-15": {Stools: 10, Bloody: 10},
		"2026-03-20": {Stools: 10, Bloody: 10},
	}
	notes := []journal.Note{
		noteOn("2026-03-15", "spicy"),
		noteOn("2026-03-20", "spicy"),
	}

	if got := Analyze(notes, series, DefaultOptions()); len(got) != 0 {
		t.Errorf("tag under the occurrence threshold leaked into results: %+v", got)
	}
}

func TestPercentChangeZeroBaseline(t *testing.T) {
	tests := []struct {
		observed, baseline float64
		expected           float64
	}{
		{0, 0, 0},     // not 100, not NaN
		{1.5, 0, 100}, // anything observed over an empty baseline
		{3, 2, 50},
		{1, 2, -50},
		{2.2, 2, 10},
	}
	for _, tt := range tests {
		if got := percentChange(tt.observed, tt.baseline); got != tt.expected {
			t.Errorf("percentChange(%v, %v) = %v, want %v", tt.observed, tt.baseline, got, tt.expected)
		}
	}
}

func TestAnalyzeAllQuietIsNoSignal(t *testing.T) {
	// No bloody stools anywhere: observed 0 on a baseline of 0 is a 0%
	// change, so the blood metric must not surface.
	series := Series{}
	notes := []journal.Note{
		noteOn("2026-03-10", "stress"),
		noteOn("2026-03-15", "stress"),
		noteOn("2026-03-20", "stress"),
	}

	for _, r := range Analyze(notes, series, DefaultOptions()) {
		if r.Metric == MetricBlood {
			t.Errorf("quiet blood metric surfaced: %+v", r)
		}
	}
}

func TestAnalyzeSignificanceThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.MinOccurrences = 1

	// Baseline window [occ-14, occ-7) holds 10 stools/day.
	baseline := Series{}
	for offset := -14; offset < -7; offset++ {
		baseline[journal.AddDays("2026-03-15", offset)] = DayStats{Stools: 10}
	}

	// +10% across every delay: under the 20% threshold, filtered out.
	weak := Series{}
	for day, stats := range baseline {
		weak[day] = stats
	}
	for delay := 0; delay <= opts.MaxDelay; delay++ {
		weak[journal.AddDays("2026-03-15", delay)] = DayStats{Stools: 11}
	}
	notes := []journal.Note{noteOn("2026-03-15", "dairy")}
	for _, r := range Analyze(notes, weak, opts) {
		if r.Metric == MetricStools {
			t.Errorf("+10%% shift should not clear a 20%% threshold: %+v", r)
		}
	}

	// +30% clears it.
	strong := Series{}
	for day, stats := range baseline {
		strong[day] = stats
	}
	for delay := 0; delay <= opts.MaxDelay; delay++ {
		strong[journal.AddDays("2026-03-15", delay)] = DayStats{Stools: 13}
	}
	results := Analyze(notes, strong, opts)
	found := false
	for _, r := range results {
		if r.Metric == MetricStools {
			found = true
			if r.Strongest.PercentChange != 30 {
				t.Errorf("percent change = %v, want 30", r.Strongest.PercentChange)
			}
		}
	}
	if !found {
		t.Error("+30%% shift should clear a 20%% threshold")
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	// Two weeks of 2 stools/day, then a tagged day with 4 and a return to 2.
	// The baseline window for the occurrence covers the first week (average
	// 2/day), so delay 0 doubles it: +100%, the strongest lag.
	var movements []journal.Movement
	for i := 1; i <= 14; i++ {
		day := fmt.Sprintf("2026-03-%02d", i)
		movements = append(movements, movementOn(day, 8, false), movementOn(day, 18, false))
	}
	movements = append(movements,
		movementOn("2026-03-15", 7, false),
		movementOn("2026-03-15", 11, false),
		movementOn("2026-03-15", 15, false),
		movementOn("2026-03-15", 21, false),
	)
	for i := 16; i <= 19; i++ {
		day := fmt.Sprintf("2026-03-%02d", i)
		movements = append(movements, movementOn(day, 8, false), movementOn(day, 18, false))
	}

	series := BuildSeries(movements, nil)
	notes := []journal.Note{noteOn("2026-03-15", "binge")}

	opts := DefaultOptions()
	opts.MinOccurrences = 1

	results := Analyze(notes, series, opts)
	if len(results) != 1 {
		t.Fatalf("expected exactly the stools result, got %d: %+v", len(results), results)
	}

	r := results[0]
	if r.Tag != "binge" || r.Metric != MetricStools {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.Strongest.Delay != 0 {
		t.Errorf("strongest delay = %d, want 0", r.Strongest.Delay)
	}
	if r.Strongest.PercentChange != 100 {
		t.Errorf("strongest percent change = %v, want +100", r.Strongest.PercentChange)
	}
	if r.Strongest.Observed != 4.0 || r.Strongest.Baseline != 2.0 {
		t.Errorf("observed/baseline = %v/%v, want 4.0/2.0", r.Strongest.Observed, r.Strongest.Baseline)
	}
	if len(r.Impacts) != opts.MaxDelay+1 {
		t.Errorf("expected %d delay points, got %d", opts.MaxDelay+1, len(r.Impacts))
	}
	for _, impact := range r.Impacts[1:] {
		if impact.PercentChange != 0 {
			t.Errorf("delay %d percent change = %v, want 0", impact.Delay, impact.PercentChange)
		}
	}
}

func TestAnalyzeScoreNullExclusion(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDelay = 0

	// Three occurrences, but only one occurrence day has a computed score.
	// The score average must cover the one valid observation, not treat the
	// missing two as zero.
	series := Series{
		"2026-03-10": {Score: 6, HasScore: true},
	}
	notes := []journal.Note{
		noteOn("2026-03-10", "flare"),
		noteOn("2026-03-17", "flare"),
		noteOn("2026-03-24", "flare"),
	}

	var scoreResult *Result
	for _, r := range Analyze(notes, series, opts) {
		if r.Metric == MetricScore {
			c := r
			scoreResult = &c
		}
	}
	if scoreResult == nil {
		t.Fatal("expected a score result")
	}
	if scoreResult.Strongest.Observed != 6.0 {
		t.Errorf("observed = %v, want 6.0 (nulls excluded from the average)", scoreResult.Strongest.Observed)
	}
	// Empty baseline window with a positive observation: +100 by the
	// zero-denominator rule.
	if scoreResult.Strongest.PercentChange != 100 {
		t.Errorf("percent change = %v, want 100", scoreResult.Strongest.PercentChange)
	}
}

func TestAnalyzeScoreMetricSkippedWithoutData(t *testing.T) {
	// No surveys anywhere: every delay has zero valid score observations, so
	// the score metric contributes no impacts at all.
	series := Series{
		"2026-03-10": {Stools: 2},
	}
	notes := []journal.Note{
		noteOn("2026-03-10", "stress"),
		noteOn("2026-03-12", "stress"),
		noteOn("2026-03-14", "stress"),
	}

	for _, r := range Analyze(notes, series, DefaultOptions()) {
		if r.Metric == MetricScore {
			t.Errorf("score metric with no valid observations surfaced: %+v", r)
		}
	}
}

func TestAnalyzeRanking(t *testing.T) {
	opts := DefaultOptions()
	opts.MinOccurrences = 1
	opts.MaxDelay = 0

	series := Series{
		"2026-03-15": {Stools: 4, Bloody: 0},
		"2026-03-20": {Stools: 3, Bloody: 0},
	}
	// Both baseline windows read 2/day, so coffee lands at +100 (4 vs 2)
	// and alcohol at +50 (3 vs 2). The windows overlap but hold the same
	// value everywhere, so the overlap is harmless.
	for offset := -14; offset < -7; offset++ {
		series[journal.AddDays("2026-03-15", offset)] = DayStats{Stools: 2}
		series[journal.AddDays("2026-03-20", offset)] = DayStats{Stools: 2}
	}

	notes := []journal.Note{
		noteOn("2026-03-20", "alcohol"),
		noteOn("2026-03-15", "coffee"),
	}

	results := Analyze(notes, series, opts)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if results[0].Tag != "coffee" || results[0].Strongest.PercentChange != 100 {
		t.Errorf("results[0] = %+v, want coffee at +100", results[0])
	}
	if results[1].Tag != "alcohol" || results[1].Strongest.PercentChange != 50 {
		t.Errorf("results[1] = %+v, want alcohol at +50", results[1])
	}
}

func TestBuildSeries(t *testing.T) {
	movements := []journal.Movement{
		movementOn("2026-03-14", 8, false),
		movementOn("2026-03-14", 14, true),
		movementOn("2026-03-14", 20, false),
		movementOn("2026-03-15", 9, false),
	}
	surveys := map[string]journal.Survey{
		"2026-03-14": {
			Day:           "2026-03-14",
			Incontinence:  journal.No,
			Pain:          journal.PainNone,
			State:         journal.StatePerfect,
			Antidiarrheal: journal.No,
		},
		"2026-03-16": { // survey-only day
			Day:           "2026-03-16",
			Incontinence:  journal.No,
			Pain:          journal.PainMild,
			State:         journal.StateGood,
			Antidiarrheal: journal.No,
		},
	}

	series := BuildSeries(movements, surveys)

	got := series["2026-03-14"]
	if got.Stools != 3 || got.Bloody != 1 {
		t.Errorf("2026-03-14 stats = %+v, want 3 stools, 1 bloody", got)
	}
	if !got.HasScore || got.Score != 1 { // 3 stools band 1, perfect survey
		t.Errorf("2026-03-14 score = %d/%v, want 1/true", got.Score, got.HasScore)
	}

	if got := series["2026-03-15"]; got.HasScore {
		t.Error("2026-03-15 has no survey, score should be unavailable")
	}

	got = series["2026-03-16"]
	if !got.HasScore || got.Score != 3 { // pain 1 + state 2
		t.Errorf("survey-only day score = %d/%v, want 3/true", got.Score, got.HasScore)
	}

	// Absent day: counts default to zero, score unavailable.
	if v, ok := series.value("2026-04-01", MetricStools); !ok || v != 0 {
		t.Errorf("absent day stools = %v/%v, want 0/true", v, ok)
	}
	if _, ok := series.value("2026-04-01", MetricScore); ok {
		t.Error("absent day score should be unavailable")
	}
}
