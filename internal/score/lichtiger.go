// Package score computes the daily Lichtiger activity score and maintains
// the persisted score history.
//
// The Lichtiger score sums seven sub-scores: stool frequency, nocturnal
// stooling, rectal bleeding, fecal incontinence, abdominal pain, general
// well-being, and antidiarrheal use. The first three come from the day's
// recorded movements, the rest from the daily survey; without a survey the
// full score is not computable.
package score

import (
	"time"

	"github.com/nroussel/gutlog/internal/journal"
)

// Breakdown holds the seven sub-scores for one day.
type Breakdown struct {
	Stools        int // 0-4, daily stool count band
	Nocturnal     int // 0-1, any movement in [23:00, 06:00)
	Bleeding      int // 0-3, bloody-to-total ratio band
	Incontinence  int // 0-1
	Pain          int // 0-3
	State         int // 0-5
	Antidiarrheal int // 0-1
}

// Total sums the sub-scores. The independently-capped maxima add up to 18
// even though the clinical instrument tops out at 17; totals are deliberately
// not clamped.
func (b Breakdown) Total() int {
	return b.Stools + b.Nocturnal + b.Bleeding + b.Incontinence + b.Pain + b.State + b.Antidiarrheal
}

// Compute aggregates a day's movements and survey into the full Lichtiger
// score. ok is false when the survey is missing or carries values outside the
// closed enumerations, meaning the score is incomplete for that day. That is
// distinct from a score of 0.
func Compute(day string, movements []journal.Movement, survey *journal.Survey) (int, bool) {
	b, ok := ComputeBreakdown(day, movements, survey)
	if !ok {
		return 0, false
	}
	return b.Total(), true
}

// ComputeBreakdown is Compute with the per-sub-score decomposition exposed.
func ComputeBreakdown(day string, movements []journal.Movement, survey *journal.Survey) (Breakdown, bool) {
	if survey == nil {
		return Breakdown{}, false
	}

	b := eventBreakdown(day, movements)

	incontinence, ok := survey.Incontinence.Points()
	if !ok {
		return Breakdown{}, false
	}
	pain, ok := survey.Pain.Points()
	if !ok {
		return Breakdown{}, false
	}
	state, ok := survey.State.Points()
	if !ok {
		return Breakdown{}, false
	}
	antidiarrheal, ok := survey.Antidiarrheal.Points()
	if !ok {
		return Breakdown{}, false
	}

	b.Incontinence = incontinence
	b.Pain = pain
	b.State = state
	b.Antidiarrheal = antidiarrheal
	return b, true
}

// Provisional computes the event-derived sub-scores only (stool count,
// nocturnal, bleeding), for showing an in-progress daily total before the
// survey is submitted. This is a separate code path from Compute, not a
// fallback inside it: callers choose explicitly which they want.
func Provisional(day string, movements []journal.Movement) int {
	b := eventBreakdown(day, movements)
	return b.Stools + b.Nocturnal + b.Bleeding
}

// eventBreakdown fills the movement-derived sub-scores for the given day.
func eventBreakdown(day string, movements []journal.Movement) Breakdown {
	selected := selectDay(day, movements)

	total := len(selected)
	bloody := 0
	nocturnal := false
	for _, m := range selected {
		if m.Blood {
			bloody++
		}
		if inNocturnalWindow(m.OccurredAt) {
			nocturnal = true
		}
	}

	b := Breakdown{
		Stools:   stoolBand(total),
		Bleeding: bleedingBand(bloody, total),
	}
	if nocturnal {
		b.Nocturnal = 1
	}
	return b
}

// selectDay keeps the movements inside the local [midnight, next midnight)
// window for the day key. A malformed key selects nothing.
func selectDay(day string, movements []journal.Movement) []journal.Movement {
	start, end, err := journal.DayBounds(day)
	if err != nil {
		return nil
	}

	var selected []journal.Movement
	for _, m := range movements {
		if !m.OccurredAt.Before(start) && m.OccurredAt.Before(end) {
			selected = append(selected, m)
		}
	}
	return selected
}

// stoolBand maps a daily stool count to its 0-4 sub-score.
func stoolBand(count int) int {
	switch {
	case count <= 2:
		return 0
	case count <= 4:
		return 1
	case count <= 6:
		return 2
	case count <= 9:
		return 3
	default:
		return 4
	}
}

// bleedingBand maps the bloody-to-total ratio to its 0-3 sub-score using
// integer counts, so the closed 0.5 bound is exact: 0 for no blood, 1 below
// half, 2 from half up, 3 when every stool is bloody. Zero movements score 0.
func bleedingBand(bloody, total int) int {
	switch {
	case total == 0 || bloody == 0:
		return 0
	case 2*bloody < total:
		return 1
	case bloody < total:
		return 2
	default:
		return 3
	}
}

// inNocturnalWindow reports whether a local time-of-day falls in the
// midnight-wrapping window [23:00, 06:00).
func inNocturnalWindow(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 23*60 || minutes < 6*60
}
