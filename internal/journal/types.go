// Package journal defines the domain records of the health journal and the
// survey-day resolution rules shared by the store, scoring, and analysis
// layers.
package journal

import "time"

// Movement is a single recorded bowel-movement event.
type Movement struct {
	ID         string
	OccurredAt time.Time // local wall-clock instant
	Bristol    int       // Bristol stool scale, 1..7
	Blood      bool
}

// YesNo is a stored yes/no survey answer.
type YesNo string

const (
	Yes YesNo = "oui"
	No  YesNo = "non"
)

// Points returns the sub-score contribution of a yes/no answer.
// ok is false for values outside the closed enumeration.
func (v YesNo) Points() (int, bool) {
	switch v {
	case Yes:
		return 1, true
	case No:
		return 0, true
	}
	return 0, false
}

// PainLevel is the stored abdominal-pain survey answer.
type PainLevel string

const (
	PainNone     PainLevel = "aucune"
	PainMild     PainLevel = "legeres"
	PainModerate PainLevel = "moyennes"
	PainSevere   PainLevel = "intenses"
)

// Points maps a pain level to its sub-score, 0..3.
func (p PainLevel) Points() (int, bool) {
	switch p {
	case PainNone:
		return 0, true
	case PainMild:
		return 1, true
	case PainModerate:
		return 2, true
	case PainSevere:
		return 3, true
	}
	return 0, false
}

// GeneralState is the stored general well-being survey answer.
type GeneralState string

const (
	StatePerfect  GeneralState = "parfait"
	StateVeryGood GeneralState = "tres_bon"
	StateGood     GeneralState = "bon"
	StateAverage  GeneralState = "moyen"
	StateBad      GeneralState = "mauvais"
	StateVeryBad  GeneralState = "tres_mauvais"
)

// Points maps a general state to its sub-score, 0..5.
func (g GeneralState) Points() (int, bool) {
	switch g {
	case StatePerfect:
		return 0, true
	case StateVeryGood:
		return 1, true
	case StateGood:
		return 2, true
	case StateAverage:
		return 3, true
	case StateBad:
		return 4, true
	case StateVeryBad:
		return 5, true
	}
	return 0, false
}

// Survey is the daily symptom survey. At most one exists per day key;
// saving again for the same day overwrites.
type Survey struct {
	Day           string // YYYY-MM-DD
	Incontinence  YesNo
	Pain          PainLevel
	State         GeneralState
	Antidiarrheal YesNo
}

// ScoreEntry is one persisted daily Lichtiger score. A day appears at most
// once in the history.
type ScoreEntry struct {
	Day   string
	Score int
}

// Note is a free-text journal note. Tags are free-form strings; the set of
// all unique tags is derived, never stored.
type Note struct {
	ID               string
	Day              string // YYYY-MM-DD
	CreatedAt        time.Time
	Content          string
	Tags             []string
	SharedWithDoctor bool
	Category         string
}
