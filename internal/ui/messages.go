// Package ui provides the Bubble Tea TUI for gutlog.
package ui

import (
	"github.com/nroussel/gutlog/internal/insight"
	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/score"
)

// DaysLoaded is sent when the journal rows are fetched from the store.
type DaysLoaded struct {
	Days []score.Summary
	Err  error
}

// InsightsLoaded is sent when a correlation analysis run finishes.
type InsightsLoaded struct {
	Insights []insight.Insight
	Err      error
}

// MovementSaved is sent after a bowel-movement entry was persisted.
type MovementSaved struct {
	Day string
	Err error
}

// SurveySaved is sent after the daily survey was persisted.
type SurveySaved struct {
	Day string
	Err error
}

// NoteSaved is sent after a note was persisted.
type NoteSaved struct {
	Note journal.Note
	Err  error
}

// ScoreRecomputed is sent by the coordinator when a day's score history
// entry was rebuilt.
type ScoreRecomputed struct {
	Day string
}

// SurveyDue is sent by the coordinator when today's survey is still missing
// after the reminder hour.
type SurveyDue struct {
	Day string
}

// RefreshTick triggers a journal reload.
type RefreshTick struct{}
