package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nroussel/gutlog/internal/config"
	"github.com/nroussel/gutlog/internal/coord"
	"github.com/nroussel/gutlog/internal/correlation"
	"github.com/nroussel/gutlog/internal/insight"
	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/logging"
	"github.com/nroussel/gutlog/internal/score"
	"github.com/nroussel/gutlog/internal/store"
	"github.com/nroussel/gutlog/internal/ui"
)

func main() {
	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Data directory: ~/.gutlog/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".gutlog")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	dbPath := filepath.Join(dataDir, "gutlog.db")

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	opts := correlation.Options{
		MinOccurrences: cfg.Analysis.MinOccurrences,
		BaselineDays:   cfg.Analysis.BaselineDays,
		MaxDelay:       cfg.Analysis.MaxDelayDays,
		ThresholdPct:   cfg.Analysis.SignificancePct,
	}

	coordinator := coord.New(st, cfg.Journal.SurveyResetHour, cfg.Journal.ReminderHour, opts)

	resetHour := cfg.Journal.SurveyResetHour
	dayLimit := cfg.UI.DayLimit
	if dayLimit <= 0 {
		dayLimit = 60
	}

	// Create the UI app with dependency injection: the model never touches
	// the store directly.
	appCfg := ui.AppConfig{
		LoadDays: func() tea.Cmd {
			return func() tea.Msg {
				today := journal.DayKey(time.Now(), 0)
				days := make([]string, 0, dayLimit)
				for i := 0; i < dayLimit; i++ {
					days = append(days, journal.AddDays(today, -i))
				}
				summaries, err := score.Summaries(st, days)
				if err != nil {
					return ui.DaysLoaded{Err: err}
				}
				return ui.DaysLoaded{Days: summaries}
			}
		},
		LoadInsights: func() tea.Cmd {
			return func() tea.Msg {
				movements, err := st.Movements()
				if err != nil {
					return ui.InsightsLoaded{Err: err}
				}
				surveys, err := st.Surveys()
				if err != nil {
					return ui.InsightsLoaded{Err: err}
				}
				notes, err := st.Notes()
				if err != nil {
					return ui.InsightsLoaded{Err: err}
				}
				series := correlation.BuildSeries(movements, surveys)
				results := correlation.Analyze(notes, series, opts)
				return ui.InsightsLoaded{Insights: insight.FormatAll(results)}
			}
		},
		SaveMovement: func(bristol int, blood bool) tea.Cmd {
			return func() tea.Msg {
				now := time.Now()
				m, err := st.SaveMovement(journal.Movement{
					OccurredAt: now,
					Bristol:    bristol,
					Blood:      blood,
				})
				day := journal.DayKey(m.OccurredAt, 0)
				if err == nil {
					coordinator.RequestRecompute(day)
				}
				return ui.MovementSaved{Day: day, Err: err}
			}
		},
		SaveSurvey: func(sv journal.Survey) tea.Cmd {
			return func() tea.Msg {
				sv.Day = journal.DayKey(time.Now(), resetHour)
				err := st.SaveSurvey(sv)
				if err == nil {
					coordinator.RequestRecompute(sv.Day)
				}
				return ui.SurveySaved{Day: sv.Day, Err: err}
			}
		},
		SaveNote: func(content string, tags []string) tea.Cmd {
			return func() tea.Msg {
				now := time.Now()
				n, err := st.SaveNote(journal.Note{
					Day:       journal.DayKey(now, 0),
					CreatedAt: now,
					Content:   content,
					Tags:      tags,
				})
				return ui.NoteSaved{Note: n, Err: err}
			}
		},
	}

	program := tea.NewProgram(ui.NewApp(appCfg), tea.WithAltScreen())

	coordinator.Start(ctx, program)

	if _, err := program.Run(); err != nil {
		logging.Error("UI exited with error", "error", err)
	}

	cancel()
	coordinator.Wait()
}
