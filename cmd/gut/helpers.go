package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/nroussel/gutlog/internal/config"
	"github.com/nroussel/gutlog/internal/correlation"
	"github.com/nroussel/gutlog/internal/store"
)

// dataDir returns ~/.gutlog/, creating it if needed.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	dir := filepath.Join(home, ".gutlog")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	return dir
}

// dbPath returns the path to gutlog.db.
func dbPath() string {
	return filepath.Join(dataDir(), "gutlog.db")
}

// openDB opens the store or fatals.
func openDB() *store.Store {
	st, err := store.Open(dbPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// loadConfig loads the app config or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// analysisOptions maps the configured thresholds onto analyzer options.
func analysisOptions(cfg *config.Config) correlation.Options {
	return correlation.Options{
		MinOccurrences: cfg.Analysis.MinOccurrences,
		BaselineDays:   cfg.Analysis.BaselineDays,
		MaxDelay:       cfg.Analysis.MaxDelayDays,
		ThresholdPct:   cfg.Analysis.SignificancePct,
	}
}
