package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/score"
)

func runRecompute() {
	fs := flag.NewFlagSet("recompute", flag.ExitOnError)
	days := fs.Int("days", 90, "Number of recent days to rebuild")
	day := fs.String("day", "", "Rebuild a single day (YYYY-MM-DD)")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	if *day != "" {
		if err := score.Recompute(st, *day); err != nil {
			log.Fatalf("failed to recompute %s: %v", *day, err)
		}
		fmt.Printf("Rebuilt score history for %s\n", *day)
		return
	}

	today := journal.DayKey(time.Now(), 0)
	window := make([]string, 0, *days)
	for i := 0; i < *days; i++ {
		window = append(window, journal.AddDays(today, -i))
	}

	if err := score.RebuildHistory(st, window); err != nil {
		log.Fatalf("failed to rebuild history: %v", err)
	}

	history, _ := st.ScoreHistory()
	fmt.Printf("Rebuilt %d days; %d now carry a full score\n", *days, len(history))
}
