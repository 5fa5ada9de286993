package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/score"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	days := fs.Int("days", 14, "Number of recent days to summarize")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	movements, _ := st.Movements()
	notes, _ := st.Notes()
	history, _ := st.ScoreHistory()

	fmt.Printf("Movements recorded:    %d\n", len(movements))
	fmt.Printf("Notes recorded:        %d\n", len(notes))
	fmt.Printf("Days with full score:  %d\n", len(history))

	tags := map[string]int{}
	for _, n := range notes {
		for _, tag := range n.Tags {
			tags[tag]++
		}
	}
	fmt.Printf("Unique tags:           %d\n", len(tags))

	today := journal.DayKey(time.Now(), 0)
	window := make([]string, 0, *days)
	for i := 0; i < *days; i++ {
		window = append(window, journal.AddDays(today, -i))
	}

	summaries, err := score.Summaries(st, window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to summarize: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nLast %d days:\n", *days)
	for _, s := range summaries {
		scorePart := fmt.Sprintf("score %d", s.Score)
		if !s.HasScore {
			scorePart = fmt.Sprintf("~%d (survey pending)", s.Provisional)
		}
		bloodPart := ""
		if s.Bloody > 0 {
			bloodPart = fmt.Sprintf(", %d bloody", s.Bloody)
		}
		fmt.Printf("  %s  %2d stools%s  %s\n", s.Day, s.Movements, bloodPart, scorePart)
	}
}
