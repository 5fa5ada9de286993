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

func runLog() {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	bristol := fs.Int("bristol", 4, "Bristol stool type, 1..7")
	blood := fs.Bool("blood", false, "Blood was visible")
	when := fs.String("when", "", "Timestamp (RFC 3339); defaults to now")
	fs.Parse(os.Args[1:])

	if *bristol < 1 || *bristol > 7 {
		log.Fatalf("bristol type must be 1..7, got %d", *bristol)
	}

	occurredAt := time.Now()
	if *when != "" {
		t, err := time.ParseInLocation(time.RFC3339, *when, time.Local)
		if err != nil {
			log.Fatalf("invalid --when value %q: %v", *when, err)
		}
		occurredAt = t
	}

	st := openDB()
	defer st.Close()

	m, err := st.SaveMovement(journal.Movement{
		OccurredAt: occurredAt,
		Bristol:    *bristol,
		Blood:      *blood,
	})
	if err != nil {
		log.Fatalf("failed to save movement: %v", err)
	}

	day := journal.DayKey(m.OccurredAt, 0)
	if err := score.Recompute(st, day); err != nil {
		log.Fatalf("failed to recompute score: %v", err)
	}

	fmt.Printf("Recorded type %d movement on %s (%s)\n", m.Bristol, day, m.ID)
	if total, ok, _ := st.ScoreFor(day); ok {
		fmt.Printf("Lichtiger score for %s: %d\n", day, total)
	} else {
		movements, _ := st.MovementsOn(day)
		fmt.Printf("Provisional score for %s: %d (survey pending)\n", day, score.Provisional(day, movements))
	}
}
