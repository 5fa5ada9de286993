package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nroussel/gutlog/internal/correlation"
	"github.com/nroussel/gutlog/internal/insight"
)

func runInsights() {
	fs := flag.NewFlagSet("insights", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show every delay's averages, not just the strongest")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	st := openDB()
	defer st.Close()

	movements, err := st.Movements()
	if err != nil {
		log.Fatalf("failed to load movements: %v", err)
	}
	surveys, err := st.Surveys()
	if err != nil {
		log.Fatalf("failed to load surveys: %v", err)
	}
	notes, err := st.Notes()
	if err != nil {
		log.Fatalf("failed to load notes: %v", err)
	}

	series := correlation.BuildSeries(movements, surveys)
	results := correlation.Analyze(notes, series, analysisOptions(cfg))

	if len(results) == 0 {
		fmt.Println("No patterns found. Tag more notes (#coffee, #stress, ...) and try again.")
		return
	}

	for _, r := range results {
		ins := insight.Format(r)
		fmt.Printf("%s %s [%s]\n", ins.Icon, ins.Title, ins.Severity)
		fmt.Printf("   %s\n", ins.Description)
		if *verbose {
			for _, imp := range r.Impacts {
				fmt.Fprintf(os.Stdout, "     delay %d: %.1f vs %.1f (%+.0f%%)\n",
					imp.Delay, imp.Observed, imp.Baseline, imp.PercentChange)
			}
		}
	}
}
