// Command gut is the CLI companion to the gutlog TUI: quick entry from the
// shell plus journal maintenance and reporting.
//
// Usage:
//
//	gut                     Show help
//	gut log                 Record a bowel movement
//	gut stats               Journal statistics
//	gut insights            Run the tag correlation analysis
//	gut recompute           Rebuild the daily score history
package main

import (
	"fmt"
	"os"
)

const usage = `gut — gutlog journal CLI

Usage:
  gut <command> [flags]

Commands:
  log         Record a bowel movement (--bristol, --blood)
  stats       Journal statistics and recent score history
  insights    Run the tag correlation analysis and print insights
  recompute   Rebuild the daily score history from raw entries

Environment:
  GUTLOG_RESET_HOUR        Survey-day boundary hour (default: 3)
  GUTLOG_MIN_OCCURRENCES   Tag occurrence threshold for analysis (default: 3)
  GUTLOG_BASELINE_DAYS     Baseline window length in days (default: 7)
  GUTLOG_MAX_DELAY_DAYS    Longest lag checked after a tag (default: 4)
  GUTLOG_SIGNIFICANCE_PCT  Percent-change cutoff for insights (default: 20)

Run 'gut <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "log":
		runLog()
	case "stats":
		runStats()
	case "insights":
		runInsights()
	case "recompute":
		runRecompute()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "gut: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
