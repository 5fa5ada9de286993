// Package insight turns correlation results into human-readable,
// severity-tagged messages for the UI and reports.
package insight

import (
	"fmt"
	"math"

	"github.com/nroussel/gutlog/internal/correlation"
)

// Severity indicates how strong an association is.
type Severity string

const (
	SeverityLow    Severity = "low"    // |percent change| < 20
	SeverityMedium Severity = "medium" // 20 <= |percent change| < 50
	SeverityHigh   Severity = "high"   // |percent change| >= 50
)

// Insight is one displayable correlation message.
type Insight struct {
	Icon        string
	Title       string
	Description string
	Severity    Severity
	Occurrences int
	MetricLabel string
}

// metricLabels maps metric identifiers to display names.
var metricLabels = map[correlation.Metric]string{
	correlation.MetricStools: "stool frequency",
	correlation.MetricBlood:  "bloody stools",
	correlation.MetricScore:  "Lichtiger score",
}

// Format renders one correlation result. Wording stays associative
// ("vs your baseline"), never causal.
func Format(r correlation.Result) Insight {
	pct := r.Strongest.PercentChange
	label := metricLabels[r.Metric]
	if label == "" {
		label = string(r.Metric)
	}

	icon := "📈"
	direction := "rose"
	if pct < 0 {
		icon = "📉"
		direction = "fell"
	}

	return Insight{
		Icon:  icon,
		Title: fmt.Sprintf("%q and %s", r.Tag, label),
		Description: fmt.Sprintf(
			"Your %s %s %.0f%% vs your baseline %s notes tagged %q (%.1f vs %.1f, seen %d times).",
			label, direction, math.Abs(pct), delayPhrase(r.Strongest.Delay), r.Tag,
			r.Strongest.Observed, r.Strongest.Baseline, r.Occurrences,
		),
		Severity:    severityFor(pct),
		Occurrences: r.Occurrences,
		MetricLabel: label,
	}
}

// FormatAll renders every result in order.
func FormatAll(results []correlation.Result) []Insight {
	insights := make([]Insight, 0, len(results))
	for _, r := range results {
		insights = append(insights, Format(r))
	}
	return insights
}

// severityFor buckets an absolute percent change: low under 20, medium from
// 20 up to 50, high from 50.
func severityFor(pct float64) Severity {
	switch abs := math.Abs(pct); {
	case abs >= 50:
		return SeverityHigh
	case abs >= 20:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// delayPhrase renders a delay in days as prose.
func delayPhrase(delay int) string {
	switch delay {
	case 0:
		return "on the day of"
	case 1:
		return "1 day after"
	default:
		return fmt.Sprintf("%d days after", delay)
	}
}
