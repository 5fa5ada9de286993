// Package correlation mines the journal for lagged associations between note
// tags and outcome metrics: for each tag, it compares the tagged-day window
// (at delays 0..N days) against a trailing baseline taken well before the
// occurrence, and ranks the tags whose strongest shift clears a significance
// threshold.
//
// The output is strictly a percent-change-vs-baseline association. It is not,
// and must never be presented as, a causal claim.
package correlation

// Metric identifies an outcome metric tracked per day.
type Metric string

const (
	MetricStools Metric = "stools" // daily stool count
	MetricBlood  Metric = "blood"  // daily bloody-stool count
	MetricScore  Metric = "score"  // daily Lichtiger score
)

// Metrics lists the analyzed metrics in evaluation order.
var Metrics = []Metric{MetricStools, MetricBlood, MetricScore}

// Impact is the measured shift for one delay.
type Impact struct {
	Delay         int     // days after the tag occurrence
	Observed      float64 // average metric value at occurrence+delay, 1 decimal
	Baseline      float64 // average trailing-baseline value, 1 decimal
	PercentChange float64 // rounded to the nearest integer
}

// Result is the impact profile of one (tag, metric) pair. Derived on demand,
// never persisted; it lives for one analysis call.
type Result struct {
	Tag         string
	Metric      Metric
	Occurrences int
	Impacts     []Impact
	Strongest   Impact // the impact with maximum |PercentChange|
}

// Options tunes the analyzer.
type Options struct {
	// MinOccurrences is the minimum note count for a tag to be analyzed.
	MinOccurrences int

	// BaselineDays is the baseline window length B; the window is the B days
	// spanning [occurrence-2B, occurrence-B), so it never overlaps the
	// occurrence or the delay window.
	BaselineDays int

	// MaxDelay is the largest delay, in days, measured after an occurrence.
	MaxDelay int

	// ThresholdPct keeps only results whose strongest |percent change|
	// reaches this value.
	ThresholdPct int
}

// DefaultOptions returns the standard analyzer tuning.
func DefaultOptions() Options {
	return Options{
		MinOccurrences: 3,
		BaselineDays:   7,
		MaxDelay:       4,
		ThresholdPct:   20,
	}
}
