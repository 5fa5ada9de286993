package correlation

import (
	"math"
	"sort"

	"github.com/nroussel/gutlog/internal/journal"
)

// Analyze computes the lagged impact profile of every tag appearing in notes
// against the daily metric series, keeping only (tag, metric) pairs whose
// strongest delay clears the significance threshold, ranked by descending
// absolute percent change. Empty notes or a tagless journal yield an empty
// result set, not an error.
func Analyze(notes []journal.Note, series Series, opts Options) []Result {
	tags, occurrences := tagOccurrences(notes)

	var results []Result
	for _, tag := range tags {
		occs := occurrences[tag]
		if len(occs) < opts.MinOccurrences {
			continue // not enough signal
		}

		for _, metric := range Metrics {
			if r, ok := analyzeTagMetric(tag, metric, occs, series, opts); ok {
				results = append(results, r)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a := math.Abs(results[i].Strongest.PercentChange)
		b := math.Abs(results[j].Strongest.PercentChange)
		if a != b {
			return a > b
		}
		if results[i].Tag != results[j].Tag {
			return results[i].Tag < results[j].Tag
		}
		return results[i].Metric < results[j].Metric
	})

	return results
}

// analyzeTagMetric builds the impact profile of one (tag, metric) pair.
// ok is false when no delay produced a data point or the strongest shift
// stays under the threshold.
func analyzeTagMetric(tag string, metric Metric, occs []string, series Series, opts Options) (Result, bool) {
	var impacts []Impact
	for delay := 0; delay <= opts.MaxDelay; delay++ {
		var obsSum float64
		var obsN int
		var baseSum float64
		var baseN int

		for _, occDay := range occs {
			if v, ok := series.value(journal.AddDays(occDay, delay), metric); ok {
				obsSum += v
				obsN++
			}
			if b, ok := baselineFor(series, occDay, metric, opts.BaselineDays); ok {
				baseSum += b
				baseN++
			}
		}

		// A delay with zero valid observations contributes no data point.
		if obsN == 0 {
			continue
		}

		observed := obsSum / float64(obsN)
		baseline := 0.0
		if baseN > 0 {
			baseline = baseSum / float64(baseN)
		}

		impacts = append(impacts, Impact{
			Delay:         delay,
			Observed:      round1(observed),
			Baseline:      round1(baseline),
			PercentChange: percentChange(observed, baseline),
		})
	}

	if len(impacts) == 0 {
		return Result{}, false
	}

	strongest := impacts[0]
	for _, impact := range impacts[1:] {
		// Strictly greater: on a tie the earliest delay wins.
		if math.Abs(impact.PercentChange) > math.Abs(strongest.PercentChange) {
			strongest = impact
		}
	}

	// Thresholding compares the rounded percentage.
	if math.Abs(strongest.PercentChange) < float64(opts.ThresholdPct) {
		return Result{}, false
	}

	return Result{
		Tag:         tag,
		Metric:      metric,
		Occurrences: len(occs),
		Impacts:     impacts,
		Strongest:   strongest,
	}, true
}

// baselineFor averages a metric over the trailing window [occ-2B, occ-B).
// The gap between window and occurrence keeps the baseline clear of the
// occurrence itself and of the delay window. For the score metric, days
// without a full score are excluded; ok is false when the whole window had
// none. Stool and blood counts read as zero on empty days, so their windows
// are always complete.
func baselineFor(series Series, occDay string, metric Metric, baselineDays int) (float64, bool) {
	var sum float64
	var n int
	for offset := -2 * baselineDays; offset < -baselineDays; offset++ {
		if v, ok := series.value(journal.AddDays(occDay, offset), metric); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// percentChange computes the rounded percent shift of observed vs baseline.
// A zero baseline reads as +100 when anything was observed and 0 otherwise,
// never NaN.
func percentChange(observed, baseline float64) float64 {
	if baseline == 0 {
		if observed > 0 {
			return 100
		}
		return 0
	}
	return math.Round((observed - baseline) / baseline * 100)
}

// tagOccurrences collects, per unique tag, the day keys of every note
// carrying it. Two tagged notes on the same day count as two occurrences.
// Tags are returned in first-seen order so analysis is deterministic.
func tagOccurrences(notes []journal.Note) ([]string, map[string][]string) {
	var tags []string
	occurrences := make(map[string][]string)
	for _, note := range notes {
		for _, tag := range note.Tags {
			if tag == "" {
				continue
			}
			if _, seen := occurrences[tag]; !seen {
				tags = append(tags, tag)
			}
			occurrences[tag] = append(occurrences[tag], note.Day)
		}
	}
	return tags, occurrences
}

// round1 rounds to one decimal place for presentation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
