package correlation

import (
	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/score"
)

// DayStats holds the per-day metric values the analyzer reads.
type DayStats struct {
	Stools   int
	Bloody   int
	Score    int
	HasScore bool // false while the day's survey is missing
}

// Series maps day keys to their metric stats. Days absent from the map had no
// recorded events; stool and blood counts read as zero there, the score reads
// as unavailable.
type Series map[string]DayStats

// BuildSeries materializes the daily metric series from a snapshot of the
// journal. Movement day assignment uses true midnight boundaries (reset
// hour 0), matching score aggregation.
func BuildSeries(movements []journal.Movement, surveys map[string]journal.Survey) Series {
	byDay := make(map[string][]journal.Movement)
	for _, m := range movements {
		day := journal.DayKey(m.OccurredAt, 0)
		byDay[day] = append(byDay[day], m)
	}

	series := make(Series, len(byDay)+len(surveys))
	for day, dayMovements := range byDay {
		stats := DayStats{Stools: len(dayMovements)}
		for _, m := range dayMovements {
			if m.Blood {
				stats.Bloody++
			}
		}
		series[day] = stats
	}

	// Survey-only days still produce a score.
	for day := range surveys {
		if _, ok := series[day]; !ok {
			series[day] = DayStats{}
		}
	}

	for day, stats := range series {
		var sv *journal.Survey
		if s, ok := surveys[day]; ok {
			sv = &s
		}
		if total, ok := score.Compute(day, byDay[day], sv); ok {
			stats.Score = total
			stats.HasScore = true
			series[day] = stats
		}
	}

	return series
}

// value reads one metric for one day. ok is false only for the score metric
// on days where no full score exists; stool and blood counts default to zero.
func (s Series) value(day string, metric Metric) (float64, bool) {
	stats := s[day]
	switch metric {
	case MetricStools:
		return float64(stats.Stools), true
	case MetricBlood:
		return float64(stats.Bloody), true
	case MetricScore:
		if !stats.HasScore {
			return 0, false
		}
		return float64(stats.Score), true
	}
	return 0, false
}
