package journal

import (
	"fmt"
	"time"
)

// dayKeyFormat is the canonical YYYY-MM-DD layout for day keys.
const dayKeyFormat = "2006-01-02"

// DayKey maps an instant to its logical survey-day key.
//
// All math is in local wall-clock time; converting through UTC would shift
// events across midnight for any non-zero timezone offset. With resetHour > 0,
// instants before resetHour:00 belong to the previous calendar day, so a
// 02:00 entry still counts toward yesterday's journal. resetHour 0 is a true
// midnight boundary.
func DayKey(t time.Time, resetHour int) string {
	if resetHour > 0 && t.Hour() < resetHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(dayKeyFormat)
}

// DayBounds returns the local [midnight, next midnight) window for a day key.
func DayBounds(day string) (start, end time.Time, err error) {
	t, err := time.ParseInLocation(dayKeyFormat, day, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse day key %q: %w", day, err)
	}
	start = t
	end = t.AddDate(0, 0, 1)
	return start, end, nil
}

// AddDays shifts a day key by n calendar days. Malformed keys are returned
// unchanged; callers validate keys at the boundary.
func AddDays(day string, n int) string {
	t, err := time.ParseInLocation(dayKeyFormat, day, time.Local)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, n).Format(dayKeyFormat)
}

// ValidDay reports whether day is a well-formed YYYY-MM-DD key.
func ValidDay(day string) bool {
	_, err := time.ParseInLocation(dayKeyFormat, day, time.Local)
	return err == nil && len(day) == len(dayKeyFormat)
}
