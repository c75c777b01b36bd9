package pending

import (
	"slices"
	"strings"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
)

// GraceDays is how long after the draw a win may stay unclaimed before it counts as overdue.
const GraceDays = 3

const day = 24 * time.Hour

const secondsPerDay = int64(day / time.Second)

// Draw dates outside these years are typos in the sheet, not real draws.
const (
	minDrawYear = 1970
	maxDrawYear = 2999
)

// DaysOverdue returns the whole days elapsed since draw, less the grace period, never negative.
// It counts in Unix seconds since time.Duration saturates after about 292 years.
func DaysOverdue(draw, now time.Time) int {
	secs := now.Unix() - draw.Unix()
	if now.Nanosecond() < draw.Nanosecond() {
		secs--
	}
	elapsed := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		elapsed--
	}
	overdue := elapsed - GraceDays
	if overdue < 0 {
		return 0
	}
	return int(overdue)
}

var drawLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
}

// ParseDrawTime parses the draw timestamps spreadsheets produce. Layouts without a zone are
// read in loc. Years outside 1970-2999 are rejected.
func ParseDrawTime(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range drawLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			if t.Year() < minDrawYear || t.Year() > maxDrawYear {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysOverdueFrom is DaysOverdue for a raw draw string; unparsable or empty input is not overdue.
func DaysOverdueFrom(raw string, now time.Time, loc *time.Location) int {
	draw, ok := ParseDrawTime(raw, loc)
	if !ok {
		return 0
	}
	return DaysOverdue(draw, now)
}

// MostOverdue returns the n records with the highest days_overdue, most overdue first.
// records is left untouched.
func MostOverdue(records []domain.PendingRecord, n int) []domain.PendingRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.PendingRecord) int {
		return b.DaysOverdue - a.DaysOverdue
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
