// Package batch derives and inspects batch numbers, the string key that
// links purchases, processing runs, bagging-offs and wet transfers.
package batch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PrefixLen width of the lot prefix shared by split batches (-1/-2, A/B)
const PrefixLen = 9

// ErrInvalidDate date could not be parsed
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate accepts ISO dates and timestamps, returning UTC
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Derive builds YY + station code + DD + MM + grade from the UTC calendar day.
// 2024-03-15, KY, A → 24KY1503A
func Derive(stationCode, grade string, purchaseDate time.Time) string {
	d := purchaseDate.UTC()
	return fmt.Sprintf("%02d%s%02d%02d%s", d.Year()%100, stationCode, d.Day(), int(d.Month()), grade)
}

// DayBounds returns [00:00 UTC, next 00:00 UTC) around t
func DayBounds(t time.Time) (time.Time, time.Time) {
	d := t.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Prefix lot prefix used to roll split batches into one lot
func Prefix(batchNo string) string {
	if len(batchNo) <= PrefixLen {
		return batchNo
	}
	return batchNo[:PrefixLen]
}

var stemPattern = regexp.MustCompile(`^\d+[A-Z]+\d+`)

// Stem leading digits-letters-digits run, "" when the batch does not match.
// 24KY1503A-1 → 24KY1503
func Stem(batchNo string) string {
	return stemPattern.FindString(batchNo)
}

// IsSecondary reports whether the batch is the secondary (-2 / B) split
func IsSecondary(batchNo string) bool {
	return strings.HasSuffix(batchNo, "-2") || strings.HasSuffix(batchNo, "B")
}
