package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrBadTimestamp reports a wire timestamp whose shape is not one of the
// recognized representations. It is never silently defaulted.
var ErrBadTimestamp = errors.New("unrecognized timestamp format")

// Layouts observed on the backend. The conversation list endpoint returns
// ISO strings, detail endpoints return epoch seconds with fractions.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimeString parses an ISO-ish calendar timestamp.
func ParseTimeString(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}

// ParseEpoch interprets a numeric timestamp by its decimal-digit count:
// 13 digits are epoch milliseconds, a 10-digit integer part is epoch
// seconds (possibly fractional). Any other shape is an error.
func ParseEpoch(v float64) (time.Time, error) {
	intPart := int64(v)
	digits := len(strconv.FormatInt(intPart, 10))
	switch digits {
	case 13:
		return time.UnixMilli(intPart).UTC(), nil
	case 10:
		return time.UnixMilli(int64(math.Floor(v * 1000))).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrBadTimestamp, v)
}

// TimeProvider holds the timezone used for calendar-day bucketing. It is an
// explicit value passed to consumers rather than process-global state so
// tests can pin a zone.
type TimeProvider struct {
	location *time.Location
}

// NewTimeProvider resolves a timezone name ("Local", "UTC", or an IANA
// name) into a provider.
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w (examples: Local, UTC, America/New_York, Asia/Shanghai)", timezone, err)
		}
		loc = l
	}
	return &TimeProvider{location: loc}, nil
}

// Location returns the configured timezone.
func (tp *TimeProvider) Location() *time.Location {
	return tp.location
}

// In converts a time to the configured timezone.
func (tp *TimeProvider) In(t time.Time) time.Time {
	return t.In(tp.location)
}

// DayKey returns the calendar-day bucket for a time, e.g. "2024-02-13".
func (tp *TimeProvider) DayKey(t time.Time) string {
	return t.In(tp.location).Format("2006-01-02")
}

// ParseDayKey converts a DayKey back into midnight of that day.
func (tp *TimeProvider) ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", key, tp.location)
}
