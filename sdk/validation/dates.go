package validation

import (
	"fmt"
	"time"
)

// DateTimeLayout is the zone-less date-time text format used on the wire.
// Values are interpreted and rendered in UTC.
const DateTimeLayout = "2006-01-02T15:04:05"

// fractionalLayout renders fractional seconds only when they are non-zero.
const fractionalLayout = "2006-01-02T15:04:05.999999"

// ParseDateTime parses s as a DateTimeLayout value with optional fractional
// seconds down to the microsecond. Offsets, zone designators and date-only
// values are rejected.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date-time %q: want %s", s, DateTimeLayout)
	}

	if !t.Equal(t.Truncate(time.Microsecond)) {
		return time.Time{}, fmt.Errorf("unable to parse date-time %q: precision finer than a microsecond", s)
	}

	return t, nil
}

// FormatDateTime renders t in DateTimeLayout after converting it to UTC,
// followed by up to six fractional digits when t has a sub-second part.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(fractionalLayout)
}

// FormatDateTimePtr is FormatDateTime for optional values; nil stays nil.
func FormatDateTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDateTime(*t)
	return &s
}
