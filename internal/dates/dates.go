// Package dates converts calendar dates to and from their stored string forms.
//
// Dates are written as ISO "2006-01-02". Older documents may carry the localized
// "02/01/2006" form or a full RFC 3339 timestamp; both are still accepted on read.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ISOLayout    = "2006-01-02"
	LegacyLayout = "02/01/2006"
)

var ErrInvalidDate = errors.New("invalid date")

// Normalize pins t to noon UTC of its calendar day so zone shifts never move the day.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Format renders the canonical stored form of a calendar date.
func Format(t time.Time) string {
	return Normalize(t).Format(ISOLayout)
}

// Parse reads any stored form and returns the normalized calendar date.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if strings.Contains(s, "/") {
		t, err := time.Parse(LegacyLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return Normalize(t), nil
	}

	if t, err := time.Parse(ISOLayout, s); err == nil {
		return Normalize(t), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Normalize(t), nil
}

// FormatTimestamp renders an instant (createdAt, completion time) as RFC 3339 UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp reads an instant written by FormatTimestamp. Bare dates in
// either calendar form are accepted and mapped to their normalized noon.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return Parse(s)
}
