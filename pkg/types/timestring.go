package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString represents a time of day in "HH:MM" format.
// It is the canonical representation for slot boundaries, working hours
// and booking start times across the service and the database.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
// Returns an error if the value does not fit into a single day.
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("types: minutes %d out of day range", m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("types: invalid time %q: expected HH:MM", string(t))
	}
	return nil
}

// IsZero returns true when the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the raw "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("types: invalid time %q: expected HH:MM", string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by m minutes.
// Returns an error if the result would leave the current day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(base + m)
}

// IsBefore reports whether t is strictly earlier than other.
// Zero-padded "HH:MM" strings order lexicographically, so a plain
// string comparison is exact.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as
// time.Time (lib/pq) or as raw text.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns come back as "HH:MM:SS"; keep only hours and minutes.
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
