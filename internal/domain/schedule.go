package domain

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// WorkingHour represents the recurring weekly availability window of a
// barber for one weekday (0 = Sunday .. 6 = Saturday). A barber has at
// most one record per weekday; absence of a record means the barber
// does not work that day.
type WorkingHour struct {
	ID        int64
	BarberID  int64
	Weekday   int
	StartTime types.TimeString
	EndTime   types.TimeString
	Breaks    []Break

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Break is a recurring exclusion window nested inside a working hour,
// e.g. lunch. It repeats every week on the parent weekday.
type Break struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ExceptionType classifies a schedule exception.
type ExceptionType string

const (
	// ExceptionBlocked marks time as not bookable (vacation, holiday).
	ExceptionBlocked ExceptionType = "blocked"
)

// ScheduleException is a one-off override for a specific calendar date.
// With no start time it covers the whole day regardless of working
// hours; with a start/end time it covers only that window.
type ScheduleException struct {
	ID        int64
	BarberID  int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Type      ExceptionType

	CreatedAt time.Time
}

// IsFullDay returns true when the exception has no start time and
// therefore covers the entire date.
func (e *ScheduleException) IsFullDay() bool {
	return e.StartTime == nil
}

// BlocksWholeDay returns true when the exception blocks the entire
// date regardless of working hours.
func (e *ScheduleException) BlocksWholeDay() bool {
	return e.Type == ExceptionBlocked && e.IsFullDay()
}
