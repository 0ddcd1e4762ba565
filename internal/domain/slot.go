package domain

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Slot is a transient fixed-width candidate booking window. It is never
// persisted and is recomputed on every availability query.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	Price     float64
}

// DayAvailability is the per-date availability report: the ordered slot
// grid for one calendar day plus an aggregate flag.
type DayAvailability struct {
	Date      time.Time
	Available bool
	Slots     []Slot
}

// HasAvailableSlot returns true if at least one slot in the day is
// available. DayAvailability.Available must always equal this value.
func (d *DayAvailability) HasAvailableSlot() bool {
	for i := range d.Slots {
		if d.Slots[i].Available {
			return true
		}
	}
	return false
}
