package domain

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// Hold is a short-lived soft-reservation of a time window, created when
// a client enters checkout. It occupies time only while ExpiresAt is in
// the future; expired holds are ignored by availability and purged by a
// background job.
type Hold struct {
	ID       int64
	Token    string // opaque token handed to the client for confirmation
	BarberID int64

	HoldDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString

	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the hold no longer occupies its window.
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
