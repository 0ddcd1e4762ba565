package domain

import (
	"strings"
	"time"

	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking.
// Values are free-form strings inherited from the legacy platform data,
// which mixes Portuguese and English spellings.
type BookingStatus string

const (
	StatusScheduled       BookingStatus = "agendado"
	StatusAwaitingPayment BookingStatus = "aguardando pagamento"
	StatusCompleted       BookingStatus = "concluido"
	StatusCancelled       BookingStatus = "cancelado"
)

// CancelledStatusVariants lists every spelling that marks a booking as
// cancelled in the legacy data. Matching is case-insensitive; any other
// status (including pending payment) keeps the time slot occupied.
var CancelledStatusVariants = []string{
	"cancelada",
	"cancelado",
	"cancelled",
}

// Booking represents a client booking with one barber.
type Booking struct {
	ID        int64
	ClientID  int64
	BarberID  int64
	ServiceID int64
	OptionID  *int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Price           float64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking status is one of the
// recognized cancelled variants, compared case-insensitively.
func (b *Booking) IsCancelled() bool {
	for _, variant := range CancelledStatusVariants {
		if strings.EqualFold(string(b.Status), variant) {
			return true
		}
	}
	return false
}

// OccupiesSlot returns true if the booking blocks its time window.
// Every non-cancelled booking occupies time, pending payment included.
func (b *Booking) OccupiesSlot() bool {
	return !b.IsCancelled()
}

// CanBeCancelled returns true if the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return !b.IsCancelled() && b.Status != StatusCompleted
}

// BarberBookingsFilter фильтр для выборки бронирований барбера
type BarberBookingsFilter struct {
	BarberID  int64      // Обязательный параметр
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
	// IncludeCancelled включает отмененные бронирования в выборку.
	// Для расчета доступности всегда false.
	IncludeCancelled bool
}
