package create_booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	"github.com/barbersched/BarberSched-BookingService/pkg/ptr"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

func validRequest() *Request {
	return &Request{
		ClientID:  100,
		BarberID:  1,
		ServiceID: 10,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		valid  bool
	}{
		{"valid", func(r *Request) {}, true},
		{"zero client", func(r *Request) { r.ClientID = 0 }, false},
		{"zero barber", func(r *Request) { r.BarberID = 0 }, false},
		{"zero service", func(r *Request) { r.ServiceID = 0 }, false},
		{"negative option", func(r *Request) { r.OptionID = ptr.Ptr(int64(-1)) }, false},
		{"zero date", func(r *Request) { r.Date = time.Time{} }, false},
		{"empty start time", func(r *Request) { r.StartTime = "" }, false},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }, false},
		{"notes too long", func(r *Request) {
			r.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1))
		}, false},
		{"notes at limit", func(r *Request) {
			r.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := validateRequest(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	// Сегодня можно, даже если день уже начался
	assert.NoError(t, validateDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.NoError(t, validateDate(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), now))

	assert.ErrorIs(t, validateDate(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), now), ErrInvalidDate)
}

func TestValidateSlotFitsSchedule(t *testing.T) {
	wh := &domain.WorkingHour{
		Weekday:   2,
		StartTime: "09:00",
		EndTime:   "18:00",
	}

	t.Run("aligned slot fits", func(t *testing.T) {
		assert.NoError(t, validateSlotFitsSchedule("10:00", 30, wh))
		assert.NoError(t, validateSlotFitsSchedule("17:30", 30, wh))
	})

	t.Run("off-grid start rejected", func(t *testing.T) {
		assert.ErrorIs(t, validateSlotFitsSchedule("10:15", 30, wh), ErrInvalidTimeSlot)
	})

	t.Run("before opening rejected", func(t *testing.T) {
		assert.ErrorIs(t, validateSlotFitsSchedule("08:30", 30, wh), ErrInvalidTimeSlot)
	})

	t.Run("overruns closing time", func(t *testing.T) {
		assert.ErrorIs(t, validateSlotFitsSchedule("17:30", 60, wh), ErrInvalidTimeSlot)
		// Впритык к закрытию допустимо
		assert.NoError(t, validateSlotFitsSchedule("17:00", 60, wh))
	})

	t.Run("grid offset follows shift start", func(t *testing.T) {
		shifted := &domain.WorkingHour{StartTime: "09:15", EndTime: "18:00"}
		assert.NoError(t, validateSlotFitsSchedule("10:15", 30, shifted))
		assert.ErrorIs(t, validateSlotFitsSchedule("10:00", 30, shifted), ErrInvalidTimeSlot)
	})

	t.Run("break conflict", func(t *testing.T) {
		withBreak := &domain.WorkingHour{
			StartTime: "09:00",
			EndTime:   "18:00",
			Breaks:    []domain.Break{{StartTime: "12:00", EndTime: "13:00"}},
		}
		assert.ErrorIs(t, validateSlotFitsSchedule("12:30", 30, withBreak), ErrSlotNotAvailable)
		// Слот, заканчивающийся ровно в начале перерыва
		assert.NoError(t, validateSlotFitsSchedule("11:30", 30, withBreak))
	})
}

func TestValidateAgainstExceptions(t *testing.T) {
	t.Run("full day blocked", func(t *testing.T) {
		exceptions := []*domain.ScheduleException{{Type: domain.ExceptionBlocked}}
		assert.ErrorIs(t, validateAgainstExceptions("10:00", 30, exceptions), ErrBarberClosed)
	})

	t.Run("partial window conflict", func(t *testing.T) {
		exceptions := []*domain.ScheduleException{{
			Type:      domain.ExceptionBlocked,
			StartTime: ptr.Ptr(types.TimeString("12:00")),
			EndTime:   ptr.Ptr(types.TimeString("13:00")),
		}}
		assert.ErrorIs(t, validateAgainstExceptions("12:30", 30, exceptions), ErrSlotNotAvailable)
		assert.NoError(t, validateAgainstExceptions("13:00", 30, exceptions))
	})

	t.Run("open-ended window blocks rest of day", func(t *testing.T) {
		exceptions := []*domain.ScheduleException{{
			Type:      domain.ExceptionBlocked,
			StartTime: ptr.Ptr(types.TimeString("15:00")),
		}}
		assert.ErrorIs(t, validateAgainstExceptions("17:00", 30, exceptions), ErrSlotNotAvailable)
		assert.NoError(t, validateAgainstExceptions("14:30", 30, exceptions))
	})

	t.Run("no exceptions", func(t *testing.T) {
		assert.NoError(t, validateAgainstExceptions("10:00", 30, nil))
	})
}

func TestCheckBookingConflicts(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusScheduled},
		{StartTime: "14:00", DurationMinutes: 30, Status: domain.StatusCancelled},
	}

	// Пересечение с активным бронированием (10:00-11:00)
	assert.ErrorIs(t, checkBookingConflicts("10:30", 30, bookings), ErrSlotNotAvailable)

	// Отмененное бронирование слот не занимает
	assert.NoError(t, checkBookingConflicts("14:00", 30, bookings))

	// Граничащий слот
	assert.NoError(t, checkBookingConflicts("11:00", 30, bookings))
}

func TestCheckHoldConflicts(t *testing.T) {
	holds := []*domain.Hold{
		{Token: "own-token", StartTime: "10:00", EndTime: "10:30"},
		{Token: "other-token", StartTime: "11:00", EndTime: "11:30"},
	}

	t.Run("foreign hold blocks", func(t *testing.T) {
		assert.ErrorIs(t, checkHoldConflicts("11:00", 30, holds, nil), ErrSlotNotAvailable)
	})

	t.Run("own hold token is exempt", func(t *testing.T) {
		token := "own-token"
		assert.NoError(t, checkHoldConflicts("10:00", 30, holds, &token))

		// Чужой hold по-прежнему конфликтует
		assert.ErrorIs(t, checkHoldConflicts("11:00", 30, holds, &token), ErrSlotNotAvailable)
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.NoError(t, checkHoldConflicts("12:00", 30, holds, nil))
	})
}
