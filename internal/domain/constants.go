package domain

// Slot and search defaults
const (
	// SlotDurationMinutes is the fixed width of the candidate slot grid.
	// The grid step never changes with the selected option; option
	// duration affects only occupancy and overrun checks.
	SlotDurationMinutes = 30

	// DefaultOptionDurationMinutes is assumed when a booking has no
	// linked option or no option is selected for an availability query.
	DefaultOptionDurationMinutes = 30

	// NextSlotSearchHorizonDays ограничивает поиск ближайшего
	// свободного слота
	NextSlotSearchHorizonDays = 60

	// MaxAvailabilityRangeDays ограничивает длину запрашиваемого
	// диапазона дат в одном запросе
	MaxAvailabilityRangeDays = 92
)

// Business validation constants
const (
	MinWeekday = 0 // Sunday
	MaxWeekday = 6 // Saturday

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Hold defaults
const (
	DefaultHoldTTLMinutes = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
