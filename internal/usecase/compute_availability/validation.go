package compute_availability

import (
	"fmt"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.OptionID != nil && *req.OptionID <= 0 {
		return fmt.Errorf("%w: optionID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: fromDate and toDate are required", ErrInvalidInput)
	}

	from := dateOnly(req.FromDate)
	to := dateOnly(req.ToDate)

	if to.Before(from) {
		return fmt.Errorf("%w: toDate is before fromDate", ErrInvalidRange)
	}

	if int(to.Sub(from).Hours()/24) > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxAvailabilityRangeDays)
	}

	return nil
}
