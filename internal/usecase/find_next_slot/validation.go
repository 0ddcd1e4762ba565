package find_next_slot

import "fmt"

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

	return nil
}
