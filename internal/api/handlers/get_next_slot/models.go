package get_next_slot

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	findNextSlot "github.com/barbersched/BarberSched-BookingService/internal/usecase/find_next_slot"
)

// NextSlotResponse HTTP response model. Поля слота присутствуют только
// когда found=true.
type NextSlotResponse struct {
	Found     bool     `json:"found"`
	Date      *string  `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string  `json:"startTime,omitempty"` // "10:00"
	EndTime   *string  `json:"endTime,omitempty"`   // "10:30"
	Price     *float64 `json:"price,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(barberID, serviceID int64, optionID *int64, fromStr string) (*findNextSlot.Request, error) {
	var from time.Time
	if fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		from = parsed
	}

	return &findNextSlot.Request{
		BarberID:  barberID,
		ServiceID: serviceID,
		OptionID:  optionID,
		FromDate:  from,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNextSlot.Response) *NextSlotResponse {
	if !resp.Found {
		return &NextSlotResponse{Found: false}
	}

	date := resp.Date.Format(domain.DateFormat)
	start := resp.StartTime.String()
	end := resp.EndTime.String()
	price := resp.Price

	return &NextSlotResponse{
		Found:     true,
		Date:      &date,
		StartTime: &start,
		EndTime:   &end,
		Price:     &price,
	}
}
