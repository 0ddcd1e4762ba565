package get_availability

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	computeAvailability "github.com/barbersched/BarberSched-BookingService/internal/usecase/compute_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BarberID  int64  `json:"barberId"`
	ServiceID int64  `json:"serviceId"`
	OptionID  *int64 `json:"optionId,omitempty"`
	Days      []Day  `json:"days"`
}

// Day доступность одного дня
type Day struct {
	Date      string `json:"date"` // "2025-10-15"
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots"`
}

// Slot один слот сетки
type Slot struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "10:30"
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(barberID, serviceID int64, optionID *int64, fromStr, toStr string) (*computeAvailability.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &computeAvailability.Request{
		BarberID:  barberID,
		ServiceID: serviceID,
		OptionID:  optionID,
		FromDate:  from,
		ToDate:    to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *computeAvailability.Response) *AvailabilityResponse {
	days := make([]Day, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]Slot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = Slot{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				Available: slot.Available,
				Price:     slot.Price,
			}
		}
		days[i] = Day{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
			Slots:     slots,
		}
	}

	return &AvailabilityResponse{
		BarberID:  resp.BarberID,
		ServiceID: resp.ServiceID,
		OptionID:  resp.OptionID,
		Days:      days,
	}
}
