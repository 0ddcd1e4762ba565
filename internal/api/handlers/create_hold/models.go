package create_hold

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	createHold "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_hold"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	BarberID  int64  `json:"barberId"`
	ServiceID int64  `json:"serviceId"`
	OptionID  *int64 `json:"optionId,omitempty"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// HoldResponse HTTP response model
type HoldResponse struct {
	Token     string `json:"token"`
	BarberID  int64  `json:"barberId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ExpiresAt string `json:"expiresAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest() (*createHold.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		BarberID:  r.BarberID,
		ServiceID: r.ServiceID,
		OptionID:  r.OptionID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		Token:     resp.Token,
		BarberID:  resp.BarberID,
		Date:      resp.HoldDate.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
	}
}
