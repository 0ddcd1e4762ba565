package create_booking

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
	createBooking "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_booking"
	"github.com/barbersched/BarberSched-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BarberID    int64   `json:"barberId"`
	ServiceID   int64   `json:"serviceId"`
	OptionID    *int64  `json:"optionId,omitempty"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	HoldToken   *string `json:"holdToken,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	OptionID        *int64  `json:"optionId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  clientID,
		BarberID:  r.BarberID,
		ServiceID: r.ServiceID,
		OptionID:  r.OptionID,
		Date:      bookingDate,
		StartTime: startTime,
		HoldToken: r.HoldToken,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		BarberID:        resp.BarberID,
		ServiceID:       resp.ServiceID,
		OptionID:        resp.OptionID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Price:           resp.Price,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
