package models

import (
	"time"

	"github.com/barbersched/BarberSched-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	UserID   int64 `json:"userId"`
	ClientID int64 `json:"clientId"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	BarberID        int64   `json:"barberId"`
	ServiceID       int64   `json:"serviceId"`
	OptionID        *int64  `json:"optionId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		BarberID:           b.BarberID,
		ServiceID:          b.ServiceID,
		OptionID:           b.OptionID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Price:              b.Price,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			result.Bookings = append(result.Bookings, *dto)
		}
	}

	return result
}
