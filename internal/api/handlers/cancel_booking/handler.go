package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/api/middleware"
	"github.com/barbersched/BarberSched-BookingService/internal/service/bookings"
	"github.com/barbersched/BarberSched-BookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен"
	msgCannotCancel       = "бронирование нельзя отменить"
)

// CancelRequest HTTP request model
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: req.CancellationReason,
	}

	if err := h.service.Cancel(r.Context(), bookingID, serviceReq); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
