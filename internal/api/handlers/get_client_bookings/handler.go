package get_client_bookings

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
	msgUnauthorized    = "требуется авторизация"
	msgInvalidClientID = "некорректный ID клиента"
	msgAccessDenied    = "доступ запрещен"
)

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

// Handle GET /api/v1/clients/{clientId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/bookings - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	req := &models.GetClientBookingsRequest{
		UserID:   userID,
		ClientID: clientID,
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /clients/{id}/bookings - Access denied: client_id=%d, user_id=%d", clientID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("GET /clients/{id}/bookings - Failed to get bookings: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
