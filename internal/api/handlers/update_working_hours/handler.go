package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/api/middleware"
	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule"
	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule/models"
)

const (
	msgUnauthorized        = "требуется авторизация"
	msgInvalidBarberID     = "некорректный ID барбера"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgAccessDenied        = "доступ запрещен"
	msgInvalidWorkingHours = "некорректное недельное расписание"
)

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	WorkingHours []models.WorkingHourItem `json:"workingHours"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /barbers/{id}/working-hours - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.ReplaceWorkingHoursRequest{
		UserID:       userID,
		BarberID:     barberID,
		WorkingHours: req.WorkingHours,
	}

	result, err := h.service.ReplaceWorkingHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /barbers/{id}/working-hours - Access denied: barber_id=%d, user_id=%d", barberID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid working hours: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/working-hours - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)

		default:
			h.logger.Error("PUT /barbers/{id}/working-hours - Failed to replace schedule: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/working-hours - Schedule replaced successfully: barber_id=%d, records=%d",
		barberID, len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
