package get_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/service/schedule"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
)

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

// Handle GET /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/schedule - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.service.GetBarberSchedule(r.Context(), barberID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/schedule - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)

		default:
			h.logger.Error("GET /barbers/{id}/schedule - Failed to get schedule: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/schedule - Schedule retrieved successfully: barber_id=%d, working_hours=%d",
		barberID, len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
