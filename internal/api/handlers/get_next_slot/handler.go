package get_next_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	findNextSlot "github.com/barbersched/BarberSched-BookingService/internal/usecase/find_next_slot"
)

const (
	msgInvalidBarberID  = "некорректный ID барбера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidOptionID  = "некорректный ID опции"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgOptionNotFound   = "опция услуги не найдена"
)

type Handler struct {
	useCase FindNextSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindNextSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/next-slot
// Query params: serviceId (required), optionId (optional), from (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/next-slot - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /barbers/{id}/next-slot - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/next-slot - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var optionID *int64
	if optionIDStr := r.URL.Query().Get("optionId"); optionIDStr != "" {
		id, err := strconv.ParseInt(optionIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/next-slot - Invalid option ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOptionID)
			return
		}
		optionID = &id
	}

	useCaseReq, err := ToUseCaseRequest(barberID, serviceID, optionID, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/next-slot - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findNextSlot.ErrServiceNotFound):
			h.logger.Warn("GET /barbers/{id}/next-slot - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, findNextSlot.ErrOptionNotFound):
			h.logger.Warn("GET /barbers/{id}/next-slot - Option not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, findNextSlot.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/next-slot - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidBarberID)

		default:
			h.logger.Error("GET /barbers/{id}/next-slot - Failed to find next slot: barber_id=%d, service_id=%d, error=%v",
				barberID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /barbers/{id}/next-slot - Search finished: barber_id=%d, service_id=%d, found=%v",
		barberID, serviceID, result.Found)
	handlers.RespondJSON(w, http.StatusOK, response)
}
