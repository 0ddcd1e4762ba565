package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	computeAvailability "github.com/barbersched/BarberSched-BookingService/internal/usecase/compute_availability"
)

const (
	msgInvalidBarberID  = "некорректный ID барбера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidOptionID  = "некорректный ID опции"
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат"
	msgServiceNotFound  = "услуга не найдена"
	msgOptionNotFound   = "опция услуги не найдена"
)

type Handler struct {
	useCase ComputeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComputeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/availability
// Query params: serviceId (required), optionId (optional), from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /barbers/{id}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var optionID *int64
	if optionIDStr := r.URL.Query().Get("optionId"); optionIDStr != "" {
		id, err := strconv.ParseInt(optionIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/availability - Invalid option ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOptionID)
			return
		}
		optionID = &id
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /barbers/{id}/availability - Missing date range")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	useCaseReq, err := ToUseCaseRequest(barberID, serviceID, optionID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /barbers/{id}/availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, computeAvailability.ErrOptionNotFound):
			h.logger.Warn("GET /barbers/{id}/availability - Option not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, computeAvailability.ErrInvalidRange):
			h.logger.Warn("GET /barbers/{id}/availability - Invalid range: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, computeAvailability.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/availability - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /barbers/{id}/availability - Failed to compute availability: barber_id=%d, service_id=%d, error=%v",
				barberID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /barbers/{id}/availability - Report built successfully: barber_id=%d, service_id=%d, days=%d",
		barberID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
