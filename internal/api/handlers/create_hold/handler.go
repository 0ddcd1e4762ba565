package create_hold

import (
	"errors"
	"net/http"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/api/middleware"
	createHold "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_hold"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgOptionNotFound     = "опция услуги не найдена"
	msgServiceNotOffered  = "барбер не оказывает эту услугу"
	msgBarberClosed       = "барбер не работает в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("POST /holds - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /holds - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotNotAvailable):
			h.logger.Warn("POST /holds - Slot not available: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /holds - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrOptionNotFound):
			h.logger.Warn("POST /holds - Option not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, createHold.ErrServiceNotOffered):
			h.logger.Warn("POST /holds - Service not offered: barber_id=%d, service_id=%d", req.BarberID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createHold.ErrBarberClosed):
			h.logger.Warn("POST /holds - Barber closed: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondBadRequest(w, msgBarberClosed)

		case errors.Is(err, createHold.ErrInvalidDate), errors.Is(err, createHold.ErrInvalidTimeSlot):
			h.logger.Warn("POST /holds - Invalid slot: barber_id=%d, date=%s, time=%s", req.BarberID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /holds - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /holds - Failed to create hold: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /holds - Hold created successfully: barber_id=%d, token=%s", req.BarberID, result.Token)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
