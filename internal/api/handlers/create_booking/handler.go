package create_booking

import (
	"errors"
	"net/http"

	"github.com/barbersched/BarberSched-BookingService/internal/api/handlers"
	"github.com/barbersched/BarberSched-BookingService/internal/api/middleware"
	createBooking "github.com/barbersched/BarberSched-BookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgOptionNotFound     = "опция услуги не найдена"
	msgServiceNotOffered  = "барбер не оказывает эту услугу"
	msgBarberClosed       = "барбер не работает в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInvalidTimeSlot    = "некорректный временной слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: client_id=%d, barber_id=%d", clientID, req.BarberID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrOptionNotFound):
			h.logger.Warn("POST /bookings - Option not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgOptionNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings - Service not offered: barber_id=%d, service_id=%d", req.BarberID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrBarberClosed):
			h.logger.Warn("POST /bookings - Barber closed: barber_id=%d, date=%s", req.BarberID, req.BookingDate)
			handlers.RespondBadRequest(w, msgBarberClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, date=%s", clientID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, barber_id=%d, error=%v",
				clientID, req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: id=%d, client_id=%d, barber_id=%d",
		result.ID, clientID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
