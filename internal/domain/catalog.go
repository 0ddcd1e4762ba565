package domain

import "time"

// Service is a bookable service of the barbershop (e.g. haircut).
type Service struct {
	ID        int64
	Name      string
	BasePrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceOption is a variant of a service carrying its own duration and
// price adjustment (e.g. "haircut + beard", 60 minutes, +30.00).
type ServiceOption struct {
	ID              int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	PriceAdjustment float64
}

// BarberService links a barber to a service they offer. An explicitly
// inactive link means the barber does not take bookings for the service;
// availability queries then return an all-empty report, not an error.
type BarberService struct {
	BarberID  int64
	ServiceID int64
	Active    bool
	// Price overrides Service.BasePrice for this barber when set.
	Price *float64
}

// EffectiveBasePrice returns the barber-specific price when set,
// otherwise the service base price.
func (bs *BarberService) EffectiveBasePrice(service *Service) float64 {
	if bs.Price != nil {
		return *bs.Price
	}
	return service.BasePrice
}
