package port

import (
	"context"
	"errors"

	"mesaYaHours/internal/modules/availability/domain"
)

var (
	// ErrInventoryForbidden indica que el servicio de inventario rechazó las credenciales.
	ErrInventoryForbidden = errors.New("inventory access forbidden")
	// ErrInventoryNotFound indica que el inventario no conoce el local.
	ErrInventoryNotFound = errors.New("venue not found in inventory")
	// ErrInventoryUnavailable marca fallas de red o upstream del inventario.
	ErrInventoryUnavailable = errors.New("inventory service unavailable")
)

// CapacitySource resolves a venue's total seat capacity.
type CapacitySource interface {
	Capacity(ctx context.Context, venueID string) (int, error)
}

// ActiveReservation pairs a booking id with its seat interval.
type ActiveReservation struct {
	ID       string
	Interval domain.ReservationInterval
}

// ReservationSource lists the bookings currently holding seats at a venue.
type ReservationSource interface {
	ActiveReservations(ctx context.Context, venueID string) ([]ActiveReservation, error)
}
