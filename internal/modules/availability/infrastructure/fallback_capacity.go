package infrastructure

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaHours/internal/modules/availability/application/port"
)

// FallbackCapacity asks the primary source first and falls back to seeded
// values when it cannot answer, so local runs work without the inventory
// service.
type FallbackCapacity struct {
	primary port.CapacitySource
	seeded  map[string]int
}

func NewFallbackCapacity(primary port.CapacitySource, seeded map[string]int) *FallbackCapacity {
	return &FallbackCapacity{primary: primary, seeded: seeded}
}

func (f *FallbackCapacity) Capacity(ctx context.Context, venueID string) (int, error) {
	venueID = strings.TrimSpace(venueID)
	if f.primary != nil {
		capacity, err := f.primary.Capacity(ctx, venueID)
		if err == nil {
			return capacity, nil
		}
		if seats, ok := f.seeded[venueID]; ok {
			slog.Warn("inventory capacity unavailable, using seed",
				slog.String("venueId", venueID),
				slog.Int("capacity", seats),
				slog.Any("error", err),
			)
			return seats, nil
		}
		return 0, err
	}
	if seats, ok := f.seeded[venueID]; ok {
		return seats, nil
	}
	return 0, port.ErrInventoryNotFound
}

var _ port.CapacitySource = (*FallbackCapacity)(nil)
