package usecase

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaHours/internal/modules/hours/application/port"
)

// RegisterVenueUseCase da de alta el horario de un local recién creado.
// A new venue starts with every day closed until a feed or a manager edit
// arrives; registering is idempotent.
type RegisterVenueUseCase struct {
	repo port.ScheduleRepository
}

func NewRegisterVenueUseCase(repo port.ScheduleRepository) *RegisterVenueUseCase {
	return &RegisterVenueUseCase{repo: repo}
}

func (uc *RegisterVenueUseCase) Execute(ctx context.Context, venueID string) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, ErrMissingVenue
	}
	schedule, err := uc.repo.EnsureVenue(ctx, venueID)
	if err != nil {
		return port.VenueSchedule{}, err
	}
	slog.Info("venue schedule registered", slog.String("venueId", venueID))
	return schedule, nil
}
