package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

var ErrInvalidDay = errors.New("invalid hours row")

// DayEditInput is a manager's manual edit for one day of the week.
type DayEditInput struct {
	Day    int    `json:"dayOfWeek"`
	Closed bool   `json:"isClosed"`
	Open   string `json:"openTime"`
	Close  string `json:"closeTime"`
}

// EditDayUseCase applies manual schedule edits. An edited row is stamped as
// manual so later feed reconciliations leave it alone.
type EditDayUseCase struct {
	repo port.ScheduleRepository
}

func NewEditDayUseCase(repo port.ScheduleRepository) *EditDayUseCase {
	return &EditDayUseCase{repo: repo}
}

func (uc *EditDayUseCase) Execute(ctx context.Context, venueID string, input DayEditInput) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, ErrMissingVenue
	}

	row := domain.DayHours{
		Day:    input.Day,
		Closed: input.Closed,
		Source: domain.SourceManual,
	}
	if !input.Closed {
		row.Open = strings.TrimSpace(input.Open)
		row.Close = strings.TrimSpace(input.Close)
	}
	if err := row.Validate(); err != nil {
		return port.VenueSchedule{}, fmt.Errorf("%w: %v", ErrInvalidDay, err)
	}

	schedule, err := uc.repo.SetDay(ctx, venueID, row)
	if err != nil {
		return port.VenueSchedule{}, err
	}
	slog.Info("hours row edited",
		slog.String("venueId", venueID),
		slog.Int("dayOfWeek", row.Day),
		slog.Bool("closed", row.Closed),
	)
	return schedule, nil
}
