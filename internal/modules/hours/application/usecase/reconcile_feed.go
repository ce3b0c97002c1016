package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

var (
	ErrMissingVenue = errors.New("missing venue id")
	ErrInvalidFeed  = errors.New("hours feed payload is not usable")
)

// ReconcileFeedUseCase folds provider hours snapshots into stored weeks.
type ReconcileFeedUseCase struct {
	repo port.ScheduleRepository
}

func NewReconcileFeedUseCase(repo port.ScheduleRepository) *ReconcileFeedUseCase {
	return &ReconcileFeedUseCase{repo: repo}
}

// Execute normalizes a raw provider payload and applies it to the venue's
// stored schedule. Rows a manager set by hand are never overwritten.
func (uc *ReconcileFeedUseCase) Execute(ctx context.Context, venueID string, payload any) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, ErrMissingVenue
	}

	feed, ok := domain.NormalizeFeed(payload)
	if !ok {
		return port.VenueSchedule{}, ErrInvalidFeed
	}

	schedule, err := uc.repo.ApplyFeed(ctx, venueID, feed)
	if err != nil {
		return port.VenueSchedule{}, err
	}
	slog.Info("hours feed reconciled",
		slog.String("venueId", venueID),
		slog.Int("periods", len(feed.Periods)),
		slog.Bool("proseOnly", feed.Periods == nil),
	)
	return schedule, nil
}
