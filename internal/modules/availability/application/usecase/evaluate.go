package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mesaYaHours/internal/modules/availability/application/port"
	"mesaYaHours/internal/modules/availability/domain"
	hoursport "mesaYaHours/internal/modules/hours/application/port"
	hours "mesaYaHours/internal/modules/hours/domain"
)

var ErrMissingVenue = errors.New("missing venue id")

// Assessment is the availability verdict for one venue at one instant,
// flattened for transport.
type Assessment struct {
	VenueID      string     `json:"venueId"`
	Label        string     `json:"label"`
	IsOpen       bool       `json:"isOpen"`
	CanDetermine bool       `json:"canDetermine"`
	Capacity     int        `json:"capacity"`
	NextOpen     *time.Time `json:"nextOpen,omitempty"`
	SlotStart    *time.Time `json:"slotStart,omitempty"`
	EvaluatedAt  time.Time  `json:"evaluatedAt"`
}

// EvaluateVenueUseCase assembles everything the label engine needs for one
// venue: stored hours, seat capacity from inventory, and the live reservation
// mirror, then runs the evaluation.
type EvaluateVenueUseCase struct {
	schedules    hoursport.ScheduleRepository
	capacity     port.CapacitySource
	reservations port.ReservationSource
	cache        *ReservationCache
	statusOpts   hours.StatusOptions
}

func NewEvaluateVenueUseCase(
	schedules hoursport.ScheduleRepository,
	capacity port.CapacitySource,
	reservations port.ReservationSource,
	cache *ReservationCache,
	statusOpts hours.StatusOptions,
) *EvaluateVenueUseCase {
	return &EvaluateVenueUseCase{
		schedules:    schedules,
		capacity:     capacity,
		reservations: reservations,
		cache:        cache,
		statusOpts:   statusOpts,
	}
}

// Execute evaluates venue availability at the given instant.
func (uc *EvaluateVenueUseCase) Execute(ctx context.Context, venueID string, at time.Time) (Assessment, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return Assessment{}, ErrMissingVenue
	}

	var week *hours.WeekSchedule
	var feed *hours.Feed
	schedule, err := uc.schedules.Get(ctx, venueID)
	switch {
	case err == nil:
		weekCopy := schedule.Week
		week = &weekCopy
		feed = schedule.Feed
	case errors.Is(err, hoursport.ErrVenueNotFound):
		// No stored hours; the engine falls back to the reservation search.
	default:
		return Assessment{}, err
	}

	capacity, err := uc.capacity.Capacity(ctx, venueID)
	if err != nil {
		return Assessment{}, fmt.Errorf("venue %s capacity: %w", venueID, err)
	}

	result := domain.Evaluate(domain.Inputs{
		Capacity:     capacity,
		Reservations: uc.activeIntervals(ctx, venueID),
		Week:         week,
		Feed:         feed,
		Status:       uc.statusOpts,
	}, at)

	return Assessment{
		VenueID:      venueID,
		Label:        result.Label,
		IsOpen:       result.Status.Open,
		CanDetermine: result.Status.Determinable,
		Capacity:     capacity,
		NextOpen:     result.NextOpen,
		SlotStart:    result.SlotStart,
		EvaluatedAt:  at,
	}, nil
}

// activeIntervals serves the cached mirror, priming it from inventory the
// first time a venue is asked about. A failed fetch degrades to "no bookings"
// instead of failing the evaluation.
func (uc *EvaluateVenueUseCase) activeIntervals(ctx context.Context, venueID string) []domain.ReservationInterval {
	if intervals, known := uc.cache.Snapshot(venueID); known {
		return intervals
	}
	if uc.reservations == nil {
		return nil
	}
	fetched, err := uc.reservations.ActiveReservations(ctx, venueID)
	if err != nil {
		slog.Warn("active reservations fetch failed", slog.String("venueId", venueID), slog.Any("error", err))
		return nil
	}
	uc.cache.Prime(venueID, fetched)
	intervals, _ := uc.cache.Snapshot(venueID)
	return intervals
}
