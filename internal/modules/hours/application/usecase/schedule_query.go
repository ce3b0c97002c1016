package usecase

import (
	"context"
	"errors"
	"time"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

var ErrInvalidWindow = errors.New("reservation window end must be after start")

// ScheduleQueryUseCase answers read questions about a venue's hours: the
// stored week, open status at an instant, the next opening, and whether a
// reservation window fits.
type ScheduleQueryUseCase struct {
	repo port.ScheduleRepository
	opts domain.StatusOptions
}

func NewScheduleQueryUseCase(repo port.ScheduleRepository, opts domain.StatusOptions) *ScheduleQueryUseCase {
	return &ScheduleQueryUseCase{repo: repo, opts: opts}
}

// Week returns the stored schedule, or port.ErrVenueNotFound for unknown venues.
func (uc *ScheduleQueryUseCase) Week(ctx context.Context, venueID string) (port.VenueSchedule, error) {
	return uc.repo.Get(ctx, venueID)
}

// OpenStatus evaluates whether the venue is open at the given instant. An
// unknown venue is not an error; it simply cannot be determined.
func (uc *ScheduleQueryUseCase) OpenStatus(ctx context.Context, venueID string, at time.Time) (domain.OpenStatus, error) {
	week, feed, err := uc.scheduleData(ctx, venueID)
	if err != nil {
		return domain.OpenStatus{}, err
	}
	return domain.EvaluateOpen(week, feed, at, uc.opts), nil
}

// NextOpening finds the first instant at or after the given one when the venue
// opens. found is false when the venue is already open or never opens.
func (uc *ScheduleQueryUseCase) NextOpening(ctx context.Context, venueID string, at time.Time) (time.Time, bool, error) {
	week, feed, err := uc.scheduleData(ctx, venueID)
	if err != nil {
		return time.Time{}, false, err
	}
	next, found := domain.NextOpening(week, feed, at)
	return next, found, nil
}

// CheckWindow reports whether a reservation window fits inside the venue's
// hours. Windows that do not run forward are rejected outright.
func (uc *ScheduleQueryUseCase) CheckWindow(ctx context.Context, venueID string, startAt, endAt time.Time) (domain.WindowCheck, error) {
	if startAt.IsZero() || endAt.IsZero() || !endAt.After(startAt) {
		return domain.WindowCheck{}, ErrInvalidWindow
	}
	week, feed, err := uc.scheduleData(ctx, venueID)
	if err != nil {
		return domain.WindowCheck{}, err
	}
	return domain.ValidateWindow(week, feed, startAt, endAt), nil
}

// scheduleData loads the stored week and feed, mapping an unknown venue to
// nil data so the evaluators can answer "cannot determine".
func (uc *ScheduleQueryUseCase) scheduleData(ctx context.Context, venueID string) (*domain.WeekSchedule, *domain.Feed, error) {
	schedule, err := uc.repo.Get(ctx, venueID)
	if errors.Is(err, port.ErrVenueNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	week := schedule.Week
	return &week, schedule.Feed, nil
}
