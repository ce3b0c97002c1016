package port

import (
	"context"
	"errors"
	"time"

	"mesaYaHours/internal/modules/hours/domain"
)

var (
	// ErrVenueNotFound indica que no hay horario almacenado para el local.
	ErrVenueNotFound = errors.New("venue schedule not found")
)

// VenueSchedule is the stored hours record for one venue: the canonical week
// plus the latest provider feed, kept for fallback evaluation.
type VenueSchedule struct {
	VenueID   string              `json:"venueId"`
	Week      domain.WeekSchedule `json:"days"`
	Feed      *domain.Feed        `json:"-"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// ScheduleRepository stores venue schedules. Mutations are atomic per venue:
// ApplyFeed stores the feed and, when it carries a period list, folds it into
// the canonical week under the repository's own lock.
type ScheduleRepository interface {
	Get(ctx context.Context, venueID string) (VenueSchedule, error)
	List(ctx context.Context) ([]VenueSchedule, error)
	EnsureVenue(ctx context.Context, venueID string) (VenueSchedule, error)
	ApplyFeed(ctx context.Context, venueID string, feed domain.Feed) (VenueSchedule, error)
	SetDay(ctx context.Context, venueID string, day domain.DayHours) (VenueSchedule, error)
}
