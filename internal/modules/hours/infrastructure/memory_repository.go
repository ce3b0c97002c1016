package infrastructure

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

// MemoryScheduleRepository keeps venue schedules in process memory. The feed
// stream is the system of record; state is rebuilt from it after a restart,
// so nothing here touches disk.
type MemoryScheduleRepository struct {
	mu      sync.RWMutex
	records map[string]*scheduleRecord
	now     func() time.Time
}

type scheduleRecord struct {
	week      domain.WeekSchedule
	feed      *domain.Feed
	updatedAt time.Time
}

func NewMemoryScheduleRepository() *MemoryScheduleRepository {
	return &MemoryScheduleRepository{
		records: make(map[string]*scheduleRecord),
		now:     time.Now,
	}
}

func (r *MemoryScheduleRepository) Get(_ context.Context, venueID string) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[venueID]
	if !ok {
		return port.VenueSchedule{}, port.ErrVenueNotFound
	}
	return rec.snapshot(venueID), nil
}

func (r *MemoryScheduleRepository) List(_ context.Context) ([]port.VenueSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]port.VenueSchedule, 0, len(r.records))
	for venueID, rec := range r.records {
		out = append(out, rec.snapshot(venueID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VenueID < out[j].VenueID })
	return out, nil
}

func (r *MemoryScheduleRepository) EnsureVenue(_ context.Context, venueID string) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, port.ErrVenueNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.ensureLocked(venueID)
	return rec.snapshot(venueID), nil
}

// ApplyFeed stores the feed and folds its periods into the canonical week in
// one critical section, so concurrent snapshots for the same venue cannot
// interleave between read and write.
func (r *MemoryScheduleRepository) ApplyFeed(_ context.Context, venueID string, feed domain.Feed) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, port.ErrVenueNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.ensureLocked(venueID)
	rec.week = domain.ReconcileFeed(rec.week, feed)
	rec.feed = &feed
	rec.updatedAt = r.now()
	return rec.snapshot(venueID), nil
}

func (r *MemoryScheduleRepository) SetDay(_ context.Context, venueID string, day domain.DayHours) (port.VenueSchedule, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return port.VenueSchedule{}, port.ErrVenueNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.ensureLocked(venueID)
	rec.week[day.Day] = day
	rec.updatedAt = r.now()
	return rec.snapshot(venueID), nil
}

func (r *MemoryScheduleRepository) ensureLocked(venueID string) *scheduleRecord {
	rec, ok := r.records[venueID]
	if !ok {
		rec = &scheduleRecord{week: domain.NewClosedWeek(), updatedAt: r.now()}
		r.records[venueID] = rec
	}
	return rec
}

// snapshot copies the record so callers never share mutable state with the
// repository. Feed slices are treated as read-only by every consumer.
func (rec *scheduleRecord) snapshot(venueID string) port.VenueSchedule {
	out := port.VenueSchedule{
		VenueID:   venueID,
		Week:      rec.week,
		UpdatedAt: rec.updatedAt,
	}
	if rec.feed != nil {
		feedCopy := *rec.feed
		out.Feed = &feedCopy
	}
	return out
}

var _ port.ScheduleRepository = (*MemoryScheduleRepository)(nil)
