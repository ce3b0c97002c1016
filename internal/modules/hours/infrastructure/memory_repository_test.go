package infrastructure

import (
	"context"
	"errors"
	"testing"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
)

func TestMemoryRepositoryGetUnknownVenue(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	_, err := repo.Get(context.Background(), "venue-404")
	if !errors.Is(err, port.ErrVenueNotFound) {
		t.Fatalf("Get() error = %v, want ErrVenueNotFound", err)
	}
}

func TestMemoryRepositoryEnsureVenueStartsClosed(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	schedule, err := repo.EnsureVenue(context.Background(), " venue-1 ")
	if err != nil {
		t.Fatalf("EnsureVenue() error = %v", err)
	}
	if schedule.VenueID != "venue-1" {
		t.Errorf("VenueID = %q, want venue-1", schedule.VenueID)
	}
	for day, row := range schedule.Week {
		if !row.Closed {
			t.Fatalf("day %d should start closed: %+v", day, row)
		}
	}
	if schedule.Feed != nil {
		t.Error("a fresh venue should have no feed")
	}
}

func TestMemoryRepositoryApplyFeedFoldsWeek(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	ctx := context.Background()

	feed := domain.Feed{Periods: []domain.Period{
		{Open: domain.PeriodPoint{Day: 1, Hour: 9}, Close: &domain.PeriodPoint{Day: 1, Hour: 17}},
	}}
	schedule, err := repo.ApplyFeed(ctx, "venue-1", feed)
	if err != nil {
		t.Fatalf("ApplyFeed() error = %v", err)
	}
	if schedule.Week[1].Open != "09:00" || schedule.Week[1].Close != "17:00" {
		t.Fatalf("Monday row = %+v", schedule.Week[1])
	}
	if schedule.Feed == nil || len(schedule.Feed.Periods) != 1 {
		t.Fatalf("stored feed = %+v", schedule.Feed)
	}
	if schedule.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped")
	}
}

func TestMemoryRepositorySetDaySurvivesFeed(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	ctx := context.Background()

	manual := domain.DayHours{Day: 6, Open: "10:00", Close: "14:00", Source: domain.SourceManual}
	if _, err := repo.SetDay(ctx, "venue-1", manual); err != nil {
		t.Fatalf("SetDay() error = %v", err)
	}

	feed := domain.Feed{Periods: []domain.Period{
		{Open: domain.PeriodPoint{Day: 6, Hour: 8}, Close: &domain.PeriodPoint{Day: 6, Hour: 20}},
	}}
	schedule, err := repo.ApplyFeed(ctx, "venue-1", feed)
	if err != nil {
		t.Fatalf("ApplyFeed() error = %v", err)
	}
	if schedule.Week[6] != manual {
		t.Fatalf("manual Saturday should survive the feed: %+v", schedule.Week[6])
	}
}

func TestMemoryRepositoryListSortsByVenue(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	ctx := context.Background()
	for _, id := range []string{"venue-c", "venue-a", "venue-b"} {
		if _, err := repo.EnsureVenue(ctx, id); err != nil {
			t.Fatalf("EnsureVenue(%s) error = %v", id, err)
		}
	}

	schedules, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(schedules) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(schedules))
	}
	for i, want := range []string{"venue-a", "venue-b", "venue-c"} {
		if schedules[i].VenueID != want {
			t.Errorf("List()[%d] = %q, want %q", i, schedules[i].VenueID, want)
		}
	}
}

func TestMemoryRepositorySnapshotIsDetached(t *testing.T) {
	repo := NewMemoryScheduleRepository()
	ctx := context.Background()

	first, _ := repo.EnsureVenue(ctx, "venue-1")
	first.Week[0] = domain.DayHours{Day: 0, Open: "01:00", Close: "02:00"}

	second, err := repo.Get(ctx, "venue-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !second.Week[0].Closed {
		t.Fatalf("mutating a snapshot must not leak into the store: %+v", second.Week[0])
	}
}
