package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mesaYaHours/internal/modules/hours/application/port"
	"mesaYaHours/internal/modules/hours/domain"
	"mesaYaHours/internal/modules/hours/infrastructure"
)

// weekdayAt returns an instant on the week of Sunday 2024-03-10.
func weekdayAt(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, 10+day, hour, minute, 0, 0, time.UTC)
}

func seededRepo(t *testing.T) *infrastructure.MemoryScheduleRepository {
	t.Helper()
	repo := infrastructure.NewMemoryScheduleRepository()
	feed := domain.Feed{Periods: []domain.Period{
		{Open: domain.PeriodPoint{Day: 1, Hour: 9}, Close: &domain.PeriodPoint{Day: 1, Hour: 17}},
	}}
	if _, err := repo.ApplyFeed(context.Background(), "venue-1", feed); err != nil {
		t.Fatalf("ApplyFeed() error = %v", err)
	}
	return repo
}

func TestScheduleQueryOpenStatus(t *testing.T) {
	uc := NewScheduleQueryUseCase(seededRepo(t), domain.DefaultStatusOptions())

	status, err := uc.OpenStatus(context.Background(), "venue-1", weekdayAt(1, 12, 0))
	if err != nil {
		t.Fatalf("OpenStatus() error = %v", err)
	}
	if !status.Open || !status.Determinable {
		t.Fatalf("status = %+v, want open and determinable", status)
	}

	status, err = uc.OpenStatus(context.Background(), "venue-404", weekdayAt(1, 12, 0))
	if err != nil {
		t.Fatalf("OpenStatus() unknown venue error = %v", err)
	}
	if status.Open || status.Determinable {
		t.Fatalf("unknown venue status = %+v, want indeterminate", status)
	}
}

func TestScheduleQueryFeedOverridesManualClosed(t *testing.T) {
	repo := seededRepo(t)
	closed := domain.DayHours{Day: 1, Closed: true, Source: domain.SourceManual}
	if _, err := repo.SetDay(context.Background(), "venue-1", closed); err != nil {
		t.Fatalf("SetDay() error = %v", err)
	}

	at := weekdayAt(1, 12, 0)

	overriding := NewScheduleQueryUseCase(repo, domain.StatusOptions{FeedOverride: true})
	status, err := overriding.OpenStatus(context.Background(), "venue-1", at)
	if err != nil {
		t.Fatalf("OpenStatus() error = %v", err)
	}
	if !status.Open {
		t.Fatalf("feed override should report open, got %+v", status)
	}

	strict := NewScheduleQueryUseCase(repo, domain.StatusOptions{FeedOverride: false})
	status, err = strict.OpenStatus(context.Background(), "venue-1", at)
	if err != nil {
		t.Fatalf("OpenStatus() error = %v", err)
	}
	if status.Open || !status.Determinable {
		t.Fatalf("strict evaluation should trust the closed row, got %+v", status)
	}
}

func TestScheduleQueryNextOpening(t *testing.T) {
	uc := NewScheduleQueryUseCase(seededRepo(t), domain.DefaultStatusOptions())

	next, found, err := uc.NextOpening(context.Background(), "venue-1", weekdayAt(1, 7, 0))
	if err != nil {
		t.Fatalf("NextOpening() error = %v", err)
	}
	if !found || !next.Equal(weekdayAt(1, 9, 0)) {
		t.Fatalf("NextOpening() = %v/%v, want Monday 09:00", next, found)
	}

	_, found, err = uc.NextOpening(context.Background(), "venue-404", weekdayAt(1, 7, 0))
	if err != nil {
		t.Fatalf("NextOpening() unknown venue error = %v", err)
	}
	if found {
		t.Fatal("unknown venue should have no next opening")
	}
}

func TestScheduleQueryCheckWindow(t *testing.T) {
	uc := NewScheduleQueryUseCase(seededRepo(t), domain.DefaultStatusOptions())
	ctx := context.Background()

	check, err := uc.CheckWindow(ctx, "venue-1", weekdayAt(1, 12, 0), weekdayAt(1, 13, 0))
	if err != nil {
		t.Fatalf("CheckWindow() error = %v", err)
	}
	if !check.Valid {
		t.Fatalf("check = %+v, want valid", check)
	}

	check, err = uc.CheckWindow(ctx, "venue-1", weekdayAt(0, 12, 0), weekdayAt(0, 13, 0))
	if err != nil {
		t.Fatalf("CheckWindow() error = %v", err)
	}
	if check.Valid || check.Reason != domain.ReasonClosedThatDay {
		t.Fatalf("check = %+v, want closed-day rejection", check)
	}

	if _, err := uc.CheckWindow(ctx, "venue-1", weekdayAt(1, 13, 0), weekdayAt(1, 12, 0)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("inverted window error = %v, want ErrInvalidWindow", err)
	}
	if _, err := uc.CheckWindow(ctx, "venue-1", time.Time{}, weekdayAt(1, 12, 0)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("zero start error = %v, want ErrInvalidWindow", err)
	}
}

func TestScheduleQueryWeek(t *testing.T) {
	uc := NewScheduleQueryUseCase(seededRepo(t), domain.DefaultStatusOptions())

	schedule, err := uc.Week(context.Background(), "venue-1")
	if err != nil {
		t.Fatalf("Week() error = %v", err)
	}
	if schedule.Week[1].Open != "09:00" {
		t.Fatalf("Monday row = %+v", schedule.Week[1])
	}

	if _, err := uc.Week(context.Background(), "venue-404"); !errors.Is(err, port.ErrVenueNotFound) {
		t.Fatalf("unknown venue error = %v, want ErrVenueNotFound", err)
	}
}
