package usecase

import (
	"context"
	"errors"
	"testing"

	"mesaYaHours/internal/modules/hours/domain"
	"mesaYaHours/internal/modules/hours/infrastructure"
)

func snapshotPayload() map[string]any {
	return map[string]any{
		"data": map[string]any{
			"periods": []any{
				map[string]any{
					"open":  map[string]any{"day": float64(1), "hour": float64(9), "minute": float64(0)},
					"close": map[string]any{"day": float64(1), "hour": float64(17), "minute": float64(0)},
				},
			},
			"weekdayText": []any{"Monday: 9:00 AM - 5:00 PM"},
		},
	}
}

func TestReconcileFeedExecute(t *testing.T) {
	repo := infrastructure.NewMemoryScheduleRepository()
	uc := NewReconcileFeedUseCase(repo)

	schedule, err := uc.Execute(context.Background(), "venue-1", snapshotPayload())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if schedule.Week[1].Open != "09:00" || schedule.Week[1].Close != "17:00" {
		t.Fatalf("Monday row = %+v", schedule.Week[1])
	}
	if schedule.Feed == nil || len(schedule.Feed.WeekdayText) != 1 {
		t.Fatalf("stored feed = %+v", schedule.Feed)
	}
}

func TestReconcileFeedExecutePreservesManualRows(t *testing.T) {
	repo := infrastructure.NewMemoryScheduleRepository()
	manual := domain.DayHours{Day: 1, Open: "11:00", Close: "15:00", Source: domain.SourceManual}
	if _, err := repo.SetDay(context.Background(), "venue-1", manual); err != nil {
		t.Fatalf("SetDay() error = %v", err)
	}

	uc := NewReconcileFeedUseCase(repo)
	schedule, err := uc.Execute(context.Background(), "venue-1", snapshotPayload())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if schedule.Week[1] != manual {
		t.Fatalf("manual Monday should survive the feed: %+v", schedule.Week[1])
	}
}

func TestReconcileFeedExecuteRejections(t *testing.T) {
	uc := NewReconcileFeedUseCase(infrastructure.NewMemoryScheduleRepository())

	if _, err := uc.Execute(context.Background(), "  ", snapshotPayload()); !errors.Is(err, ErrMissingVenue) {
		t.Fatalf("blank venue error = %v, want ErrMissingVenue", err)
	}
	if _, err := uc.Execute(context.Background(), "venue-1", "not a snapshot"); !errors.Is(err, ErrInvalidFeed) {
		t.Fatalf("bad payload error = %v, want ErrInvalidFeed", err)
	}
}
