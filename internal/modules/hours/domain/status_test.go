package domain

import (
	"testing"
	"time"
)

// The week of 2024-03-10 starts on a Sunday, so day indexes line up with
// calendar dates 10..16.
func weekday(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, 10+day, hour, minute, 0, 0, time.UTC)
}

func openWeek(day int, open, close string) *WeekSchedule {
	week := NewClosedWeek()
	week[day] = DayHours{Day: day, Open: open, Close: close, Source: SourceExternal}
	return &week
}

func TestEvaluateOpenCanonical(t *testing.T) {
	tests := []struct {
		name string
		week *WeekSchedule
		at   time.Time
		want OpenStatus
	}{
		{
			name: "inside interval",
			week: openWeek(1, "09:00", "17:00"),
			at:   weekday(1, 12, 0),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "before opening",
			week: openWeek(1, "09:00", "17:00"),
			at:   weekday(1, 8, 59),
			want: OpenStatus{Open: false, Determinable: true},
		},
		{
			name: "at closing minute",
			week: openWeek(1, "09:00", "17:00"),
			at:   weekday(1, 17, 0),
			want: OpenStatus{Open: false, Determinable: true},
		},
		{
			name: "sentinel close keeps the last minute open",
			week: openWeek(5, "22:00", "23:59"),
			at:   weekday(5, 23, 59),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "closed day",
			week: openWeek(1, "09:00", "17:00"),
			at:   weekday(2, 12, 0),
			want: OpenStatus{Open: false, Determinable: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EvaluateOpen(test.week, nil, test.at, DefaultStatusOptions())
			if got != test.want {
				t.Fatalf("expected %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestEvaluateOpenFeedOverride(t *testing.T) {
	week := openWeek(1, "09:00", "17:00")
	feed := &Feed{Periods: []Period{
		{Open: PeriodPoint{Day: 2, Hour: 10}, Close: closePoint(2, 22, 0)},
	}}
	// Tuesday noon: stored rows say closed, the feed says open.
	at := weekday(2, 12, 0)

	got := EvaluateOpen(week, feed, at, DefaultStatusOptions())
	if !got.Open || !got.Determinable {
		t.Fatalf("expected feed to overrule the closed row, got %+v", got)
	}

	got = EvaluateOpen(week, feed, at, StatusOptions{FeedOverride: false})
	if got.Open {
		t.Fatalf("override disabled: stored rows should win, got %+v", got)
	}

	// Outside the feed window the stored verdict stands either way.
	got = EvaluateOpen(week, feed, weekday(2, 23, 0), DefaultStatusOptions())
	if got.Open || !got.Determinable {
		t.Fatalf("expected closed with feed agreeing, got %+v", got)
	}
}

func TestEvaluateOpenFeedOnly(t *testing.T) {
	feed := &Feed{Periods: []Period{
		{Open: PeriodPoint{Day: 1, Hour: 9}, Close: closePoint(1, 17, 0)},
		{Open: PeriodPoint{Day: 3}},
		{Open: PeriodPoint{Day: 5, Hour: 22}, Close: closePoint(6, 2, 0)},
	}}

	tests := []struct {
		name string
		at   time.Time
		want OpenStatus
	}{
		{
			name: "same day window",
			at:   weekday(1, 10, 30),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "same day after close",
			at:   weekday(1, 17, 0),
			want: OpenStatus{Open: false, Determinable: true},
		},
		{
			name: "around the clock day",
			at:   weekday(3, 3, 0),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "overnight before midnight",
			at:   weekday(5, 23, 30),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "overnight after midnight",
			at:   weekday(6, 1, 30),
			want: OpenStatus{Open: true, Determinable: true},
		},
		{
			name: "overnight tail expired",
			at:   weekday(6, 2, 0),
			want: OpenStatus{Open: false, Determinable: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EvaluateOpen(nil, feed, test.at, DefaultStatusOptions())
			if got != test.want {
				t.Fatalf("expected %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestEvaluateOpenIndeterminate(t *testing.T) {
	if got := EvaluateOpen(nil, nil, weekday(0, 12, 0), DefaultStatusOptions()); got.Determinable {
		t.Fatalf("no data should be indeterminate, got %+v", got)
	}

	prose := &Feed{WeekdayText: []string{"Monday: 9:00 AM - 5:00 PM"}}
	if got := EvaluateOpen(nil, prose, weekday(1, 12, 0), DefaultStatusOptions()); got.Determinable {
		t.Fatalf("prose-only feed should be indeterminate, got %+v", got)
	}
}
