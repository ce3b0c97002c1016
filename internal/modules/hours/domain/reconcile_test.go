package domain

import "testing"

func closePoint(day, hour, minute int) *PeriodPoint {
	return &PeriodPoint{Day: day, Hour: hour, Minute: minute}
}

func TestBuildWeekFromFeed(t *testing.T) {
	tests := []struct {
		name string
		feed Feed
		want map[int]DayHours
	}{
		{
			name: "same day interval",
			feed: Feed{Periods: []Period{
				{Open: PeriodPoint{Day: 1, Hour: 9}, Close: closePoint(1, 17, 0)},
			}},
			want: map[int]DayHours{
				1: {Day: 1, Open: "09:00", Close: "17:00", Source: SourceExternal},
			},
		},
		{
			name: "overnight splits at midnight",
			feed: Feed{Periods: []Period{
				{Open: PeriodPoint{Day: 5, Hour: 22}, Close: closePoint(6, 2, 0)},
			}},
			want: map[int]DayHours{
				5: {Day: 5, Open: "22:00", Close: "23:59", Source: SourceExternal},
				6: {Day: 6, Open: "00:00", Close: "02:00", Source: SourceExternal},
			},
		},
		{
			name: "missing close means around the clock",
			feed: Feed{Periods: []Period{
				{Open: PeriodPoint{Day: 3, Hour: 8, Minute: 30}},
			}},
			want: map[int]DayHours{
				3: {Day: 3, Open: "00:00", Close: "23:59", Source: SourceExternal},
			},
		},
		{
			name: "split hours collapse into the envelope",
			feed: Feed{Periods: []Period{
				{Open: PeriodPoint{Day: 2, Hour: 12}, Close: closePoint(2, 14, 0)},
				{Open: PeriodPoint{Day: 2, Hour: 18}, Close: closePoint(2, 22, 30)},
			}},
			want: map[int]DayHours{
				2: {Day: 2, Open: "12:00", Close: "22:30", Source: SourceExternal},
			},
		},
		{
			name: "invalid periods are dropped",
			feed: Feed{Periods: []Period{
				{Open: PeriodPoint{Day: 9, Hour: 9}, Close: closePoint(1, 17, 0)},
				{Open: PeriodPoint{Day: 1, Hour: 25}},
			}},
			want: map[int]DayHours{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			week := BuildWeekFromFeed(test.feed)
			for day := 0; day < 7; day++ {
				expected, open := test.want[day]
				if !open {
					expected = DayHours{Day: day, Closed: true, Source: SourceExternal}
				}
				if week[day] != expected {
					t.Fatalf("day %d: expected %+v, got %+v", day, expected, week[day])
				}
			}
		})
	}
}

func TestBuildWeekFromFeedEmptyFeedClosesEveryDay(t *testing.T) {
	week := BuildWeekFromFeed(Feed{})
	for day, row := range week {
		if !row.Closed {
			t.Fatalf("expected day %d closed", day)
		}
	}
}

func TestMergeWeekPreservesManualRows(t *testing.T) {
	existing := NewClosedWeek()
	for day := range existing {
		existing[day] = DayHours{Day: day, Open: "10:00", Close: "20:00", Source: SourceManual}
	}

	incoming := BuildWeekFromFeed(Feed{Periods: []Period{
		{Open: PeriodPoint{Day: 0, Hour: 6}, Close: closePoint(0, 23, 0)},
	}})

	merged := MergeWeek(existing, incoming)
	if merged != existing {
		t.Fatalf("manual week must remain untouched: %+v", merged)
	}
}

func TestMergeWeekOverwritesExternalRows(t *testing.T) {
	existing := NewClosedWeek()
	existing[1] = DayHours{Day: 1, Open: "08:00", Close: "12:00", Source: SourceExternal}
	existing[2] = DayHours{Day: 2, Open: "11:00", Close: "15:00", Source: SourceManual}

	incoming := BuildWeekFromFeed(Feed{Periods: []Period{
		{Open: PeriodPoint{Day: 1, Hour: 9}, Close: closePoint(1, 18, 0)},
		{Open: PeriodPoint{Day: 2, Hour: 9}, Close: closePoint(2, 18, 0)},
	}})

	merged := MergeWeek(existing, incoming)
	if merged[1].Open != "09:00" || merged[1].Close != "18:00" {
		t.Fatalf("external row should follow the feed, got %+v", merged[1])
	}
	if merged[2] != existing[2] {
		t.Fatalf("manual row should survive the feed, got %+v", merged[2])
	}
	if !merged[0].Closed {
		t.Fatalf("untouched day should close, got %+v", merged[0])
	}
}

func TestReconcileFeedEndToEnd(t *testing.T) {
	existing := NewClosedWeek()
	existing[6] = DayHours{Day: 6, Open: "10:00", Close: "14:00", Source: SourceManual}

	week := ReconcileFeed(existing, Feed{Periods: []Period{
		{Open: PeriodPoint{Day: 5, Hour: 22}, Close: closePoint(6, 2, 0)},
	}})

	if week[5].Open != "22:00" || week[5].Close != "23:59" {
		t.Fatalf("unexpected Friday row: %+v", week[5])
	}
	if week[6].Open != "10:00" || week[6].Close != "14:00" || week[6].Source != SourceManual {
		t.Fatalf("Saturday manual row should win over the overnight tail: %+v", week[6])
	}
}

func TestReconcileFeedProseOnlyLeavesWeekAlone(t *testing.T) {
	existing := NewClosedWeek()
	existing[1] = DayHours{Day: 1, Open: "09:00", Close: "17:00", Source: SourceExternal}

	week := ReconcileFeed(existing, Feed{WeekdayText: []string{"Monday: 9:00 AM - 5:00 PM"}})
	if week != existing {
		t.Fatalf("prose-only feed must not rewrite rows: %+v", week)
	}
}

func TestReconcileFeedEmptyPeriodListClosesExternalRows(t *testing.T) {
	existing := NewClosedWeek()
	existing[1] = DayHours{Day: 1, Open: "09:00", Close: "17:00", Source: SourceExternal}
	existing[2] = DayHours{Day: 2, Open: "09:00", Close: "17:00", Source: SourceManual}

	week := ReconcileFeed(existing, Feed{Periods: []Period{}})
	if !week[1].Closed {
		t.Fatalf("external row should close when the provider reports no periods: %+v", week[1])
	}
	if week[2] != existing[2] {
		t.Fatalf("manual row should survive: %+v", week[2])
	}
}
