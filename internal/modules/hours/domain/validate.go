package domain

import "time"

// WindowCheck is the validator verdict. Reason is display-ready text for the
// guest, never meant for programmatic branching beyond Valid.
type WindowCheck struct {
	Valid  bool   `json:"isValid"`
	Reason string `json:"error,omitempty"`
}

const (
	ReasonMultiDay      = "reservations cannot span multiple days"
	ReasonClosedThatDay = "venue closed that day"
	ReasonOutsideHours  = "not open during requested time"
)

// ValidateWindow checks a candidate booking interval against the venue hours.
// Stored rows are preferred, the raw feed is the fallback, and a venue with no
// hours data at all accepts everything: missing data is not "always closed".
func ValidateWindow(week *WeekSchedule, feed *Feed, startAt, endAt time.Time) WindowCheck {
	if !sameCalendarDate(startAt, endAt) {
		return WindowCheck{Reason: ReasonMultiDay}
	}

	startMin := MinuteOfDay(startAt)
	endMin := MinuteOfDay(endAt)
	day := DayIndex(startAt)

	if week != nil {
		openMin, closeMin, ok := week.Row(day).OpenInterval()
		if !ok {
			return WindowCheck{Reason: ReasonClosedThatDay}
		}
		if startMin >= openMin && endMin <= closeMin {
			return WindowCheck{Valid: true}
		}
		return WindowCheck{Reason: ReasonOutsideHours}
	}

	if feed != nil && feed.HasPeriods() {
		intervals := feedDayIntervals(*feed, day)
		if len(intervals) == 0 {
			return WindowCheck{Reason: ReasonClosedThatDay}
		}
		for _, interval := range intervals {
			if startMin >= interval.open && endMin <= interval.close {
				return WindowCheck{Valid: true}
			}
		}
		return WindowCheck{Reason: ReasonOutsideHours}
	}

	return WindowCheck{Valid: true}
}

type minuteInterval struct {
	open  int
	close int
}

// feedDayIntervals projects raw periods onto minute intervals for one
// weekday. Overnight spans contribute their to-midnight and from-midnight
// halves, capped at 1440.
func feedDayIntervals(feed Feed, day int) []minuteInterval {
	var intervals []minuteInterval
	for _, period := range feed.Periods {
		if !period.Valid() {
			continue
		}
		switch {
		case period.AllDay():
			if period.Open.Day == day {
				intervals = append(intervals, minuteInterval{0, MinutesPerDay})
			}
		case period.SameDay():
			if period.Open.Day == day {
				intervals = append(intervals, minuteInterval{period.Open.Minutes(), period.Close.Minutes()})
			}
		default:
			if period.Open.Day == day {
				intervals = append(intervals, minuteInterval{period.Open.Minutes(), MinutesPerDay})
			}
			if period.Close.Day == day {
				intervals = append(intervals, minuteInterval{0, period.Close.Minutes()})
			}
		}
	}
	return intervals
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
