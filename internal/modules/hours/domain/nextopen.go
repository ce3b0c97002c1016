package domain

import "time"

// NextOpening finds the next instant the venue starts service at or after at,
// scanning today and up to seven further days. ok is false when the venue is
// already open (callers should not have asked) or when no opening exists
// within the horizon, which for a fully closed week means permanently closed.
func NextOpening(week *WeekSchedule, feed *Feed, at time.Time) (time.Time, bool) {
	if week != nil {
		return nextOpeningFromWeek(*week, at)
	}
	if feed != nil && feed.HasPeriods() {
		return nextOpeningFromFeed(*feed, at)
	}
	return time.Time{}, false
}

func nextOpeningFromWeek(week WeekSchedule, at time.Time) (time.Time, bool) {
	today := DayIndex(at)
	current := MinuteOfDay(at)

	if openMin, closeMin, ok := week.Row(today).OpenInterval(); ok {
		if current >= openMin && current < closeMin {
			// Already open; stay defensive instead of inventing an answer.
			return time.Time{}, false
		}
		if current < openMin {
			return dayAtMinute(at, 0, openMin), true
		}
	}

	for offset := 1; offset <= daysPerWeek; offset++ {
		openMin, _, ok := week.Row(today + offset).OpenInterval()
		if !ok {
			continue
		}
		return dayAtMinute(at, offset, openMin), true
	}
	return time.Time{}, false
}

func nextOpeningFromFeed(feed Feed, at time.Time) (time.Time, bool) {
	if open, usable := feedOpenAt(feed, at); usable && open {
		return time.Time{}, false
	}

	today := DayIndex(at)
	current := MinuteOfDay(at)

	if openMin, ok := earliestFeedOpen(feed, today, current); ok {
		return dayAtMinute(at, 0, openMin), true
	}
	for offset := 1; offset <= daysPerWeek; offset++ {
		if openMin, ok := earliestFeedOpen(feed, wrapDay(today+offset), -1); ok {
			return dayAtMinute(at, offset, openMin), true
		}
	}
	return time.Time{}, false
}

// earliestFeedOpen returns the earliest opening minute on the weekday that is
// strictly after the given minute. Pass after=-1 to accept any opening.
func earliestFeedOpen(feed Feed, day, after int) (int, bool) {
	best := -1
	for _, period := range feed.Periods {
		if !period.Valid() || period.Open.Day != day {
			continue
		}
		openMin := period.Open.Minutes()
		if openMin <= after {
			continue
		}
		if best == -1 || openMin < best {
			best = openMin
		}
	}
	return best, best != -1
}

// dayAtMinute pins a minute-of-day onto the calendar date offset days after
// at, in the instant's own location.
func dayAtMinute(at time.Time, offset, minutes int) time.Time {
	base := at.AddDate(0, 0, offset)
	return time.Date(base.Year(), base.Month(), base.Day(), minutes/60, minutes%60, 0, 0, at.Location())
}
