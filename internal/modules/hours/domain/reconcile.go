package domain

// daySpan accumulates feed periods for a single weekday in minute space.
type daySpan struct {
	open  int
	close int
	set   bool
}

func (s *daySpan) widen(openMin, closeMin int) {
	if !s.set {
		s.open = openMin
		s.close = closeMin
		s.set = true
		return
	}
	// Multiple spans on one day collapse into their envelope: earliest open,
	// latest close. Split-hour days lose their midday gap.
	if openMin < s.open {
		s.open = openMin
	}
	if closeMin > s.close {
		s.close = closeMin
	}
}

// BuildWeekFromFeed projects provider periods onto a full week of external
// rows. Days the feed never mentions stay closed; a malformed or empty feed
// therefore yields "closed every day" rather than an error.
func BuildWeekFromFeed(feed Feed) WeekSchedule {
	var spans [daysPerWeek]daySpan
	for _, period := range feed.Periods {
		if !period.Valid() {
			continue
		}
		switch {
		case period.AllDay():
			spans[period.Open.Day].widen(0, MinutesPerDay)
		case period.SameDay():
			spans[period.Open.Day].widen(period.Open.Minutes(), period.Close.Minutes())
		default:
			// Crosses midnight: the opening day runs to end of day, the
			// closing day opens at midnight.
			spans[period.Open.Day].widen(period.Open.Minutes(), MinutesPerDay)
			spans[period.Close.Day].widen(0, period.Close.Minutes())
		}
	}

	week := NewClosedWeek()
	for day, span := range spans {
		if !span.set {
			continue
		}
		week[day] = DayHours{
			Day:    day,
			Open:   FormatClock(span.open),
			Close:  FormatCloseMinutes(span.close),
			Source: SourceExternal,
		}
	}
	return week
}

// MergeWeek applies a feed-derived week onto the stored one, preserving rows
// a venue manager set by hand. Row-level storage must apply the result under
// its own write lock so concurrent reconciliations cannot interleave.
func MergeWeek(existing, incoming WeekSchedule) WeekSchedule {
	merged := existing
	for day := range merged {
		if merged[day].Source == SourceManual {
			continue
		}
		merged[day] = incoming[day]
	}
	return merged
}

// ReconcileFeed converts a provider feed into canonical rows and merges them
// into the stored week in one step. A feed without a period list (prose only)
// leaves the week untouched; an explicit empty list closes every external row.
func ReconcileFeed(existing WeekSchedule, feed Feed) WeekSchedule {
	if feed.Periods == nil {
		return existing
	}
	return MergeWeek(existing, BuildWeekFromFeed(feed))
}
