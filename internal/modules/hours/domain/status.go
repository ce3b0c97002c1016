package domain

import "time"

// OpenStatus reports whether a venue is serving at a given instant and
// whether the available sources allowed a decision at all.
type OpenStatus struct {
	Open         bool `json:"isOpen"`
	Determinable bool `json:"canDetermine"`
}

// StatusOptions tunes how the evaluator arbitrates between stored rows and
// the raw provider feed.
type StatusOptions struct {
	// FeedOverride lets a feed that reports service win over a stored row that
	// says closed. Biased toward never telling a customer a venue is closed
	// when the fresher source disagrees; can mask a genuinely closed venue
	// when the feed is stale, so deployments may switch it off.
	FeedOverride bool
}

// DefaultStatusOptions mirrors the upstream platform: the feed override is on.
func DefaultStatusOptions() StatusOptions {
	return StatusOptions{FeedOverride: true}
}

// EvaluateOpen decides open/closed at the instant. Stored rows win when
// present; the raw feed acts as tie-break and fallback. The result is a pure
// function of its inputs, safe to call concurrently.
func EvaluateOpen(week *WeekSchedule, feed *Feed, at time.Time, opts StatusOptions) OpenStatus {
	if week != nil {
		row := week.Row(DayIndex(at))
		if openMin, closeMin, ok := row.OpenInterval(); ok {
			current := MinuteOfDay(at)
			if current >= openMin && current < closeMin {
				return OpenStatus{Open: true, Determinable: true}
			}
		}
		// Stored rows say closed (or the row is unusable). Before reporting
		// that, let the feed overrule when allowed: the provider snapshot may
		// be fresher than a stale stored row.
		if opts.FeedOverride && feed != nil {
			if open, usable := feedOpenAt(*feed, at); usable && open {
				return OpenStatus{Open: true, Determinable: true}
			}
		}
		return OpenStatus{Open: false, Determinable: true}
	}

	if feed != nil {
		if open, usable := feedOpenAt(*feed, at); usable {
			return OpenStatus{Open: open, Determinable: true}
		}
	}
	return OpenStatus{}
}

// feedOpenAt walks the raw periods for the instant. usable is false when the
// feed holds nothing but prose, which cannot back a time decision.
func feedOpenAt(feed Feed, at time.Time) (open, usable bool) {
	day := DayIndex(at)
	yesterday := wrapDay(day - 1)
	current := MinuteOfDay(at)

	for _, period := range feed.Periods {
		if !period.Valid() {
			continue
		}
		usable = true
		switch {
		case period.AllDay():
			if period.Open.Day == day {
				return true, true
			}
		case period.SameDay():
			if period.Open.Day == day &&
				current >= period.Open.Minutes() && current < period.Close.Minutes() {
				return true, true
			}
		default:
			// Overnight span: open side runs until midnight, close side runs
			// from midnight.
			if period.Open.Day == day && current >= period.Open.Minutes() {
				return true, true
			}
			if period.Close.Day == day && current < period.Close.Minutes() && period.Open.Day == yesterday {
				return true, true
			}
		}
	}
	return false, usable
}
