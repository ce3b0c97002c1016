package domain

import (
	"time"

	hours "mesaYaHours/internal/modules/hours/domain"
)

const (
	LabelAvailableNow = "Available now"
	LabelSoldOut      = "Sold out for now"
	LabelClosed       = "Currently Closed"

	slotStep      = 15 * time.Minute
	slotWindow    = time.Hour
	slotHorizon   = 12 * time.Hour
	slotStepCount = int(slotHorizon / slotStep)
)

// Inputs gathers everything the label engine needs for one venue at one
// instant. Week and Feed may each be nil when that source is missing.
type Inputs struct {
	Capacity     int
	Reservations []ReservationInterval
	Week         *hours.WeekSchedule
	Feed         *hours.Feed
	Status       hours.StatusOptions
}

// Result is the availability verdict pushed to guests: a single sentence plus
// the structured facts it was derived from.
type Result struct {
	Label     string           `json:"label"`
	Status    hours.OpenStatus `json:"status"`
	NextOpen  *time.Time       `json:"nextOpen,omitempty"`
	SlotStart *time.Time       `json:"slotStart,omitempty"`
}

// Evaluate turns capacity, active bookings and venue hours into the
// availability sentence. Pure and bounded: the slot scan never exceeds 48
// windows, so it is safe on a request path.
func Evaluate(in Inputs, at time.Time) Result {
	status := hours.EvaluateOpen(in.Week, in.Feed, at, in.Status)
	result := Result{Status: status}

	if in.Capacity <= 0 {
		result.Label = LabelSoldOut
		return result
	}

	hasHours := in.Week != nil || (in.Feed != nil && in.Feed.HasPeriods())
	if !status.Determinable && !hasHours {
		// Venues without any configured hours fall back to a pure
		// reservation-vs-capacity search.
		return searchSlot(result, in, at)
	}

	if !status.Open {
		next, ok := hours.NextOpening(in.Week, in.Feed, at)
		if !ok {
			// The finder answers nothing both for never-opens and for
			// already-open, so confirm the closed verdict before labeling
			// the venue closed outright.
			if hasHours {
				if confirm := hours.EvaluateOpen(in.Week, in.Feed, at, in.Status); confirm.Open {
					result.Status = confirm
					return searchSlot(result, in, at)
				}
			}
			result.Label = LabelClosed
			return result
		}
		result.NextOpen = &next
		result.Label = opensLabel(at, next)
		return result
	}

	return searchSlot(result, in, at)
}

func searchSlot(result Result, in Inputs, at time.Time) Result {
	start, offset, found := NextFreeSlot(in.Capacity, in.Reservations, at)
	if !found {
		result.Label = LabelSoldOut
		return result
	}
	result.SlotStart = &start
	if offset == 0 {
		result.Label = LabelAvailableNow
		return result
	}
	result.Label = "Next availability at " + hours.FormatTime12(start)
	return result
}

// NextFreeSlot scans forward from at in 15-minute steps across a 12-hour
// horizon for the earliest one-hour window whose overlapping bookings leave
// spare capacity. offset is the step index; zero means the venue can seat the
// party immediately.
func NextFreeSlot(capacity int, reservations []ReservationInterval, at time.Time) (start time.Time, offset int, found bool) {
	cursor := ceilToSlotStep(at)
	for step := 0; step < slotStepCount; step++ {
		windowEnd := cursor.Add(slotWindow)
		if SeatsOverlapping(reservations, cursor, windowEnd) < capacity {
			return cursor, step, true
		}
		cursor = cursor.Add(slotStep)
	}
	return time.Time{}, 0, false
}

// ceilToSlotStep rounds up to the next quarter-hour boundary, staying put
// when the instant already sits on one.
func ceilToSlotStep(at time.Time) time.Time {
	truncated := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, at.Location())
	if truncated.Before(at) {
		truncated = truncated.Add(time.Minute)
	}
	if rem := truncated.Minute() % 15; rem != 0 {
		truncated = truncated.Add(time.Duration(15-rem) * time.Minute)
	}
	return truncated
}

func opensLabel(at, next time.Time) string {
	clock := hours.FormatTime12(next)
	switch {
	case sameCalendarDate(at, next):
		return "Opens at " + clock
	case sameCalendarDate(at.AddDate(0, 0, 1), next):
		return "Opens tomorrow at " + clock
	default:
		return "Opens " + next.Weekday().String() + " at " + clock
	}
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
