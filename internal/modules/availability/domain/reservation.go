package domain

import (
	"time"

	"mesaYaHours/internal/shared/normalization"
)

// ReservationInterval is one active booking occupying seats between two
// instants. The engine only reads these; lifecycle lives with the booking
// service.
type ReservationInterval struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Seats   int       `json:"seatCount"`
}

// Overlaps reports whether the booking occupies any part of [start, end).
func (r ReservationInterval) Overlaps(start, end time.Time) bool {
	return start.Before(r.EndAt) && r.StartAt.Before(end)
}

// SeatsOverlapping sums the seats of bookings touching [start, end).
func SeatsOverlapping(reservations []ReservationInterval, start, end time.Time) int {
	total := 0
	for _, reservation := range reservations {
		if reservation.Overlaps(start, end) {
			total += reservation.Seats
		}
	}
	return total
}

// NormalizeReservationInterval constructs an interval from a loosely typed
// event payload. Bookings without both instants are unusable for capacity
// math and are dropped.
func NormalizeReservationInterval(raw map[string]any) (ReservationInterval, bool) {
	start, ok := normalization.AsTime(raw["startAt"])
	if !ok {
		return ReservationInterval{}, false
	}
	end, ok := normalization.AsTime(raw["endAt"])
	if !ok {
		return ReservationInterval{}, false
	}
	seats := normalization.AsInt(raw["seatCount"])
	if seats <= 0 {
		seats = normalization.AsInt(raw["numberOfGuests"])
	}
	return ReservationInterval{StartAt: start, EndAt: end, Seats: seats}, true
}
