package usecase

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"mesaYaHours/internal/modules/availability/application/port"
	"mesaYaHours/internal/modules/availability/domain"
)

// ReservationCache mirrors the active bookings per venue. The reservation
// event stream keeps it current; venues the stream has not touched yet are
// primed once from the inventory service.
type ReservationCache struct {
	mu     sync.RWMutex
	venues map[string]map[string]domain.ReservationInterval
}

func NewReservationCache() *ReservationCache {
	return &ReservationCache{venues: make(map[string]map[string]domain.ReservationInterval)}
}

// Upsert records a created or updated booking. A missing id gets a synthetic
// one so the row can still hold seats.
func (c *ReservationCache) Upsert(venueID, reservationID string, interval domain.ReservationInterval) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return
	}
	if reservationID = strings.TrimSpace(reservationID); reservationID == "" {
		reservationID = uuid.New().String()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(venueID)[reservationID] = interval
}

// Remove drops a cancelled booking. Unknown ids are ignored.
func (c *ReservationCache) Remove(venueID, reservationID string) {
	venueID = strings.TrimSpace(venueID)
	reservationID = strings.TrimSpace(reservationID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if rows, ok := c.venues[venueID]; ok {
		delete(rows, reservationID)
	}
}

// Prime seeds a venue with the intervals fetched from the inventory service.
// It is a no-op once the venue is known, so a late fetch can never double
// count bookings the stream already delivered.
func (c *ReservationCache) Prime(venueID string, reservations []port.ActiveReservation) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.venues[venueID]; ok {
		return
	}
	rows := c.ensureLocked(venueID)
	for _, reservation := range reservations {
		id := strings.TrimSpace(reservation.ID)
		if id == "" {
			id = uuid.New().String()
		}
		rows[id] = reservation.Interval
	}
}

// Snapshot returns the cached intervals for a venue. known is false when the
// venue has never been primed nor touched by the stream.
func (c *ReservationCache) Snapshot(venueID string) (intervals []domain.ReservationInterval, known bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows, ok := c.venues[strings.TrimSpace(venueID)]
	if !ok {
		return nil, false
	}
	intervals = make([]domain.ReservationInterval, 0, len(rows))
	for _, interval := range rows {
		intervals = append(intervals, interval)
	}
	return intervals, true
}

func (c *ReservationCache) ensureLocked(venueID string) map[string]domain.ReservationInterval {
	rows, ok := c.venues[venueID]
	if !ok {
		rows = make(map[string]domain.ReservationInterval)
		c.venues[venueID] = rows
	}
	return rows
}
