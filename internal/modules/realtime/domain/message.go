package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metadata carries routing attributes alongside an event, for example the
// venue a broadcast should be narrowed to.
type Metadata map[string]string

// Message is the envelope shared by broker events and websocket broadcasts.
type Message struct {
	ID         string    `json:"id,omitempty"`
	Topic      string    `json:"topic"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewMessage construye un mensaje listo para difundir con un id de evento nuevo.
func NewMessage(entity, action, resourceID string, data any) *Message {
	return &Message{
		ID:         uuid.New().String(),
		Topic:      buildEntityTopic(entity, action),
		Entity:     entity,
		Action:     action,
		ResourceID: resourceID,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	}
}

// WithMeta attaches one routing attribute and returns the same message so
// calls can be chained.
func (m *Message) WithMeta(key, value string) *Message {
	if key == "" || value == "" {
		return m
	}
	if m.Metadata == nil {
		m.Metadata = make(Metadata)
	}
	m.Metadata[key] = value
	return m
}

// VenueID returns the venue a message is scoped to, favouring explicit
// metadata over the resource id.
func (m *Message) VenueID() string {
	if m.Metadata != nil {
		if v := m.Metadata[MetaVenueID]; v != "" {
			return v
		}
	}
	return m.ResourceID
}
