package handler

import (
	"context"
	"log/slog"
	"strings"

	availusecase "mesaYaHours/internal/modules/availability/application/usecase"
	availdomain "mesaYaHours/internal/modules/availability/domain"
	"mesaYaHours/internal/modules/realtime/application/port"
	"mesaYaHours/internal/modules/realtime/application/usecase"
	"mesaYaHours/internal/modules/realtime/domain"
	reservations "mesaYaHours/internal/modules/reservations/domain"
	"mesaYaHours/internal/shared/normalization"
)

// ReservationStreamHandler mantiene el espejo de reservas activas al día con
// los eventos del servicio de reservas y difunde la disponibilidad resultante.
// The message resource id is the reservation, never the venue; the venue comes
// from event metadata or the payload.
type ReservationStreamHandler struct {
	kafkaTopic string
	cache      *availusecase.ReservationCache
	notifyUC   *usecase.NotifyAvailabilityUseCase
}

func NewReservationStreamHandler(
	kafkaTopic string,
	cache *availusecase.ReservationCache,
	notifyUC *usecase.NotifyAvailabilityUseCase,
) *ReservationStreamHandler {
	return &ReservationStreamHandler{
		kafkaTopic: kafkaTopic,
		cache:      cache,
		notifyUC:   notifyUC,
	}
}

func (h *ReservationStreamHandler) Topic() string { return h.kafkaTopic }

func (h *ReservationStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	raw := normalization.MapFromPayload(msg.Data)

	venueID := ""
	if msg.Metadata != nil {
		venueID = strings.TrimSpace(msg.Metadata[domain.MetaVenueID])
	}
	if venueID == "" {
		venueID = strings.TrimSpace(normalization.AsString(raw["venueId"]))
	}
	if venueID == "" {
		slog.Warn("reservation event without venue id", slog.String("topic", h.kafkaTopic))
		return nil
	}

	reservationID := strings.TrimSpace(msg.ResourceID)
	if reservationID == "" {
		reservationID = strings.TrimSpace(normalization.AsString(raw["id"]))
	}

	action := strings.ToLower(strings.TrimSpace(msg.Action))
	status := reservations.NormalizeStatus(raw["status"])
	if status == reservations.StatusUnknown {
		status = reservations.NormalizeStatus(raw["state"])
	}
	// Cancellations arrive on their own topic, but a terminal status inside an
	// update event frees the seats just the same.
	if action == domain.ActionCancelled || !status.HoldsSeats() {
		h.cache.Remove(venueID, reservationID)
	} else {
		interval, ok := availdomain.NormalizeReservationInterval(raw)
		if !ok {
			slog.Warn("reservation event without usable interval",
				slog.String("venueId", venueID),
				slog.String("reservationId", reservationID),
				slog.String("action", action),
			)
			return nil
		}
		h.cache.Upsert(venueID, reservationID, interval)
	}

	slog.Info("reservation mirror updated",
		slog.String("venueId", venueID),
		slog.String("reservationId", reservationID),
		slog.String("action", action),
	)
	if h.notifyUC != nil {
		h.notifyUC.Push(ctx, venueID)
	}
	return nil
}

var _ port.TopicHandler = (*ReservationStreamHandler)(nil)
