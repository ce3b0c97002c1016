package handler

import (
	"context"
	"log/slog"
	"strings"

	hoursusecase "mesaYaHours/internal/modules/hours/application/usecase"
	hoursdomain "mesaYaHours/internal/modules/hours/domain"
	"mesaYaHours/internal/modules/realtime/application/port"
	"mesaYaHours/internal/modules/realtime/domain"
	"mesaYaHours/internal/shared/normalization"
)

// VenueCreatedHandler da de alta el horario de los locales que anuncia el
// servicio de inventario. Creation payloads that already carry provider hours
// are reconciled on the spot.
type VenueCreatedHandler struct {
	kafkaTopic  string
	registerUC  *hoursusecase.RegisterVenueUseCase
	reconcileUC *hoursusecase.ReconcileFeedUseCase
}

func NewVenueCreatedHandler(
	kafkaTopic string,
	registerUC *hoursusecase.RegisterVenueUseCase,
	reconcileUC *hoursusecase.ReconcileFeedUseCase,
) *VenueCreatedHandler {
	return &VenueCreatedHandler{
		kafkaTopic:  kafkaTopic,
		registerUC:  registerUC,
		reconcileUC: reconcileUC,
	}
}

func (h *VenueCreatedHandler) Topic() string { return h.kafkaTopic }

func (h *VenueCreatedHandler) Handle(ctx context.Context, msg *domain.Message) error {
	venueID := strings.TrimSpace(msg.VenueID())
	if venueID == "" {
		raw := normalization.MapFromPayload(msg.Data)
		venueID = strings.TrimSpace(normalization.AsString(raw["id"]))
	}
	if venueID == "" {
		slog.Warn("venue created event without id", slog.String("topic", h.kafkaTopic))
		return nil
	}

	if _, err := h.registerUC.Execute(ctx, venueID); err != nil {
		return err
	}

	if h.reconcileUC != nil {
		if _, ok := hoursdomain.NormalizeFeed(msg.Data); ok {
			if _, err := h.reconcileUC.Execute(ctx, venueID, msg.Data); err != nil {
				slog.Warn("initial hours feed discarded",
					slog.String("venueId", venueID),
					slog.Any("error", err),
				)
			}
		}
	}
	return nil
}

var _ port.TopicHandler = (*VenueCreatedHandler)(nil)
