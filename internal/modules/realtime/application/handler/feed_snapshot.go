package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	hoursusecase "mesaYaHours/internal/modules/hours/application/usecase"
	"mesaYaHours/internal/modules/realtime/application/port"
	"mesaYaHours/internal/modules/realtime/application/usecase"
	"mesaYaHours/internal/modules/realtime/domain"
)

// FeedSnapshotHandler reconcilia los snapshots de horario que llegan por Kafka
// y avisa a los clientes del local afectado. Unusable payloads are logged and
// skipped so one bad snapshot cannot stall the stream.
type FeedSnapshotHandler struct {
	kafkaTopic  string
	reconcileUC *hoursusecase.ReconcileFeedUseCase
	broadcastUC *usecase.BroadcastUseCase
	notifyUC    *usecase.NotifyAvailabilityUseCase
}

func NewFeedSnapshotHandler(
	kafkaTopic string,
	reconcileUC *hoursusecase.ReconcileFeedUseCase,
	broadcastUC *usecase.BroadcastUseCase,
	notifyUC *usecase.NotifyAvailabilityUseCase,
) *FeedSnapshotHandler {
	return &FeedSnapshotHandler{
		kafkaTopic:  kafkaTopic,
		reconcileUC: reconcileUC,
		broadcastUC: broadcastUC,
		notifyUC:    notifyUC,
	}
}

func (h *FeedSnapshotHandler) Topic() string { return h.kafkaTopic }

func (h *FeedSnapshotHandler) Handle(ctx context.Context, msg *domain.Message) error {
	venueID := strings.TrimSpace(msg.VenueID())
	if venueID == "" {
		slog.Warn("hours feed event without venue id", slog.String("topic", h.kafkaTopic))
		return nil
	}

	schedule, err := h.reconcileUC.Execute(ctx, venueID, msg.Data)
	if err != nil {
		if errors.Is(err, hoursusecase.ErrInvalidFeed) || errors.Is(err, hoursusecase.ErrMissingVenue) {
			slog.Warn("hours feed event discarded",
				slog.String("venueId", venueID),
				slog.Any("error", err),
			)
			return nil
		}
		return err
	}

	update := domain.NewMessage(domain.HoursEntity, domain.ActionUpdated, venueID, schedule).
		WithMeta(domain.MetaVenueID, venueID)
	h.broadcastUC.Execute(ctx, update)

	if h.notifyUC != nil {
		h.notifyUC.Push(ctx, venueID)
	}
	return nil
}

var _ port.TopicHandler = (*FeedSnapshotHandler)(nil)
