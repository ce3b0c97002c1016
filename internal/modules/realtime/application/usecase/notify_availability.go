package usecase

import (
	"context"
	"log/slog"
	"time"

	availusecase "mesaYaHours/internal/modules/availability/application/usecase"
	"mesaYaHours/internal/modules/realtime/domain"
)

// NotifyAvailabilityUseCase recalcula la disponibilidad de un local y la
// difunde a los clientes conectados. Stream handlers call it after every
// event that can move the availability verdict.
type NotifyAvailabilityUseCase struct {
	evaluator   *availusecase.EvaluateVenueUseCase
	broadcastUC *BroadcastUseCase
	now         func() time.Time
}

func NewNotifyAvailabilityUseCase(evaluator *availusecase.EvaluateVenueUseCase, broadcastUC *BroadcastUseCase) *NotifyAvailabilityUseCase {
	return &NotifyAvailabilityUseCase{
		evaluator:   evaluator,
		broadcastUC: broadcastUC,
		now:         time.Now,
	}
}

// Refresh evaluates the venue right now, broadcasts the verdict to its
// subscribers and returns it to the caller.
func (uc *NotifyAvailabilityUseCase) Refresh(ctx context.Context, venueID string) (availusecase.Assessment, error) {
	assessment, err := uc.evaluator.Execute(ctx, venueID, uc.now())
	if err != nil {
		return availusecase.Assessment{}, err
	}
	msg := domain.NewMessage(domain.AvailabilityEntity, domain.ActionUpdated, venueID, assessment).
		WithMeta(domain.MetaVenueID, venueID)
	uc.broadcastUC.Execute(ctx, msg)
	return assessment, nil
}

// Push is the fire-and-forget variant for stream handlers. Failures are
// logged and swallowed: one broken venue must not stall the event stream.
func (uc *NotifyAvailabilityUseCase) Push(ctx context.Context, venueID string) {
	if _, err := uc.Refresh(ctx, venueID); err != nil {
		slog.Warn("availability refresh failed",
			slog.String("venueId", venueID),
			slog.Any("error", err),
		)
	}
}
