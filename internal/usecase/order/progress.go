package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/notifier"
)

// reportProgress bumps the atomic submission counters and applies the two
// completion rules: injection completes once every targeted lead has a
// terminal outcome, and broker assignment auto-completes once every
// successful submission has a broker and nothing is flagged pending.
func (uc *DefaultFulfillmentUsecase) reportProgress(ctx context.Context, orderID string, success bool) error {
	successDelta, failedDelta := 0, 1
	if success {
		successDelta, failedDelta = 1, 0
	}
	if err := uc.OrderRepo.IncrementProgress(ctx, orderID, successDelta, failedDelta); err != nil {
		return err
	}

	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	progress := order.Progress

	if progress.TotalToInject > 0 &&
		progress.Successful+progress.Failed >= progress.TotalToInject &&
		order.Injection.Status != domain.InjectionCompleted {

		now := time.Now()
		if err := uc.OrderRepo.UpdateInjectionStatus(ctx, orderID, domain.InjectionCompleted); err != nil {
			return err
		}
		if err := uc.OrderRepo.SetInjectionCompleted(ctx, orderID, now); err != nil {
			return err
		}
		slog.Info("injection completed",
			"order_id", orderID, "successful", progress.Successful, "failed", progress.Failed)
		uc.publishOrderEvent(kafka.OrderLifecycleEvent{
			OrderID:     order.ID,
			RequesterID: order.RequesterID,
			Status:      "injection_completed",
			Requested:   order.TotalRequested(),
			Fulfilled:   order.TotalFulfilled(),
			Timestamp:   now.Unix(),
		})
		if uc.Config.CallbackURL != "" {
			notifier.SendCallback(uc.Config.CallbackURL, notifier.CallbackPayload{
				OrderID:         order.ID,
				RequesterID:     order.RequesterID,
				Status:          string(domain.InjectionCompleted),
				Successful:      progress.Successful,
				Failed:          progress.Failed,
				BrokersAssigned: progress.BrokersAssigned,
				ClientNetworkID: order.ClientNetworkID,
				CampaignID:      order.CampaignID,
				CompletedAt:     now,
			})
		}
	}

	uc.maybeCompleteBrokerAssignment(ctx, order)
	return nil
}

func (uc *DefaultFulfillmentUsecase) maybeCompleteBrokerAssignment(ctx context.Context, order *domain.Order) {
	progress := order.Progress
	if order.BrokerAssignment.Status != domain.BrokerAssignmentPending {
		return
	}
	if progress.BrokerAssignmentPending || progress.Successful == 0 {
		return
	}
	if progress.BrokersAssigned < progress.Successful {
		return
	}

	now := time.Now()
	order.BrokerAssignment.Status = domain.BrokerAssignmentCompleted
	order.BrokerAssignment.AssignedAt = &now
	if err := uc.OrderRepo.Update(ctx, order); err != nil {
		slog.Error("broker assignment completion save failed", "order_id", order.ID, "error", err)
	}
}
