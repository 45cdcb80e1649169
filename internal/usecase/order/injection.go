package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

// StartInjection flips a pending or paused order to in_progress and launches
// the delivery pipeline in the background. The call returns as soon as the
// status transition is persisted.
func (uc *DefaultFulfillmentUsecase) StartInjection(ctx context.Context, orderID string) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Injection.Enabled {
		return fmt.Errorf("%w: injection is not enabled for order %s", domain.ErrPreconditionFailed, orderID)
	}
	if !order.CanStartInjection() {
		return fmt.Errorf("%w: injection cannot start from status %s", domain.ErrPreconditionFailed, order.Injection.Status)
	}

	leads, err := uc.eligibleLeads(ctx, order)
	if err != nil {
		return err
	}
	if len(leads) == 0 {
		return fmt.Errorf("%w: order has no leads eligible for automatic submission", domain.ErrPreconditionFailed)
	}

	if err := uc.OrderRepo.UpdateInjectionStatus(ctx, orderID, domain.InjectionInProgress); err != nil {
		return err
	}

	slog.Info("injection started",
		"order_id", orderID, "mode", order.Injection.Mode, "leads", len(leads))

	// Detached from the request context: the pipeline outlives the call.
	switch order.Injection.Mode {
	case domain.InjectionModeScheduled:
		go uc.runScheduled(context.Background(), order, leads)
	default:
		go uc.runBulk(context.Background(), order, leads)
	}
	return nil
}

func (uc *DefaultFulfillmentUsecase) PauseInjection(ctx context.Context, orderID string) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Injection.Status != domain.InjectionInProgress {
		return fmt.Errorf("%w: only in_progress injection can be paused, got %s", domain.ErrPreconditionFailed, order.Injection.Status)
	}
	return uc.OrderRepo.UpdateInjectionStatus(ctx, orderID, domain.InjectionPaused)
}

func (uc *DefaultFulfillmentUsecase) StopInjection(ctx context.Context, orderID string) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	status := order.Injection.Status
	if status != domain.InjectionInProgress && status != domain.InjectionPaused {
		return fmt.Errorf("%w: injection cannot be stopped from status %s", domain.ErrPreconditionFailed, status)
	}
	if err := uc.OrderRepo.UpdateInjectionStatus(ctx, orderID, domain.InjectionCompleted); err != nil {
		return err
	}
	return uc.OrderRepo.SetInjectionCompleted(ctx, orderID, time.Now())
}

// eligibleLeads loads the order's reserved leads restricted to the cold/live
// categories its include configuration admits.
func (uc *DefaultFulfillmentUsecase) eligibleLeads(ctx context.Context, order *domain.Order) ([]*domain.Lead, error) {
	types := order.InjectableTypes()
	if len(types) == 0 || len(order.LeadIDs) == 0 {
		return nil, nil
	}
	return uc.LeadRepo.GetByIDs(ctx, order.LeadIDs, types)
}

// runBulk submits eligible leads sequentially with a fixed pacing delay,
// re-reading the injection status before every lead so pause and stop take
// effect at the next boundary.
func (uc *DefaultFulfillmentUsecase) runBulk(ctx context.Context, order *domain.Order, leads []*domain.Lead) {
	for i, lead := range leads {
		current, err := uc.OrderRepo.GetByID(ctx, order.ID)
		if err != nil {
			slog.Error("bulk injection aborted: order re-read failed", "order_id", order.ID, "error", err)
			uc.failInjection(ctx, order.ID)
			return
		}
		if current.Injection.Status != domain.InjectionInProgress {
			slog.Info("bulk injection halted", "order_id", order.ID, "status", current.Injection.Status)
			return
		}
		if err := uc.submitLead(ctx, current, lead); err != nil {
			slog.Error("bulk injection aborted", "order_id", order.ID, "lead_id", lead.ID, "error", err)
			uc.failInjection(ctx, order.ID)
			return
		}
		if i < len(leads)-1 && uc.Config.BulkPacing > 0 {
			time.Sleep(uc.Config.BulkPacing)
		}
	}
}

func (uc *DefaultFulfillmentUsecase) failInjection(ctx context.Context, orderID string) {
	if err := uc.OrderRepo.UpdateInjectionStatus(ctx, orderID, domain.InjectionFailed); err != nil {
		slog.Error("failed to mark injection failed", "order_id", orderID, "error", err)
	}
}
