package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

func (uc *DefaultFulfillmentUsecase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetByID(ctx, orderID)
}

func (uc *DefaultFulfillmentUsecase) ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*orderdto.ListOrdersOutput, error) {
	page, limit := input.Page, input.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	orders, total, err := uc.OrderRepo.List(ctx, input.Filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &orderdto.ListOrdersOutput{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func (uc *DefaultFulfillmentUsecase) GetOrderStats(ctx context.Context, requesterID string) ([]domain.OrderStats, error) {
	return uc.OrderRepo.Stats(ctx, requesterID)
}

func (uc *DefaultFulfillmentUsecase) UpdateOrder(ctx context.Context, input *orderdto.UpdateOrderInput) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: cancelled orders are immutable", domain.ErrPreconditionFailed)
	}
	if input.Priority != nil {
		order.Priority = *input.Priority
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.OrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder releases every reserved lead back to the pool and marks the
// order cancelled. Orders are never hard-deleted.
func (uc *DefaultFulfillmentUsecase) CancelOrder(ctx context.Context, orderID, actor, reason string) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.OrderStatusCancelled {
		return fmt.Errorf("%w: order is already cancelled", domain.ErrPreconditionFailed)
	}
	if order.Injection.Status == domain.InjectionInProgress {
		return fmt.Errorf("%w: stop injection before cancelling the order", domain.ErrPreconditionFailed)
	}

	leads, err := uc.LeadRepo.GetByIDs(ctx, order.LeadIDs, nil)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		lead.IsAssigned = false
		lead.AssignedTo = ""
		lead.OrderID = ""
		if err := uc.LeadRepo.Save(ctx, lead); err != nil {
			slog.Error("lead release failed during cancel", "lead_id", lead.ID, "order_id", orderID, "error", err)
		}
	}

	now := time.Now()
	order.Status = domain.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason
	order.UpdatedAt = now
	if err := uc.OrderRepo.Update(ctx, order); err != nil {
		return err
	}

	uc.publishOrderEvent(kafka.OrderLifecycleEvent{
		OrderID:     order.ID,
		RequesterID: order.RequesterID,
		Status:      string(order.Status),
		Requested:   order.TotalRequested(),
		Fulfilled:   order.TotalFulfilled(),
		Timestamp:   now.Unix(),
	})
	slog.Info("order cancelled", "order_id", orderID, "actor", actor, "reason", reason)
	return nil
}
