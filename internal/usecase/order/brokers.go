package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

// AssignBrokers is the manual counterpart of the automatic broker resolution:
// an operator maps specific leads of the order to brokers, either by broker
// id or by redirect domain.
func (uc *DefaultFulfillmentUsecase) AssignBrokers(ctx context.Context, input *orderdto.AssignBrokersInput) error {
	if len(input.Assignments) == 0 {
		return fmt.Errorf("%w: no assignments given", domain.ErrValidation)
	}
	order, err := uc.OrderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return err
	}

	for _, a := range input.Assignments {
		if a.BrokerID == "" && a.Domain == "" {
			return fmt.Errorf("%w: assignment for lead %s needs a broker id or a domain", domain.ErrValidation, a.LeadID)
		}
		lead, err := uc.LeadRepo.GetByID(ctx, a.LeadID)
		if err != nil {
			return err
		}
		if !containsID(order.LeadIDs, lead.ID) {
			return fmt.Errorf("%w: lead %s does not belong to order %s", domain.ErrValidation, lead.ID, order.ID)
		}

		if a.BrokerID != "" {
			if err := uc.assignExistingBroker(ctx, lead, a.BrokerID, input.AssignedBy, order.ID, a.Domain); err != nil {
				return err
			}
		} else {
			if _, err := uc.Brokers.AssignByDomain(ctx, lead, a.Domain, input.AssignedBy, order.ID); err != nil {
				return err
			}
		}
		uc.Metrics.RecordBrokerAssignment("manual")
		if err := uc.OrderRepo.IncrementBrokersAssigned(ctx, order.ID, 1); err != nil {
			return err
		}
	}

	if err := uc.OrderRepo.SetBrokerAssignmentPending(ctx, order.ID, false); err != nil {
		return err
	}
	refreshed, err := uc.OrderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	uc.maybeCompleteBrokerAssignment(ctx, refreshed)
	return nil
}

func (uc *DefaultFulfillmentUsecase) assignExistingBroker(ctx context.Context, lead *domain.Lead, brokerID, assignedBy, orderID, redirectDomain string) error {
	broker, err := uc.BrokerRepo.GetByID(ctx, brokerID)
	if err != nil {
		return err
	}
	if lead.IsAssignedToBroker(broker.ID) && lead.BrokerLogFor(orderID) != nil {
		slog.Info("lead already assigned to broker", "lead_id", lead.ID, "broker_id", broker.ID)
		return nil
	}
	lead.AssignBroker(broker.ID, assignedBy, orderID, redirectDomain)
	lead.SetBrokerLogStatus(orderID, domain.LogStatusSuccessful, redirectDomain)
	broker.AssignLead(lead.ID)
	if err := uc.BrokerRepo.Save(ctx, broker); err != nil {
		return err
	}
	return uc.LeadRepo.Save(ctx, lead)
}

func (uc *DefaultFulfillmentUsecase) SkipBrokerAssignment(ctx context.Context, orderID, actor string) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.BrokerAssignment.Status != domain.BrokerAssignmentPending {
		return fmt.Errorf("%w: broker assignment already %s", domain.ErrPreconditionFailed, order.BrokerAssignment.Status)
	}
	now := time.Now()
	order.BrokerAssignment.Status = domain.BrokerAssignmentSkipped
	order.BrokerAssignment.AssignedBy = actor
	order.BrokerAssignment.AssignedAt = &now
	order.Progress.BrokerAssignmentPending = false
	return uc.OrderRepo.Update(ctx, order)
}

// SkipFTDHandling releases an order from the manual-fill requirement without
// delivering its FTD leads.
func (uc *DefaultFulfillmentUsecase) SkipFTDHandling(ctx context.Context, orderID, actor string) error {
	return uc.resolveFTDHandling(ctx, orderID, actor, domain.FTDHandlingSkipped)
}

func (uc *DefaultFulfillmentUsecase) CompleteFTDHandling(ctx context.Context, orderID, actor string) error {
	return uc.resolveFTDHandling(ctx, orderID, actor, domain.FTDHandlingCompleted)
}

func (uc *DefaultFulfillmentUsecase) resolveFTDHandling(ctx context.Context, orderID, actor string, status domain.FTDHandlingStatus) error {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	current := order.FTDHandling.Status
	if current != domain.FTDHandlingPending && current != domain.FTDHandlingManualFill {
		return fmt.Errorf("%w: ftd handling already %s", domain.ErrPreconditionFailed, current)
	}
	now := time.Now()
	order.FTDHandling.Status = status
	if status == domain.FTDHandlingSkipped {
		order.FTDHandling.SkippedAt = &now
		order.FTDHandling.Notes = "skipped by " + actor
	} else {
		order.FTDHandling.CompletedAt = &now
	}
	order.Progress.FTDsPendingManualFill = 0
	return uc.OrderRepo.Update(ctx, order)
}

// PendingBrokerLeads lists the order's leads that went through submission but
// still lack a successful broker-history entry.
func (uc *DefaultFulfillmentUsecase) PendingBrokerLeads(ctx context.Context, orderID string) ([]*domain.Lead, error) {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	leads, err := uc.LeadRepo.GetByIDs(ctx, order.LeadIDs, nil)
	if err != nil {
		return nil, err
	}
	var pending []*domain.Lead
	for _, lead := range leads {
		entry := lead.BrokerLogFor(order.ID)
		if entry != nil && entry.Status == domain.LogStatusSuccessful {
			continue
		}
		if lead.HasSuccessfulSubmission(order.ID) {
			pending = append(pending, lead)
		}
	}
	return pending, nil
}

func (uc *DefaultFulfillmentUsecase) FTDLeads(ctx context.Context, orderID string) ([]*domain.Lead, error) {
	order, err := uc.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.LeadRepo.GetByIDs(ctx, order.LeadIDs, []domain.LeadType{domain.LeadTypeFTD})
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
