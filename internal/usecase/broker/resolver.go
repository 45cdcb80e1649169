package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
)

// Resolver maps the destination domain reported by a finished injection to a
// broker record, creating one on first sight of a domain.
type Resolver struct {
	brokerRepo domain.BrokerRepository
}

func NewResolver(brokerRepo domain.BrokerRepository) *Resolver {
	return &Resolver{brokerRepo: brokerRepo}
}

// AssignByDomain resolves (or creates) the broker for the domain and logs the
// assignment on the lead. The caller persists the lead; the broker is saved
// here. Assigning a lead to a broker it already holds is a no-op success.
func (r *Resolver) AssignByDomain(ctx context.Context, lead *domain.Lead, redirectDomain, assignedBy, orderID string) (*domain.Broker, error) {
	broker, err := r.resolve(ctx, redirectDomain, assignedBy)
	if err != nil {
		return nil, err
	}

	if lead.IsAssignedToBroker(broker.ID) {
		slog.Debug("lead already assigned to broker",
			"lead_id", lead.ID, "broker_id", broker.ID)
		return broker, nil
	}

	lead.AssignBroker(broker.ID, assignedBy, orderID, redirectDomain)
	lead.SetBrokerLogStatus(orderID, domain.LogStatusSuccessful, redirectDomain)

	broker.AssignLead(lead.ID)
	if err := r.brokerRepo.Save(ctx, broker); err != nil {
		return nil, fmt.Errorf("failed to save broker %s: %w", broker.ID, err)
	}

	return broker, nil
}

func (r *Resolver) resolve(ctx context.Context, redirectDomain, createdBy string) (*domain.Broker, error) {
	if redirectDomain != "" {
		broker, err := r.brokerRepo.FindActiveByDomain(ctx, redirectDomain)
		if err == nil {
			return broker, nil
		}
		if !errors.Is(err, domain.ErrBrokerNotFound) {
			return nil, err
		}
	}

	broker := &domain.Broker{
		ID:        uuid.New().String(),
		Name:      redirectDomain,
		Domain:    redirectDomain,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	if redirectDomain == "" {
		// No domain captured: placeholder identity so uniqueness holds.
		broker.Name = fmt.Sprintf("auto-broker-%s", time.Now().UTC().Format(time.RFC3339))
		broker.Domain = fmt.Sprintf("autogen-%s", broker.ID)
		broker.Description = "Auto-created for a lead with no redirect domain"
	} else {
		broker.Description = fmt.Sprintf("Auto-created from injection redirect to %s", redirectDomain)
	}

	if err := r.brokerRepo.Create(ctx, broker); err != nil {
		return nil, fmt.Errorf("failed to create broker for domain %q: %w", redirectDomain, err)
	}
	slog.Info("created broker from redirect domain", "broker_id", broker.ID, "domain", broker.Domain)

	return broker, nil
}
