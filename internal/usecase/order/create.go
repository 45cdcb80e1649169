package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	orderdto "github.com/leadrun/fulfillment-service/internal/usecase/dto/order"
)

// relationshipTarget pairs a history-log kind with the requested target id.
type relationshipTarget struct {
	kind     domain.RelationshipKind
	targetID string
}

func (uc *DefaultFulfillmentUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	if input.RequesterID == "" {
		return nil, fmt.Errorf("%w: requester id is required", domain.ErrValidation)
	}
	if input.Requests.Total() <= 0 {
		return nil, fmt.Errorf("%w: at least one lead must be requested", domain.ErrValidation)
	}
	if input.Injection.Enabled {
		if input.Injection.Mode != domain.InjectionModeBulk && input.Injection.Mode != domain.InjectionModeScheduled {
			return nil, fmt.Errorf("%w: unknown injection mode %q", domain.ErrValidation, input.Injection.Mode)
		}
	}

	targets := requestedTargets(input)
	orderID := uuid.New().String()

	ftd, err := uc.selectStandard(ctx, domain.LeadTypeFTD, input.Requests.FTD, input, targets)
	if err != nil {
		return nil, err
	}
	cold, err := uc.selectStandard(ctx, domain.LeadTypeCold, input.Requests.Cold, input, targets)
	if err != nil {
		return nil, err
	}
	live, err := uc.selectStandard(ctx, domain.LeadTypeLive, input.Requests.Live, input, targets)
	if err != nil {
		return nil, err
	}
	filler, err := uc.selectFillers(ctx, input.Requests.Filler, input, targets)
	if err != nil {
		return nil, err
	}

	order := uc.buildOrder(orderID, input, domain.LeadCounts{
		FTD:    len(ftd),
		Filler: len(filler),
		Cold:   len(cold),
		Live:   len(live),
	})

	selected := make([]*domain.Lead, 0, len(ftd)+len(filler)+len(cold)+len(live))
	selected = append(selected, ftd...)
	selected = append(selected, filler...)
	selected = append(selected, cold...)
	selected = append(selected, live...)

	for _, lead := range selected {
		uc.reserveLead(ctx, lead, order, input.RequesterID, targets)
		order.LeadIDs = append(order.LeadIDs, lead.ID)
	}

	if err := uc.OrderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	uc.Metrics.RecordOrderCreated(string(order.Status))
	uc.Metrics.RecordFulfilled(string(domain.LeadTypeFTD), order.Fulfilled.FTD)
	uc.Metrics.RecordFulfilled(string(domain.LeadTypeFiller), order.Fulfilled.Filler)
	uc.Metrics.RecordFulfilled(string(domain.LeadTypeCold), order.Fulfilled.Cold)
	uc.Metrics.RecordFulfilled(string(domain.LeadTypeLive), order.Fulfilled.Live)

	uc.publishOrderEvent(kafka.OrderLifecycleEvent{
		OrderID:     order.ID,
		RequesterID: order.RequesterID,
		Status:      string(order.Status),
		Requested:   order.TotalRequested(),
		Fulfilled:   order.TotalFulfilled(),
		Timestamp:   time.Now().Unix(),
	})

	return &orderdto.OrderOutput{Order: *order, Leads: selected}, nil
}

// selectStandard pulls non-sleeping leads of one category, oversampling 2x to
// absorb the relationship-history exclusion, then truncates to the quota.
func (uc *DefaultFulfillmentUsecase) selectStandard(
	ctx context.Context,
	leadType domain.LeadType,
	count int,
	input *orderdto.CreateOrderInput,
	targets []relationshipTarget) ([]*domain.Lead, error) {

	if count <= 0 {
		return nil, nil
	}
	candidates, err := uc.LeadRepo.FindAvailable(ctx, domain.LeadFilter{
		LeadType:        leadType,
		Country:         input.Country,
		Gender:          input.Gender,
		ExcludeSleeping: true,
		Limit:           count * 2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s leads: %w", leadType, err)
	}
	eligible := excludeLogged(candidates, targets)
	if len(eligible) > count {
		eligible = eligible[:count]
	}
	return eligible, nil
}

// selectFillers oversamples randomly with a tier-dependent multiplier, then
// delegates the final pick to the repetition planner.
func (uc *DefaultFulfillmentUsecase) selectFillers(
	ctx context.Context,
	count int,
	input *orderdto.CreateOrderInput,
	targets []relationshipTarget) ([]*domain.Lead, error) {

	if count <= 0 {
		return nil, nil
	}
	candidates, err := uc.LeadRepo.FindAvailable(ctx, domain.LeadFilter{
		LeadType:        domain.LeadTypeFiller,
		Country:         input.Country,
		Gender:          input.Gender,
		ExcludeSleeping: true,
		Limit:           count * fillerOversample(count),
		RandomSample:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query filler leads: %w", err)
	}
	return planFillerSelection(excludeLogged(candidates, targets), count), nil
}

func fillerOversample(count int) int {
	switch {
	case count <= 10:
		return 50
	case count <= 20:
		return 25
	case count <= 40:
		return 15
	default:
		return 5
	}
}

func requestedTargets(input *orderdto.CreateOrderInput) []relationshipTarget {
	var targets []relationshipTarget
	if input.ClientNetworkID != "" {
		targets = append(targets, relationshipTarget{domain.RelationClientNetwork, input.ClientNetworkID})
	}
	if input.OurNetworkID != "" {
		targets = append(targets, relationshipTarget{domain.RelationOurNetwork, input.OurNetworkID})
	}
	if input.CampaignID != "" {
		targets = append(targets, relationshipTarget{domain.RelationCampaign, input.CampaignID})
	}
	return targets
}

// excludeLogged drops candidates that already carry a history entry for any
// requested target, regardless of order.
func excludeLogged(candidates []*domain.Lead, targets []relationshipTarget) []*domain.Lead {
	if len(targets) == 0 {
		return candidates
	}
	eligible := candidates[:0:0]
	for _, lead := range candidates {
		logged := false
		for _, target := range targets {
			if lead.IsLoggedAgainst(target.kind, target.targetID, "") {
				logged = true
				break
			}
		}
		if !logged {
			eligible = append(eligible, lead)
		}
	}
	return eligible
}

// reserveLead stamps ownership and relationship history, persisting the lead
// on its own. A duplicate-relationship conflict is warned and skipped rather
// than failing the whole order.
func (uc *DefaultFulfillmentUsecase) reserveLead(
	ctx context.Context,
	lead *domain.Lead,
	order *domain.Order,
	requesterID string,
	targets []relationshipTarget) {

	lead.IsAssigned = true
	lead.AssignedTo = requesterID
	lead.OrderID = order.ID

	for _, target := range targets {
		if err := lead.AddRelationshipLog(target.kind, target.targetID, requesterID, order.ID); err != nil {
			if errors.Is(err, domain.ErrRelationshipConflict) {
				slog.Warn("lead already logged against target",
					"lead_id", lead.ID, "target_id", target.targetID, "order_id", order.ID)
				continue
			}
			slog.Error("relationship log failed", "lead_id", lead.ID, "error", err)
		}
	}

	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		slog.Error("lead reservation save failed", "lead_id", lead.ID, "order_id", order.ID, "error", err)
	}
}

func (uc *DefaultFulfillmentUsecase) buildOrder(orderID string, input *orderdto.CreateOrderInput, fulfilled domain.LeadCounts) *domain.Order {
	now := time.Now()
	order := &domain.Order{
		ID:              orderID,
		RequesterID:     input.RequesterID,
		Requests:        input.Requests,
		Fulfilled:       fulfilled,
		Priority:        input.Priority,
		Notes:           input.Notes,
		CountryFilter:   input.Country,
		GenderFilter:    input.Gender,
		ClientNetworkID: input.ClientNetworkID,
		OurNetworkID:    input.OurNetworkID,
		CampaignID:      input.CampaignID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	switch {
	case fulfilled.Total() == 0:
		order.Status = domain.OrderStatusCancelled
		order.CancelledAt = &now
		order.CancellationReason = "no matching leads available"
	case fulfilled == input.Requests:
		order.Status = domain.OrderStatusFulfilled
	default:
		order.Status = domain.OrderStatusPartial
	}

	if fulfilled.FTD > 0 {
		order.FTDHandling.Status = domain.FTDHandlingManualFill
		order.Progress.FTDsPendingManualFill = fulfilled.FTD
	} else {
		order.FTDHandling.Status = domain.FTDHandlingCompleted
	}
	order.BrokerAssignment.Status = domain.BrokerAssignmentPending

	order.Injection = domain.InjectionSettings{
		Enabled: input.Injection.Enabled,
		Mode:    input.Injection.Mode,
		Status:  domain.InjectionPending,
		Window: domain.ScheduledWindow{
			StartTime:   input.Injection.StartTime,
			EndTime:     input.Injection.EndTime,
			MinInterval: time.Duration(input.Injection.MinIntervalSec) * time.Second,
			MaxInterval: time.Duration(input.Injection.MaxIntervalSec) * time.Second,
		},
		IncludeTypes: includeFor(input, fulfilled),
		Device:       input.Injection.Device,
	}
	if input.Injection.Enabled {
		if order.Injection.IncludeTypes.Cold {
			order.Progress.TotalToInject += fulfilled.Cold
		}
		if order.Injection.IncludeTypes.Live {
			order.Progress.TotalToInject += fulfilled.Live
		}
	}
	return order
}

// includeFor narrows the automatic pipeline to categories that were both
// fulfilled and, when the caller passed an explicit include set, opted in.
// FTD and filler never qualify for automatic submission.
func includeFor(input *orderdto.CreateOrderInput, fulfilled domain.LeadCounts) domain.IncludeTypes {
	include := domain.IncludeTypes{
		Cold: fulfilled.Cold > 0,
		Live: fulfilled.Live > 0,
	}
	if input.Include != (domain.IncludeTypes{}) {
		include.Cold = include.Cold && input.Include.Cold
		include.Live = include.Live && input.Include.Live
	}
	return include
}
