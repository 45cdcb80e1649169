package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/stretchr/testify/require"
)

// seedInjectionOrder stores an order in in_progress state with the given cold
// leads reserved, ready for the bulk runner.
func seedInjectionOrder(f *fixture, leadCount int) (*domain.Order, []*domain.Lead) {
	order := &domain.Order{
		ID:          uuid.New().String(),
		RequesterID: "op-1",
		Status:      domain.OrderStatusFulfilled,
		Requests:    domain.LeadCounts{Cold: leadCount},
		Fulfilled:   domain.LeadCounts{Cold: leadCount},
		Injection: domain.InjectionSettings{
			Enabled:      true,
			Mode:         domain.InjectionModeBulk,
			Status:       domain.InjectionInProgress,
			IncludeTypes: domain.IncludeTypes{Cold: true},
		},
		Progress:         domain.InjectionProgress{TotalToInject: leadCount},
		FTDHandling:      domain.FTDHandling{Status: domain.FTDHandlingCompleted},
		BrokerAssignment: domain.BrokerAssignment{Status: domain.BrokerAssignmentPending},
	}

	leads := make([]*domain.Lead, 0, leadCount)
	for i := 0; i < leadCount; i++ {
		lead := makeLead(domain.LeadTypeCold, fmt.Sprintf("+1212555%04d", i))
		lead.IsAssigned = true
		lead.AssignedTo = "op-1"
		lead.OrderID = order.ID
		f.leadRepo.add(lead)
		order.LeadIDs = append(order.LeadIDs, lead.ID)
		leads = append(leads, lead)
	}
	_ = f.orderRepo.Create(context.Background(), order)
	return order, leads
}

func TestStartInjection_PreconditionFailed(t *testing.T) {
	f := newFixture()
	order, _ := seedInjectionOrder(f, 2)
	require.NoError(t, f.orderRepo.UpdateInjectionStatus(context.Background(), order.ID, domain.InjectionCompleted))

	err := f.uc.StartInjection(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrPreconditionFailed)

	after, err := f.orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Zero(t, after.Progress.Successful)
	require.Zero(t, after.Progress.Failed)
	require.Empty(t, f.injector.calls)
}

func TestStartInjection_RequiresInjectionEnabled(t *testing.T) {
	f := newFixture()
	order, _ := seedInjectionOrder(f, 1)
	stored, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	stored.Injection.Enabled = false
	stored.Injection.Status = domain.InjectionPending
	require.NoError(t, f.orderRepo.Update(context.Background(), stored))

	err := f.uc.StartInjection(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestStartInjection_UnknownOrder(t *testing.T) {
	f := newFixture()
	err := f.uc.StartInjection(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestBulkInjection_ResolvesBrokerFromFinalDomain(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	f.injector.fallback = &domain.InjectionResult{Success: true, FinalDomain: "partnerx.com"}

	f.uc.runBulk(context.Background(), order, leads)

	broker, err := f.brokerRepo.FindActiveByDomain(context.Background(), "partnerx.com")
	require.NoError(t, err, "a broker is auto-created for a first-seen domain")
	require.True(t, broker.IsLeadAssigned(leads[0].ID))

	entry := leads[0].BrokerLogFor(order.ID)
	require.NotNil(t, entry)
	require.Equal(t, domain.LogStatusSuccessful, entry.Status)
	require.Equal(t, "partnerx.com", entry.Domain)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Equal(t, 1, after.Progress.Successful)
	require.Equal(t, 1, after.Progress.BrokersAssigned)
}

func TestBulkInjection_CompletesWhenAllProcessed(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 3)
	f.injector.fallback = &domain.InjectionResult{Success: true, FinalDomain: "partnerx.com"}

	f.uc.runBulk(context.Background(), order, leads)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Equal(t, 3, after.Progress.Successful)
	require.Equal(t, domain.InjectionCompleted, after.Injection.Status)
	require.NotNil(t, after.Progress.CompletedAt)
	require.Equal(t, domain.BrokerAssignmentCompleted, after.BrokerAssignment.Status)
}

func TestBulkInjection_ProxyFailureCountsAsFailed(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 2)
	f.provisioner.failProxy = true

	f.uc.runBulk(context.Background(), order, leads)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Equal(t, 0, after.Progress.Successful)
	require.Equal(t, 2, after.Progress.Failed)
	require.Empty(t, f.injector.calls, "no submission without a proxy")
	require.Equal(t, domain.InjectionCompleted, after.Injection.Status)
}

func TestBulkInjection_TaskFailureMarksRelationshipFailed(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	require.NoError(t, leads[0].AddRelationshipLog(domain.RelationCampaign, "camp-1", "op-1", order.ID))
	f.injector.fallback = &domain.InjectionResult{Success: false, ErrOutput: "exit status 1"}

	f.uc.runBulk(context.Background(), order, leads)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Equal(t, 1, after.Progress.Failed)
	require.Equal(t, domain.LogStatusFailed, leads[0].NetworkLogs[0].Status)
	require.Equal(t, []domain.ReservationStatus{domain.ReservationFailed}, f.provisioner.released)
}

func TestBulkInjection_NoFinalDomainFlagsBrokerPending(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	f.injector.fallback = &domain.InjectionResult{Success: true}

	f.uc.runBulk(context.Background(), order, leads)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.True(t, after.Progress.BrokerAssignmentPending)
	require.Equal(t, 1, after.Progress.Failed, "no captured domain is recorded as a failed unit")
}

func TestBulkInjection_ProxyExpiryClosesReservationExpired(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	f.injector.fallback = &domain.InjectionResult{Success: true, FinalDomain: "partnerx.com", ProxyExpired: true}

	f.uc.runBulk(context.Background(), order, leads)

	require.Equal(t, []domain.ReservationStatus{domain.ReservationExpired}, f.provisioner.released)
	require.Empty(t, leads[0].ActiveProxyID(order.ID))
}

func TestBulkInjection_HaltsWhenPaused(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 3)
	require.NoError(t, f.orderRepo.UpdateInjectionStatus(context.Background(), order.ID, domain.InjectionPaused))

	f.uc.runBulk(context.Background(), order, leads)

	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Zero(t, after.Progress.Successful+after.Progress.Failed)
	require.Empty(t, f.injector.calls)
}

func TestBulkInjection_SkipsAlreadySubmittedLead(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	require.NoError(t, leads[0].AddRelationshipLog(domain.RelationCampaign, "camp-1", "op-1", order.ID))
	leads[0].SetRelationshipStatus(order.ID, domain.LogStatusCompleted)

	f.uc.runBulk(context.Background(), order, leads)

	require.Empty(t, f.injector.calls)
	after, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	require.Zero(t, after.Progress.Successful+after.Progress.Failed)
}

func TestBulkInjection_WakesSleepingLead(t *testing.T) {
	f := newFixture()
	order, leads := seedInjectionOrder(f, 1)
	leads[0].PutToSleep("cooldown")
	f.injector.fallback = &domain.InjectionResult{Success: true, FinalDomain: "partnerx.com"}

	f.uc.runBulk(context.Background(), order, leads)

	require.Equal(t, domain.AvailabilityAvailable, leads[0].Availability)
	require.Len(t, f.injector.calls, 1)
}

func TestPauseAndStopTransitions(t *testing.T) {
	f := newFixture()
	order, _ := seedInjectionOrder(f, 1)
	ctx := context.Background()

	require.NoError(t, f.uc.PauseInjection(ctx, order.ID))
	err := f.uc.PauseInjection(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrPreconditionFailed, "pausing twice is not legal")

	require.NoError(t, f.uc.StopInjection(ctx, order.ID))
	after, _ := f.orderRepo.GetByID(ctx, order.ID)
	require.Equal(t, domain.InjectionCompleted, after.Injection.Status)
	require.NotNil(t, after.Progress.CompletedAt)

	err = f.uc.StopInjection(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrPreconditionFailed)
}
