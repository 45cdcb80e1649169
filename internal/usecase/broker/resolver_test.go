package broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type fakeBrokerRepo struct {
	brokers map[string]*domain.Broker
	creates int
	saves   int
}

func newFakeBrokerRepo() *fakeBrokerRepo {
	return &fakeBrokerRepo{brokers: make(map[string]*domain.Broker)}
}

func (f *fakeBrokerRepo) GetByID(_ context.Context, id string) (*domain.Broker, error) {
	b, ok := f.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}
	return b, nil
}

func (f *fakeBrokerRepo) FindActiveByDomain(_ context.Context, d string) (*domain.Broker, error) {
	for _, b := range f.brokers {
		if b.Domain == d && b.IsActive {
			return b, nil
		}
	}
	return nil, domain.ErrBrokerNotFound
}

func (f *fakeBrokerRepo) Create(_ context.Context, b *domain.Broker) error {
	f.creates++
	f.brokers[b.ID] = b
	return nil
}

func (f *fakeBrokerRepo) Save(_ context.Context, b *domain.Broker) error {
	f.saves++
	f.brokers[b.ID] = b
	return nil
}

func (f *fakeBrokerRepo) List(_ context.Context, activeOnly bool) ([]*domain.Broker, error) {
	var out []*domain.Broker
	for _, b := range f.brokers {
		if !activeOnly || b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestAssignByDomain_CreatesBrokerOnFirstSight(t *testing.T) {
	repo := newFakeBrokerRepo()
	resolver := NewResolver(repo)
	lead := &domain.Lead{ID: "lead-1"}

	broker, err := resolver.AssignByDomain(context.Background(), lead, "partnerx.com", "user-1", "order-1")
	require.NoError(t, err)
	require.Equal(t, "partnerx.com", broker.Domain)
	require.Equal(t, "partnerx.com", broker.Name)
	require.True(t, broker.IsActive)
	require.Equal(t, 1, broker.TotalLeadsAssigned)

	entry := lead.BrokerLogFor("order-1")
	require.NotNil(t, entry)
	require.Equal(t, domain.LogStatusSuccessful, entry.Status)
	require.Equal(t, "partnerx.com", entry.Domain)
}

func TestAssignByDomain_Idempotent(t *testing.T) {
	repo := newFakeBrokerRepo()
	resolver := NewResolver(repo)
	lead := &domain.Lead{ID: "lead-1"}

	first, err := resolver.AssignByDomain(context.Background(), lead, "partnerx.com", "user-1", "order-1")
	require.NoError(t, err)

	second, err := resolver.AssignByDomain(context.Background(), lead, "partnerx.com", "user-1", "order-2")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, repo.creates)
	// Second resolution is a no-op: the usage counter stays at one.
	require.Equal(t, 1, second.TotalLeadsAssigned)
}

func TestAssignByDomain_PlaceholderWhenNoDomain(t *testing.T) {
	repo := newFakeBrokerRepo()
	resolver := NewResolver(repo)
	lead := &domain.Lead{ID: "lead-1"}

	broker, err := resolver.AssignByDomain(context.Background(), lead, "", "user-1", "order-1")
	require.NoError(t, err)
	require.NotEmpty(t, broker.Domain)
	require.Contains(t, broker.Domain, "autogen-")
}
