package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/usecase/broker"
)

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*domain.Lead
	order []string
	saves int
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*domain.Lead)}
}

func (f *fakeLeadRepo) add(lead *domain.Lead) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[lead.ID] = lead
	f.order = append(f.order, lead.ID)
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeLeadRepo) GetByIDs(_ context.Context, ids []string, types []domain.LeadType) ([]*domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Lead
	for _, id := range ids {
		lead, ok := f.leads[id]
		if !ok {
			continue
		}
		if len(types) > 0 && !containsType(types, lead.LeadType) {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func (f *fakeLeadRepo) FindAvailable(_ context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Lead
	for _, id := range f.order {
		lead := f.leads[id]
		if lead.LeadType != filter.LeadType || lead.IsAssigned {
			continue
		}
		if filter.ExcludeSleeping && lead.Availability == domain.AvailabilitySleep {
			continue
		}
		if filter.Country != "" && lead.Country != filter.Country {
			continue
		}
		if filter.Gender != "" && lead.Gender != filter.Gender {
			continue
		}
		out = append(out, lead)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLeadRepo) Save(_ context.Context, lead *domain.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.leads[lead.ID]; !ok {
		f.order = append(f.order, lead.ID)
	}
	f.leads[lead.ID] = lead
	f.saves++
	return nil
}

func containsType(types []domain.LeadType, t domain.LeadType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	// Counters are owned by the increment methods.
	progress := stored.Progress
	copied := *order
	copied.Progress.Successful = progress.Successful
	copied.Progress.Failed = progress.Failed
	copied.Progress.BrokersAssigned = progress.BrokersAssigned
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ domain.OrderFilter, _, _ int) ([]*domain.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.orders {
		copied := *o
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) Stats(_ context.Context, _ string) ([]domain.OrderStats, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateInjectionStatus(_ context.Context, orderID string, status domain.InjectionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Injection.Status = status
	return nil
}

func (f *fakeOrderRepo) SetInjectionCompleted(_ context.Context, orderID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Progress.CompletedAt = &at
	return nil
}

func (f *fakeOrderRepo) IncrementProgress(_ context.Context, orderID string, successDelta, failedDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Progress.Successful += successDelta
	order.Progress.Failed += failedDelta
	now := time.Now()
	order.Progress.LastInjectionAt = &now
	return nil
}

func (f *fakeOrderRepo) IncrementBrokersAssigned(_ context.Context, orderID string, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Progress.BrokersAssigned += delta
	return nil
}

func (f *fakeOrderRepo) SetBrokerAssignmentPending(_ context.Context, orderID string, pending bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Progress.BrokerAssignmentPending = pending
	return nil
}

type fakeBrokerRepo struct {
	mu      sync.Mutex
	brokers map[string]*domain.Broker
	creates int
}

func newFakeBrokerRepo() *fakeBrokerRepo {
	return &fakeBrokerRepo{brokers: make(map[string]*domain.Broker)}
}

func (f *fakeBrokerRepo) GetByID(_ context.Context, id string) (*domain.Broker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	broker, ok := f.brokers[id]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}
	return broker, nil
}

func (f *fakeBrokerRepo) FindActiveByDomain(_ context.Context, d string) (*domain.Broker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.brokers {
		if b.Domain == d && b.IsActive {
			return b, nil
		}
	}
	return nil, domain.ErrBrokerNotFound
}

func (f *fakeBrokerRepo) Create(_ context.Context, broker *domain.Broker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brokers[broker.ID] = broker
	f.creates++
	return nil
}

func (f *fakeBrokerRepo) Save(_ context.Context, broker *domain.Broker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brokers[broker.ID] = broker
	return nil
}

func (f *fakeBrokerRepo) List(_ context.Context, _ bool) ([]*domain.Broker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Broker
	for _, b := range f.brokers {
		out = append(out, b)
	}
	return out, nil
}

// fakeProvisioner hands out in-memory fingerprints and proxies without
// touching a provider.
type fakeProvisioner struct {
	mu           sync.Mutex
	fingerprints map[string]*domain.Fingerprint
	failProxy    bool
	assigned     int
	released     []domain.ReservationStatus
}

func newFakeProvisioner() *fakeProvisioner {
	return &fakeProvisioner{fingerprints: make(map[string]*domain.Fingerprint)}
}

func (f *fakeProvisioner) EnsureFingerprint(_ context.Context, lead *domain.Lead, _ domain.DeviceConfig, createdBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lead.FingerprintID != "" {
		return nil
	}
	fp := &domain.Fingerprint{ID: uuid.New().String(), LeadID: lead.ID, CreatedBy: createdBy, DeviceType: domain.DefaultDeviceType}
	f.fingerprints[lead.ID] = fp
	lead.FingerprintID = fp.ID
	return nil
}

func (f *fakeProvisioner) FingerprintFor(_ context.Context, leadID string) (*domain.Fingerprint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fingerprints[leadID], nil
}

func (f *fakeProvisioner) AssignProxy(_ context.Context, lead *domain.Lead, orderID, _ string) (*domain.Proxy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProxy {
		return nil, fmt.Errorf("%w: provider unavailable", domain.ErrProxyUnavailable)
	}
	proxy := &domain.Proxy{ID: uuid.New().String(), Country: lead.Country, Status: domain.ProxyActive}
	proxy.AssignLead(lead.ID, orderID)
	lead.ReserveProxy(proxy.ID, orderID)
	f.assigned++
	return proxy, nil
}

func (f *fakeProvisioner) ReleaseProxy(_ context.Context, lead *domain.Lead, proxy *domain.Proxy, orderID string, status domain.ReservationStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead.CloseProxyReservation(orderID, status)
	proxy.ReleaseLead(lead.ID, status)
	f.released = append(f.released, status)
}

// fakeInjector replays scripted results per lead id, falling back to the
// default result.
type fakeInjector struct {
	mu       sync.Mutex
	results  map[string]*domain.InjectionResult
	fallback *domain.InjectionResult
	err      error
	calls    []string
}

func newFakeInjector(fallback *domain.InjectionResult) *fakeInjector {
	return &fakeInjector{results: make(map[string]*domain.InjectionResult), fallback: fallback}
}

func (f *fakeInjector) Run(_ context.Context, payload *domain.InjectionPayload) (*domain.InjectionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, payload.LeadID)
	if f.err != nil {
		return nil, f.err
	}
	if result, ok := f.results[payload.LeadID]; ok {
		return result, nil
	}
	return f.fallback, nil
}

type fixture struct {
	uc          *DefaultFulfillmentUsecase
	leadRepo    *fakeLeadRepo
	orderRepo   *fakeOrderRepo
	brokerRepo  *fakeBrokerRepo
	provisioner *fakeProvisioner
	injector    *fakeInjector
}

func newFixture() *fixture {
	leadRepo := newFakeLeadRepo()
	orderRepo := newFakeOrderRepo()
	brokerRepo := newFakeBrokerRepo()
	provisioner := newFakeProvisioner()
	injector := newFakeInjector(&domain.InjectionResult{Success: true})

	uc := NewDefaultFulfillmentUsecase(
		leadRepo, orderRepo, brokerRepo,
		provisioner, broker.NewResolver(brokerRepo),
		injector, nil, nil, nil,
		InjectionConfig{TargetURL: "https://target.example/submit"},
	)
	return &fixture{
		uc:          uc,
		leadRepo:    leadRepo,
		orderRepo:   orderRepo,
		brokerRepo:  brokerRepo,
		provisioner: provisioner,
		injector:    injector,
	}
}

func makeLead(leadType domain.LeadType, phone string) *domain.Lead {
	return &domain.Lead{
		ID:           uuid.New().String(),
		LeadType:     leadType,
		FirstName:    "Test",
		LastName:     "Lead",
		Email:        "lead@example.com",
		Phone:        phone,
		Country:      "United Kingdom",
		CountryCode:  "44",
		Availability: domain.AvailabilityAvailable,
	}
}

var errStore = errors.New("store unavailable")
