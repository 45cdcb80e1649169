package domain

import (
	"context"
	"time"
)

// LeadFilter narrows availability queries. Limit caps the result set;
// RandomSample asks the store for a random draw instead of insertion order.
type LeadFilter struct {
	LeadType        LeadType
	Country         string
	Gender          string
	ExcludeSleeping bool
	Limit           int
	RandomSample    bool
}

type LeadRepository interface {
	GetByID(ctx context.Context, id string) (*Lead, error)
	GetByIDs(ctx context.Context, ids []string, types []LeadType) ([]*Lead, error)
	FindAvailable(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Save(ctx context.Context, lead *Lead) error
}

type OrderFilter struct {
	RequesterID string
	Status      OrderStatus
	Priority    string
	DateFrom    time.Time
	DateTo      time.Time
}

type OrderStats struct {
	Status         OrderStatus
	Count          int64
	TotalRequested int64
	TotalFulfilled int64
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
	List(ctx context.Context, filter OrderFilter, page, limit int) ([]*Order, int64, error)
	Stats(ctx context.Context, requesterID string) ([]OrderStats, error)

	UpdateInjectionStatus(ctx context.Context, orderID string, status InjectionStatus) error
	SetInjectionCompleted(ctx context.Context, orderID string, at time.Time) error
	// IncrementProgress atomically bumps the success/failure counters.
	IncrementProgress(ctx context.Context, orderID string, successDelta, failedDelta int) error
	IncrementBrokersAssigned(ctx context.Context, orderID string, delta int) error
	SetBrokerAssignmentPending(ctx context.Context, orderID string, pending bool) error
}

type BrokerRepository interface {
	GetByID(ctx context.Context, id string) (*Broker, error)
	// FindActiveByDomain returns ErrBrokerNotFound when no active broker
	// carries the exact domain.
	FindActiveByDomain(ctx context.Context, domain string) (*Broker, error)
	Create(ctx context.Context, broker *Broker) error
	Save(ctx context.Context, broker *Broker) error
	List(ctx context.Context, activeOnly bool) ([]*Broker, error)
}

type ProxyRepository interface {
	GetByID(ctx context.Context, id string) (*Proxy, error)
	Create(ctx context.Context, proxy *Proxy) error
	Save(ctx context.Context, proxy *Proxy) error
	// FindStaleActive returns active healthy proxies whose last health check
	// predates the cutoff.
	FindStaleActive(ctx context.Context, cutoff time.Time) ([]*Proxy, error)
	FindFailedUnassigned(ctx context.Context) ([]*Proxy, error)
	Delete(ctx context.Context, id string) error
}

type FingerprintRepository interface {
	Create(ctx context.Context, fp *Fingerprint) error
	GetByLeadID(ctx context.Context, leadID string) (*Fingerprint, error)
	ExistsForLead(ctx context.Context, leadID string) (bool, error)
}
