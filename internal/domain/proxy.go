package domain

import "time"

type ProxyStatus string

const (
	ProxyTesting ProxyStatus = "testing"
	ProxyActive  ProxyStatus = "active"
	ProxyFailed  ProxyStatus = "failed"
)

// ProxyConfig is the credential set handed to the injector task.
type ProxyConfig struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     string `json:"port"`
}

type ProxyHealth struct {
	Healthy      bool
	LastCheck    time.Time
	FailedChecks int
	ResponseTime time.Duration
	LastError    string
}

// ProxyLease is the proxy-side view of an exclusive (lead, order) assignment.
type ProxyLease struct {
	LeadID      string
	OrderID     string
	Status      ReservationStatus
	AssignedAt  time.Time
	CompletedAt *time.Time
}

const proxyMaxFailedChecks = 3

type Proxy struct {
	ID          string
	SessionID   string
	Config      ProxyConfig
	Country     string
	CountryCode string
	Status      ProxyStatus
	Health      ProxyHealth
	Lease       *ProxyLease
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Lease the proxy exclusively for one lead submission. Fails when another
// lead currently holds it.
func (p *Proxy) AssignLead(leadID, orderID string) bool {
	if p.Lease != nil && p.Lease.Status == ReservationActive {
		return false
	}
	p.Lease = &ProxyLease{
		LeadID:     leadID,
		OrderID:    orderID,
		Status:     ReservationActive,
		AssignedAt: time.Now(),
	}
	return true
}

func (p *Proxy) ReleaseLead(leadID string, status ReservationStatus) bool {
	if p.Lease == nil || p.Lease.LeadID != leadID {
		return false
	}
	now := time.Now()
	p.Lease.Status = status
	p.Lease.CompletedAt = &now
	return true
}

// MarkHealthy records a passed connectivity probe.
func (p *Proxy) MarkHealthy(responseTime time.Duration) {
	p.Health.Healthy = true
	p.Health.LastCheck = time.Now()
	p.Health.FailedChecks = 0
	p.Health.ResponseTime = responseTime
	p.Health.LastError = ""
}

// MarkUnhealthy records a failed probe; the proxy flips to failed after the
// third consecutive failure.
func (p *Proxy) MarkUnhealthy(responseTime time.Duration, reason string) {
	p.Health.Healthy = false
	p.Health.LastCheck = time.Now()
	p.Health.FailedChecks++
	p.Health.ResponseTime = responseTime
	p.Health.LastError = reason
	if p.Health.FailedChecks >= proxyMaxFailedChecks {
		p.Status = ProxyFailed
	}
}
