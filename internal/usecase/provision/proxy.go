package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leadrun/fulfillment-service/internal/domain"
)

// AssignProxy provisions a fresh per-country proxy and reserves it exclusively
// for (lead, order). Any failure here is a hard stop for the lead's
// submission: there is no submit-without-proxy path.
func (p *Provisioner) AssignProxy(ctx context.Context, lead *domain.Lead, orderID, createdBy string) (*domain.Proxy, error) {
	session, err := p.provider.GenerateSession(lead.Country, lead.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("%w: session for %s: %v", domain.ErrProxyUnavailable, lead.Country, err)
	}

	proxy := &domain.Proxy{
		ID:          uuid.New().String(),
		SessionID:   session.SessionID,
		Config:      session.Config,
		Country:     lead.Country,
		CountryCode: lead.CountryCode,
		Status:      domain.ProxyTesting,
		CreatedBy:   createdBy,
	}

	// Probe failure downgrades health but does not block use; the vendor
	// endpoint is flaky enough that a failed probe is not proof of a dead
	// session.
	probe := p.provider.Probe(ctx, proxy.Config)
	if probe.Success {
		proxy.MarkHealthy(time.Duration(probe.ResponseTime) * time.Millisecond)
	} else {
		slog.Warn("proxy probe failed, keeping proxy",
			"country", lead.Country, "error", probe.Error)
		proxy.Health.LastCheck = time.Now()
		proxy.Health.LastError = probe.Error
		proxy.Health.Healthy = true
	}
	proxy.Status = domain.ProxyActive

	if !proxy.AssignLead(lead.ID, orderID) {
		return nil, fmt.Errorf("%w: proxy %s already leased", domain.ErrProxyUnavailable, proxy.ID)
	}
	if err := p.proxyRepo.Create(ctx, proxy); err != nil {
		return nil, fmt.Errorf("%w: persist proxy for %s: %v", domain.ErrProxyUnavailable, lead.Country, err)
	}

	if !lead.ReserveProxy(proxy.ID, orderID) {
		// The lead already holds an active reservation for this order.
		proxy.ReleaseLead(lead.ID, domain.ReservationFailed)
		if saveErr := p.proxyRepo.Save(ctx, proxy); saveErr != nil {
			slog.Error("failed to release orphaned proxy lease", "proxy_id", proxy.ID, "error", saveErr.Error())
		}
		return nil, fmt.Errorf("%w: lead %s already holds an active reservation for order %s",
			domain.ErrProxyUnavailable, lead.ID, orderID)
	}

	slog.Info("assigned proxy to lead",
		"lead_id", lead.ID, "order_id", orderID, "proxy_id", proxy.ID, "country", lead.Country)
	return proxy, nil
}

// ReleaseProxy resolves both sides of the reservation after the submission
// round-trip finishes.
func (p *Provisioner) ReleaseProxy(ctx context.Context, lead *domain.Lead, proxy *domain.Proxy, orderID string, status domain.ReservationStatus) {
	lead.CloseProxyReservation(orderID, status)
	if proxy == nil {
		return
	}
	proxy.ReleaseLead(lead.ID, status)
	if err := p.proxyRepo.Save(ctx, proxy); err != nil {
		slog.Error("failed to save proxy release",
			"proxy_id", proxy.ID, "lead_id", lead.ID, "error", err.Error())
	}
}
