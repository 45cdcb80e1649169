package provision

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

// HealthReport summarizes one monitoring pass.
type HealthReport struct {
	Checked   int
	Healthy   int
	Unhealthy int
	Cleaned   int
}

// MonitorProxyHealth probes every active proxy whose last check is older than
// the given staleness, fails reservations held by dead proxies, and removes
// failed proxies with no active lease. Meant to run on a ticker from main.
func (p *Provisioner) MonitorProxyHealth(ctx context.Context, staleness time.Duration) (*HealthReport, error) {
	cutoff := time.Now().Add(-staleness)
	proxies, err := p.proxyRepo.FindStaleActive(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	report := &HealthReport{Checked: len(proxies)}
	for _, proxy := range proxies {
		start := time.Now()
		probe := p.provider.Probe(ctx, proxy.Config)
		elapsed := time.Since(start)

		if probe.Success {
			proxy.MarkHealthy(elapsed)
			report.Healthy++
		} else {
			proxy.MarkUnhealthy(elapsed, probe.Error)
			report.Unhealthy++
			if proxy.Status == domain.ProxyFailed && proxy.Lease != nil && proxy.Lease.Status == domain.ReservationActive {
				proxy.ReleaseLead(proxy.Lease.LeadID, domain.ReservationFailed)
				slog.Warn("failed active lease on dead proxy",
					"proxy_id", proxy.ID, "lead_id", proxy.Lease.LeadID)
			}
		}
		if err := p.proxyRepo.Save(ctx, proxy); err != nil {
			slog.Error("failed to save proxy health", "proxy_id", proxy.ID, "error", err.Error())
		}
	}

	failed, err := p.proxyRepo.FindFailedUnassigned(ctx)
	if err != nil {
		return report, err
	}
	for _, proxy := range failed {
		if err := p.proxyRepo.Delete(ctx, proxy.ID); err != nil {
			slog.Error("failed to delete dead proxy", "proxy_id", proxy.ID, "error", err.Error())
			continue
		}
		report.Cleaned++
	}

	slog.Info("proxy health pass finished",
		"checked", report.Checked, "healthy", report.Healthy,
		"unhealthy", report.Unhealthy, "cleaned", report.Cleaned)
	return report, nil
}
