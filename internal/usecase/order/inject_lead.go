package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/kafka"
	"github.com/leadrun/fulfillment-service/internal/infrastructure/logger"
)

// submitLead runs the full submission round-trip for one lead: provision
// identity and proxy, invoke the external injector task, resolve the broker
// from the reported redirect domain and report the outcome to progress
// tracking. Per-lead failures are recorded and swallowed; only store-level
// faults propagate to the caller.
func (uc *DefaultFulfillmentUsecase) submitLead(ctx context.Context, order *domain.Order, lead *domain.Lead) error {
	if lead.HasSuccessfulSubmission(order.ID) {
		slog.Info("lead already submitted, skipping", "order_id", order.ID, "lead_id", lead.ID)
		return nil
	}
	if lead.Availability == domain.AvailabilitySleep {
		lead.WakeUp()
	}

	if err := uc.Provisioner.EnsureFingerprint(ctx, lead, order.Injection.Device, order.RequesterID); err != nil {
		// Identity is best-effort: the submission proceeds without one.
		slog.Warn("fingerprint assignment failed", "order_id", order.ID, "lead_id", lead.ID, "error", err)
	}

	proxy, err := uc.Provisioner.AssignProxy(ctx, lead, order.ID, order.RequesterID)
	if err != nil {
		slog.Error("proxy assignment failed, aborting lead",
			"order_id", order.ID, "lead_id", lead.ID, "error", err)
		uc.Metrics.RecordProxyFailure()
		uc.logAttempt(ctx, logger.InjectionAttemptRecord{
			OrderID:  order.ID,
			LeadID:   lead.ID,
			LeadType: string(lead.LeadType),
			Error:    err.Error(),
		})
		return uc.recordFailure(ctx, order, lead, "")
	}

	payload := &domain.InjectionPayload{
		LeadID:      lead.ID,
		FirstName:   lead.FirstName,
		LastName:    lead.LastName,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Country:     lead.Country,
		CountryCode: lead.CountryCode,
		Proxy:       &proxy.Config,
		TargetURL:   uc.Config.TargetURL,
	}
	if fp, err := uc.Provisioner.FingerprintFor(ctx, lead.ID); err != nil {
		slog.Warn("fingerprint load failed", "lead_id", lead.ID, "error", err)
	} else {
		payload.Fingerprint = fp
	}

	started := time.Now()
	uc.Metrics.InjectionStarted()
	result, runErr := uc.Injector.Run(ctx, payload)
	uc.Metrics.InjectionFinished()
	elapsed := time.Since(started)

	if runErr != nil || !result.Success {
		if runErr != nil {
			slog.Error("injector task failed to run", "order_id", order.ID, "lead_id", lead.ID, "error", runErr)
		}
		reservation := domain.ReservationFailed
		if runErr == nil && result.ProxyExpired {
			reservation = domain.ReservationExpired
		}
		uc.Provisioner.ReleaseProxy(ctx, lead, proxy, order.ID, reservation)
		uc.Metrics.RecordInjection("failed", elapsed)
		uc.logAttempt(ctx, logger.InjectionAttemptRecord{
			OrderID:  order.ID,
			LeadID:   lead.ID,
			LeadType: string(lead.LeadType),
			ProxyID:  proxy.ID,
			Duration: elapsed.Milliseconds(),
			Error:    taskError(runErr, result),
		})
		return uc.recordFailure(ctx, order, lead, "")
	}

	reservation := domain.ReservationCompleted
	if result.ProxyExpired {
		reservation = domain.ReservationExpired
	}
	uc.Provisioner.ReleaseProxy(ctx, lead, proxy, order.ID, reservation)
	uc.Metrics.RecordInjection("success", elapsed)
	uc.logAttempt(ctx, logger.InjectionAttemptRecord{
		OrderID:     order.ID,
		LeadID:      lead.ID,
		LeadType:    string(lead.LeadType),
		Success:     true,
		FinalDomain: result.FinalDomain,
		ProxyID:     proxy.ID,
		Duration:    elapsed.Milliseconds(),
	})

	if uc.Config.FollowUpURL != "" {
		go uc.runFollowUp(lead, payload)
	}

	if result.FinalDomain == "" {
		// Submission landed but no redirect domain was captured: the broker
		// must be resolved manually later.
		slog.Warn("submission succeeded without final domain", "order_id", order.ID, "lead_id", lead.ID)
		if err := uc.OrderRepo.SetBrokerAssignmentPending(ctx, order.ID, true); err != nil {
			return err
		}
		return uc.recordFailure(ctx, order, lead, "")
	}

	broker, err := uc.Brokers.AssignByDomain(ctx, lead, result.FinalDomain, order.RequesterID, order.ID)
	if err != nil {
		slog.Error("broker resolution failed", "order_id", order.ID, "lead_id", lead.ID, "domain", result.FinalDomain, "error", err)
		if err := uc.OrderRepo.SetBrokerAssignmentPending(ctx, order.ID, true); err != nil {
			return err
		}
		return uc.recordSuccess(ctx, order, lead, "", "")
	}
	uc.Metrics.RecordBrokerAssignment("auto")
	if err := uc.OrderRepo.IncrementBrokersAssigned(ctx, order.ID, 1); err != nil {
		return err
	}
	return uc.recordSuccess(ctx, order, lead, result.FinalDomain, broker.ID)
}

func (uc *DefaultFulfillmentUsecase) recordSuccess(ctx context.Context, order *domain.Order, lead *domain.Lead, finalDomain, brokerID string) error {
	lead.SetRelationshipStatus(order.ID, domain.LogStatusCompleted)
	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return err
	}
	uc.publishInjectionEvent(kafka.InjectionEvent{
		OrderID:     order.ID,
		LeadID:      lead.ID,
		LeadType:    string(lead.LeadType),
		Status:      "successful",
		FinalDomain: finalDomain,
		BrokerID:    brokerID,
		Timestamp:   time.Now().Unix(),
	})
	return uc.reportProgress(ctx, order.ID, true)
}

func (uc *DefaultFulfillmentUsecase) recordFailure(ctx context.Context, order *domain.Order, lead *domain.Lead, finalDomain string) error {
	lead.SetRelationshipStatus(order.ID, domain.LogStatusFailed)
	if err := uc.LeadRepo.Save(ctx, lead); err != nil {
		return err
	}
	uc.publishInjectionEvent(kafka.InjectionEvent{
		OrderID:     order.ID,
		LeadID:      lead.ID,
		LeadType:    string(lead.LeadType),
		Status:      "failed",
		FinalDomain: finalDomain,
		Timestamp:   time.Now().Unix(),
	})
	return uc.reportProgress(ctx, order.ID, false)
}

// runFollowUp fires the auxiliary follow-up submission for a lead that just
// went through. Results are logged only; the primary pipeline never waits on
// or fails from the follow-up.
func (uc *DefaultFulfillmentUsecase) runFollowUp(lead *domain.Lead, primary *domain.InjectionPayload) {
	timeout := uc.Config.FollowUpTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	payload := *primary
	payload.TargetURL = uc.Config.FollowUpURL
	result, err := uc.Injector.Run(ctx, &payload)
	if err != nil {
		slog.Warn("follow-up submission failed to run", "lead_id", lead.ID, "error", err)
		return
	}
	slog.Info("follow-up submission finished", "lead_id", lead.ID, "success", result.Success)
}

func taskError(runErr error, result *domain.InjectionResult) string {
	if runErr != nil {
		return runErr.Error()
	}
	if result != nil && result.ErrOutput != "" {
		return result.ErrOutput
	}
	return "submission task exited non-zero"
}
