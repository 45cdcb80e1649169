package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

const clockLayout = "15:04"

// runScheduled scatters the eligible leads across the configured delivery
// window. Each lead gets an independent timer that re-checks the injection
// status when it fires, so pause and stop cancel pending deliveries
// cooperatively without disarming the timers.
func (uc *DefaultFulfillmentUsecase) runScheduled(ctx context.Context, order *domain.Order, leads []*domain.Lead) {
	start, end, err := computeWindow(time.Now(), order.Injection.Window)
	if err != nil {
		slog.Error("scheduled injection aborted: bad window", "order_id", order.ID, "error", err)
		uc.failInjection(ctx, order.ID)
		return
	}

	offsets := uc.computeOffsets(end.Sub(start), len(leads), order.Injection.Window.MinInterval, order.Injection.Window.MaxInterval)
	initialDelay := time.Until(start)
	if initialDelay < 0 {
		initialDelay = 0
	}

	slog.Info("scheduled injection armed",
		"order_id", order.ID, "leads", len(leads), "window_start", start, "window_end", end)

	for i, lead := range leads {
		lead := lead
		time.AfterFunc(initialDelay+offsets[i], func() {
			current, err := uc.OrderRepo.GetByID(ctx, order.ID)
			if err != nil {
				slog.Error("scheduled delivery skipped: order re-read failed", "order_id", order.ID, "lead_id", lead.ID, "error", err)
				return
			}
			if current.Injection.Status != domain.InjectionInProgress {
				slog.Info("scheduled delivery skipped", "order_id", order.ID, "lead_id", lead.ID, "status", current.Injection.Status)
				return
			}
			if err := uc.submitLead(ctx, current, lead); err != nil {
				slog.Error("scheduled delivery failed", "order_id", order.ID, "lead_id", lead.ID, "error", err)
			}
		})
	}
}

// computeWindow resolves the delivery window. A "HH:MM" pair is interpreted
// against the current day, rolling to the next day when the start has already
// passed; anything else must parse as RFC3339.
func computeWindow(now time.Time, w domain.ScheduledWindow) (time.Time, time.Time, error) {
	startClock, startErr := time.Parse(clockLayout, w.StartTime)
	endClock, endErr := time.Parse(clockLayout, w.EndTime)
	if startErr == nil && endErr == nil {
		start := time.Date(now.Year(), now.Month(), now.Day(), startClock.Hour(), startClock.Minute(), 0, 0, now.Location())
		if start.Before(now) {
			start = start.Add(24 * time.Hour)
		}
		end := time.Date(start.Year(), start.Month(), start.Day(), endClock.Hour(), endClock.Minute(), 0, 0, now.Location())
		if !end.After(start) {
			end = end.Add(24 * time.Hour)
		}
		return start, end, nil
	}

	start, err := time.Parse(time.RFC3339, w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start time %q is neither HH:MM nor RFC3339", domain.ErrValidation, w.StartTime)
	}
	end, err := time.Parse(time.RFC3339, w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end time %q is neither HH:MM nor RFC3339", domain.ErrValidation, w.EndTime)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: delivery window end must be after start", domain.ErrValidation)
	}
	return start, end, nil
}

// computeOffsets accumulates one random inter-delivery gap per lead. Both
// interval bounds are clamped so k gaps plausibly fit the window; if the
// running offset still overruns, the remaining leads are respread evenly
// across what is left of the window.
func (uc *DefaultFulfillmentUsecase) computeOffsets(window time.Duration, k int, minGap, maxGap time.Duration) []time.Duration {
	if k <= 0 {
		return nil
	}
	offsets := make([]time.Duration, k)
	if window <= 0 {
		return offsets
	}

	per := window / time.Duration(k)
	minGap = clampGap(minGap, per/2)
	maxGap = clampGap(maxGap, per*2)
	if maxGap < minGap {
		maxGap = minGap
	}

	var cursor time.Duration
	for i := 0; i < k; i++ {
		gap := minGap
		if span := maxGap - minGap; span > 0 {
			gap += time.Duration(uc.rng.Int63n(int64(span) + 1))
		}
		next := cursor + gap
		if next > window {
			spreadRemaining(offsets, i, cursor, window)
			return offsets
		}
		offsets[i] = next
		cursor = next
	}
	return offsets
}

func clampGap(gap, limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	if gap > limit {
		return limit
	}
	if gap < 0 {
		return 0
	}
	return gap
}

// spreadRemaining places leads [from, len) at even steps between the last
// committed offset and the window end.
func spreadRemaining(offsets []time.Duration, from int, cursor, window time.Duration) {
	remaining := len(offsets) - from
	step := (window - cursor) / time.Duration(remaining)
	for i := from; i < len(offsets); i++ {
		cursor += step
		offsets[i] = cursor
	}
}
