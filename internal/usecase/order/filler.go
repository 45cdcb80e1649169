package usecase

import (
	"strings"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

// Calling-code prefixes that determine where the four-digit pattern key
// starts inside a normalized phone number.
var (
	twoDigitCallingCodes = map[string]struct{}{
		"44": {}, "49": {}, "33": {}, "34": {}, "39": {},
		"41": {}, "43": {}, "45": {}, "46": {}, "47": {}, "48": {},
	}
	threeDigitCallingCodes = map[string]struct{}{
		"359": {}, "371": {}, "372": {}, "373": {}, "374": {},
		"375": {}, "376": {}, "377": {}, "378": {},
	}
)

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// patternKey derives the four-digit fragment following the calling code.
// Numbers with fewer than five digits have no key and land in the
// patternless bucket.
func patternKey(phone string) (string, bool) {
	digits := digitsOnly(phone)
	if len(digits) < 5 {
		return "", false
	}
	switch {
	case len(digits) >= 11 && (digits[0] == '1' || digits[0] == '7'):
		return digits[1:5], true
	case len(digits) >= 12 && hasCode(twoDigitCallingCodes, digits[:2]):
		return digits[2:6], true
	case len(digits) >= 13 && hasCode(threeDigitCallingCodes, digits[:3]):
		return digits[3:7], true
	default:
		return digits[0:4], true
	}
}

func hasCode(set map[string]struct{}, code string) bool {
	_, ok := set[code]
	return ok
}

// fillerGroups buckets candidates by pattern key, preserving arrival order
// both across keys and within each key.
type fillerGroups struct {
	keys        []string
	byKey       map[string][]*domain.Lead
	patternless []*domain.Lead
}

func groupByPattern(candidates []*domain.Lead) *fillerGroups {
	g := &fillerGroups{byKey: make(map[string][]*domain.Lead)}
	for _, lead := range candidates {
		key, ok := patternKey(lead.Phone)
		if !ok {
			g.patternless = append(g.patternless, lead)
			continue
		}
		if _, seen := g.byKey[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.byKey[key] = append(g.byKey[key], lead)
	}
	return g
}

// planFillerSelection picks up to n fillers from the candidate pool while
// limiting how many near-duplicate phone patterns the batch may carry.
//
// Small batches (n<=10) take at most one lead per pattern key and backfill
// from the patternless bucket. Mid-size batches round-robin across keys with
// a global cap on repeated picks. Batches above 40 are unconstrained.
func planFillerSelection(candidates []*domain.Lead, n int) []*domain.Lead {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}
	if n > 40 {
		if len(candidates) > n {
			return candidates[:n]
		}
		return candidates
	}

	groups := groupByPattern(candidates)

	if n <= 10 {
		selected := make([]*domain.Lead, 0, n)
		for _, key := range groups.keys {
			if len(selected) == n {
				break
			}
			selected = append(selected, groups.byKey[key][0])
		}
		return backfillPatternless(selected, groups.patternless, n)
	}

	pairCap := 10
	if n > 20 {
		pairCap = 20
	}
	return backfillPatternless(roundRobinSelect(groups, n, pairCap), groups.patternless, n)
}

// roundRobinSelect walks the keys in arrival order taking the next unused
// candidate from each. Every second pick from the same key consumes one unit
// of the global pair budget; once the budget is spent only first picks
// remain admissible.
func roundRobinSelect(groups *fillerGroups, n, pairCap int) []*domain.Lead {
	selected := make([]*domain.Lead, 0, n)
	picked := make(map[string]int, len(groups.keys))
	pairs := 0

	for len(selected) < n {
		progressed := false
		for _, key := range groups.keys {
			if len(selected) == n {
				break
			}
			taken := picked[key]
			pool := groups.byKey[key]
			if taken >= len(pool) {
				continue
			}
			completesPair := taken%2 == 1
			if completesPair && pairs >= pairCap {
				continue
			}
			selected = append(selected, pool[taken])
			picked[key] = taken + 1
			if completesPair {
				pairs++
			}
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return selected
}

func backfillPatternless(selected, patternless []*domain.Lead, n int) []*domain.Lead {
	for _, lead := range patternless {
		if len(selected) == n {
			break
		}
		selected = append(selected, lead)
	}
	return selected
}
