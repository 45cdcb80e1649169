package usecase

import (
	"fmt"
	"testing"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestPatternKey(t *testing.T) {
	cases := []struct {
		phone   string
		key     string
		hasKey  bool
		comment string
	}{
		{"+1 212 555 0147", "2125", true, "NANP number keys past the leading 1"},
		{"+7 495 123 45 67", "4951", true, "Russian numbers behave like NANP"},
		{"+44 7700 900123", "7700", true, "two-digit calling code stripped"},
		{"+375 2912 345 678", "2912", true, "three-digit calling code stripped"},
		{"+375 29 123 45 67", "3752", true, "12 digits is too short for the three-digit-code rule"},
		{"0612345678", "0612", true, "no recognizable code, leading digits"},
		{"1234", "", false, "too short for any key"},
		{"+4", "", false, "single digit"},
	}
	for _, tc := range cases {
		key, ok := patternKey(tc.phone)
		require.Equal(t, tc.hasKey, ok, tc.comment)
		require.Equal(t, tc.key, key, tc.comment)
	}
}

func fillerCandidates(perKey map[string]int, patternless int) []*domain.Lead {
	var leads []*domain.Lead
	// +44 with 10 national digits: key is digits[2:6] of the normalized number.
	for prefix, count := range perKey {
		for i := 0; i < count; i++ {
			leads = append(leads, makeLead(domain.LeadTypeFiller, fmt.Sprintf("+44%s%06d", prefix, i)))
		}
	}
	for i := 0; i < patternless; i++ {
		leads = append(leads, makeLead(domain.LeadTypeFiller, fmt.Sprintf("%03d", i)))
	}
	return leads
}

func TestPlanFillerSelection_SmallBatchUniqueKeys(t *testing.T) {
	candidates := fillerCandidates(map[string]int{
		"7700": 5, "7701": 5, "7702": 5, "7703": 5, "7704": 5,
		"7705": 5, "7706": 5, "7707": 5, "7708": 5, "7709": 5,
	}, 0)

	selected := planFillerSelection(candidates, 8)
	require.Len(t, selected, 8)

	seen := make(map[string]bool)
	for _, lead := range selected {
		key, ok := patternKey(lead.Phone)
		require.True(t, ok)
		require.False(t, seen[key], "small batches must not repeat a pattern key")
		seen[key] = true
	}
}

func TestPlanFillerSelection_SmallBatchBackfillsPatternless(t *testing.T) {
	candidates := fillerCandidates(map[string]int{"7700": 4, "7701": 4, "7702": 4}, 5)

	selected := planFillerSelection(candidates, 5)
	require.Len(t, selected, 5)

	keyed := 0
	for _, lead := range selected {
		if _, ok := patternKey(lead.Phone); ok {
			keyed++
		}
	}
	// Three distinct keys, remaining slots filled from the patternless pool.
	require.Equal(t, 3, keyed)
}

func TestPlanFillerSelection_MidBatchPairCap(t *testing.T) {
	// Two keys only: filling 20 slots would need 9 pairs per key without a
	// cap. The global budget of 10 pairs limits repeated picks.
	candidates := fillerCandidates(map[string]int{"7700": 30, "7701": 30}, 0)

	selected := planFillerSelection(candidates, 20)

	picks := make(map[string]int)
	for _, lead := range selected {
		key, _ := patternKey(lead.Phone)
		picks[key]++
	}
	pairs := 0
	for _, n := range picks {
		pairs += n / 2
	}
	require.LessOrEqual(t, pairs, 10)
}

func TestPlanFillerSelection_LargeBatchUnconstrained(t *testing.T) {
	candidates := fillerCandidates(map[string]int{"7700": 60}, 0)

	selected := planFillerSelection(candidates, 50)
	require.Len(t, selected, 50)
	for i, lead := range selected {
		require.Same(t, candidates[i], lead, "large batches keep arrival order")
	}
}

func TestPlanFillerSelection_ShortSupply(t *testing.T) {
	candidates := fillerCandidates(map[string]int{"7700": 1, "7701": 1}, 1)

	selected := planFillerSelection(candidates, 10)
	require.Len(t, selected, 3)
}
