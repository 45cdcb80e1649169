package usecase

import (
	"testing"
	"time"

	"github.com/leadrun/fulfillment-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestComputeWindow_ClockPair(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	start, end, err := computeWindow(now, domain.ScheduledWindow{StartTime: "10:30", EndTime: "14:00"})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC), end)
}

func TestComputeWindow_RollsToNextDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	start, end, err := computeWindow(now, domain.ScheduledWindow{StartTime: "10:30", EndTime: "14:00"})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 11, 10, 30, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC), end)
}

func TestComputeWindow_OvernightWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	start, end, err := computeWindow(now, domain.ScheduledWindow{StartTime: "22:00", EndTime: "02:00"})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC), end, "end before start spills into the next day")
}

func TestComputeWindow_RFC3339(t *testing.T) {
	now := time.Now()

	start, end, err := computeWindow(now, domain.ScheduledWindow{
		StartTime: "2025-03-10T10:30:00Z",
		EndTime:   "2025-03-10T14:00:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, 3*time.Hour+30*time.Minute, end.Sub(start))
}

func TestComputeWindow_Invalid(t *testing.T) {
	now := time.Now()

	_, _, err := computeWindow(now, domain.ScheduledWindow{StartTime: "whenever", EndTime: "14:00"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = computeWindow(now, domain.ScheduledWindow{
		StartTime: "2025-03-10T14:00:00Z",
		EndTime:   "2025-03-10T10:00:00Z",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestComputeOffsets_AllWithinWindow(t *testing.T) {
	f := newFixture()
	window := 2 * time.Hour

	for _, k := range []int{1, 5, 24, 100} {
		offsets := f.uc.computeOffsets(window, k, time.Minute, 10*time.Minute)
		require.Len(t, offsets, k)
		for i, offset := range offsets {
			require.GreaterOrEqual(t, offset, time.Duration(0))
			require.LessOrEqual(t, offset, window, "offset %d of %d leads", i, k)
		}
	}
}

func TestComputeOffsets_MonotonicallyIncreasing(t *testing.T) {
	f := newFixture()

	offsets := f.uc.computeOffsets(time.Hour, 30, time.Minute, 5*time.Minute)
	for i := 1; i < len(offsets); i++ {
		require.GreaterOrEqual(t, offsets[i], offsets[i-1])
	}
}

func TestComputeOffsets_RedistributesOnOverflow(t *testing.T) {
	f := newFixture()
	// Gaps far larger than the window force the even respread.
	window := 10 * time.Minute

	offsets := f.uc.computeOffsets(window, 20, time.Hour, 2*time.Hour)
	require.Len(t, offsets, 20)
	for _, offset := range offsets {
		require.LessOrEqual(t, offset, window)
	}
	require.Greater(t, offsets[19], offsets[0])
}

func TestComputeOffsets_EmptyAndDegenerate(t *testing.T) {
	f := newFixture()

	require.Nil(t, f.uc.computeOffsets(time.Hour, 0, time.Minute, time.Minute))

	offsets := f.uc.computeOffsets(0, 3, time.Minute, time.Minute)
	require.Equal(t, []time.Duration{0, 0, 0}, offsets)
}
