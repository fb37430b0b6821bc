package status

import (
	"testing"
	"time"

	"auction-ledger/internal/models"

	"github.com/stretchr/testify/require"
)

func window(start, end time.Time) models.Lot {
	return models.Lot{ID: 1, Status: models.StatusUpcoming, StartTime: &start, EndTime: &end}
}

// Boundary behavior: both window edges are inclusive of Open.
func TestDerive_TimeWindowBoundaries(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	lot := window(start, end)

	tests := []struct {
		name string
		now  time.Time
		want models.Status
	}{
		{name: "one_second_before_start", now: start.Add(-time.Second), want: models.StatusUpcoming},
		{name: "exactly_at_start", now: start, want: models.StatusOpen},
		{name: "mid_window", now: start.Add(30 * time.Minute), want: models.StatusOpen},
		{name: "exactly_at_end", now: end, want: models.StatusOpen},
		{name: "one_second_after_end", now: end.Add(time.Second), want: models.StatusClosed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Derive(lot, tc.now))
		})
	}
}

// The Unsold override is terminal regardless of the time window.
func TestDerive_UnsoldOverrideWins(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	lot := window(start, end)
	lot.Status = models.StatusUnsold

	for _, now := range []time.Time{
		start.Add(-time.Hour),
		start.Add(30 * time.Minute),
		end.Add(time.Hour),
	} {
		require.Equal(t, models.StatusUnsold, Derive(lot, now))
	}
}

// Missing boundaries keep the last stored status.
func TestDerive_MissingTimesKeepStoredStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		lot  models.Lot
		want models.Status
	}{
		{name: "no_times_stored_open", lot: models.Lot{Status: models.StatusOpen}, want: models.StatusOpen},
		{name: "no_times_stored_closed", lot: models.Lot{Status: models.StatusClosed}, want: models.StatusClosed},
		{name: "no_times_blank_status", lot: models.Lot{}, want: models.StatusUpcoming},
		{
			name: "end_missing",
			lot:  models.Lot{Status: models.StatusOpen, StartTime: &now},
			want: models.StatusOpen,
		},
		{
			name: "start_missing",
			lot:  models.Lot{Status: models.StatusUpcoming, EndTime: &now},
			want: models.StatusUpcoming,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Derive(tc.lot, now))
		})
	}
}
