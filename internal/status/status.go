// Package status derives a lot's lifecycle state from its time window.
package status

import (
	"time"

	"auction-ledger/internal/models"
)

// Derive maps a lot's time window and explicit override to its current
// state. The Unsold override is terminal and wins over any time window.
// When either boundary is missing the last stored status is kept, so a
// half-edited dataset row never flips a lot's visible state.
//
// Both boundaries are inclusive: now == start_time and now == end_time are
// Open. Callers depend on this exact rule, including the bid validator.
func Derive(lot models.Lot, now time.Time) models.Status {
	if lot.Status == models.StatusUnsold {
		return models.StatusUnsold
	}
	if lot.StartTime == nil || lot.EndTime == nil {
		if lot.Status == "" {
			return models.StatusUpcoming
		}
		return lot.Status
	}
	switch {
	case now.Before(*lot.StartTime):
		return models.StatusUpcoming
	case now.After(*lot.EndTime):
		return models.StatusClosed
	default:
		return models.StatusOpen
	}
}
