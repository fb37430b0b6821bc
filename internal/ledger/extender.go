package ledger

import "time"

// Anti-sniper constants: a bid landing inside the threshold pushes the
// close out by the extension.
const (
	SnipeThreshold = 10 * time.Second
	SnipeExtension = 10 * time.Second
)

// evaluateExtension decides whether an accepted bid extends the auction.
// endTime must be the lot's end time as it stood before this bid; the
// extension is added to that end time, not to now, so a volley of
// last-second bids re-extends from wherever the close currently stands.
// A nil endTime never triggers.
func evaluateExtension(endTime *time.Time, now time.Time) (*time.Time, bool) {
	if endTime == nil {
		return nil, false
	}
	remaining := endTime.Sub(now)
	if remaining <= 0 || remaining >= SnipeThreshold {
		return nil, false
	}
	extended := endTime.Add(SnipeExtension)
	return &extended, true
}
