package matchmaking

// PlacementGetter looks up a placement outcome by id. A nil result with a nil
// error means no outcome has been recorded yet.
type PlacementGetter interface {
	Get(placementID string) (*Placement, error)
}

// InFlight reports whether the ticket is still awaiting a terminal outcome.
//
// A queued ticket resolves through its placement record rather than its own
// status field: placement outcomes are only ever written for terminal events,
// so the mere existence of the record means the ticket is resolved even
// though its own row still says QUEUED.
func InFlight(t *Ticket, placements PlacementGetter) (bool, error) {
	if t == nil || t.Status.Terminal() {
		return false, nil
	}

	if t.Status == StatusQueued {
		if t.PlacementID == "" || placements == nil {
			return true, nil
		}
		placement, err := placements.Get(t.PlacementID)
		if err != nil {
			return false, err
		}
		return placement == nil, nil
	}

	return true, nil
}
