package matchmaking

// External status vocabularies, translated to the internal Status set at the
// boundary. Each external surface has its own spelling of the same lifecycle.

// GameLift matchmaking ticket statuses returned by DescribeMatchmaking.
const (
	ticketStatusCompleted = "COMPLETED"
	ticketStatusFailed    = "FAILED"
	ticketStatusTimedOut  = "TIMED_OUT"
	ticketStatusCancelled = "CANCELLED"
)

// FlexMatch event detail types delivered over SNS.
const (
	EventMatchmakingSucceeded = "MatchmakingSucceeded"
	EventMatchmakingFailed    = "MatchmakingFailed"
	EventMatchmakingTimedOut  = "MatchmakingTimedOut"
	EventMatchmakingCancelled = "MatchmakingCancelled"
)

// Game session placement event types delivered over SNS.
const (
	EventPlacementFulfilled = "PlacementFulfilled"
	EventPlacementFailed    = "PlacementFailed"
	EventPlacementTimedOut  = "PlacementTimedOut"
	EventPlacementCancelled = "PlacementCancelled"
)

// TerminalFromTicketStatus maps a DescribeMatchmaking ticket status to the
// internal vocabulary. The second return is false for any non-terminal status
// (QUEUED, SEARCHING, REQUIRES_ACCEPTANCE, PLACING, ...), in which case the
// caller should only refresh its bookkeeping.
func TerminalFromTicketStatus(ticketStatus string) (Status, bool) {
	switch ticketStatus {
	case ticketStatusCompleted:
		return StatusSucceeded, true
	case ticketStatusFailed:
		return StatusFailed, true
	case ticketStatusTimedOut:
		return StatusTimedOut, true
	case ticketStatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// TerminalFromEventType maps a FlexMatch event type to the internal
// vocabulary. The second return is false for non-terminal event types
// (MatchmakingSearching, PotentialMatchCreated, ...), which are ignored.
func TerminalFromEventType(eventType string) (Status, bool) {
	switch eventType {
	case EventMatchmakingSucceeded:
		return StatusSucceeded, true
	case EventMatchmakingFailed:
		return StatusFailed, true
	case EventMatchmakingTimedOut:
		return StatusTimedOut, true
	case EventMatchmakingCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// FromPlacementType maps a placement event type to the internal vocabulary.
// Placement events are terminal by construction; an unrecognized type is
// treated as a failure and the second return is false so the caller can log
// it.
func FromPlacementType(eventType string) (Status, bool) {
	switch eventType {
	case EventPlacementFulfilled:
		return StatusSucceeded, true
	case EventPlacementFailed:
		return StatusFailed, true
	case EventPlacementTimedOut:
		return StatusTimedOut, true
	case EventPlacementCancelled:
		return StatusCancelled, true
	}
	return StatusFailed, false
}
