package errors

import (
	"fmt"
	"strings"
)

type MissingEnvErr struct {
	EnvMap map[string]string
}

func (e MissingEnvErr) Error() string {
	// Get keys of missing environment variables
	missingKeys := make([]string, 0, len(e.EnvMap))
	for key, val := range e.EnvMap {
		if val == "" {
			missingKeys = append(missingKeys, key)
		}
	}

	if len(missingKeys) > 0 {
		allKeys := strings.Join(missingKeys, ", ")
		return fmt.Sprintf("insufficient env variables: [%s]", allKeys)
	}
	return "insufficient env variables"
}

// MissingPlayerSessionErr indicates a fulfilled placement with no player
// session entry for a player who was part of the placement request. This must
// never happen for a well-formed placement event.
type MissingPlayerSessionErr struct {
	PlayerId    string
	PlacementId string
}

func (e MissingPlayerSessionErr) Error() string {
	return fmt.Sprintf("no player session for player [%s] in fulfilled placement [%s]", e.PlayerId, e.PlacementId)
}

// UnknownTicketErr indicates an event referenced a ticket id with no backing
// matchmaking request, usually because the request row already expired.
type UnknownTicketErr struct {
	TicketId string
}

func (e UnknownTicketErr) Error() string {
	return fmt.Sprintf("no matchmaking request found for ticket: [%s]", e.TicketId)
}
