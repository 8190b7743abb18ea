package matchmaking

import (
	"encoding/json"
	"fmt"
)

// MatchEvent is a FlexMatch notification decoded into one of a closed set of
// variants. Payloads are duck-typed JSON on the wire; they are decoded once
// here and never passed inward as raw maps.
type MatchEvent interface {
	isMatchEvent()
}

// TerminalMatchEvent closes one or more matchmaking tickets.
type TerminalMatchEvent struct {
	Status    Status
	TicketIDs []string
	Session   GameSessionInfo
}

func (TerminalMatchEvent) isMatchEvent() {}

// NonTerminalMatchEvent is a progress notification with no effect on ticket
// state.
type NonTerminalMatchEvent struct {
	Type string
}

func (NonTerminalMatchEvent) isMatchEvent() {}

// GameSessionInfo carries the connection details of a matched game session.
type GameSessionInfo struct {
	IPAddress      string
	DNSName        string
	Port           string
	GameSessionARN string
	Players        []PlayerSession
}

type rawMatchEvent struct {
	Detail struct {
		Type    string `json:"type"`
		Tickets []struct {
			TicketID string `json:"ticketId"`
		} `json:"tickets"`
		GameSessionInfo struct {
			IPAddress      string      `json:"ipAddress"`
			DNSName        string      `json:"dnsName"`
			Port           json.Number `json:"port"`
			GameSessionARN string      `json:"gameSessionArn"`
			Players        []struct {
				PlayerID        string `json:"playerId"`
				PlayerSessionID string `json:"playerSessionId"`
			} `json:"players"`
		} `json:"gameSessionInfo"`
	} `json:"detail"`
}

// DecodeMatchEvent parses a FlexMatch SNS message body.
func DecodeMatchEvent(message []byte) (MatchEvent, error) {
	var raw rawMatchEvent
	if err := json.Unmarshal(message, &raw); err != nil {
		return nil, fmt.Errorf("parsing match event: %w", err)
	}
	if raw.Detail.Type == "" {
		return nil, fmt.Errorf("match event missing detail type")
	}

	status, terminal := TerminalFromEventType(raw.Detail.Type)
	if !terminal {
		return NonTerminalMatchEvent{Type: raw.Detail.Type}, nil
	}

	event := TerminalMatchEvent{
		Status: status,
		Session: GameSessionInfo{
			IPAddress:      raw.Detail.GameSessionInfo.IPAddress,
			DNSName:        raw.Detail.GameSessionInfo.DNSName,
			Port:           raw.Detail.GameSessionInfo.Port.String(),
			GameSessionARN: raw.Detail.GameSessionInfo.GameSessionARN,
		},
	}
	for _, ticket := range raw.Detail.Tickets {
		event.TicketIDs = append(event.TicketIDs, ticket.TicketID)
	}
	for _, player := range raw.Detail.GameSessionInfo.Players {
		event.Session.Players = append(event.Session.Players, PlayerSession{
			PlayerID:        player.PlayerID,
			PlayerSessionID: player.PlayerSessionID,
		})
	}

	return event, nil
}

// PlacementEvent is a game session placement notification. All placement
// event types are terminal; Known is false when the type string was not
// recognized and Status defaulted to failure.
type PlacementEvent struct {
	PlacementID    string
	Type           string
	Status         Status
	Known          bool
	IPAddress      string
	DNSName        string
	Port           string
	GameSessionARN string
	PlayerSessions []PlayerSession
}

type rawPlacementEvent struct {
	Detail struct {
		Type                 string      `json:"type"`
		PlacementID          string      `json:"placementId"`
		IPAddress            string      `json:"ipAddress"`
		DNSName              string      `json:"dnsName"`
		Port                 json.Number `json:"port"`
		GameSessionARN       string      `json:"gameSessionArn"`
		PlacedPlayerSessions []struct {
			PlayerID        string `json:"playerId"`
			PlayerSessionID string `json:"playerSessionId"`
		} `json:"placedPlayerSessions"`
	} `json:"detail"`
}

// DecodePlacementEvent parses a game session placement SNS message body.
func DecodePlacementEvent(message []byte) (*PlacementEvent, error) {
	var raw rawPlacementEvent
	if err := json.Unmarshal(message, &raw); err != nil {
		return nil, fmt.Errorf("parsing placement event: %w", err)
	}
	if raw.Detail.PlacementID == "" {
		return nil, fmt.Errorf("placement event missing placement id")
	}

	status, known := FromPlacementType(raw.Detail.Type)
	event := &PlacementEvent{
		PlacementID:    raw.Detail.PlacementID,
		Type:           raw.Detail.Type,
		Status:         status,
		Known:          known,
		IPAddress:      raw.Detail.IPAddress,
		DNSName:        raw.Detail.DNSName,
		Port:           raw.Detail.Port.String(),
		GameSessionARN: raw.Detail.GameSessionARN,
	}
	for _, player := range raw.Detail.PlacedPlayerSessions {
		event.PlayerSessions = append(event.PlayerSessions, PlayerSession{
			PlayerID:        player.PlayerID,
			PlayerSessionID: player.PlayerSessionID,
		})
	}

	return event, nil
}
