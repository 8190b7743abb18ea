package matchmaking

// Status is the unified lifecycle vocabulary for a matchmaking request.
// External services each speak their own status strings; those are translated
// at the boundary (see status.go) so everything inside the module agrees on
// this one set.
type Status string

const (
	// StatusPending means the request row exists but has not been handed to
	// any matcher yet.
	StatusPending Status = "PENDING"
	// StatusStarted means a matchmaking ticket was opened with the external
	// matcher and is being tracked by TicketID.
	StatusStarted Status = "STARTED"
	// StatusQueued means the request was grouped into a game session
	// placement and is being tracked by PlacementID.
	StatusQueued Status = "QUEUED"

	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusTimedOut  Status = "TIMED_OUT"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further transitions are permitted from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Ticket is one matchmaking attempt for one player, keyed by
// (PlayerID, StartTime). The latest StartTime for a player is the current
// attempt. Connection fields are only set on successful resolution.
type Ticket struct {
	PlayerID        string `dynamodbav:"PlayerId"`
	StartTime       int64  `dynamodbav:"StartTime"`
	LastUpdatedTime int64  `dynamodbav:"LastUpdatedTime"`
	ExpirationTime  int64  `dynamodbav:"ExpirationTime"`
	Status          Status `dynamodbav:"TicketStatus"`

	TicketID    string `dynamodbav:"TicketId,omitempty"`
	PlacementID string `dynamodbav:"PlacementId,omitempty"`

	IPAddress       string `dynamodbav:"IpAddress,omitempty"`
	Port            string `dynamodbav:"Port,omitempty"`
	DNSName         string `dynamodbav:"DnsName,omitempty"`
	GameSessionARN  string `dynamodbav:"GameSessionArn,omitempty"`
	PlayerSessionID string `dynamodbav:"PlayerSessionId,omitempty"`
}

// Connection returns the ticket's connection info, or nil when any required
// field is missing. A succeeded ticket without complete connection info is a
// correlation fault upstream, never a normal state.
func (t *Ticket) Connection() *ConnectionInfo {
	if t.IPAddress == "" || t.Port == "" || t.GameSessionARN == "" || t.PlayerSessionID == "" {
		return nil
	}
	return &ConnectionInfo{
		IPAddress:       t.IPAddress,
		Port:            t.Port,
		DNSName:         t.DNSName,
		GameSessionARN:  t.GameSessionARN,
		PlayerSessionID: t.PlayerSessionID,
	}
}

// ConnectionInfo is what a player needs to join their game session. Field
// names match the wire format expected by the game client.
type ConnectionInfo struct {
	IPAddress       string `json:"IpAddress"`
	Port            string `json:"Port"`
	DNSName         string `json:"DnsName"`
	GameSessionARN  string `json:"GameSessionArn"`
	PlayerSessionID string `json:"PlayerSessionId"`
}

// PlayerSession pairs a player with the session reserved for them in a
// placed game session.
type PlayerSession struct {
	PlayerID        string `dynamodbav:"playerId" json:"playerId"`
	PlayerSessionID string `dynamodbav:"playerSessionId" json:"playerSessionId"`
}

// Placement is the outcome of grouping a batch of players into one hosted
// game session, keyed by PlacementID.
type Placement struct {
	PlacementID    string          `dynamodbav:"PlacementId"`
	Status         Status          `dynamodbav:"Status"`
	IPAddress      string          `dynamodbav:"IpAddress,omitempty"`
	DNSName        string          `dynamodbav:"DnsName,omitempty"`
	Port           string          `dynamodbav:"Port,omitempty"`
	GameSessionARN string          `dynamodbav:"GameSessionArn,omitempty"`
	ExpirationTime int64           `dynamodbav:"ExpirationTime"`
	PlayerSessions []PlayerSession `dynamodbav:"PlayerSessions,omitempty"`
}

// SessionFor finds the player session reserved for the given player. A
// fulfilled placement must contain exactly one entry per placed player, so a
// miss here is an internal-consistency error for the caller to surface.
func (p *Placement) SessionFor(playerID string) (string, bool) {
	for _, ps := range p.PlayerSessions {
		if ps.PlayerID == playerID {
			return ps.PlayerSessionID, true
		}
	}
	return "", false
}
