package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"

	"game-backend/internal/config"
	"game-backend/internal/matchmaking"
	"game-backend/pkg/aws/gamelift"
	"game-backend/pkg/aws/sqs"
)

// SQS message attribute names consumed by the batch matcher.
const (
	AttrPlayerId               = "PlayerId"
	AttrStartTime              = "StartTime"
	AttrRegionToLatencyMapping = "RegionToLatencyMapping"
)

// Handoff delegates a freshly created ticket to an external matching
// mechanism. A non-empty ticket id means the matcher tracks the request
// synchronously and the ticket should move to the started status; an empty id
// means matching happens out of band and the ticket stays pending.
type Handoff interface {
	Start(ticket *matchmaking.Ticket, latencies map[string]int64) (ticketId string, err error)
}

// Ensure both handoff strategies implement Handoff
var (
	_ Handoff = (*DirectHandoff)(nil)
	_ Handoff = (*QueueHandoff)(nil)
)

// DirectHandoff opens a matchmaking ticket synchronously with GameLift
// FlexMatch.
type DirectHandoff struct {
	cfg         *config.Config
	matchClient gamelift.ClientIFace
}

func NewDirectHandoff(cfg *config.Config, matchClient gamelift.ClientIFace) *DirectHandoff {
	return &DirectHandoff{
		cfg:         cfg,
		matchClient: matchClient,
	}
}

func (h *DirectHandoff) Start(ticket *matchmaking.Ticket, latencies map[string]int64) (string, error) {
	return h.matchClient.StartMatchmaking(h.cfg.MatchmakingConfigurationName, ticket.PlayerID, h.cfg.TeamName, latencies)
}

// QueueHandoff publishes the request to the batch matcher's queue,
// fire-and-forget. Deduplication by player id keeps redelivery from producing
// more than one in-flight request per player.
type QueueHandoff struct {
	cfg         *config.Config
	queueClient sqs.ClientIFace
}

func NewQueueHandoff(cfg *config.Config, queueClient sqs.ClientIFace) *QueueHandoff {
	return &QueueHandoff{
		cfg:         cfg,
		queueClient: queueClient,
	}
}

func (h *QueueHandoff) Start(ticket *matchmaking.Ticket, latencies map[string]int64) (string, error) {
	attributes := map[string]string{
		AttrPlayerId:  ticket.PlayerID,
		AttrStartTime: strconv.FormatInt(ticket.StartTime, 10),
	}
	if len(latencies) > 0 {
		mapping, err := json.Marshal(latencies)
		if err != nil {
			return "", err
		}
		attributes[AttrRegionToLatencyMapping] = string(mapping)
	}

	msg := fmt.Sprintf("Matchmaking request ticket from PlayerId: %s on StartTime: %d", ticket.PlayerID, ticket.StartTime)
	return "", h.queueClient.Send(h.cfg.TicketQueueUrl, msg, attributes, ticket.PlayerID)
}
