package batchmatcher

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/storage"
	"game-backend/pkg/aws/gamelift"
)

const (
	loggerName = "batch-matcher"
)

// Request is one dequeued matchmaking request awaiting placement.
type Request struct {
	PlayerId  string
	StartTime int64
	Latencies map[string]int64
}

// Ensure Matcher implements IFace
var _ IFace = (*Matcher)(nil)

type IFace interface {
	Match(requests []Request) error
}

// Matcher groups a fixed-size batch of queued requests into one game session
// placement and marks each member ticket with the shared placement id.
type Matcher struct {
	cfg    *config.Config
	logger *zap.Logger

	tickets     storage.TicketsIFace
	matchClient gamelift.ClientIFace

	newPlacementId func() string
}

func New(cfg *config.Config, tickets storage.TicketsIFace, matchClient gamelift.ClientIFace) *Matcher {
	return &Matcher{
		cfg:    cfg,
		logger: cfg.Logger.Named(loggerName),

		tickets:     tickets,
		matchClient: matchClient,

		newPlacementId: uuid.NewString,
	}
}

// Match places one batch of requests into a single game session. The batch
// size is fixed by configuration; a short batch is an invocation error so the
// messages return to the queue for redelivery with a full batch.
func (m *Matcher) Match(requests []Request) error {
	if len(requests) < m.cfg.PlayersPerGame {
		return fmt.Errorf("not enough players in batch: got [%d], expected [%d]", len(requests), m.cfg.PlayersPerGame)
	}

	placementId := m.newPlacementId()

	players := make([]gamelift.PlayerSessionRequest, 0, len(requests))
	var latencies []gamelift.PlayerLatency
	for _, request := range requests {
		playerData, err := json.Marshal(request)
		if err != nil {
			return err
		}
		players = append(players, gamelift.PlayerSessionRequest{
			PlayerId:   request.PlayerId,
			PlayerData: string(playerData),
		})

		if len(request.Latencies) == 0 {
			m.logger.Info("no region latency mapping provided", zap.String("playerId", request.PlayerId))
			continue
		}
		for region, latencyMs := range request.Latencies {
			latencies = append(latencies, gamelift.PlayerLatency{
				PlayerId:  request.PlayerId,
				Region:    region,
				LatencyMs: latencyMs,
			})
		}
	}

	m.logger.Info("starting game session placement",
		zap.String("placementId", placementId),
		zap.Int("players", len(players)))
	if err := m.matchClient.StartPlacement(placementId, m.cfg.SessionQueueName, int64(m.cfg.PlayersPerGame), players, latencies); err != nil {
		return err
	}

	var errs error
	for _, request := range requests {
		errs = multierr.Append(errs, m.tickets.AssignPlacement(request.PlayerId, request.StartTime, placementId))
	}
	return errs
}
