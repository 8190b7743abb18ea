package handler

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

// GameRequest handles a player's request to start a game.
type GameRequest struct {
	logger *zap.Logger

	tracker tracker.IFace
}

func NewGameRequest(cfg *config.Config, t tracker.IFace) *GameRequest {
	return &GameRequest{
		logger:  cfg.Logger.Named("game-request"),
		tracker: t,
	}
}

func (h *GameRequest) Handle(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	playerId := playerIdFromRequest(event)
	if playerId == "" {
		return plainResponse(http.StatusUnauthorized)
	}
	h.logger.Info("handling start game request", zap.String("playerId", playerId))

	latencies := regionToLatencyMapping(h.logger, event.Body)
	if len(latencies) == 0 {
		h.logger.Info("no region latency mapping provided", zap.String("playerId", playerId))
	}

	result, err := h.tracker.CreateTicket(playerId, latencies)
	if err != nil {
		h.logger.Error("error creating matchmaking request", zap.String("playerId", playerId), zap.Error(err))
		return plainResponse(http.StatusInternalServerError)
	}

	if result == tracker.CreateConflict {
		return plainResponse(http.StatusConflict)
	}
	return plainResponse(http.StatusAccepted)
}
