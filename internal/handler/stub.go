package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-backend/internal/config"
)

// StubGameRequest serves the deployment variant that never implements
// matchmaking: it always answers 501, echoing the parsed latency mapping so
// clients can verify their request wiring end to end.
type StubGameRequest struct {
	logger *zap.Logger

	gameName string
}

func NewStubGameRequest(cfg *config.Config) *StubGameRequest {
	return &StubGameRequest{
		logger:   cfg.Logger.Named("stub-game-request"),
		gameName: cfg.GameName,
	}
}

func (h *StubGameRequest) Handle(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	playerId := playerIdFromRequest(event)
	if playerId == "" {
		return plainResponse(http.StatusUnauthorized)
	}
	h.logger.Info("handling start game request",
		zap.String("playerId", playerId),
		zap.String("gameName", h.gameName))

	latencies := regionToLatencyMapping(h.logger, event.Body)
	body, _ := json.Marshal(latencies)
	return bodyResponse(http.StatusNotImplemented, string(body))
}
