package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/resolver"
)

// ResultsRequest answers a player's poll for game connection info.
type ResultsRequest struct {
	logger *zap.Logger

	resolver resolver.IFace
}

func NewResultsRequest(cfg *config.Config, r resolver.IFace) *ResultsRequest {
	return &ResultsRequest{
		logger:   cfg.Logger.Named("results-request"),
		resolver: r,
	}
}

func (h *ResultsRequest) Handle(event events.APIGatewayV2HTTPRequest) events.APIGatewayV2HTTPResponse {
	playerId := playerIdFromRequest(event)
	if playerId == "" {
		return plainResponse(http.StatusUnauthorized)
	}
	h.logger.Info("handling results request", zap.String("playerId", playerId))

	result, conn, err := h.resolver.GetConnectionInfo(playerId)
	if err != nil {
		h.logger.Error("error resolving connection info", zap.String("playerId", playerId), zap.Error(err))
		return plainResponse(http.StatusInternalServerError)
	}

	switch result {
	case resolver.ResultNotFound:
		return plainResponse(http.StatusNotFound)
	case resolver.ResultInProgress:
		return plainResponse(http.StatusNoContent)
	case resolver.ResultReady:
		body, err := json.Marshal(conn)
		if err != nil {
			h.logger.Error("error encoding connection info", zap.Error(err))
			return plainResponse(http.StatusInternalServerError)
		}
		return bodyResponse(http.StatusOK, string(body))
	default:
		return plainResponse(http.StatusInternalServerError)
	}
}
