package handler

import (
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

// StatusPoller runs the reconciliation sweep on a schedule.
type StatusPoller struct {
	logger *zap.Logger

	tracker tracker.IFace
}

func NewStatusPoller(cfg *config.Config, t tracker.IFace) *StatusPoller {
	return &StatusPoller{
		logger:  cfg.Logger.Named("status-poller"),
		tracker: t,
	}
}

func (h *StatusPoller) Handle(event events.CloudWatchEvent) error {
	h.logger.Info("polling non-terminal matchmaking requests", zap.Time("scheduled", event.Time))
	if err := h.tracker.ReconcilePoll(); err != nil {
		h.logger.Error("reconciliation poll failed", zap.Error(err))
		return err
	}
	return nil
}
