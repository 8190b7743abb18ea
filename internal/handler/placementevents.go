package handler

import (
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

// PlacementEvents ingests game session placement notifications pushed over
// SNS.
type PlacementEvents struct {
	logger *zap.Logger

	tracker tracker.IFace
}

func NewPlacementEvents(cfg *config.Config, t tracker.IFace) *PlacementEvents {
	return &PlacementEvents{
		logger:  cfg.Logger.Named("placement-events"),
		tracker: t,
	}
}

func (h *PlacementEvents) Handle(event events.SNSEvent) error {
	var errs error
	for _, record := range event.Records {
		h.logger.Info("handling placement event", zap.String("messageId", record.SNS.MessageID))
		errs = multierr.Append(errs, h.tracker.HandlePlacementEvent([]byte(record.SNS.Message)))
	}
	return errs
}
