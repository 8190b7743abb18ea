package handler

import (
	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

// MatchEvents ingests FlexMatch status notifications pushed over SNS.
type MatchEvents struct {
	logger *zap.Logger

	tracker tracker.IFace
}

func NewMatchEvents(cfg *config.Config, t tracker.IFace) *MatchEvents {
	return &MatchEvents{
		logger:  cfg.Logger.Named("match-events"),
		tracker: t,
	}
}

func (h *MatchEvents) Handle(event events.SNSEvent) error {
	var errs error
	for _, record := range event.Records {
		h.logger.Info("handling match event", zap.String("messageId", record.SNS.MessageID))
		errs = multierr.Append(errs, h.tracker.HandleMatchEvent([]byte(record.SNS.Message)))
	}
	return errs
}
