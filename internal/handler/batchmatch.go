package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"game-backend/internal/batchmatcher"
	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

// BatchMatch consumes a full batch of queued matchmaking requests and hands
// it to the batch matcher.
type BatchMatch struct {
	logger *zap.Logger

	matcher batchmatcher.IFace
}

func NewBatchMatch(cfg *config.Config, m batchmatcher.IFace) *BatchMatch {
	return &BatchMatch{
		logger:  cfg.Logger.Named("batch-match"),
		matcher: m,
	}
}

func (h *BatchMatch) Handle(event events.SQSEvent) error {
	requests := make([]batchmatcher.Request, 0, len(event.Records))
	for _, record := range event.Records {
		request, err := requestFromMessage(record)
		if err != nil {
			// Drop the malformed message; retrying cannot fix its payload.
			h.logger.Warn("dropping malformed queue message",
				zap.String("messageId", record.MessageId),
				zap.Error(err))
			continue
		}
		requests = append(requests, request)
	}

	return h.matcher.Match(requests)
}

func requestFromMessage(record events.SQSMessage) (batchmatcher.Request, error) {
	playerId := stringAttribute(record, tracker.AttrPlayerId)
	if playerId == "" {
		return batchmatcher.Request{}, fmt.Errorf("message missing attribute: [%s]", tracker.AttrPlayerId)
	}

	rawStartTime := stringAttribute(record, tracker.AttrStartTime)
	startTime, err := strconv.ParseInt(rawStartTime, 10, 64)
	if err != nil {
		return batchmatcher.Request{}, fmt.Errorf("invalid start time: [%s]", rawStartTime)
	}

	request := batchmatcher.Request{
		PlayerId:  playerId,
		StartTime: startTime,
	}
	if mapping := stringAttribute(record, tracker.AttrRegionToLatencyMapping); mapping != "" {
		if err := json.Unmarshal([]byte(mapping), &request.Latencies); err != nil {
			return batchmatcher.Request{}, fmt.Errorf("invalid region latency mapping: [%s]", mapping)
		}
	}
	return request, nil
}

func stringAttribute(record events.SQSMessage, name string) string {
	attribute, ok := record.MessageAttributes[name]
	if !ok || attribute.StringValue == nil {
		return ""
	}
	return *attribute.StringValue
}
