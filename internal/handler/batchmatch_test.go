package handler

import (
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-backend/internal/batchmatcher"
	"game-backend/internal/config"
	"game-backend/internal/tracker"
)

func queueMessage(attributes map[string]string) events.SQSMessage {
	messageAttributes := make(map[string]events.SQSMessageAttribute, len(attributes))
	for name, value := range attributes {
		value := value
		messageAttributes[name] = events.SQSMessageAttribute{
			DataType:    "String",
			StringValue: &value,
		}
	}
	return events.SQSMessage{
		MessageId:         "mock-message-id",
		MessageAttributes: messageAttributes,
	}
}

func Test_BatchMatch_Handle(t *testing.T) {
	t.Run("Happy path - Full batch handed to the matcher", func(t *testing.T) {
		event := events.SQSEvent{Records: []events.SQSMessage{
			queueMessage(map[string]string{
				tracker.AttrPlayerId:               "alice",
				tracker.AttrStartTime:              "1700000000",
				tracker.AttrRegionToLatencyMapping: `{"us-west-2": 40}`,
			}),
			queueMessage(map[string]string{
				tracker.AttrPlayerId:  "bob",
				tracker.AttrStartTime: "1700000010",
			}),
		}}
		mockMatcher := new(batchmatcher.MockMatcher)
		mockMatcher.On(batchmatcher.MatchMethod, []batchmatcher.Request{
			{PlayerId: "alice", StartTime: 1700000000, Latencies: map[string]int64{"us-west-2": 40}},
			{PlayerId: "bob", StartTime: 1700000010},
		}).Return(nil)
		h := NewBatchMatch(config.NewTestConfig(), mockMatcher)

		err := h.Handle(event)

		require.NoError(t, err)
		mockMatcher.AssertExpectations(t)
	})

	t.Run("Happy path - Malformed messages are skipped", func(t *testing.T) {
		event := events.SQSEvent{Records: []events.SQSMessage{
			queueMessage(map[string]string{
				tracker.AttrStartTime: "1700000000",
			}),
			queueMessage(map[string]string{
				tracker.AttrPlayerId:  "bob",
				tracker.AttrStartTime: "not a number",
			}),
			queueMessage(map[string]string{
				tracker.AttrPlayerId:               "carol",
				tracker.AttrStartTime:              "1700000020",
				tracker.AttrRegionToLatencyMapping: "not json",
			}),
			queueMessage(map[string]string{
				tracker.AttrPlayerId:  "dave",
				tracker.AttrStartTime: "1700000030",
			}),
		}}
		mockMatcher := new(batchmatcher.MockMatcher)
		mockMatcher.On(batchmatcher.MatchMethod, []batchmatcher.Request{
			{PlayerId: "dave", StartTime: 1700000030},
		}).Return(nil)
		h := NewBatchMatch(config.NewTestConfig(), mockMatcher)

		err := h.Handle(event)

		require.NoError(t, err)
		mockMatcher.AssertExpectations(t)
	})

	t.Run("Sad path - Matcher error surfaces for redelivery", func(t *testing.T) {
		event := events.SQSEvent{Records: []events.SQSMessage{
			queueMessage(map[string]string{
				tracker.AttrPlayerId:  "alice",
				tracker.AttrStartTime: "1700000000",
			}),
		}}
		mockMatcher := new(batchmatcher.MockMatcher)
		mockMatcher.On(batchmatcher.MatchMethod, []batchmatcher.Request{
			{PlayerId: "alice", StartTime: 1700000000},
		}).Return(errors.New("mock error"))
		h := NewBatchMatch(config.NewTestConfig(), mockMatcher)

		err := h.Handle(event)

		assert.Error(t, err)
	})
}
