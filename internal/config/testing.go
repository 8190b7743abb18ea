package config

import (
	"go.uber.org/zap"
)

const (
	// Mock config data
	MockTicketTableName    = "MockMatchmakingRequest"
	MockPlacementTableName = "MockGameSessionPlacement"
	MockTicketIdIndexName  = "MockTicketIdIndex"
	MockMatchmakingConfig  = "MockMatchmakingConfiguration"
	MockTeamName           = "MockTeam"
	MockTicketQueueUrl     = "https://sqs.mock.amazonaws.com/ticket-queue.fifo"
	MockSessionQueueName   = "MockSessionQueue"
	MockGameName           = "MockGame"
)

func NewTestConfig() *Config {
	return &Config{
		Logger: zap.NewNop(),

		TicketTableName:    MockTicketTableName,
		PlacementTableName: MockPlacementTableName,
		TicketIdIndexName:  MockTicketIdIndexName,

		MatchmakingConfigurationName: MockMatchmakingConfig,
		TeamName:                     MockTeamName,

		TicketQueueUrl:   MockTicketQueueUrl,
		SessionQueueName: MockSessionQueueName,
		PlayersPerGame:   2,

		GameName: MockGameName,

		TicketTtlSeconds:  600,
		MinElapsedSeconds: 30,
		DescribeBatchSize: 10,
		PollScanLimit:     50,
	}
}
