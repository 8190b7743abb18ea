// Lambda entry point for the start-game request in deployments where
// matchmaking is delegated synchronously to FlexMatch.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/prometheus/client_golang/prometheus"

	"game-backend/internal/config"
	"game-backend/internal/handler"
	"game-backend/internal/storage"
	"game-backend/internal/tracker"
	"game-backend/pkg/aws/gamelift"
	"game-backend/pkg/metrics"
)

func main() {
	h, err := newHandler()
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h.Handle)
}

func newHandler() (*handler.GameRequest, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvTicketTable:       cfg.TicketTableName,
		config.EnvMatchmakingConfig: cfg.MatchmakingConfigurationName,
		config.EnvTeamName:          cfg.TeamName,
	}); err != nil {
		return nil, err
	}

	awsSession, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}

	tickets := storage.NewTicketStore(dynamodb.New(awsSession), cfg.TicketTableName, cfg.TicketIdIndexName)
	matchClient := gamelift.New()
	matchClient.ConnectWithSession(awsSession)

	t := tracker.New(cfg, tickets, nil, matchClient, tracker.NewDirectHandoff(cfg, matchClient), metrics.New(prometheus.NewRegistry()))
	return handler.NewGameRequest(cfg, t), nil
}
