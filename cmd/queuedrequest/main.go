// Lambda entry point for the start-game request in deployments where
// matching happens out of band: the request is queued for the batch matcher
// and the ticket stays pending until a placement picks it up.
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
	"game-backend/pkg/aws/sqs"
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
		config.EnvTicketTable:    cfg.TicketTableName,
		config.EnvPlacementTable: cfg.PlacementTableName,
		config.EnvTicketQueueUrl: cfg.TicketQueueUrl,
	}); err != nil {
		return nil, err
	}

	awsSession, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}

	db := dynamodb.New(awsSession)
	tickets := storage.NewTicketStore(db, cfg.TicketTableName, cfg.TicketIdIndexName)
	placements := storage.NewPlacementStore(db, cfg.PlacementTableName)
	queueClient := sqs.New()
	queueClient.ConnectWithSession(awsSession)

	t := tracker.New(cfg, tickets, placements, nil, tracker.NewQueueHandoff(cfg, queueClient), metrics.New(prometheus.NewRegistry()))
	return handler.NewGameRequest(cfg, t), nil
}
