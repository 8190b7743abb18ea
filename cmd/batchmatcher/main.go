// Lambda entry point for the queue-driven batch matcher.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"game-backend/internal/batchmatcher"
	"game-backend/internal/config"
	"game-backend/internal/handler"
	"game-backend/internal/storage"
	"game-backend/pkg/aws/gamelift"
)

func main() {
	h, err := newHandler()
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h.Handle)
}

func newHandler() (*handler.BatchMatch, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvTicketTable:      cfg.TicketTableName,
		config.EnvSessionQueueName: cfg.SessionQueueName,
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

	return handler.NewBatchMatch(cfg, batchmatcher.New(cfg, tickets, matchClient)), nil
}
