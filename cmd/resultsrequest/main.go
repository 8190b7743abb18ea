// Lambda entry point for the get-game-connection poll.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"game-backend/internal/config"
	"game-backend/internal/handler"
	"game-backend/internal/resolver"
	"game-backend/internal/storage"
)

func main() {
	h, err := newHandler()
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h.Handle)
}

func newHandler() (*handler.ResultsRequest, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvTicketTable: cfg.TicketTableName,
	}); err != nil {
		return nil, err
	}

	awsSession, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}

	db := dynamodb.New(awsSession)
	tickets := storage.NewTicketStore(db, cfg.TicketTableName, cfg.TicketIdIndexName)

	// The placement table only exists in batch-matched deployments.
	var placements storage.PlacementsIFace
	if cfg.PlacementTableName != "" {
		placements = storage.NewPlacementStore(db, cfg.PlacementTableName)
	}

	return handler.NewResultsRequest(cfg, resolver.New(cfg, tickets, placements)), nil
}
