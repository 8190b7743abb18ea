// Lambda entry point for game session placement notifications.
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
	"game-backend/pkg/metrics"
)

func main() {
	h, err := newHandler()
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h.Handle)
}

func newHandler() (*handler.PlacementEvents, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvPlacementTable: cfg.PlacementTableName,
	}); err != nil {
		return nil, err
	}

	awsSession, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}

	placements := storage.NewPlacementStore(dynamodb.New(awsSession), cfg.PlacementTableName)

	t := tracker.New(cfg, nil, placements, nil, nil, metrics.New(prometheus.NewRegistry()))
	return handler.NewPlacementEvents(cfg, t), nil
}
