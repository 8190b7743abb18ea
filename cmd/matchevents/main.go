// Lambda entry point for FlexMatch status notifications.
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

func newHandler() (*handler.MatchEvents, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvTicketTable:   cfg.TicketTableName,
		config.EnvTicketIdIndex: cfg.TicketIdIndexName,
	}); err != nil {
		return nil, err
	}

	awsSession, err := session.NewSession(aws.NewConfig())
	if err != nil {
		return nil, err
	}

	tickets := storage.NewTicketStore(dynamodb.New(awsSession), cfg.TicketTableName, cfg.TicketIdIndexName)

	t := tracker.New(cfg, tickets, nil, nil, nil, metrics.New(prometheus.NewRegistry()))
	return handler.NewMatchEvents(cfg, t), nil
}
