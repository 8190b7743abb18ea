// Lambda entry point for the stubbed start-game request used by the
// auth-only deployment variant.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"game-backend/internal/config"
	"game-backend/internal/handler"
)

func main() {
	h, err := newHandler()
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(h.Handle)
}

func newHandler() (*handler.StubGameRequest, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if err := config.Require(map[string]string{
		config.EnvGameName: cfg.GameName,
	}); err != nil {
		return nil, err
	}

	return handler.NewStubGameRequest(cfg), nil
}
