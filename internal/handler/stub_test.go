package handler

import (
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"

	"game-backend/internal/config"
)

func Test_StubGameRequest_Handle(t *testing.T) {
	h := NewStubGameRequest(config.NewTestConfig())

	t.Run("Happy path - Echoes parsed latency mapping with 501", func(t *testing.T) {
		rsp := h.Handle(authorizedRequest("alice", `{"regionToLatencyMapping": {"us-west-2": 40}}`))

		assert.Equal(t, http.StatusNotImplemented, rsp.StatusCode)
		assert.JSONEq(t, `{"us-west-2": 40}`, rsp.Body)
	})

	t.Run("Sad path - No identity claims", func(t *testing.T) {
		rsp := h.Handle(events.APIGatewayV2HTTPRequest{})

		assert.Equal(t, http.StatusUnauthorized, rsp.StatusCode)
	})
}
