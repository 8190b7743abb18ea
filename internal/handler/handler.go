// Package handler adapts lambda invocation events to the matchmaking
// components. Player-facing handlers speak API Gateway; the async handlers
// consume SNS, SQS and scheduled events. User-visible outcomes are expressed
// entirely through the response status code.
package handler

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypePlain  = "text/plain"

	claimSubject = "sub"
)

func plainResponse(statusCode int) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			contentTypeHeader: contentTypePlain,
		},
	}
}

func bodyResponse(statusCode int, body string) events.APIGatewayV2HTTPResponse {
	rsp := plainResponse(statusCode)
	rsp.Body = body
	return rsp
}

// playerIdFromRequest extracts the authenticated player id from the identity
// token claims attached by the API gateway authorizer.
func playerIdFromRequest(event events.APIGatewayV2HTTPRequest) string {
	authorizer := event.RequestContext.Authorizer
	if authorizer == nil || authorizer.JWT == nil {
		return ""
	}
	return authorizer.JWT.Claims[claimSubject]
}

// regionToLatencyMapping parses the optional request body. A malformed body
// is logged and treated as no mapping, never rejected.
func regionToLatencyMapping(logger *zap.Logger, body string) map[string]int64 {
	if body == "" {
		return nil
	}

	var request struct {
		RegionToLatencyMapping map[string]int64 `json:"regionToLatencyMapping"`
	}
	if err := json.Unmarshal([]byte(body), &request); err != nil {
		logger.Warn("error parsing request body", zap.String("body", body), zap.Error(err))
		return nil
	}
	return request.RegionToLatencyMapping
}
