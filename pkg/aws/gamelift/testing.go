package gamelift

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/gamelift"
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod             = "Connect"
	ConnectWithSessionMethod  = "ConnectWithSession"
	GetSessionMethod          = "GetSession"
	StartMatchmakingMethod    = "StartMatchmaking"
	DescribeMatchmakingMethod = "DescribeMatchmaking"
	StartPlacementMethod      = "StartPlacement"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) ConnectWithSession(awsSession *session.Session) {
	_ = m.Called(awsSession)
}

func (m *MockClient) GetSession() *session.Session {
	args := m.Called()
	return args.Get(0).(*session.Session)
}

func (m *MockClient) StartMatchmaking(configurationName string, playerId string, teamName string, latencies map[string]int64) (string, error) {
	args := m.Called(configurationName, playerId, teamName, latencies)
	return args.String(0), args.Error(1)
}

func (m *MockClient) DescribeMatchmaking(ticketIds []string) ([]*gamelift.MatchmakingTicket, error) {
	args := m.Called(ticketIds)
	var tickets []*gamelift.MatchmakingTicket
	if v := args.Get(0); v != nil {
		tickets = v.([]*gamelift.MatchmakingTicket)
	}
	return tickets, args.Error(1)
}

func (m *MockClient) StartPlacement(placementId string, queueName string, maxPlayers int64, players []PlayerSessionRequest, latencies []PlayerLatency) error {
	args := m.Called(placementId, queueName, maxPlayers, players, latencies)
	return args.Error(0)
}
