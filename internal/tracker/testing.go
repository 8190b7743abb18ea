package tracker

import (
	"github.com/stretchr/testify/mock"

	"game-backend/internal/matchmaking"
)

const (
	CreateTicketMethod         = "CreateTicket"
	ReconcilePollMethod        = "ReconcilePoll"
	HandleMatchEventMethod     = "HandleMatchEvent"
	HandlePlacementEventMethod = "HandlePlacementEvent"
	StartMethod                = "Start"
)

// Ensure MockTracker implements IFace
var _ IFace = (*MockTracker)(nil)

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) CreateTicket(playerId string, latencies map[string]int64) (CreateResult, error) {
	args := m.Called(playerId, latencies)
	return args.Get(0).(CreateResult), args.Error(1)
}

func (m *MockTracker) ReconcilePoll() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTracker) HandleMatchEvent(message []byte) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockTracker) HandlePlacementEvent(message []byte) error {
	args := m.Called(message)
	return args.Error(0)
}

// Ensure MockHandoff implements Handoff
var _ Handoff = (*MockHandoff)(nil)

type MockHandoff struct {
	mock.Mock
}

func (m *MockHandoff) Start(ticket *matchmaking.Ticket, latencies map[string]int64) (string, error) {
	args := m.Called(ticket, latencies)
	return args.String(0), args.Error(1)
}
