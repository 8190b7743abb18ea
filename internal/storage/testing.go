package storage

import (
	"github.com/stretchr/testify/mock"

	"game-backend/internal/matchmaking"
)

const (
	LatestMethod          = "Latest"
	PutMethod             = "Put"
	DeleteMethod          = "Delete"
	ByTicketIdMethod      = "ByTicketId"
	InFlightBeforeMethod  = "InFlightBefore"
	UpdateIfStatusMethod  = "UpdateIfStatus"
	AssignPlacementMethod = "AssignPlacement"
	GetMethod             = "Get"
)

// Ensure MockTickets implements TicketsIFace
var _ TicketsIFace = (*MockTickets)(nil)

type MockTickets struct {
	mock.Mock
}

func (m *MockTickets) Latest(playerId string) (*matchmaking.Ticket, error) {
	args := m.Called(playerId)
	var ticket *matchmaking.Ticket
	if v := args.Get(0); v != nil {
		ticket = v.(*matchmaking.Ticket)
	}
	return ticket, args.Error(1)
}

func (m *MockTickets) Put(ticket *matchmaking.Ticket) error {
	args := m.Called(ticket)
	return args.Error(0)
}

func (m *MockTickets) Delete(playerId string, startTime int64) error {
	args := m.Called(playerId, startTime)
	return args.Error(0)
}

func (m *MockTickets) ByTicketId(ticketId string) (*matchmaking.Ticket, error) {
	args := m.Called(ticketId)
	var ticket *matchmaking.Ticket
	if v := args.Get(0); v != nil {
		ticket = v.(*matchmaking.Ticket)
	}
	return ticket, args.Error(1)
}

func (m *MockTickets) InFlightBefore(status matchmaking.Status, cutoff int64, limit int64) ([]matchmaking.Ticket, error) {
	args := m.Called(status, cutoff, limit)
	var tickets []matchmaking.Ticket
	if v := args.Get(0); v != nil {
		tickets = v.([]matchmaking.Ticket)
	}
	return tickets, args.Error(1)
}

func (m *MockTickets) UpdateIfStatus(playerId string, startTime int64, expected matchmaking.Status, update TicketUpdate) error {
	args := m.Called(playerId, startTime, expected, update)
	return args.Error(0)
}

func (m *MockTickets) AssignPlacement(playerId string, startTime int64, placementId string) error {
	args := m.Called(playerId, startTime, placementId)
	return args.Error(0)
}

// Ensure MockPlacements implements PlacementsIFace
var _ PlacementsIFace = (*MockPlacements)(nil)

type MockPlacements struct {
	mock.Mock
}

func (m *MockPlacements) Get(placementId string) (*matchmaking.Placement, error) {
	args := m.Called(placementId)
	var placement *matchmaking.Placement
	if v := args.Get(0); v != nil {
		placement = v.(*matchmaking.Placement)
	}
	return placement, args.Error(1)
}

func (m *MockPlacements) Put(placement *matchmaking.Placement) error {
	args := m.Called(placement)
	return args.Error(0)
}
