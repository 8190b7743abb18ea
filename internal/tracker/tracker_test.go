package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/matchmaking"
	"game-backend/internal/storage"
	"game-backend/pkg/metrics"
)

var testTime = time.Unix(1700000000, 0)

func newTestTracker(tickets storage.TicketsIFace, placements storage.PlacementsIFace, handoff Handoff) *Tracker {
	cfg := config.NewTestConfig()
	return &Tracker{
		cfg:        cfg,
		logger:     zap.NewNop(),
		tickets:    tickets,
		placements: placements,
		handoff:    handoff,
		metrics:    metrics.New(prometheus.NewRegistry()),
		now:        func() time.Time { return testTime },
	}
}

func Test_Tracker_CreateTicket(t *testing.T) {
	playerId := "alice"
	latencies := map[string]int64{"us-west-2": 40}
	startTime := testTime.Unix()

	t.Run("Happy path - Direct handoff promotes ticket to started", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(nil, nil)
		mockTickets.On(storage.PutMethod, mock.Anything).Return(nil)
		mockTickets.On(storage.UpdateIfStatusMethod, playerId, startTime, matchmaking.StatusPending, mock.Anything).Return(nil)
		mockHandoff := new(MockHandoff)
		mockHandoff.On(StartMethod, mock.Anything, latencies).Return("ticket-1", nil)
		tr := newTestTracker(mockTickets, nil, mockHandoff)

		result, err := tr.CreateTicket(playerId, latencies)

		require.NoError(t, err)
		assert.Equal(t, CreateAccepted, result)

		// Pending row written with the configured TTL.
		putTicket := mockTickets.Calls[1].Arguments.Get(0).(*matchmaking.Ticket)
		assert.Equal(t, matchmaking.StatusPending, putTicket.Status)
		assert.Equal(t, startTime, putTicket.StartTime)
		assert.Equal(t, startTime+600, putTicket.ExpirationTime)

		// Promoted only while still pending, carrying the matcher's id.
		update := mockTickets.Calls[2].Arguments.Get(3).(storage.TicketUpdate)
		assert.Equal(t, matchmaking.StatusStarted, update.Status)
		assert.Equal(t, "ticket-1", update.TicketId)
	})

	t.Run("Happy path - Queue handoff leaves ticket pending", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(nil, nil)
		mockTickets.On(storage.PutMethod, mock.Anything).Return(nil)
		mockHandoff := new(MockHandoff)
		mockHandoff.On(StartMethod, mock.Anything, latencies).Return("", nil)
		tr := newTestTracker(mockTickets, nil, mockHandoff)

		result, err := tr.CreateTicket(playerId, latencies)

		require.NoError(t, err)
		assert.Equal(t, CreateAccepted, result)
		mockTickets.AssertNotCalled(t, storage.UpdateIfStatusMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Happy path - Terminal ticket does not block a new request", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(&matchmaking.Ticket{
			PlayerID:  playerId,
			StartTime: startTime - 1000,
			Status:    matchmaking.StatusTimedOut,
		}, nil)
		mockTickets.On(storage.PutMethod, mock.Anything).Return(nil)
		mockHandoff := new(MockHandoff)
		mockHandoff.On(StartMethod, mock.Anything, latencies).Return("", nil)
		tr := newTestTracker(mockTickets, nil, mockHandoff)

		result, err := tr.CreateTicket(playerId, latencies)

		require.NoError(t, err)
		assert.Equal(t, CreateAccepted, result)
	})

	t.Run("Sad path - In-flight ticket conflicts", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(&matchmaking.Ticket{
			PlayerID:  playerId,
			StartTime: startTime - 10,
			Status:    matchmaking.StatusStarted,
			TicketID:  "ticket-0",
		}, nil)
		mockHandoff := new(MockHandoff)
		tr := newTestTracker(mockTickets, nil, mockHandoff)

		result, err := tr.CreateTicket(playerId, latencies)

		require.NoError(t, err)
		assert.Equal(t, CreateConflict, result)
		mockTickets.AssertNotCalled(t, storage.PutMethod, mock.Anything)
		mockHandoff.AssertNotCalled(t, StartMethod, mock.Anything, mock.Anything)
	})

	t.Run("Sad path - Failed handoff rolls back the pending row", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(nil, nil)
		mockTickets.On(storage.PutMethod, mock.Anything).Return(nil)
		mockTickets.On(storage.DeleteMethod, playerId, startTime).Return(nil)
		mockHandoff := new(MockHandoff)
		mockHandoff.On(StartMethod, mock.Anything, latencies).Return("", errors.New("mock error"))
		tr := newTestTracker(mockTickets, nil, mockHandoff)

		_, err := tr.CreateTicket(playerId, latencies)

		require.Error(t, err)
		mockTickets.AssertCalled(t, storage.DeleteMethod, playerId, startTime)
	})

	t.Run("Sad path - Lookup error", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.LatestMethod, playerId).Return(nil, errors.New("mock error"))
		tr := newTestTracker(mockTickets, nil, new(MockHandoff))

		_, err := tr.CreateTicket(playerId, latencies)

		assert.Error(t, err)
	})
}

func Test_Tracker_ApplyTerminalUpdate(t *testing.T) {
	playerId := "alice"
	startTime := int64(1699999900)
	conn := &matchmaking.ConnectionInfo{
		IPAddress:       "10.0.0.1",
		Port:            "7777",
		GameSessionARN:  "arn:mock",
		PlayerSessionID: "psess-alice",
	}

	t.Run("Happy path - Update applied", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.UpdateIfStatusMethod, playerId, startTime, matchmaking.StatusStarted, mock.Anything).Return(nil)
		tr := newTestTracker(mockTickets, nil, nil)

		applied, err := tr.ApplyTerminalUpdate(playerId, startTime, matchmaking.StatusStarted, matchmaking.StatusSucceeded, conn)

		require.NoError(t, err)
		assert.True(t, applied)

		update := mockTickets.Calls[0].Arguments.Get(3).(storage.TicketUpdate)
		assert.Equal(t, matchmaking.StatusSucceeded, update.Status)
		assert.Equal(t, conn, update.Connection)
		assert.Equal(t, testTime.Unix(), update.LastUpdatedTime)
	})

	t.Run("Happy path - Lost race is benign", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.UpdateIfStatusMethod, playerId, startTime, matchmaking.StatusStarted, mock.Anything).Return(storage.ErrPreconditionFailed)
		tr := newTestTracker(mockTickets, nil, nil)

		applied, err := tr.ApplyTerminalUpdate(playerId, startTime, matchmaking.StatusStarted, matchmaking.StatusFailed, nil)

		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("Sad path - Store error", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.UpdateIfStatusMethod, playerId, startTime, matchmaking.StatusStarted, mock.Anything).Return(errors.New("mock error"))
		tr := newTestTracker(mockTickets, nil, nil)

		applied, err := tr.ApplyTerminalUpdate(playerId, startTime, matchmaking.StatusStarted, matchmaking.StatusFailed, nil)

		require.Error(t, err)
		assert.False(t, applied)
	})
}
