package tracker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	awsgamelift "github.com/aws/aws-sdk-go/service/gamelift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"game-backend/internal/matchmaking"
	"game-backend/internal/storage"
	"game-backend/pkg/aws/gamelift"
)

func describeResult(ticketId string, status string) *awsgamelift.MatchmakingTicket {
	return &awsgamelift.MatchmakingTicket{
		TicketId: aws.String(ticketId),
		Status:   aws.String(status),
	}
}

func Test_Tracker_ReconcilePoll(t *testing.T) {
	pollTime := testTime.Unix()
	cutoff := pollTime - 30
	staleTicket := matchmaking.Ticket{
		PlayerID:  "alice",
		StartTime: pollTime - 120,
		Status:    matchmaking.StatusStarted,
		TicketID:  "ticket-1",
	}

	t.Run("Happy path - No stale tickets", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return(nil, nil)
		tr := newTestTracker(mockTickets, nil, nil)

		err := tr.ReconcilePoll()

		require.NoError(t, err)
		mockTickets.AssertCalled(t, storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50))
	})

	t.Run("Happy path - Still searching refreshes the timestamp", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return([]matchmaking.Ticket{staleTicket}, nil)
		mockTickets.On(storage.UpdateIfStatusMethod, staleTicket.PlayerID, staleTicket.StartTime, matchmaking.StatusStarted, storage.TicketUpdate{LastUpdatedTime: pollTime}).Return(nil)
		mockMatchClient := new(gamelift.MockClient)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, []string{"ticket-1"}).Return([]*awsgamelift.MatchmakingTicket{describeResult("ticket-1", "SEARCHING")}, nil)
		tr := newTestTracker(mockTickets, nil, nil)
		tr.matchClient = mockMatchClient

		err := tr.ReconcilePoll()

		require.NoError(t, err)
		mockTickets.AssertCalled(t, storage.UpdateIfStatusMethod, staleTicket.PlayerID, staleTicket.StartTime, matchmaking.StatusStarted, storage.TicketUpdate{LastUpdatedTime: pollTime})
	})

	t.Run("Happy path - Completed ticket resolves with connection info", func(t *testing.T) {
		result := describeResult("ticket-1", "COMPLETED")
		result.GameSessionConnectionInfo = &awsgamelift.GameSessionConnectionInfo{
			IpAddress:      aws.String("10.0.0.1"),
			Port:           aws.Int64(7777),
			DnsName:        aws.String("session.example.com"),
			GameSessionArn: aws.String("arn:mock"),
			MatchedPlayerSessions: []*awsgamelift.MatchedPlayerSession{
				{PlayerId: aws.String("alice"), PlayerSessionId: aws.String("psess-alice")},
			},
		}
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return([]matchmaking.Ticket{staleTicket}, nil)
		mockTickets.On(storage.UpdateIfStatusMethod, staleTicket.PlayerID, staleTicket.StartTime, matchmaking.StatusStarted, mock.Anything).Return(nil)
		mockMatchClient := new(gamelift.MockClient)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, []string{"ticket-1"}).Return([]*awsgamelift.MatchmakingTicket{result}, nil)
		tr := newTestTracker(mockTickets, nil, nil)
		tr.matchClient = mockMatchClient

		err := tr.ReconcilePoll()

		require.NoError(t, err)
		update := mockTickets.Calls[1].Arguments.Get(3).(storage.TicketUpdate)
		assert.Equal(t, matchmaking.StatusSucceeded, update.Status)
		require.NotNil(t, update.Connection)
		assert.Equal(t, "10.0.0.1", update.Connection.IPAddress)
		assert.Equal(t, "7777", update.Connection.Port)
		assert.Equal(t, "psess-alice", update.Connection.PlayerSessionID)
	})

	t.Run("Happy path - Timed out ticket resolves without connection info", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return([]matchmaking.Ticket{staleTicket}, nil)
		mockTickets.On(storage.UpdateIfStatusMethod, staleTicket.PlayerID, staleTicket.StartTime, matchmaking.StatusStarted, mock.Anything).Return(nil)
		mockMatchClient := new(gamelift.MockClient)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, []string{"ticket-1"}).Return([]*awsgamelift.MatchmakingTicket{describeResult("ticket-1", "TIMED_OUT")}, nil)
		tr := newTestTracker(mockTickets, nil, nil)
		tr.matchClient = mockMatchClient

		err := tr.ReconcilePoll()

		require.NoError(t, err)
		update := mockTickets.Calls[1].Arguments.Get(3).(storage.TicketUpdate)
		assert.Equal(t, matchmaking.StatusTimedOut, update.Status)
		assert.Nil(t, update.Connection)
	})

	t.Run("Happy path - Large sweep queries in batches", func(t *testing.T) {
		var stale []matchmaking.Ticket
		var firstBatch, secondBatch []string
		for i := 0; i < 12; i++ {
			ticketId := fmt.Sprintf("ticket-%d", i)
			stale = append(stale, matchmaking.Ticket{
				PlayerID:  fmt.Sprintf("player-%d", i),
				StartTime: pollTime - 120,
				Status:    matchmaking.StatusStarted,
				TicketID:  ticketId,
			})
			if i < 10 {
				firstBatch = append(firstBatch, ticketId)
			} else {
				secondBatch = append(secondBatch, ticketId)
			}
		}
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return(stale, nil)
		mockTickets.On(storage.UpdateIfStatusMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockMatchClient := new(gamelift.MockClient)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, firstBatch).Return([]*awsgamelift.MatchmakingTicket{}, nil)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, secondBatch).Return([]*awsgamelift.MatchmakingTicket{}, nil)
		tr := newTestTracker(mockTickets, nil, nil)
		tr.matchClient = mockMatchClient

		err := tr.ReconcilePoll()

		require.NoError(t, err)
		mockMatchClient.AssertCalled(t, gamelift.DescribeMatchmakingMethod, firstBatch)
		mockMatchClient.AssertCalled(t, gamelift.DescribeMatchmakingMethod, secondBatch)
	})

	t.Run("Sad path - Scan error", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return(nil, errors.New("mock error"))
		tr := newTestTracker(mockTickets, nil, nil)

		err := tr.ReconcilePoll()

		assert.Error(t, err)
	})

	t.Run("Sad path - Describe error", func(t *testing.T) {
		mockTickets := new(storage.MockTickets)
		mockTickets.On(storage.InFlightBeforeMethod, matchmaking.StatusStarted, cutoff, int64(50)).Return([]matchmaking.Ticket{staleTicket}, nil)
		mockMatchClient := new(gamelift.MockClient)
		mockMatchClient.On(gamelift.DescribeMatchmakingMethod, []string{"ticket-1"}).Return(nil, errors.New("mock error"))
		tr := newTestTracker(mockTickets, nil, nil)
		tr.matchClient = mockMatchClient

		err := tr.ReconcilePoll()

		assert.Error(t, err)
	})
}

func Test_connectionFromDescribe(t *testing.T) {
	tests := []struct {
		name   string
		info   *awsgamelift.GameSessionConnectionInfo
		expNil bool
	}{
		{
			name:   "No connection info",
			info:   nil,
			expNil: true,
		},
		{
			name: "No matched player sessions",
			info: &awsgamelift.GameSessionConnectionInfo{
				IpAddress: aws.String("10.0.0.1"),
			},
			expNil: true,
		},
		{
			name: "More than one matched player session",
			info: &awsgamelift.GameSessionConnectionInfo{
				IpAddress: aws.String("10.0.0.1"),
				MatchedPlayerSessions: []*awsgamelift.MatchedPlayerSession{
					{PlayerSessionId: aws.String("psess-1")},
					{PlayerSessionId: aws.String("psess-2")},
				},
			},
			expNil: true,
		},
		{
			name: "Exactly one matched player session",
			info: &awsgamelift.GameSessionConnectionInfo{
				IpAddress:      aws.String("10.0.0.1"),
				Port:           aws.Int64(7777),
				GameSessionArn: aws.String("arn:mock"),
				MatchedPlayerSessions: []*awsgamelift.MatchedPlayerSession{
					{PlayerSessionId: aws.String("psess-1")},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := connectionFromDescribe(&awsgamelift.MatchmakingTicket{GameSessionConnectionInfo: tt.info})

			if tt.expNil {
				assert.Nil(t, conn)
				return
			}
			require.NotNil(t, conn)
			assert.Equal(t, "psess-1", conn.PlayerSessionID)
			assert.Equal(t, "7777", conn.Port)
		})
	}
}

func Test_partition(t *testing.T) {
	tickets := make([]matchmaking.Ticket, 12)

	batches := partition(tickets, 10)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 2)

	assert.Nil(t, partition(nil, 10))
	assert.Len(t, partition(tickets[:3], 10), 1)
}
