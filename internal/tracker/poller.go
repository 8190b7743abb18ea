package tracker

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	awsgamelift "github.com/aws/aws-sdk-go/service/gamelift"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/matchmaking"
	"game-backend/internal/storage"
)

// ReconcilePoll sweeps started tickets whose terminal outcome was never
// delivered by push event. Only tickets untouched for the configured minimum
// window are re-checked, which bounds the query rate against the matcher and
// skips tickets an event refreshed moments ago.
func (t *Tracker) ReconcilePoll() error {
	pollTime := t.now().Unix()
	cutoff := pollTime - t.cfg.MinElapsedSeconds

	stale, err := t.tickets.InFlightBefore(matchmaking.StatusStarted, cutoff, t.cfg.PollScanLimit)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		t.logger.Info("no stale in-flight matchmaking requests found")
		return nil
	}

	var errs error
	for _, batch := range partition(stale, t.cfg.DescribeBatchSize) {
		errs = multierr.Append(errs, t.reconcileBatch(batch, pollTime))
	}
	return errs
}

// reconcileBatch queries the matcher for one partition of tickets and applies
// whatever outcomes it reports. The matcher may return fewer tickets than
// asked for (already garbage-collected on its side); the rest are processed
// without retry.
func (t *Tracker) reconcileBatch(batch []matchmaking.Ticket, pollTime int64) error {
	ticketIds := make([]string, 0, len(batch))
	byTicketId := make(map[string]matchmaking.Ticket, len(batch))
	for _, ticket := range batch {
		ticketIds = append(ticketIds, ticket.TicketID)
		byTicketId[ticket.TicketID] = ticket
	}

	results, err := t.matchClient.DescribeMatchmaking(ticketIds)
	if err != nil {
		return err
	}
	if len(results) != len(batch) {
		t.logger.Warn("describe matchmaking returned fewer tickets than requested",
			zap.Int("requested", len(batch)),
			zap.Int("returned", len(results)))
	}
	t.metrics.TicketsPolled(len(results))

	var errs error
	for _, result := range results {
		ticketId := aws.StringValue(result.TicketId)
		owner, ok := byTicketId[ticketId]
		if !ok {
			t.logger.Warn("describe matchmaking returned an unrequested ticket", zap.String("ticketId", ticketId))
			continue
		}

		status, terminal := matchmaking.TerminalFromTicketStatus(aws.StringValue(result.Status))
		if !terminal {
			// Refresh the timestamp so the next poll waits out the window
			// again before re-checking this ticket.
			err := t.tickets.UpdateIfStatus(owner.PlayerID, owner.StartTime, matchmaking.StatusStarted, storage.TicketUpdate{
				LastUpdatedTime: pollTime,
			})
			if err != nil && err != storage.ErrPreconditionFailed {
				errs = multierr.Append(errs, err)
			}
			continue
		}

		var conn *matchmaking.ConnectionInfo
		if status == matchmaking.StatusSucceeded {
			if conn = connectionFromDescribe(result); conn == nil {
				t.logger.Error("completed ticket has inconsistent connection info",
					zap.String("ticketId", ticketId),
					zap.String("playerId", owner.PlayerID))
			}
		}

		t.logger.Info("ticket reached terminal status",
			zap.String("ticketId", ticketId),
			zap.String("status", status.String()))
		_, err := t.ApplyTerminalUpdate(owner.PlayerID, owner.StartTime, matchmaking.StatusStarted, status, conn)
		errs = multierr.Append(errs, err)
	}
	return errs
}

// connectionFromDescribe extracts connection info from a completed ticket.
// Exactly one matched player session is expected; any other count is a data
// inconsistency and yields nil.
func connectionFromDescribe(result *awsgamelift.MatchmakingTicket) *matchmaking.ConnectionInfo {
	info := result.GameSessionConnectionInfo
	if info == nil || len(info.MatchedPlayerSessions) != 1 {
		return nil
	}

	return &matchmaking.ConnectionInfo{
		IPAddress:       aws.StringValue(info.IpAddress),
		Port:            strconv.FormatInt(aws.Int64Value(info.Port), 10),
		DNSName:         aws.StringValue(info.DnsName),
		GameSessionARN:  aws.StringValue(info.GameSessionArn),
		PlayerSessionID: aws.StringValue(info.MatchedPlayerSessions[0].PlayerSessionId),
	}
}

func partition(tickets []matchmaking.Ticket, size int) [][]matchmaking.Ticket {
	var batches [][]matchmaking.Ticket
	for size > 0 && len(tickets) > 0 {
		if len(tickets) < size {
			size = len(tickets)
		}
		batches = append(batches, tickets[:size])
		tickets = tickets[size:]
	}
	return batches
}
