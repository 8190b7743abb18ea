package tracker

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/matchmaking"
	customError "game-backend/pkg/errors"
)

// Drop reasons reported to metrics.
const (
	dropReasonMalformed     = "malformed"
	dropReasonUnknownTicket = "unknown_ticket"
)

// HandleMatchEvent applies a pushed FlexMatch notification. Non-terminal
// events are ignored, malformed payloads and unknown ticket ids are logged
// and dropped rather than retried.
func (t *Tracker) HandleMatchEvent(message []byte) error {
	event, err := matchmaking.DecodeMatchEvent(message)
	if err != nil {
		t.logger.Warn("dropping malformed match event", zap.Error(err))
		t.metrics.EventDropped(dropReasonMalformed)
		return nil
	}

	terminal, ok := event.(matchmaking.TerminalMatchEvent)
	if !ok {
		t.logger.Info("ignoring non-terminal match event",
			zap.String("type", event.(matchmaking.NonTerminalMatchEvent).Type))
		return nil
	}

	sessions := make(map[string]string, len(terminal.Session.Players))
	for _, player := range terminal.Session.Players {
		sessions[player.PlayerID] = player.PlayerSessionID
	}

	var errs error
	for _, ticketId := range terminal.TicketIDs {
		errs = multierr.Append(errs, t.closeTicket(ticketId, terminal, sessions))
	}
	return errs
}

func (t *Tracker) closeTicket(ticketId string, event matchmaking.TerminalMatchEvent, sessions map[string]string) error {
	owner, err := t.tickets.ByTicketId(ticketId)
	if err != nil {
		return err
	}
	if owner == nil {
		t.logger.Warn("dropping event for unknown ticket", zap.Error(customError.UnknownTicketErr{TicketId: ticketId}))
		t.metrics.EventDropped(dropReasonUnknownTicket)
		return nil
	}
	if owner.Status != matchmaking.StatusStarted {
		t.logger.Info("ticket no longer awaiting resolution",
			zap.String("ticketId", ticketId),
			zap.String("status", owner.Status.String()))
		return nil
	}

	var conn *matchmaking.ConnectionInfo
	if event.Status == matchmaking.StatusSucceeded {
		playerSessionId, ok := sessions[owner.PlayerID]
		if !ok {
			t.logger.Error("succeeded match event has no session for ticket owner",
				zap.String("ticketId", ticketId),
				zap.String("playerId", owner.PlayerID))
		}
		conn = &matchmaking.ConnectionInfo{
			IPAddress:       event.Session.IPAddress,
			Port:            event.Session.Port,
			DNSName:         event.Session.DNSName,
			GameSessionARN:  event.Session.GameSessionARN,
			PlayerSessionID: playerSessionId,
		}
	}

	_, err = t.ApplyTerminalUpdate(owner.PlayerID, owner.StartTime, matchmaking.StatusStarted, event.Status, conn)
	return err
}

// HandlePlacementEvent records a game session placement outcome. The row is
// stored whole, keyed by placement id; queued tickets resolve against it at
// read time.
func (t *Tracker) HandlePlacementEvent(message []byte) error {
	event, err := matchmaking.DecodePlacementEvent(message)
	if err != nil {
		t.logger.Warn("dropping malformed placement event", zap.Error(err))
		t.metrics.EventDropped(dropReasonMalformed)
		return nil
	}
	if !event.Known {
		t.logger.Warn("unrecognized placement event type treated as failure",
			zap.String("type", event.Type),
			zap.String("placementId", event.PlacementID))
	}

	placement := &matchmaking.Placement{
		PlacementID:    event.PlacementID,
		Status:         event.Status,
		IPAddress:      event.IPAddress,
		DNSName:        event.DNSName,
		Port:           event.Port,
		GameSessionARN: event.GameSessionARN,
		ExpirationTime: t.now().Unix() + t.cfg.TicketTtlSeconds,
		PlayerSessions: event.PlayerSessions,
	}
	if err := t.placements.Put(placement); err != nil {
		return err
	}

	t.logger.Info("recorded placement outcome",
		zap.String("placementId", event.PlacementID),
		zap.String("status", event.Status.String()))
	t.metrics.TicketResolved(event.Status.String())
	return nil
}
