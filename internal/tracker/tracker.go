package tracker

import (
	"errors"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/matchmaking"
	"game-backend/internal/storage"
	"game-backend/pkg/aws/gamelift"
	"game-backend/pkg/metrics"
)

const (
	loggerName = "ticket-tracker"
)

// Ensure Tracker implements IFace
var _ IFace = (*Tracker)(nil)

type IFace interface {
	CreateTicket(playerId string, latencies map[string]int64) (CreateResult, error)
	ReconcilePoll() error
	HandleMatchEvent(message []byte) error
	HandlePlacementEvent(message []byte) error
}

type CreateResult int

const (
	CreateAccepted CreateResult = iota
	CreateConflict
)

// Tracker owns the matchmaking ticket lifecycle: creation with conflict
// detection, handoff to the external matcher, and terminal resolution from
// both the reconciliation poll and pushed events. Invocations coordinate only
// through the conditional-write contract of the ticket store; a lost write
// race means someone else already resolved the ticket.
type Tracker struct {
	cfg    *config.Config
	logger *zap.Logger

	tickets    storage.TicketsIFace
	placements storage.PlacementsIFace
	handoff    Handoff

	matchClient gamelift.ClientIFace
	metrics     metrics.MatchmakingMetrics

	now func() time.Time
}

func New(cfg *config.Config, tickets storage.TicketsIFace, placements storage.PlacementsIFace, matchClient gamelift.ClientIFace, handoff Handoff, m metrics.MatchmakingMetrics) *Tracker {
	return &Tracker{
		cfg:    cfg,
		logger: cfg.Logger.Named(loggerName),

		tickets:    tickets,
		placements: placements,
		handoff:    handoff,

		matchClient: matchClient,
		metrics:     m,

		now: time.Now,
	}
}

// CreateTicket records a new matchmaking request for the player and hands it
// to the configured matcher. A player with a ticket still in flight gets
// CreateConflict and no write. A failed handoff rolls back the just-inserted
// row so no orphaned pending record is left behind.
func (t *Tracker) CreateTicket(playerId string, latencies map[string]int64) (CreateResult, error) {
	latest, err := t.tickets.Latest(playerId)
	if err != nil {
		return 0, err
	}

	if latest != nil {
		inFlight, err := matchmaking.InFlight(latest, t.placements)
		if err != nil {
			return 0, err
		}
		if inFlight {
			t.logger.Info("matchmaking request already in progress",
				zap.String("playerId", playerId),
				zap.Int64("startTime", latest.StartTime))
			t.metrics.TicketConflicted()
			return CreateConflict, nil
		}
	}

	startTime := t.now().Unix()
	ticket := &matchmaking.Ticket{
		PlayerID:        playerId,
		StartTime:       startTime,
		LastUpdatedTime: startTime,
		ExpirationTime:  startTime + t.cfg.TicketTtlSeconds,
		Status:          matchmaking.StatusPending,
	}
	if err := t.tickets.Put(ticket); err != nil {
		return 0, err
	}

	ticketId, err := t.handoff.Start(ticket, latencies)
	if err != nil {
		t.logger.Error("matchmaking handoff failed, rolling back ticket",
			zap.String("playerId", playerId),
			zap.Int64("startTime", startTime),
			zap.Error(err))
		if delErr := t.tickets.Delete(playerId, startTime); delErr != nil {
			err = multierr.Append(err, delErr)
		}
		return 0, err
	}

	if ticketId != "" {
		update := storage.TicketUpdate{
			Status:          matchmaking.StatusStarted,
			LastUpdatedTime: startTime,
			TicketId:        ticketId,
		}
		if err := t.tickets.UpdateIfStatus(playerId, startTime, matchmaking.StatusPending, update); err != nil {
			return 0, err
		}
	}

	t.logger.Info("matchmaking request accepted",
		zap.String("playerId", playerId),
		zap.Int64("startTime", startTime),
		zap.String("ticketId", ticketId))
	t.metrics.TicketCreated()
	return CreateAccepted, nil
}

// ApplyTerminalUpdate moves a ticket from its in-flight status to a terminal
// one, persisting connection info atomically on success. A false return with
// a nil error means another writer already resolved the ticket; both the
// poller and the event handler may race here and the loser's write is
// suppressed.
func (t *Tracker) ApplyTerminalUpdate(playerId string, startTime int64, expected matchmaking.Status, newStatus matchmaking.Status, conn *matchmaking.ConnectionInfo) (bool, error) {
	update := storage.TicketUpdate{
		Status:          newStatus,
		LastUpdatedTime: t.now().Unix(),
		Connection:      conn,
	}

	err := t.tickets.UpdateIfStatus(playerId, startTime, expected, update)
	if errors.Is(err, storage.ErrPreconditionFailed) {
		t.logger.Info("ticket already resolved by another writer",
			zap.String("playerId", playerId),
			zap.Int64("startTime", startTime),
			zap.String("status", newStatus.String()))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	t.metrics.TicketResolved(newStatus.String())
	return true, nil
}
