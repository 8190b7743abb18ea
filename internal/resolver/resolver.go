package resolver

import (
	"go.uber.org/zap"

	"game-backend/internal/config"
	"game-backend/internal/matchmaking"
	"game-backend/internal/storage"
	customError "game-backend/pkg/errors"
)

const (
	loggerName = "connection-resolver"
)

// Result classifies a connection info query; the handler maps it one-to-one
// onto a response status code.
type Result int

const (
	// ResultNotFound means the player has never started a game, or all their
	// requests have expired.
	ResultNotFound Result = iota
	// ResultInProgress means the latest request is still being matched.
	ResultInProgress
	// ResultReady means a game session is waiting for the player.
	ResultReady
	// ResultFailed means the latest request reached a terminal outcome other
	// than a joinable session. Cancellation is not client-initiated in this
	// system, so every non-success terminal outcome is a server-side fault.
	ResultFailed
)

// Ensure Resolver implements IFace
var _ IFace = (*Resolver)(nil)

type IFace interface {
	GetConnectionInfo(playerId string) (Result, *matchmaking.ConnectionInfo, error)
}

// Resolver answers "is my game ready yet" by projecting current ticket state,
// falling back to the placement table for tickets matched in batches.
type Resolver struct {
	logger *zap.Logger

	tickets    storage.TicketsIFace
	placements storage.PlacementsIFace
}

func New(cfg *config.Config, tickets storage.TicketsIFace, placements storage.PlacementsIFace) *Resolver {
	return &Resolver{
		logger: cfg.Logger.Named(loggerName),

		tickets:    tickets,
		placements: placements,
	}
}

func (r *Resolver) GetConnectionInfo(playerId string) (Result, *matchmaking.ConnectionInfo, error) {
	latest, err := r.tickets.Latest(playerId)
	if err != nil {
		return 0, nil, err
	}
	if latest == nil {
		return ResultNotFound, nil, nil
	}

	inFlight, err := matchmaking.InFlight(latest, r.placements)
	if err != nil {
		return 0, nil, err
	}
	if inFlight {
		return ResultInProgress, nil, nil
	}

	switch latest.Status {
	case matchmaking.StatusSucceeded:
		conn := latest.Connection()
		if conn == nil {
			// Must never happen for a well-formed success event; signals a
			// correlation bug upstream.
			r.logger.Error("succeeded ticket has incomplete connection info",
				zap.String("playerId", playerId),
				zap.Int64("startTime", latest.StartTime))
			return ResultFailed, nil, nil
		}
		return ResultReady, conn, nil

	case matchmaking.StatusQueued:
		return r.fromPlacement(playerId, latest)

	default:
		r.logger.Info("latest request ended without a session",
			zap.String("playerId", playerId),
			zap.String("status", latest.Status.String()))
		return ResultFailed, nil, nil
	}
}

func (r *Resolver) fromPlacement(playerId string, latest *matchmaking.Ticket) (Result, *matchmaking.ConnectionInfo, error) {
	placement, err := r.placements.Get(latest.PlacementID)
	if err != nil {
		return 0, nil, err
	}
	if placement == nil {
		// Placement just started; no session event yet.
		return ResultInProgress, nil, nil
	}

	if placement.Status != matchmaking.StatusSucceeded {
		r.logger.Info("placement ended without a session",
			zap.String("placementId", placement.PlacementID),
			zap.String("status", placement.Status.String()))
		return ResultFailed, nil, nil
	}

	playerSessionId, ok := placement.SessionFor(playerId)
	if !ok {
		r.logger.Error("fulfilled placement missing player session",
			zap.Error(customError.MissingPlayerSessionErr{PlayerId: playerId, PlacementId: placement.PlacementID}))
		return ResultFailed, nil, nil
	}

	return ResultReady, &matchmaking.ConnectionInfo{
		IPAddress:       placement.IPAddress,
		Port:            placement.Port,
		DNSName:         placement.DNSName,
		GameSessionARN:  placement.GameSessionARN,
		PlayerSessionID: playerSessionId,
	}, nil
}
