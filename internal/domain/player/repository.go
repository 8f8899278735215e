package player

import "context"

// Repository is the read-only player catalog consumed by the roster engine.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Player, error)
	GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]Player, error)
	GetByID(ctx context.Context, leagueID, playerID string) (Player, bool, error)
}
