package fantasy

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrOwnerConflict is returned by Upsert when a different squad already
// belongs to the same user and league.
var ErrOwnerConflict = crerr.New("user already owns a squad in this league")

// Repository describes squad persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	GetByUserAndLeague(ctx context.Context, userID, leagueID string) (Squad, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Squad, error)
	Upsert(ctx context.Context, squad Squad) error
}
