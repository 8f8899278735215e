package guarded

import (
	"context"
	"errors"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

// SquadRepository fails fast with resilience.ErrCircuitOpen once the wrapped
// store keeps erroring. Owner conflicts and caller cancellation do not count
// as store failures.
type SquadRepository struct {
	next    fantasy.Repository
	breaker *resilience.CircuitBreaker
}

func NewSquadRepository(next fantasy.Repository, breaker *resilience.CircuitBreaker) *SquadRepository {
	return &SquadRepository{next: next, breaker: breaker}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (fantasy.Squad, bool, error) {
	var (
		squad  fantasy.Squad
		exists bool
	)
	err := r.breaker.Do(func() error {
		var err error
		squad, exists, err = r.next.GetByID(ctx, squadID)
		return err
	}, isStoreFailure)
	return squad, exists, err
}

func (r *SquadRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	var (
		squad  fantasy.Squad
		exists bool
	)
	err := r.breaker.Do(func() error {
		var err error
		squad, exists, err = r.next.GetByUserAndLeague(ctx, userID, leagueID)
		return err
	}, isStoreFailure)
	return squad, exists, err
}

func (r *SquadRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasy.Squad, error) {
	var squads []fantasy.Squad
	err := r.breaker.Do(func() error {
		var err error
		squads, err = r.next.ListByLeague(ctx, leagueID)
		return err
	}, isStoreFailure)
	return squads, err
}

func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	return r.breaker.Do(func() error {
		return r.next.Upsert(ctx, squad)
	}, isStoreFailure)
}

func isStoreFailure(err error) bool {
	switch {
	case errors.Is(err, fantasy.ErrOwnerConflict),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
