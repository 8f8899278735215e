package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
)

type SquadRepository struct {
	mu      sync.RWMutex
	items   map[string]fantasy.Squad
	byOwner map[string]string
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{
		items:   make(map[string]fantasy.Squad),
		byOwner: make(map[string]string),
	}
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squad, ok := r.items[squadID]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return squad.Clone(), true, nil
}

func (r *SquadRepository) GetByUserAndLeague(_ context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squadID, ok := r.byOwner[ownerKey(userID, leagueID)]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return r.items[squadID].Clone(), true, nil
}

func (r *SquadRepository) ListByLeague(_ context.Context, leagueID string) ([]fantasy.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Squad, 0)
	for _, squad := range r.items {
		if squad.LeagueID == leagueID {
			out = append(out, squad.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SquadRepository) Upsert(_ context.Context, squad fantasy.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ownerKey(squad.UserID, squad.LeagueID)
	if existing, ok := r.byOwner[key]; ok && existing != squad.ID {
		return fmt.Errorf("%w: squad=%s", fantasy.ErrOwnerConflict, existing)
	}

	r.items[squad.ID] = squad.Clone()
	r.byOwner[key] = squad.ID
	return nil
}

func ownerKey(userID, leagueID string) string {
	return userID + "::" + leagueID
}
