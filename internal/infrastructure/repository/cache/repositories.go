package cache

import (
	"context"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-roster/internal/platform/cache"
)

const playerListKeyPrefix = "player:list:"

// PlayerRepository caches each league catalog as a whole and answers id
// lookups from it. Prices may lag the source by up to the store TTL.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[[]player.Player]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := r.catalog(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	items, err := r.catalog(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]player.Player, len(items))
	for _, p := range items {
		index[p.ID] = p
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := index[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	items, err := r.catalog(ctx, leagueID)
	if err != nil {
		return player.Player{}, false, err
	}
	for _, p := range items {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

// Invalidate drops the cached catalog of one league, or all leagues when
// leagueID is empty.
func (r *PlayerRepository) Invalidate(leagueID string) {
	if leagueID == "" {
		r.cache.DeletePrefix(playerListKeyPrefix)
		return
	}
	r.cache.Delete(playerListKeyPrefix + leagueID)
}

func (r *PlayerRepository) catalog(ctx context.Context, leagueID string) ([]player.Player, error) {
	return r.cache.GetOrLoad(ctx, playerListKeyPrefix+leagueID, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
}
