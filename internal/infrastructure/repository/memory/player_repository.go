package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

type PlayerRepository struct {
	mu              sync.RWMutex
	playersByLeague map[string][]player.Player
	indexByLeague   map[string]map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		playersByLeague: make(map[string][]player.Player),
		indexByLeague:   make(map[string]map[string]player.Player),
	}
	for _, p := range players {
		r.put(p)
	}
	return r
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.playersByLeague[leagueID]...), nil
}

// GetByIDs returns the known players in request order; unknown ids are skipped.
func (r *PlayerRepository) GetByIDs(_ context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := index[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, leagueID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.indexByLeague[leagueID][playerID]
	return p, ok, nil
}

// UpdatePrice reprices a catalog player; existing squads keep the price they
// were built with until a transfer replaces the member.
func (r *PlayerRepository) UpdatePrice(leagueID, playerID string, price int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.indexByLeague[leagueID][playerID]
	if !ok {
		return false
	}
	p.Price = price
	r.indexByLeague[leagueID][playerID] = p
	for i := range r.playersByLeague[leagueID] {
		if r.playersByLeague[leagueID][i].ID == playerID {
			r.playersByLeague[leagueID][i] = p
		}
	}
	return true
}

func (r *PlayerRepository) put(p player.Player) {
	if _, ok := r.indexByLeague[p.LeagueID]; !ok {
		r.indexByLeague[p.LeagueID] = make(map[string]player.Player)
	}
	r.playersByLeague[p.LeagueID] = append(r.playersByLeague[p.LeagueID], p)
	r.indexByLeague[p.LeagueID][p.ID] = p
}
