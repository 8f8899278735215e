package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

const testLeagueID = memory.LeagueIDLiga1Indonesia

// demoPlayerIDs is a legal 2-5-5-3 roster costing 970.
var demoPlayerIDs = []string{
	"idn-gk-01", "idn-gk-02",
	"idn-def-01", "idn-def-02", "idn-def-03", "idn-def-04", "idn-def-05",
	"idn-mid-03", "idn-mid-04", "idn-mid-05", "idn-mid-06", "idn-mid-07",
	"idn-fwd-01", "idn-fwd-02", "idn-fwd-03",
}

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	next atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("squad-%03d", g.next.Add(1)), nil
}

var errUpsertUnavailable = errors.New("squad store unavailable")

// flakySquadRepository fails Upsert while failing is set.
type flakySquadRepository struct {
	*memory.SquadRepository
	failing atomic.Bool
}

func (r *flakySquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	if r.failing.Load() {
		return errUpsertUnavailable
	}
	return r.SquadRepository.Upsert(ctx, squad)
}

type serviceFixture struct {
	service    *SquadService
	squadRepo  *flakySquadRepository
	playerRepo *memory.PlayerRepository
}

func newServiceFixture(t *testing.T, rules fantasy.Rules) serviceFixture {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	squadRepo := &flakySquadRepository{SquadRepository: memory.NewSquadRepository()}
	service := NewSquadService(playerRepo, squadRepo, rules, &sequenceIDGenerator{}, logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC) }

	return serviceFixture{service: service, squadRepo: squadRepo, playerRepo: playerRepo}
}

func (f serviceFixture) buildDemoSquad(t *testing.T, userID string) fantasy.Squad {
	t.Helper()

	squad, err := f.service.BuildSquad(t.Context(), BuildSquadInput{
		UserID:    userID,
		LeagueID:  testLeagueID,
		Name:      "Garuda " + userID,
		PlayerIDs: demoPlayerIDs,
	})
	if err != nil {
		t.Fatalf("build demo squad: %v", err)
	}
	return squad
}

func memberOf(t *testing.T, squad fantasy.Squad, playerID string) fantasy.SquadMember {
	t.Helper()

	m, ok := squad.Member(playerID)
	if !ok {
		t.Fatalf("player %s is not in squad %s", playerID, squad.ID)
	}
	return m
}
