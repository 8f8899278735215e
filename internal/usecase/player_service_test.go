package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
)

func TestPlayerService_ListPlayersByLeague(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(memory.SeedPlayers()))

	players, err := service.ListPlayersByLeague(t.Context(), testLeagueID)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != len(memory.SeedPlayers()) {
		t.Fatalf("unexpected player count: %d", len(players))
	}

	if _, err := service.ListPlayersByLeague(t.Context(), "unknown-league"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.ListPlayersByLeague(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
