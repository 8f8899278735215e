package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"go.opentelemetry.io/otel/attribute"
)

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// ListPlayersByLeague returns the selectable catalog of a league.
func (s *PlayerService) ListPlayersByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	leagueID = strings.TrimSpace(leagueID)
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayersByLeague", attribute.String("league_id", leagueID))
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list players by league: %w", err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: league=%s has no players", ErrNotFound, leagueID)
	}

	return players, nil
}
