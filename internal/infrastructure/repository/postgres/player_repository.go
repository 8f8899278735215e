package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

const playerSelectColumns = `
SELECT id, public_id, league_public_id, team_public_id, name, position, country_code,
       price, total_points, stats, is_active, created_at, updated_at, deleted_at
FROM players`

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	query := playerSelectColumns + `
WHERE league_public_id = $1
  AND is_active
  AND deleted_at IS NULL
ORDER BY id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID); err != nil {
		return nil, fmt.Errorf("select players by league: %w", err)
	}
	return playersFromRows(rows)
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := sqlx.In(playerSelectColumns+`
WHERE league_public_id = ?
  AND public_id IN (?)
  AND is_active
  AND deleted_at IS NULL
ORDER BY id`, leagueID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playersFromRows(rows)
}

func (r *PlayerRepository) GetByID(ctx context.Context, leagueID, playerID string) (player.Player, bool, error) {
	query := playerSelectColumns + `
WHERE league_public_id = $1
  AND public_id = $2
  AND is_active
  AND deleted_at IS NULL`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("decode player=%s: %w", row.PublicID, err)
	}
	return p, true, nil
}

func playersFromRows(rows []playerTableModel) ([]player.Player, error) {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode player=%s: %w", row.PublicID, err)
		}
		out = append(out, p)
	}
	return out, nil
}
