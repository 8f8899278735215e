package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// BootstrapSeed loads the given catalog into an empty players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, players []player.Player) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertPlayerQuery = `
INSERT INTO players (public_id, league_public_id, team_public_id, name, position, country_code, price, total_points, stats, is_active)
VALUES (:public_id, :league_public_id, :team_public_id, :name, :position, :country_code, :price, :total_points, CAST(:stats AS JSONB), TRUE)
ON CONFLICT (public_id) DO NOTHING`

	for _, p := range players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
		stats, err := encodeStats(p.Stats)
		if err != nil {
			return fmt.Errorf("encode seed player %s stats: %w", p.ID, err)
		}

		sqlQuery, args, err := sqlx.Named(insertPlayerQuery, map[string]any{
			"public_id":        p.ID,
			"league_public_id": p.LeagueID,
			"team_public_id":   p.TeamID,
			"name":             p.Name,
			"position":         string(p.Position),
			"country_code":     p.Country,
			"price":            p.Price,
			"total_points":     p.Points,
			"stats":            stats,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
