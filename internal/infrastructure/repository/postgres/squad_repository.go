package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/sourcegraph/conc/pool"
)

type SquadRepository struct {
	db *sqlx.DB
}

const squadSelectColumns = `
SELECT id, public_id, user_id, league_public_id, name, budget_cap, total_cost, created_at, updated_at, deleted_at
FROM fantasy_squads`

const memberSelectColumns = `
SELECT squad_public_id, player_public_id, league_public_id, team_public_id, name, position, country_code,
       price, total_points, stats, slot, sort_order, role, is_penalty_taker, is_free_kick_taker
FROM fantasy_squad_members`

const transferSelectColumns = `
SELECT squad_public_id, seq, player_out_public_id, player_in_public_id, period_id, created_at
FROM fantasy_transfer_records`

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (fantasy.Squad, bool, error) {
	return r.getOne(ctx, squadSelectColumns+`
WHERE public_id = $1
  AND deleted_at IS NULL`, squadID)
}

func (r *SquadRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	return r.getOne(ctx, squadSelectColumns+`
WHERE user_id = $1
  AND league_public_id = $2
  AND deleted_at IS NULL`, userID, leagueID)
}

func (r *SquadRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasy.Squad, error) {
	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, squadSelectColumns+`
WHERE league_public_id = $1
  AND deleted_at IS NULL
ORDER BY public_id`, leagueID); err != nil {
		return nil, fmt.Errorf("select squads by league: %w", err)
	}
	if len(rows) == 0 {
		return []fantasy.Squad{}, nil
	}

	squadIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		squadIDs = append(squadIDs, row.PublicID)
	}

	var (
		members   []squadMemberTableModel
		transfers []transferRecordTableModel
	)
	children := pool.New().WithContext(ctx).WithCancelOnError()
	children.Go(func(ctx context.Context) error {
		var err error
		members, err = r.selectMembers(ctx, r.db, squadIDs)
		return err
	})
	children.Go(func(ctx context.Context) error {
		var err error
		transfers, err = r.selectTransfers(ctx, r.db, squadIDs)
		return err
	})
	if err := children.Wait(); err != nil {
		return nil, err
	}

	membersBySquad := make(map[string][]squadMemberTableModel, len(rows))
	for _, m := range members {
		membersBySquad[m.SquadID] = append(membersBySquad[m.SquadID], m)
	}
	transfersBySquad := make(map[string][]transferRecordTableModel, len(rows))
	for _, t := range transfers {
		transfersBySquad[t.SquadID] = append(transfersBySquad[t.SquadID], t)
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		squad, err := squadFromRows(row, membersBySquad[row.PublicID], transfersBySquad[row.PublicID])
		if err != nil {
			return nil, err
		}
		out = append(out, squad)
	}
	return out, nil
}

// Upsert replaces the squad snapshot in one transaction: the squad row is
// upserted, members are rewritten and new transfer records appended.
func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for squad upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertSquadQuery = `
INSERT INTO fantasy_squads (public_id, user_id, league_public_id, name, budget_cap, total_cost, created_at, updated_at)
VALUES (:public_id, :user_id, :league_public_id, :name, :budget_cap, :total_cost, :created_at, :updated_at)
ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    budget_cap = EXCLUDED.budget_cap,
    total_cost = EXCLUDED.total_cost,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertSquadQuery, squadToRow(squad))
	if err != nil {
		return fmt.Errorf("bind upsert fantasy squad query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(upsertSQL), upsertArgs...); err != nil {
		if isUniqueViolation(err, squadOwnerConstraint) {
			return fmt.Errorf("%w: user=%s league=%s", fantasy.ErrOwnerConflict, squad.UserID, squad.LeagueID)
		}
		return fmt.Errorf("upsert fantasy squad: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fantasy_squad_members WHERE squad_public_id = $1`, squad.ID); err != nil {
		return fmt.Errorf("clear squad members: %w", err)
	}

	const insertMemberQuery = `
INSERT INTO fantasy_squad_members (
    squad_public_id, player_public_id, league_public_id, team_public_id, name, position, country_code,
    price, total_points, stats, slot, sort_order, role, is_penalty_taker, is_free_kick_taker
) VALUES (
    :squad_public_id, :player_public_id, :league_public_id, :team_public_id, :name, :position, :country_code,
    :price, :total_points, CAST(:stats AS JSONB), :slot, :sort_order, :role, :is_penalty_taker, :is_free_kick_taker
)`
	memberRows, err := membersToRows(squad.ID, squad.Members)
	if err != nil {
		return err
	}
	for _, row := range memberRows {
		memberSQL, memberArgs, err := sqlx.Named(insertMemberQuery, row)
		if err != nil {
			return fmt.Errorf("bind insert squad member player=%s query: %w", row.PlayerID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(memberSQL), memberArgs...); err != nil {
			return fmt.Errorf("insert squad member player=%s: %w", row.PlayerID, err)
		}
	}

	const insertTransferQuery = `
INSERT INTO fantasy_transfer_records (squad_public_id, seq, player_out_public_id, player_in_public_id, period_id, created_at)
VALUES (:squad_public_id, :seq, :player_out_public_id, :player_in_public_id, :period_id, :created_at)
ON CONFLICT (squad_public_id, seq) DO NOTHING`
	for _, row := range transfersToRows(squad.ID, squad.Transfers) {
		transferSQL, transferArgs, err := sqlx.Named(insertTransferQuery, row)
		if err != nil {
			return fmt.Errorf("bind insert transfer record seq=%d query: %w", row.Seq, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(transferSQL), transferArgs...); err != nil {
			return fmt.Errorf("insert transfer record seq=%d: %w", row.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad upsert tx: %w", err)
	}
	return nil
}

func (r *SquadRepository) getOne(ctx context.Context, query string, args ...any) (fantasy.Squad, bool, error) {
	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, fmt.Errorf("get squad: %w", err)
	}

	members, err := r.selectMembers(ctx, r.db, []string{row.PublicID})
	if err != nil {
		return fantasy.Squad{}, false, err
	}
	transfers, err := r.selectTransfers(ctx, r.db, []string{row.PublicID})
	if err != nil {
		return fantasy.Squad{}, false, err
	}

	squad, err := squadFromRows(row, members, transfers)
	if err != nil {
		return fantasy.Squad{}, false, err
	}
	return squad, true, nil
}

func (r *SquadRepository) selectMembers(ctx context.Context, q sqlx.QueryerContext, squadIDs []string) ([]squadMemberTableModel, error) {
	query, args, err := sqlx.In(memberSelectColumns+`
WHERE squad_public_id IN (?)
ORDER BY squad_public_id, sort_order`, squadIDs)
	if err != nil {
		return nil, fmt.Errorf("build select squad members query: %w", err)
	}

	var rows []squadMemberTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select squad members: %w", err)
	}
	return rows, nil
}

func (r *SquadRepository) selectTransfers(ctx context.Context, q sqlx.QueryerContext, squadIDs []string) ([]transferRecordTableModel, error) {
	query, args, err := sqlx.In(transferSelectColumns+`
WHERE squad_public_id IN (?)
ORDER BY squad_public_id, seq`, squadIDs)
	if err != nil {
		return nil, fmt.Errorf("build select transfer records query: %w", err)
	}

	var rows []transferRecordTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select transfer records: %w", err)
	}
	return rows, nil
}
