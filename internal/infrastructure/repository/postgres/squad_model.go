package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

const (
	slotStarter = "starter"
	slotBench   = "bench"
)

type squadTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	LeagueID  string     `db:"league_public_id"`
	Name      string     `db:"name"`
	BudgetCap int64      `db:"budget_cap"`
	TotalCost int64      `db:"total_cost"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type squadMemberTableModel struct {
	SquadID         string `db:"squad_public_id"`
	PlayerID        string `db:"player_public_id"`
	LeagueID        string `db:"league_public_id"`
	TeamID          string `db:"team_public_id"`
	Name            string `db:"name"`
	Position        string `db:"position"`
	CountryCode     string `db:"country_code"`
	Price           int64  `db:"price"`
	TotalPoints     int    `db:"total_points"`
	Stats           string `db:"stats"`
	Slot            string `db:"slot"`
	SortOrder       int    `db:"sort_order"`
	Role            string `db:"role"`
	IsPenaltyTaker  bool   `db:"is_penalty_taker"`
	IsFreeKickTaker bool   `db:"is_free_kick_taker"`
}

type transferRecordTableModel struct {
	SquadID     string    `db:"squad_public_id"`
	Seq         int       `db:"seq"`
	PlayerOutID string    `db:"player_out_public_id"`
	PlayerInID  string    `db:"player_in_public_id"`
	PeriodID    string    `db:"period_id"`
	CreatedAt   time.Time `db:"created_at"`
}

func squadToRow(squad fantasy.Squad) squadTableModel {
	return squadTableModel{
		PublicID:  squad.ID,
		UserID:    squad.UserID,
		LeagueID:  squad.LeagueID,
		Name:      squad.Name,
		BudgetCap: squad.BudgetCap,
		TotalCost: squad.TotalSpend(),
		CreatedAt: squad.CreatedAt,
		UpdatedAt: squad.UpdatedAt,
	}
}

// membersToRows keeps member order in sort_order so the lineup reloads in the
// same slot order.
func membersToRows(squadID string, members []fantasy.SquadMember) ([]squadMemberTableModel, error) {
	out := make([]squadMemberTableModel, 0, len(members))
	for i, m := range members {
		stats, err := encodeStats(m.Player.Stats)
		if err != nil {
			return nil, fmt.Errorf("encode member %s stats: %w", m.Player.ID, err)
		}
		slot := slotBench
		if m.InStarting11 {
			slot = slotStarter
		}
		out = append(out, squadMemberTableModel{
			SquadID:         squadID,
			PlayerID:        m.Player.ID,
			LeagueID:        m.Player.LeagueID,
			TeamID:          m.Player.TeamID,
			Name:            m.Player.Name,
			Position:        string(m.Player.Position),
			CountryCode:     m.Player.Country,
			Price:           m.Player.Price,
			TotalPoints:     m.Player.Points,
			Stats:           stats,
			Slot:            slot,
			SortOrder:       i,
			Role:            string(m.Role),
			IsPenaltyTaker:  m.IsPenaltyTaker,
			IsFreeKickTaker: m.IsFreeKickTaker,
		})
	}
	return out, nil
}

func transfersToRows(squadID string, transfers []fantasy.TransferRecord) []transferRecordTableModel {
	out := make([]transferRecordTableModel, 0, len(transfers))
	for i, t := range transfers {
		out = append(out, transferRecordTableModel{
			SquadID:     squadID,
			Seq:         i + 1,
			PlayerOutID: t.PlayerOutID,
			PlayerInID:  t.PlayerInID,
			PeriodID:    t.PeriodID,
			CreatedAt:   t.CreatedAt.UTC(),
		})
	}
	return out
}

// squadFromRows expects member rows ordered by sort_order and transfer rows by seq.
func squadFromRows(row squadTableModel, members []squadMemberTableModel, transfers []transferRecordTableModel) (fantasy.Squad, error) {
	squad := fantasy.Squad{
		ID:        row.PublicID,
		UserID:    row.UserID,
		LeagueID:  row.LeagueID,
		Name:      row.Name,
		BudgetCap: row.BudgetCap,
		Members:   make([]fantasy.SquadMember, 0, len(members)),
		Transfers: make([]fantasy.TransferRecord, 0, len(transfers)),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	for _, m := range members {
		stats, err := decodeStats([]byte(m.Stats))
		if err != nil {
			return fantasy.Squad{}, fmt.Errorf("decode member %s stats: %w", m.PlayerID, err)
		}
		starter := m.Slot == slotStarter
		squad.Members = append(squad.Members, fantasy.SquadMember{
			Player: player.Player{
				ID:       m.PlayerID,
				LeagueID: m.LeagueID,
				TeamID:   m.TeamID,
				Name:     m.Name,
				Position: player.Position(m.Position),
				Country:  m.CountryCode,
				Price:    m.Price,
				Points:   m.TotalPoints,
				Stats:    stats,
			},
			InSquad:         true,
			InStarting11:    starter,
			OnBench:         !starter,
			Role:            fantasy.Role(m.Role),
			IsPenaltyTaker:  m.IsPenaltyTaker,
			IsFreeKickTaker: m.IsFreeKickTaker,
		})
	}
	for _, t := range transfers {
		squad.Transfers = append(squad.Transfers, fantasy.TransferRecord{
			PlayerOutID: t.PlayerOutID,
			PlayerInID:  t.PlayerInID,
			PeriodID:    t.PeriodID,
			CreatedAt:   t.CreatedAt,
		})
	}

	return squad, nil
}
