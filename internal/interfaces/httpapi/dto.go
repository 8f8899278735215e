package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

type playerDTO struct {
	ID       string       `json:"id"`
	LeagueID string       `json:"league_id"`
	TeamID   string       `json:"team_id"`
	Name     string       `json:"name"`
	Position string       `json:"position"`
	Country  string       `json:"country,omitempty"`
	Price    int64        `json:"price"`
	Points   int          `json:"points"`
	Stats    player.Stats `json:"stats"`
}

type squadMemberDTO struct {
	Player          playerDTO `json:"player"`
	Slot            string    `json:"slot"`
	Role            string    `json:"role,omitempty"`
	IsPenaltyTaker  bool      `json:"is_penalty_taker"`
	IsFreeKickTaker bool      `json:"is_free_kick_taker"`
}

type transferRecordDTO struct {
	PlayerOutID string    `json:"player_out_id"`
	PlayerInID  string    `json:"player_in_id"`
	PeriodID    string    `json:"period_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type squadDTO struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	LeagueID        string              `json:"league_id"`
	Name            string              `json:"name"`
	BudgetCap       int64               `json:"budget_cap"`
	TotalSpend      int64               `json:"total_spend"`
	RemainingBudget int64               `json:"remaining_budget"`
	CaptainID       string              `json:"captain_id,omitempty"`
	ViceCaptainID   string              `json:"vice_captain_id,omitempty"`
	StarterIDs      []string            `json:"starter_ids"`
	BenchIDs        []string            `json:"bench_ids"`
	Members         []squadMemberDTO    `json:"members"`
	Transfers       []transferRecordDTO `json:"transfers"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type violationDTO struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

type squadAuditDTO struct {
	SquadID    string         `json:"squad_id"`
	UserID     string         `json:"user_id"`
	Valid      bool           `json:"valid"`
	Violations []violationDTO `json:"violations,omitempty"`
}

type auditReportDTO struct {
	LeagueID string          `json:"league_id"`
	Total    int             `json:"total"`
	Invalid  int             `json:"invalid"`
	Squads   []squadAuditDTO `json:"squads"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		LeagueID: p.LeagueID,
		TeamID:   p.TeamID,
		Name:     p.Name,
		Position: string(p.Position),
		Country:  p.Country,
		Price:    p.Price,
		Points:   p.Points,
		Stats:    p.Stats,
	}
}

func squadToDTO(squad fantasy.Squad) squadDTO {
	lineup := squad.Lineup()
	spend := squad.TotalSpend()

	out := squadDTO{
		ID:              squad.ID,
		UserID:          squad.UserID,
		LeagueID:        squad.LeagueID,
		Name:            squad.Name,
		BudgetCap:       squad.BudgetCap,
		TotalSpend:      spend,
		RemainingBudget: squad.BudgetCap - spend,
		StarterIDs:      lineup.StarterIDs(),
		BenchIDs:        lineup.BenchIDs(),
		Members:         make([]squadMemberDTO, 0, len(squad.Members)),
		Transfers:       make([]transferRecordDTO, 0, len(squad.Transfers)),
		CreatedAt:       squad.CreatedAt,
		UpdatedAt:       squad.UpdatedAt,
	}
	if captain, ok := squad.Captain(); ok {
		out.CaptainID = captain.ID()
	}
	if vice, ok := squad.ViceCaptain(); ok {
		out.ViceCaptainID = vice.ID()
	}

	for _, m := range squad.Members {
		slot := "bench"
		if m.InStarting11 {
			slot = "starter"
		}
		out.Members = append(out.Members, squadMemberDTO{
			Player:          playerToDTO(m.Player),
			Slot:            slot,
			Role:            string(m.Role),
			IsPenaltyTaker:  m.IsPenaltyTaker,
			IsFreeKickTaker: m.IsFreeKickTaker,
		})
	}
	for _, t := range squad.Transfers {
		out.Transfers = append(out.Transfers, transferRecordDTO{
			PlayerOutID: t.PlayerOutID,
			PlayerInID:  t.PlayerInID,
			PeriodID:    t.PeriodID,
			CreatedAt:   t.CreatedAt,
		})
	}

	return out
}

func auditReportToDTO(leagueID string, results []usecase.SquadAuditResult) auditReportDTO {
	out := auditReportDTO{
		LeagueID: leagueID,
		Total:    len(results),
		Squads:   make([]squadAuditDTO, 0, len(results)),
	}
	for _, res := range results {
		item := squadAuditDTO{SquadID: res.SquadID, UserID: res.UserID, Valid: res.Valid}
		if !res.Valid {
			out.Invalid++
		}
		for _, v := range res.Errors {
			item.Violations = append(item.Violations, violationDTO{
				Kind:    string(v.Kind),
				Message: v.Message,
				Context: v.Context,
			})
		}
		out.Squads = append(out.Squads, item)
	}
	return out
}
