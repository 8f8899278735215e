package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

type buildSquadRequest struct {
	UserID    string   `json:"user_id" validate:"required,max=64"`
	LeagueID  string   `json:"league_id" validate:"required,max=64"`
	Name      string   `json:"name" validate:"required,max=100"`
	PlayerIDs []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type saveLineupRequest struct {
	StarterIDs []string `json:"starter_ids" validate:"required,min=1,dive,required"`
}

type substituteRequest struct {
	PlayerOutID string `json:"player_out_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
}

type assignRoleRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=captain vice_captain"`
}

type toggleSpecialistRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=penalty free_kick"`
}

type transferRequest struct {
	PlayerOutID string `json:"player_out_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
	PeriodID    string `json:"period_id" validate:"required,max=64"`
}

func (h *Handler) BuildSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuildSquad")
	defer span.End()

	var req buildSquadRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squadService.BuildSquad(ctx, usecase.BuildSquadInput{
		UserID:    req.UserID,
		LeagueID:  req.LeagueID,
		Name:      req.Name,
		PlayerIDs: req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "build squad failed", "user_id", req.UserID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, squadToDTO(squad))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	squadID := r.PathValue("squadID")
	squad, err := h.squadService.GetSquad(ctx, squadID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) GetUserSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserSquad")
	defer span.End()

	squad, err := h.squadService.GetUserSquad(ctx, r.PathValue("userID"), r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	var req saveLineupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "save lineup", squadID, func() (fantasy.Squad, error) {
		return h.squadService.SaveLineup(ctx, usecase.SaveLineupInput{
			SquadID:    squadID,
			StarterIDs: req.StarterIDs,
		})
	})
}

func (h *Handler) AutoLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutoLineup")
	defer span.End()

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "auto lineup", squadID, func() (fantasy.Squad, error) {
		return h.squadService.AutoLineup(ctx, squadID)
	})
}

func (h *Handler) Substitute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Substitute")
	defer span.End()

	var req substituteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "substitute", squadID, func() (fantasy.Squad, error) {
		return h.squadService.Substitute(ctx, usecase.SubstituteInput{
			SquadID:     squadID,
			PlayerOutID: req.PlayerOutID,
			PlayerInID:  req.PlayerInID,
		})
	})
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignRole")
	defer span.End()

	var req assignRoleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "assign role", squadID, func() (fantasy.Squad, error) {
		return h.squadService.AssignRole(ctx, usecase.AssignRoleInput{
			SquadID:  squadID,
			MemberID: req.MemberID,
			Role:     req.Role,
		})
	})
}

func (h *Handler) ToggleSpecialist(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSpecialist")
	defer span.End()

	var req toggleSpecialistRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "toggle specialist", squadID, func() (fantasy.Squad, error) {
		return h.squadService.ToggleSpecialist(ctx, usecase.ToggleSpecialistInput{
			SquadID:  squadID,
			MemberID: req.MemberID,
			Kind:     req.Kind,
		})
	})
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Transfer")
	defer span.End()

	var req transferRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	h.respondSquad(ctx, w, "transfer", squadID, func() (fantasy.Squad, error) {
		return h.squadService.Transfer(ctx, usecase.TransferInput{
			SquadID:     squadID,
			PlayerOutID: req.PlayerOutID,
			PlayerInID:  req.PlayerInID,
			PeriodID:    req.PeriodID,
		})
	})
}

func (h *Handler) respondSquad(ctx context.Context, w http.ResponseWriter, op, squadID string, run func() (fantasy.Squad, error)) {
	squad, err := run()
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}
