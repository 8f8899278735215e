package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

const maxAuditWorkers = 64

// AuditLeague re-validates every stored squad of a league. The optional
// max_workers query parameter bounds the worker pool.
func (h *Handler) AuditLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuditLeague")
	defer span.End()

	maxWorkers := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("max_workers")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxAuditWorkers {
			writeError(ctx, w, fmt.Errorf("%w: max_workers must be between 1 and %d", usecase.ErrInvalidInput, maxAuditWorkers))
			return
		}
		maxWorkers = parsed
	}

	leagueID := r.PathValue("leagueID")
	results, err := h.auditService.AuditLeague(ctx, leagueID, maxWorkers)
	if err != nil {
		h.logger.ErrorContext(ctx, "league audit failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auditReportToDTO(leagueID, results))
}
