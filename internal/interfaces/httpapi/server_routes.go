package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayersByLeague)
}

func registerFantasyRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/fantasy/squads", handler.BuildSquad)
	mux.HandleFunc("GET /v1/fantasy/squads/{squadID}", handler.GetSquad)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/users/{userID}/squad", handler.GetUserSquad)
	mux.HandleFunc("PUT /v1/fantasy/squads/{squadID}/lineup", handler.SaveLineup)
	mux.HandleFunc("POST /v1/fantasy/squads/{squadID}/lineup/auto", handler.AutoLineup)
	mux.HandleFunc("POST /v1/fantasy/squads/{squadID}/substitutions", handler.Substitute)
	mux.HandleFunc("PUT /v1/fantasy/squads/{squadID}/roles", handler.AssignRole)
	mux.HandleFunc("POST /v1/fantasy/squads/{squadID}/specialists", handler.ToggleSpecialist)
	mux.HandleFunc("POST /v1/fantasy/squads/{squadID}/transfers", handler.Transfer)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/leagues/{leagueID}/audit", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.AuditLeague)))
}
