package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"neolish/internal/adapter/repo"
	"neolish/internal/domain"
	"neolish/internal/infra"
	"neolish/internal/middleware"
	"neolish/internal/pipeline"
)

// App is the handler container; dependencies are injected once at startup.
type App struct {
	Logger     infra.Logger
	Teams      domain.TeamRepository
	Dispatcher *pipeline.Dispatcher
	Retrier    *pipeline.Retrier
	Reporter   *pipeline.Reporter
	Articles   *repo.ArticleListRepositoryPG
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{"error": errorBody{Code: errCode, Message: message}})
}

// teamScope resolves the caller's authorized teams. A caller with no
// memberships still gets an explicit empty-but-scoped result. A missing user
// identity yields domain.ErrUnauthorized; a store failure is passed through.
func (a *App) teamScope(ctx context.Context, r *http.Request) ([]string, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	teamIDs, err := a.Teams.ListTeamIDs(ctx, userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("resolve team scope failed")
		return nil, err
	}
	if teamIDs == nil {
		teamIDs = []string{}
	}
	return teamIDs, nil
}

// scopeError maps a teamScope failure onto the right status code.
func (a *App) scopeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	a.error(w, http.StatusInternalServerError, "internal", "failed to resolve team scope")
}
