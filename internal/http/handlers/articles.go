package handlers

import (
	"net/http"
	"strconv"
	"time"

	"neolish/internal/adapter/repo"
)

type articleListItem struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArticlesList returns article summaries for the caller's teams, optionally
// filtered by status.
func (a *App) ArticlesList(w http.ResponseWriter, r *http.Request) {
	teamIDs, err := a.teamScope(r.Context(), r)
	if err != nil {
		a.scopeError(w, err)
		return
	}
	if len(teamIDs) == 0 {
		a.json(w, http.StatusOK, map[string]any{"items": []articleListItem{}})
		return
	}
	filter := repo.ArticleListFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid limit")
			return
		}
		filter.Limit = limit
	}
	summaries, err := a.Articles.List(r.Context(), teamIDs, filter)
	if err != nil {
		a.Logger.Error().Err(err).Msg("article listing failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list articles")
		return
	}
	items := make([]articleListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, articleListItem{
			ID:        s.ID,
			Status:    string(s.Status),
			TeamID:    s.TeamID,
			UserID:    s.UserID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
