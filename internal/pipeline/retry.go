package pipeline

import (
	"context"
	"errors"

	"neolish/internal/domain"
	"neolish/internal/infra"
)

// RetryError is the per-article reason an id could not be re-queued.
type RetryError struct {
	ArticleID string `json:"articleId"`
	Error     string `json:"error"`
}

// Retrier re-arms generation_failed articles back to queued. It never invokes
// the processor; re-queued articles wait for the next dispatch.
type Retrier struct {
	articles domain.ArticleRepository
	related  domain.RelatedRepository
	logger   infra.Logger
}

func NewRetrier(articles domain.ArticleRepository, related domain.RelatedRepository, logger infra.Logger) *Retrier {
	return &Retrier{articles: articles, related: related, logger: logger}
}

// Retry filters the submitted ids to those in scope and in generation_failed
// with intact prerequisites, then resets each to queued at the back of the
// FIFO. Per-article problems are reported, not fatal.
func (r *Retrier) Retry(ctx context.Context, teamIDs []string, articleIDs []string) ([]string, []RetryError) {
	var retried []string
	var retryErrors []RetryError
	seen := make(map[string]struct{}, len(articleIDs))
	for _, id := range articleIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if reason := r.retryOne(ctx, teamIDs, id); reason != "" {
			retryErrors = append(retryErrors, RetryError{ArticleID: id, Error: reason})
			continue
		}
		retried = append(retried, id)
	}
	if len(retried) > 0 {
		r.logger.Info().Int("count", len(retried)).Msg("retrier: articles re-queued")
	}
	return retried, retryErrors
}

func (r *Retrier) retryOne(ctx context.Context, teamIDs []string, id string) string {
	article, err := r.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "article not found"
		}
		return err.Error()
	}
	if !inScope(teamIDs, article.TeamID) {
		return "article not found"
	}
	if !article.Status.CanTransition(domain.StatusQueued) {
		return "article is not in a failed state"
	}
	if article.OutlineID == nil {
		return "outline is not set"
	}
	if _, err := r.related.GetOutline(ctx, *article.OutlineID); err != nil {
		return "outline no longer exists"
	}
	if article.StyleProfileID == nil {
		return "style profile is not set"
	}
	if _, err := r.related.GetStyleProfile(ctx, *article.StyleProfileID); err != nil {
		return "style profile no longer exists"
	}
	if err := r.articles.Requeue(ctx, id); err != nil {
		return err.Error()
	}
	return ""
}

// inScope treats an empty scope as unrestricted; scoped callers must own the
// article's team.
func inScope(teamIDs []string, teamID string) bool {
	if len(teamIDs) == 0 {
		return true
	}
	for _, id := range teamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
