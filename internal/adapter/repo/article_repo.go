package repo

import (
	"context"
	"encoding/json"

	"neolish/internal/domain"
	"neolish/internal/infra"
	"neolish/internal/sqlinline"
)

// ArticleRepositoryPG implements domain.ArticleRepository over the articles table.
type ArticleRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewArticleRepository creates an article repository backed by PostgreSQL.
func NewArticleRepository(sql infra.SQLExecutor) *ArticleRepositoryPG {
	return &ArticleRepositoryPG{sql: sql}
}

// ListQueuedIDs returns queued article ids within the team scope, oldest first.
func (r *ArticleRepositoryPG) ListQueuedIDs(ctx context.Context, teamIDs []string, limit int) ([]string, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListQueuedArticles, teamScope(teamIDs), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetByID fetches one article with its generation inputs.
func (r *ArticleRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectArticle, id)
	var a domain.Article
	if err := row.Scan(
		&a.ID,
		&a.Status,
		&a.Content,
		&a.StructuredContent,
		&a.OutlineID,
		&a.StyleProfileID,
		&a.TargetAudienceIDs,
		&a.WritingPurpose,
		&a.TeamID,
		&a.UserID,
		&a.QueuedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Claim transitions queued -> processing. The status guard in the UPDATE makes
// the claim conditional: zero affected rows means another dispatch won the race.
func (r *ArticleRepositoryPG) Claim(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QClaimArticle, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyClaimed
	}
	return nil
}

// MarkDraft records a successful generation result.
func (r *ArticleRepositoryPG) MarkDraft(ctx context.Context, id, content string, structured json.RawMessage) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkArticleDraft, id, content, nullableJSON(structured))
	return err
}

// MarkFailed records a terminal failure with a readable diagnostic.
func (r *ArticleRepositoryPG) MarkFailed(ctx context.Context, id, message string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkArticleFailed, id, message)
	return err
}

// Requeue moves a generation_failed article to the back of the queue.
func (r *ArticleRepositoryPG) Requeue(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QRequeueArticle, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotRetryable
	}
	return nil
}

// teamScope normalizes a scope slice so an empty scope reaches the query as an
// empty array rather than NULL.
func teamScope(teamIDs []string) []string {
	if teamIDs == nil {
		return []string{}
	}
	return teamIDs
}

func nullableJSON(b json.RawMessage) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

var _ domain.ArticleRepository = (*ArticleRepositoryPG)(nil)
