package repo

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"neolish/internal/domain"
	"neolish/internal/infra"
)

// The listing query is assembled dynamically, so it carries its own marker
// instead of living in sqlinline.
const listArticlesMarker = "--sql 3c57c916-e05f-4610-8ff9-36e8dfcc5bc0\n"

// ArticleListFilter narrows the article listing.
type ArticleListFilter struct {
	Status string
	Limit  uint64
}

// ArticleSummary is the listing projection; content is deliberately excluded
// because it is only authoritative from draft onward.
type ArticleSummary struct {
	ID        string
	Status    domain.ArticleStatus
	TeamID    string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleListRepositoryPG serves the filtered article listing.
type ArticleListRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewArticleListRepository(sql infra.SQLExecutor) *ArticleListRepositoryPG {
	return &ArticleListRepositoryPG{sql: sql}
}

// List returns article summaries within the team scope, newest first.
func (r *ArticleListRepositoryPG) List(ctx context.Context, teamIDs []string, filter ArticleListFilter) ([]ArticleSummary, error) {
	builder := sq.Select("id", "status", "team_id", "user_id", "created_at", "updated_at").
		From("articles").
		OrderBy("created_at desc").
		PlaceholderFormat(sq.Dollar)
	if len(teamIDs) > 0 {
		builder = builder.Where(sq.Expr("team_id = any(?::uuid[])", teamIDs))
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	limit := filter.Limit
	if limit == 0 || limit > 100 {
		limit = 50
	}
	builder = builder.Limit(limit)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.sql.Query(ctx, listArticlesMarker+query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ArticleSummary
	for rows.Next() {
		var s ArticleSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.TeamID, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
