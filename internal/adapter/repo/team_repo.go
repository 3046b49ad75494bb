package repo

import (
	"context"

	"neolish/internal/domain"
	"neolish/internal/infra"
	"neolish/internal/sqlinline"
)

// TeamRepositoryPG resolves team membership for access scoping.
type TeamRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewTeamRepository(sql infra.SQLExecutor) *TeamRepositoryPG {
	return &TeamRepositoryPG{sql: sql}
}

func (r *TeamRepositoryPG) ListTeamIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectUserTeamIDs, userID)
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

var _ domain.TeamRepository = (*TeamRepositoryPG)(nil)
