package repo

import (
	"context"
	"time"

	"neolish/internal/domain"
	"neolish/internal/infra"
	"neolish/internal/sqlinline"
)

// StatusRepositoryPG is the read-only aggregation surface behind queue reporting.
type StatusRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewStatusRepository(sql infra.SQLExecutor) *StatusRepositoryPG {
	return &StatusRepositoryPG{sql: sql}
}

// ListPending returns queued and processing articles in FIFO order.
func (r *StatusRepositoryPG) ListPending(ctx context.Context, teamIDs []string) ([]domain.QueueSnapshotEntry, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPendingArticles, teamScope(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.QueueSnapshotEntry
	for rows.Next() {
		var e domain.QueueSnapshotEntry
		if err := rows.Scan(&e.ArticleID, &e.Status, &e.QueuedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentCompletionDurations returns completion times of the newest drafts
// finished within the window, capped at limit.
func (r *StatusRepositoryPG) RecentCompletionDurations(ctx context.Context, teamIDs []string, window time.Duration, limit int) ([]time.Duration, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QRecentCompletionDurations, teamScope(teamIDs), window.Seconds(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var durations []time.Duration
	for rows.Next() {
		var seconds float64
		if err := rows.Scan(&seconds); err != nil {
			return nil, err
		}
		durations = append(durations, time.Duration(seconds*float64(time.Second)))
	}
	return durations, rows.Err()
}

var _ domain.StatusRepository = (*StatusRepositoryPG)(nil)
