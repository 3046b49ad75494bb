package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ArticleRepository defines persistence for article job records.
type ArticleRepository interface {
	// ListQueuedIDs returns up to limit queued article ids within the team
	// scope, oldest queued first. An empty teamIDs slice means unscoped.
	ListQueuedIDs(ctx context.Context, teamIDs []string, limit int) ([]string, error)
	GetByID(ctx context.Context, id string) (*Article, error)
	// Claim flips queued -> processing. It reports ErrAlreadyClaimed when the
	// article was no longer queued, which a racing processor treats as a no-op.
	Claim(ctx context.Context, id string) error
	MarkDraft(ctx context.Context, id, content string, structured json.RawMessage) error
	MarkFailed(ctx context.Context, id, message string) error
	// Requeue resets a generation_failed article to queued, clearing its
	// failure message and moving it to the back of the FIFO.
	Requeue(ctx context.Context, id string) error
}

// RelatedRepository resolves the rows a generation request depends on.
type RelatedRepository interface {
	GetOutline(ctx context.Context, id string) (*Outline, error)
	GetStyleProfile(ctx context.Context, id string) (*StyleProfile, error)
	GetAudience(ctx context.Context, id string) (*Audience, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

// TeamRepository resolves a caller's authorized team scope.
type TeamRepository interface {
	ListTeamIDs(ctx context.Context, userID string) ([]string, error)
}

// QueueSnapshotEntry is one pending article in a status report.
type QueueSnapshotEntry struct {
	ArticleID string
	Status    ArticleStatus
	QueuedAt  time.Time
	UpdatedAt time.Time
}

// StatusRepository is the read-only aggregation surface for queue reporting.
type StatusRepository interface {
	ListPending(ctx context.Context, teamIDs []string) ([]QueueSnapshotEntry, error)
	// RecentCompletionDurations returns updated_at - created_at for the most
	// recent drafts completed within the window, newest first, capped at limit.
	RecentCompletionDurations(ctx context.Context, teamIDs []string, window time.Duration, limit int) ([]time.Duration, error)
}
