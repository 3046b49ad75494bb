package domain

import (
	"encoding/json"
	"time"
)

// ArticleStatus enumerates article lifecycle states. The pipeline owns the
// transitions queued -> processing -> draft | generation_failed; published and
// archived are post-pipeline states it never writes.
type ArticleStatus string

const (
	StatusQueued           ArticleStatus = "queued"
	StatusProcessing       ArticleStatus = "processing"
	StatusDraft            ArticleStatus = "draft"
	StatusGenerationFailed ArticleStatus = "generation_failed"
	StatusPublished        ArticleStatus = "published"
	StatusArchived         ArticleStatus = "archived"
)

// Article is both the business entity and the job record: its status column is
// the queue state, there is no separate queue table.
type Article struct {
	ID                string
	Status            ArticleStatus
	Content           string
	StructuredContent json.RawMessage
	OutlineID         *string
	StyleProfileID    *string
	TargetAudienceIDs []string
	WritingPurpose    []string
	TeamID            string
	UserID            string
	QueuedAt          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanTransition reports whether moving from s to next is a valid pipeline
// transition.
func (s ArticleStatus) CanTransition(next ArticleStatus) bool {
	switch s {
	case StatusQueued:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusDraft || next == StatusGenerationFailed
	case StatusGenerationFailed:
		return next == StatusQueued
	default:
		return false
	}
}

// Pending reports whether the article is still owned by the pipeline.
func (s ArticleStatus) Pending() bool {
	return s == StatusQueued || s == StatusProcessing
}
