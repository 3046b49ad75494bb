package pipeline

import (
	"context"
	"time"

	"neolish/internal/domain"
)

const (
	etaWindow      = 24 * time.Hour
	etaSampleLimit = 10
)

// QueuedArticle is one waiting article with its FIFO position and, when recent
// completions exist, an estimated start time.
type QueuedArticle struct {
	ArticleID        string     `json:"articleId"`
	Position         int        `json:"position"`
	QueuedAt         time.Time  `json:"queuedAt"`
	EstimatedStartAt *time.Time `json:"estimatedStartAt,omitempty"`
}

// ProcessingArticle is one in-flight article.
type ProcessingArticle struct {
	ArticleID string    `json:"articleId"`
	StartedAt time.Time `json:"startedAt"`
}

// Report is the queue snapshot for one team scope.
type Report struct {
	QueuedCount                  int
	ProcessingCount              int
	AverageProcessingTimeSeconds *float64
	Queued                       []QueuedArticle
	Processing                   []ProcessingArticle
	Timestamp                    time.Time
}

// Reporter computes queue depth, in-flight count and ETA estimates from the
// job store. Read only.
type Reporter struct {
	status domain.StatusRepository
	now    func() time.Time
}

func NewReporter(status domain.StatusRepository) *Reporter {
	return &Reporter{status: status, now: time.Now}
}

// Report lists pending articles and derives a moving-average completion time
// from the last completions inside the trailing window. With no samples the
// average and every ETA are omitted rather than reported as zero.
func (r *Reporter) Report(ctx context.Context, teamIDs []string) (*Report, error) {
	entries, err := r.status.ListPending(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	durations, err := r.status.RecentCompletionDurations(ctx, teamIDs, etaWindow, etaSampleLimit)
	if err != nil {
		return nil, err
	}

	now := r.now()
	report := &Report{Timestamp: now}

	var average time.Duration
	if len(durations) > 0 {
		var total time.Duration
		for _, d := range durations {
			total += d
		}
		average = total / time.Duration(len(durations))
		seconds := average.Seconds()
		report.AverageProcessingTimeSeconds = &seconds
	}

	for _, entry := range entries {
		switch entry.Status {
		case domain.StatusQueued:
			queued := QueuedArticle{
				ArticleID: entry.ArticleID,
				Position:  len(report.Queued) + 1,
				QueuedAt:  entry.QueuedAt,
			}
			if report.AverageProcessingTimeSeconds != nil {
				eta := now.Add(average * time.Duration(queued.Position-1))
				queued.EstimatedStartAt = &eta
			}
			report.Queued = append(report.Queued, queued)
			report.QueuedCount++
		case domain.StatusProcessing:
			report.Processing = append(report.Processing, ProcessingArticle{
				ArticleID: entry.ArticleID,
				StartedAt: entry.UpdatedAt,
			})
			report.ProcessingCount++
		}
	}
	return report, nil
}
