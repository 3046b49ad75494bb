package pipeline

import (
	"context"
	"fmt"
	"sync"

	"neolish/internal/domain"
	"neolish/internal/infra"
)

// DefaultBatchSize bounds one dispatch invocation.
const DefaultBatchSize = 5

// Summary reports one dispatch invocation: total articles fanned out and the
// settled outcome of each.
type Summary struct {
	Total   int
	Results []Result
}

// Dispatcher scans the queue and fans processors out concurrently. The join is
// settle-all: a panic inside one processor is captured as that article's
// outcome and never cancels the rest of the batch.
type Dispatcher struct {
	articles  domain.ArticleRepository
	processor *Processor
	logger    infra.Logger
	batchSize int
}

func NewDispatcher(articles domain.ArticleRepository, processor *Processor, logger infra.Logger, batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Dispatcher{
		articles:  articles,
		processor: processor,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Dispatch runs one bounded batch. An empty queue yields an empty summary, not
// an error.
func (d *Dispatcher) Dispatch(ctx context.Context, teamIDs []string) (*Summary, error) {
	ids, err := d.articles.ListQueuedIDs(ctx, teamIDs, d.batchSize)
	if err != nil {
		return nil, fmt.Errorf("scan queue: %w", err)
	}
	if len(ids) == 0 {
		return &Summary{}, nil
	}

	d.logger.Info().Int("count", len(ids)).Msg("dispatcher: processing batch")
	results := make([]Result, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					d.logger.Error().Str("article_id", id).Msgf("dispatcher: processor panicked: %v", rec)
					results[i] = Result{ArticleID: id, Status: ResultError, Error: fmt.Sprintf("panic: %v", rec)}
				}
			}()
			results[i] = d.processor.Process(ctx, id)
		}(i, id)
	}
	wg.Wait()

	return &Summary{Total: len(ids), Results: results}, nil
}
