package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"neolish/internal/pipeline"
)

type dispatchResponse struct {
	Message             string            `json:"message"`
	ProcessedArticleIDs []string          `json:"processedArticleIds"`
	Results             []pipeline.Result `json:"results"`
}

// GenerationDispatch triggers one bounded dispatch batch for the caller's team
// scope. An empty queue is a "nothing to do" response, not an error.
func (a *App) GenerationDispatch(w http.ResponseWriter, r *http.Request) {
	teamIDs, err := a.teamScope(r.Context(), r)
	if err != nil {
		a.scopeError(w, err)
		return
	}
	if len(teamIDs) == 0 {
		a.json(w, http.StatusOK, dispatchResponse{
			Message:             "no queued articles to process",
			ProcessedArticleIDs: []string{},
			Results:             []pipeline.Result{},
		})
		return
	}
	summary, err := a.Dispatcher.Dispatch(r.Context(), teamIDs)
	if err != nil {
		a.Logger.Error().Err(err).Msg("dispatch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to dispatch generation batch")
		return
	}
	if summary.Total == 0 {
		a.json(w, http.StatusOK, dispatchResponse{
			Message:             "no queued articles to process",
			ProcessedArticleIDs: []string{},
			Results:             []pipeline.Result{},
		})
		return
	}
	ids := make([]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		ids = append(ids, result.ArticleID)
	}
	a.json(w, http.StatusOK, dispatchResponse{
		Message:             "generation batch processed",
		ProcessedArticleIDs: ids,
		Results:             summary.Results,
	})
}

type retryRequest struct {
	ArticleIDs []string `json:"articleIds"`
}

type retryResponse struct {
	Message         string                `json:"message"`
	RetriedArticles []string              `json:"retriedArticles"`
	RetryErrors     []pipeline.RetryError `json:"retryErrors,omitempty"`
}

// GenerationRetry re-queues failed articles within the caller's team scope.
func (a *App) GenerationRetry(w http.ResponseWriter, r *http.Request) {
	teamIDs, err := a.teamScope(r.Context(), r)
	if err != nil {
		a.scopeError(w, err)
		return
	}
	var req retryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.ArticleIDs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "articleIds required")
		return
	}
	if len(teamIDs) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no eligible articles to retry")
		return
	}
	retried, retryErrors := a.Retrier.Retry(r.Context(), teamIDs, req.ArticleIDs)
	if len(retried) == 0 {
		a.json(w, http.StatusNotFound, retryResponse{
			Message:         "no eligible articles to retry",
			RetriedArticles: []string{},
			RetryErrors:     retryErrors,
		})
		return
	}
	a.json(w, http.StatusOK, retryResponse{
		Message:         "articles re-queued for generation",
		RetriedArticles: retried,
		RetryErrors:     retryErrors,
	})
}

type statusResponse struct {
	QueuedCount                  int                          `json:"queuedCount"`
	ProcessingCount              int                          `json:"processingCount"`
	TotalPendingCount            int                          `json:"totalPendingCount"`
	AverageProcessingTimeSeconds *float64                     `json:"averageProcessingTimeSeconds,omitempty"`
	Articles                     statusArticles               `json:"articles"`
	Timestamp                    time.Time                    `json:"timestamp"`
}

type statusArticles struct {
	Queued     []pipeline.QueuedArticle     `json:"queued"`
	Processing []pipeline.ProcessingArticle `json:"processing"`
}

// GenerationStatus reports queue depth, in-flight articles and ETA estimates.
func (a *App) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	teamIDs, err := a.teamScope(r.Context(), r)
	if err != nil {
		a.scopeError(w, err)
		return
	}
	if len(teamIDs) == 0 {
		a.json(w, http.StatusOK, statusResponse{
			Articles:  statusArticles{Queued: []pipeline.QueuedArticle{}, Processing: []pipeline.ProcessingArticle{}},
			Timestamp: time.Now(),
		})
		return
	}
	report, err := a.Reporter.Report(r.Context(), teamIDs)
	if err != nil {
		a.Logger.Error().Err(err).Msg("status report failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation status")
		return
	}
	queued := report.Queued
	if queued == nil {
		queued = []pipeline.QueuedArticle{}
	}
	processing := report.Processing
	if processing == nil {
		processing = []pipeline.ProcessingArticle{}
	}
	a.json(w, http.StatusOK, statusResponse{
		QueuedCount:                  report.QueuedCount,
		ProcessingCount:              report.ProcessingCount,
		TotalPendingCount:            report.QueuedCount + report.ProcessingCount,
		AverageProcessingTimeSeconds: report.AverageProcessingTimeSeconds,
		Articles:                     statusArticles{Queued: queued, Processing: processing},
		Timestamp:                    report.Timestamp,
	})
}
