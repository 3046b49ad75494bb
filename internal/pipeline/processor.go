package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neolish/internal/domain"
	"neolish/internal/generation"
	"neolish/internal/infra"
)

const (
	defaultAudienceLabel = "General readers"
	defaultPurposeLabel  = "General informational article"

	failurePrefix = "Generation failed: "
)

// Result statuses reported back to the dispatcher. Every outcome is settled;
// processors never propagate errors upward.
const (
	ResultDraft   = "draft"
	ResultFailed  = "generation_failed"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

// Result is the settled outcome of one processing attempt.
type Result struct {
	ArticleID string `json:"articleId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Processor drives exactly one article through one attempt of the pipeline.
type Processor struct {
	articles domain.ArticleRepository
	related  domain.RelatedRepository
	runner   generation.Runner
	logger   infra.Logger
	timeout  time.Duration
}

func NewProcessor(articles domain.ArticleRepository, related domain.RelatedRepository, runner generation.Runner, logger infra.Logger, timeout time.Duration) *Processor {
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &Processor{
		articles: articles,
		related:  related,
		runner:   runner,
		logger:   logger,
		timeout:  timeout,
	}
}

// Process re-reads the article, claims it, performs the external call and
// persists the terminal state. All modeled failures settle as
// generation_failed with a readable message in content.
func (p *Processor) Process(ctx context.Context, articleID string) Result {
	// An attempt settles on its own clock: the caller's deadline or disconnect
	// must never strand a claimed article in processing, so the store writes
	// and the external call run detached from the caller's cancellation. The
	// external call is still bounded by the processor timeout below.
	ctx = context.WithoutCancel(ctx)

	article, err := p.articles.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{ArticleID: articleID, Status: ResultSkipped}
		}
		return Result{ArticleID: articleID, Status: ResultError, Error: err.Error()}
	}
	if !article.Status.CanTransition(domain.StatusProcessing) {
		// Stale id or a dispatch race already handled it.
		return Result{ArticleID: articleID, Status: ResultSkipped}
	}

	outline, profile, user, reason := p.resolvePrerequisites(ctx, article)
	if reason != "" {
		// Fatal precondition, no external call is made.
		return p.fail(ctx, articleID, reason)
	}

	if err := p.articles.Claim(ctx, articleID); err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			return Result{ArticleID: articleID, Status: ResultSkipped}
		}
		return Result{ArticleID: articleID, Status: ResultError, Error: err.Error()}
	}

	inputs := generation.Inputs{
		OutlineTitle:   outline.Title,
		OutlineContent: outline.Content,
		AuthorInfo:     profile.AuthorInfo,
		StyleFeatures:  profile.StyleFeatures,
		SampleText:     profile.SampleText,
		WritingPurpose: p.firstPurpose(article),
		TargetAudience: p.firstAudienceName(ctx, article),
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	output, err := p.runner.Run(callCtx, user.ID, inputs)
	if err != nil {
		return p.fail(ctx, articleID, err.Error())
	}

	if err := p.articles.MarkDraft(ctx, articleID, output.Article, output.Structured); err != nil {
		p.logger.Error().Err(err).Str("article_id", articleID).Msg("processor: persist draft failed")
		return Result{ArticleID: articleID, Status: ResultError, Error: err.Error()}
	}
	p.logger.Info().Str("article_id", articleID).Msg("processor: article drafted")
	return Result{ArticleID: articleID, Status: ResultDraft}
}

// resolvePrerequisites loads the rows the generation request depends on. Any
// missing row is a fatal precondition, not a transient failure.
func (p *Processor) resolvePrerequisites(ctx context.Context, article *domain.Article) (*domain.Outline, *domain.StyleProfile, *domain.User, string) {
	if article.OutlineID == nil {
		return nil, nil, nil, "outline is not set"
	}
	outline, err := p.related.GetOutline(ctx, *article.OutlineID)
	if err != nil {
		return nil, nil, nil, fmt.Sprintf("outline %s could not be loaded", *article.OutlineID)
	}
	if article.StyleProfileID == nil {
		return nil, nil, nil, "style profile is not set"
	}
	profile, err := p.related.GetStyleProfile(ctx, *article.StyleProfileID)
	if err != nil {
		return nil, nil, nil, fmt.Sprintf("style profile %s could not be loaded", *article.StyleProfileID)
	}
	user, err := p.related.GetUser(ctx, article.UserID)
	if err != nil {
		return nil, nil, nil, fmt.Sprintf("owner %s could not be loaded", article.UserID)
	}
	return outline, profile, user, ""
}

func (p *Processor) firstAudienceName(ctx context.Context, article *domain.Article) string {
	if len(article.TargetAudienceIDs) == 0 {
		return defaultAudienceLabel
	}
	audience, err := p.related.GetAudience(ctx, article.TargetAudienceIDs[0])
	if err != nil {
		return defaultAudienceLabel
	}
	return audience.Name
}

func (p *Processor) firstPurpose(article *domain.Article) string {
	for _, purpose := range article.WritingPurpose {
		if trimmed := strings.TrimSpace(purpose); trimmed != "" {
			return trimmed
		}
	}
	return defaultPurposeLabel
}

// fail settles the attempt as generation_failed. A failure to record the
// failure is logged, never retried within the attempt.
func (p *Processor) fail(ctx context.Context, articleID, reason string) Result {
	message := failurePrefix + reason
	if err := p.articles.MarkFailed(ctx, articleID, message); err != nil {
		p.logger.Error().Err(err).Str("article_id", articleID).Msg("processor: persist failure failed")
	}
	p.logger.Warn().Str("article_id", articleID).Str("reason", reason).Msg("processor: article failed")
	return Result{ArticleID: articleID, Status: ResultFailed, Error: reason}
}
