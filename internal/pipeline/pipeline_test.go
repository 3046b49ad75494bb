package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"neolish/internal/domain"
	"neolish/internal/generation"
)

// memStore is an in-memory job store implementing the repository contracts the
// pipeline depends on.
type memStore struct {
	mu        sync.Mutex
	articles  map[string]*domain.Article
	outlines  map[string]*domain.Outline
	profiles  map[string]*domain.StyleProfile
	audiences map[string]*domain.Audience
	users     map[string]*domain.User
}

func newMemStore() *memStore {
	return &memStore{
		articles:  make(map[string]*domain.Article),
		outlines:  make(map[string]*domain.Outline),
		profiles:  make(map[string]*domain.StyleProfile),
		audiences: make(map[string]*domain.Audience),
		users:     make(map[string]*domain.User),
	}
}

func (s *memStore) ListQueuedIDs(ctx context.Context, teamIDs []string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var queued []*domain.Article
	for _, a := range s.articles {
		if a.Status != domain.StatusQueued {
			continue
		}
		if !inScope(teamIDs, a.TeamID) {
			continue
		}
		queued = append(queued, a)
	}
	sort.Slice(queued, func(i, j int) bool { return queued[i].QueuedAt.Before(queued[j].QueuedAt) })
	var ids []string
	for _, a := range queued {
		if len(ids) == limit {
			break
		}
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memStore) Claim(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok || a.Status != domain.StatusQueued {
		return domain.ErrAlreadyClaimed
	}
	a.Status = domain.StatusProcessing
	a.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) MarkDraft(ctx context.Context, id, content string, structured json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = domain.StatusDraft
	a.Content = content
	a.StructuredContent = structured
	a.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) MarkFailed(ctx context.Context, id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = domain.StatusGenerationFailed
	a.Content = message
	a.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) Requeue(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok || a.Status != domain.StatusGenerationFailed {
		return domain.ErrNotRetryable
	}
	a.Status = domain.StatusQueued
	a.Content = ""
	a.QueuedAt = time.Now()
	a.UpdatedAt = time.Now()
	return nil
}

func (s *memStore) GetOutline(ctx context.Context, id string) (*domain.Outline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.outlines[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *memStore) GetStyleProfile(ctx context.Context, id string) (*domain.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *memStore) GetAudience(ctx context.Context, id string) (*domain.Audience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.audiences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (s *memStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *memStore) articleStatus(id string) domain.ArticleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles[id].Status
}

func (s *memStore) articleContent(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.articles[id].Content
}

// seedArticle creates a queued article with a valid outline, style profile and
// owner, returning its id.
func (s *memStore) seedArticle(queuedAt time.Time, mutate func(*domain.Article)) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	outlineID := uuid.NewString()
	profileID := uuid.NewString()
	userID := uuid.NewString()
	s.outlines[outlineID] = &domain.Outline{ID: outlineID, Title: "Outline " + id[:8], Content: "## Intro"}
	s.profiles[profileID] = &domain.StyleProfile{ID: profileID, Name: "House style", AuthorInfo: "Staff writer", StyleFeatures: "concise", SampleText: "sample"}
	s.users[userID] = &domain.User{ID: userID, Email: "writer@example.com"}
	article := &domain.Article{
		ID:             id,
		Status:         domain.StatusQueued,
		OutlineID:      &outlineID,
		StyleProfileID: &profileID,
		TeamID:         uuid.NewString(),
		UserID:         userID,
		QueuedAt:       queuedAt,
		CreatedAt:      queuedAt,
		UpdatedAt:      queuedAt,
	}
	if mutate != nil {
		mutate(article)
	}
	s.articles[id] = article
	return id
}

// stubRunner counts calls and settles each run according to its configuration.
// Per-outline overrides key off Inputs.OutlineTitle so concurrent batch tests
// can target a single article.
type stubRunner struct {
	mu         sync.Mutex
	calls      int
	lastInputs generation.Inputs
	output     *generation.Output
	err        error
	panicFor   string
	delay      time.Duration
}

func (r *stubRunner) Run(ctx context.Context, user string, inputs generation.Inputs) (*generation.Output, error) {
	r.mu.Lock()
	r.calls++
	r.lastInputs = inputs
	panicFor, err, output, delay := r.panicFor, r.err, r.output, r.delay
	r.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if panicFor != "" && inputs.OutlineTitle == panicFor {
		panic("unexpected runner fault")
	}
	if err != nil {
		return nil, err
	}
	if output != nil {
		return output, nil
	}
	return &generation.Output{Article: "Hello world"}, nil
}

func (r *stubRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
