package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"neolish/internal/domain"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubExecutor struct {
	execTag   pgconn.CommandTag
	execErr   error
	lastQuery string
	lastArgs  []any
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.lastQuery = query
	s.lastArgs = args
	return s.execTag, s.execErr
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.lastQuery = query
	s.lastArgs = args
	return stubRow{}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.lastQuery = query
	s.lastArgs = args
	return nil, errors.New("unsupported query")
}

func TestClaimLostRace(t *testing.T) {
	db := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewArticleRepository(db).Claim(context.Background(), "a1")
	if !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}
	if !strings.Contains(db.lastQuery, "status = 'queued'") {
		t.Fatalf("claim is not conditional on queued status: %s", db.lastQuery)
	}
}

func TestClaimWonRace(t *testing.T) {
	db := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 1")}
	if err := NewArticleRepository(db).Claim(context.Background(), "a1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
}

func TestRequeueNotRetryable(t *testing.T) {
	db := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewArticleRepository(db).Requeue(context.Background(), "a1")
	if !errors.Is(err, domain.ErrNotRetryable) {
		t.Fatalf("err = %v, want ErrNotRetryable", err)
	}
	if !strings.Contains(db.lastQuery, "status = 'generation_failed'") {
		t.Fatalf("requeue is not conditional on failed status: %s", db.lastQuery)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := &stubExecutor{}
	_, err := NewArticleRepository(db).GetByID(context.Background(), "a1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkDraftNullsEmptyStructuredContent(t *testing.T) {
	db := &stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 1")}
	if err := NewArticleRepository(db).MarkDraft(context.Background(), "a1", "body", nil); err != nil {
		t.Fatalf("mark draft: %v", err)
	}
	if b, ok := db.lastArgs[2].([]byte); !ok || b != nil {
		t.Fatalf("structured arg = %#v, want nil bytes", db.lastArgs[2])
	}
}

func TestListQueuedNormalizesScope(t *testing.T) {
	db := &stubExecutor{}
	_, _ = NewArticleRepository(db).ListQueuedIDs(context.Background(), nil, 5)
	scope, ok := db.lastArgs[0].([]string)
	if !ok || scope == nil {
		t.Fatalf("scope arg = %#v, want empty non-nil slice", db.lastArgs[0])
	}
	if len(scope) != 0 {
		t.Fatalf("scope = %v, want empty", scope)
	}
	if db.lastArgs[1] != 5 {
		t.Fatalf("limit arg = %#v, want 5", db.lastArgs[1])
	}
}
