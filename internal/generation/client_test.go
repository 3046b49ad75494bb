package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientRequiresEndpointAndKey(t *testing.T) {
	if _, err := NewClient(Options{APIKey: "k"}); !errors.Is(err, ErrMissingEndpoint) {
		t.Fatalf("expected ErrMissingEndpoint, got %v", err)
	}
	if _, err := NewClient(Options{EndpointURL: "https://example.com"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestRunSuccess(t *testing.T) {
	var gotAuth string
	var gotBody workflowRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"status": "succeeded",
				"outputs": map[string]any{
					"generated_article": "Hello world",
					"structured_output": map[string]any{"image_prompts": []string{"a sunrise"}},
				},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Options{EndpointURL: server.URL, APIKey: "app-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out, err := client.Run(context.Background(), "user-1", Inputs{OutlineContent: "intro"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Article != "Hello world" {
		t.Fatalf("article = %q, want %q", out.Article, "Hello world")
	}
	if len(out.Structured) == 0 {
		t.Fatalf("expected structured output")
	}
	if gotAuth != "Bearer app-key" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotBody.ResponseMode != "blocking" {
		t.Fatalf("response_mode = %q, want blocking", gotBody.ResponseMode)
	}
	if gotBody.User != "user-1" {
		t.Fatalf("user = %q, want user-1", gotBody.User)
	}
	if gotBody.Inputs.OutlineContent != "intro" {
		t.Fatalf("outline_content = %q", gotBody.Inputs.OutlineContent)
	}
}

func TestRunFailedWorkflowStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"status": "failed", "error": "model overloaded"},
		})
	}))
	defer server.Close()

	client, err := NewClient(Options{EndpointURL: server.URL, APIKey: "app-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Run(context.Background(), "user-1", Inputs{})
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if !strings.Contains(malformed.Reason, "model overloaded") {
		t.Fatalf("reason = %q", malformed.Reason)
	}
}

func TestRunMissingArticleField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"status": "succeeded", "outputs": map[string]any{}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Options{EndpointURL: server.URL, APIKey: "app-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Run(context.Background(), "user-1", Inputs{})
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
}

func TestRunHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": "upstream_error", "message": "workflow unavailable"})
	}))
	defer server.Close()

	client, err := NewClient(Options{EndpointURL: server.URL, APIKey: "app-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Run(context.Background(), "user-1", Inputs{})
	if err == nil || !strings.Contains(err.Error(), "workflow unavailable") {
		t.Fatalf("expected upstream error detail, got %v", err)
	}
}

func TestRunTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Options{
		EndpointURL: server.URL,
		APIKey:      "app-key",
		HTTPClient:  &http.Client{Timeout: 50 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Run(context.Background(), "user-1", Inputs{}); err == nil {
		t.Fatalf("expected timeout error")
	}
}
