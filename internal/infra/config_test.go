package infra

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GENERATION_API_URL", "https://workflow.example.com/v1/workflows/run")
	t.Setenv("GENERATION_API_KEY", "app-key")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.GenerationTimeout != 300*time.Second {
		t.Fatalf("GenerationTimeout mismatch: got %s", cfg.GenerationTimeout)
	}
	if cfg.DispatchBatchSize != 5 {
		t.Fatalf("DispatchBatchSize mismatch: got %d", cfg.DispatchBatchSize)
	}
}

func TestLoadConfigRequiresGenerationEndpoint(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GENERATION_API_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when GENERATION_API_URL is missing")
	}
}

func TestLoadConfigRequiresGenerationCredential(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GENERATION_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when GENERATION_API_KEY is missing")
	}
}

func TestLoadConfigHonorsPollInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKER_POLL_INTERVAL_SECONDS", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.WorkerPollInterval != 3*time.Second {
		t.Fatalf("WorkerPollInterval mismatch: got %s", cfg.WorkerPollInterval)
	}
}
