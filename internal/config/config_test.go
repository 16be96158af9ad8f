package config

import (
	"testing"
	"time"

	"visitdedupe/domain/dedupe"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Upload.MaxSizeBytes != 50*1024*1024 {
		t.Errorf("max upload = %d, want 50MB", cfg.Upload.MaxSizeBytes)
	}
	if cfg.Dedupe.DatePolicy != dedupe.DatePolicyLenient {
		t.Errorf("date policy = %q, want lenient", cfg.Dedupe.DatePolicy)
	}
	if cfg.Jobs.TTL != 15*time.Minute {
		t.Errorf("job TTL = %v, want 15m", cfg.Jobs.TTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("DATE_POLICY", "strict")
	t.Setenv("JOB_TTL_MINUTES", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Server.Port)
	}
	if cfg.Upload.MaxSizeBytes != 5*1024*1024 {
		t.Errorf("max upload = %d, want 5MB", cfg.Upload.MaxSizeBytes)
	}
	if cfg.Dedupe.DatePolicy != dedupe.DatePolicyStrict {
		t.Errorf("date policy = %q, want strict", cfg.Dedupe.DatePolicy)
	}
	if cfg.Jobs.TTL != time.Minute {
		t.Errorf("job TTL = %v, want 1m", cfg.Jobs.TTL)
	}
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("DATE_POLICY", "whatever")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid DATE_POLICY")
	}
}
