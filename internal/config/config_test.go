package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OrderCacheTTLSeconds != DefaultConfig().OrderCacheTTLSeconds {
		t.Fatalf("OrderCacheTTLSeconds = %d, want %d", cfg.OrderCacheTTLSeconds, DefaultConfig().OrderCacheTTLSeconds)
	}
	if cfg.OrderCacheSweepThreshold != 50 {
		t.Fatalf("OrderCacheSweepThreshold = %d, want 50", cfg.OrderCacheSweepThreshold)
	}
	if cfg.PermissiveIdentity {
		t.Fatal("PermissiveIdentity = true, want false by default")
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"order_cache_ttl_seconds": 60, "permissive_identity": true}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OrderCacheTTLSeconds != 60 {
		t.Fatalf("OrderCacheTTLSeconds = %d, want 60", cfg.OrderCacheTTLSeconds)
	}
	if !cfg.PermissiveIdentity {
		t.Fatal("PermissiveIdentity = false, want true")
	}
	// Untouched fields keep defaults
	if cfg.CandidateMaxItems != 100 {
		t.Fatalf("CandidateMaxItems = %d, want 100", cfg.CandidateMaxItems)
	}
}

func TestLoad_JSONCComments(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	jsonc := `{
		// shorter TTL for local dev
		"order_cache_ttl_seconds": 30,
	}`
	if err := os.WriteFile(configPath, []byte(jsonc), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OrderCacheTTLSeconds != 30 {
		t.Fatalf("OrderCacheTTLSeconds = %d, want 30", cfg.OrderCacheTTLSeconds)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestMerge_ArraysDeduplicated(t *testing.T) {
	base := &Config{DisabledTools: []string{"order_set", "order_clear"}}
	overlay := &Config{DisabledTools: []string{"order_set", " feed_resolve "}}

	merged := Merge(base, overlay)

	want := []string{"order_set", "order_clear", "feed_resolve"}
	if len(merged.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", merged.DisabledTools, want)
	}
	for i, s := range want {
		if merged.DisabledTools[i] != s {
			t.Fatalf("DisabledTools[%d] = %q, want %q", i, merged.DisabledTools[i], s)
		}
	}
}
