package sinks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: hook1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: hook2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "hook2" {
		t.Fatalf("expected only hook2 enabled, got %#v", enabled)
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: dup
    type: log
  - id: dup
    type: log
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate sink error, got nil")
	}
}

func TestSanitizeSinkConfigDefaultsHTTPMethod(t *testing.T) {
	cfg := sanitizeSinkConfig(SinkConfig{
		ID:   " hook ",
		Type: " HTTP ",
		HTTP: &HTTPSinkConfig{URL: " https://example.com "},
	})
	if cfg.ID != "hook" || cfg.Type != "http" {
		t.Fatalf("sanitize did not trim: %#v", cfg)
	}
	if cfg.HTTP.Method != "POST" {
		t.Fatalf("default method = %q", cfg.HTTP.Method)
	}
	if cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("default timeout = %d", cfg.HTTP.TimeoutSeconds)
	}
}

func TestValidateSinkConfigRejectsMissingBlocks(t *testing.T) {
	cases := []SinkConfig{
		{ID: "h", Type: TypeHTTP},
		{ID: "q", Type: TypeSQS},
		{ID: "n", Type: TypeSNS},
		{ID: "g", Type: TypeGCPPubSub},
	}
	for _, cfg := range cases {
		if err := validateSinkConfig(cfg); err == nil {
			t.Fatalf("expected validation error for sink %q", cfg.ID)
		}
	}
}
