package targets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTargetsFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write targets file: %v", err)
	}
	return path
}

func TestLoadTargetsYAML(t *testing.T) {
	path := writeTargetsFile(t, "targets.yaml", `
targets:
  - id: local
    name: Local Dev
    base_url: http://localhost:8000/
  - id: staging
    name: Staging
    base_url: https://polls.example.com
    timeout_seconds: 30
`)

	if err := LoadTargets(path); err != nil {
		t.Fatalf("LoadTargets: %v", err)
	}

	all := Targets()
	if len(all) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(all))
	}

	local, ok := TargetByID("local")
	if !ok {
		t.Fatalf("local target missing")
	}
	if local.BaseURL != "http://localhost:8000" {
		t.Fatalf("trailing slash not trimmed: %q", local.BaseURL)
	}
	if local.Timeout() != 15*time.Second {
		t.Fatalf("default timeout = %s", local.Timeout())
	}

	staging, ok := TargetByID("staging")
	if !ok {
		t.Fatalf("staging target missing")
	}
	if staging.Timeout() != 30*time.Second {
		t.Fatalf("staging timeout = %s", staging.Timeout())
	}
}

func TestLoadTargetsDuplicateID(t *testing.T) {
	path := writeTargetsFile(t, "targets.yaml", `
targets:
  - id: local
    name: One
    base_url: http://localhost:8000
  - id: local
    name: Two
    base_url: http://localhost:9000
`)

	if err := LoadTargets(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadTargetsRejectsBadScheme(t *testing.T) {
	path := writeTargetsFile(t, "targets.yaml", `
targets:
  - id: local
    name: Local
    base_url: localhost:8000
`)

	if err := LoadTargets(path); err == nil {
		t.Fatalf("expected scheme validation error")
	}
}

func TestLoadTargetsJSON(t *testing.T) {
	path := writeTargetsFile(t, "targets.json", `{
  "targets": [
    {"id": "local", "name": "Local", "base_url": "http://localhost:8000"}
  ]
}`)

	if err := LoadTargets(path); err != nil {
		t.Fatalf("LoadTargets: %v", err)
	}
	if _, ok := TargetByID("local"); !ok {
		t.Fatalf("local target missing after JSON load")
	}
}
