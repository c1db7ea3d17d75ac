package project

import (
	"os"
	"path/filepath"
	"testing"

	"rms-check/internal/compat"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadParsesLevelAndDisabledLints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "level = \"up14\"\ndisabled_lints = [\"comment-contents\", \"dead-branch\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Level != compat.UserPatch14 {
		t.Errorf("expected UserPatch14, got %v", cfg.Level)
	}
	if !cfg.DisabledLints["comment-contents"] || !cfg.DisabledLints["dead-branch"] {
		t.Errorf("expected both lints disabled, got %v", cfg.DisabledLints)
	}
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "level = \"not-a-level\"\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestFindConfigWalksUpward(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "level = \"de\"\n")
	nested := filepath.Join(dir, "maps", "arena")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path, root, ok, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if !ok {
		t.Fatal("expected to find config in an ancestor directory")
	}
	wantRoot, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if root != wantRoot {
		t.Errorf("expected root %q, got %q", wantRoot, root)
	}
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("unexpected config path: %q", path)
	}
}

func TestLoadForDirReturnsDefaultWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadForDir(dir)
	if err != nil {
		t.Fatalf("LoadForDir: %v", err)
	}
	if cfg.Level != compat.Conquerors {
		t.Errorf("expected default level Conquerors, got %v", cfg.Level)
	}
	if len(cfg.DisabledLints) != 0 {
		t.Errorf("expected no disabled lints, got %v", cfg.DisabledLints)
	}
}

func TestFindProjectRootFallsBackToGit(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	nested := filepath.Join(dir, "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	root, ok, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	if !ok {
		t.Fatal("expected to find project root via .git fallback")
	}
	wantRoot, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if root != wantRoot {
		t.Errorf("expected root %q, got %q", wantRoot, root)
	}
}
