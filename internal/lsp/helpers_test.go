package lsp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"rms-check/internal/driver/diagnose"
)

// utf16RuneLen mirrors unicode/utf16.RuneLen (added in a newer Go release
// than this module's pinned toolchain provides).
func utf16RuneLen(r rune) int {
	switch {
	case r < 0 || r > unicode.MaxRune:
		return -1
	case r >= 0x10000:
		return 2
	default:
		return 1
	}
}

func analyzeSnapshot(t *testing.T, content string) (*diagnose.Snapshot, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rms")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	opts := diagnose.Options{
		ProjectRoot:    dir,
		BaseDir:        dir,
		MaxDiagnostics: 20,
	}
	snapshot, _, err := diagnose.AnalyzeWorkspace(context.Background(), &opts, diagnose.FileOverlay{})
	if err != nil {
		t.Fatalf("analyze workspace: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected snapshot")
	}
	return snapshot, pathToURI(path)
}

func analyzeSnapshotWithOverlay(t *testing.T, diskContent, overlayContent string) (*diagnose.Snapshot, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rms")
	if err := os.WriteFile(path, []byte(diskContent), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	opts := diagnose.Options{
		ProjectRoot:    dir,
		BaseDir:        dir,
		MaxDiagnostics: 20,
	}
	overlay := diagnose.FileOverlay{
		Files: map[string]string{
			path: overlayContent,
		},
	}
	snapshot, _, err := diagnose.AnalyzeWorkspace(context.Background(), &opts, overlay)
	if err != nil {
		t.Fatalf("analyze workspace: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected snapshot")
	}
	return snapshot, pathToURI(path)
}

func analyzeWorkspaceSnapshot(t *testing.T, files map[string]string, overlay map[string]string) (*diagnose.Snapshot, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(files))
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(abs, []byte(content), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		paths[rel] = abs
	}
	overlayFiles := make(map[string]string, len(overlay))
	for rel, content := range overlay {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		overlayFiles[abs] = content
	}
	opts := diagnose.Options{
		ProjectRoot:    dir,
		BaseDir:        dir,
		MaxDiagnostics: 20,
	}
	snapshot, _, err := diagnose.AnalyzeWorkspace(context.Background(), &opts, diagnose.FileOverlay{Files: overlayFiles})
	if err != nil {
		t.Fatalf("analyze workspace: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected snapshot")
	}
	return snapshot, paths
}

func positionForOffsetUTF16(text string, offset int) position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndex(text[:offset], "\n")
	if lineStart == -1 {
		lineStart = 0
	} else {
		lineStart++
	}
	units := 0
	for _, r := range text[lineStart:offset] {
		n := utf16RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	return position{Line: line, Character: units}
}
