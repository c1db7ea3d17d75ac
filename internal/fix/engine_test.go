package fix

import (
	"os"
	"path/filepath"
	"testing"

	"rms-check/internal/diag"
	"rms-check/internal/source"
)

func TestGatherCandidatesSkipsFixesWithNoEdits(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte(""))
	span := source.Span{File: fileID, Start: 0, End: 0}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.CodeUnbalancedRandom,
		Message: "start_random has no matching end_random",
		Primary: span,
		Fixes: []diag.Fix{
			{ID: "insert-end-random", Title: "insert end_random", Edits: []diag.TextEdit{{Span: span, NewText: "end_random\n"}}},
			{ID: "empty-fix", Title: "does nothing"},
		},
	}}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, skips := gatherCandidates(ctx, diagnostics)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 || skips[0].ID != "empty-fix" || skips[0].Reason != "fix has no edits" {
		t.Fatalf("unexpected skips: %+v", skips)
	}
}

func TestGatherCandidatesSynthesizesMissingID(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte(""))
	span := source.Span{File: fileID, Start: 5, End: 5}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.CodeUnbalancedIf,
		Primary: span,
		Fixes:   []diag.Fix{{Title: "insert endif", Edits: []diag.TextEdit{{Span: span, NewText: "endif\n"}}}},
	}}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, _ := gatherCandidates(ctx, diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].fix.ID == "" {
		t.Error("expected a synthesized fix ID")
	}
}

func TestSelectCandidatesOnceModePrefersAlwaysSafe(t *testing.T) {
	span := source.Span{}
	candidates := []candidate{
		{fix: diag.Fix{ID: "a", Applicability: diag.FixApplicabilityManualReview, Edits: []diag.TextEdit{{Span: span}}}},
		{fix: diag.Fix{ID: "b", Applicability: diag.FixApplicabilityAlwaysSafe, Edits: []diag.TextEdit{{Span: span}}}},
	}
	selected, _ := selectCandidates(candidates, ApplyOptions{Mode: ApplyModeOnce})
	if len(selected) != 1 || selected[0].fix.ID != "b" {
		t.Fatalf("expected the AlwaysSafe candidate to win, got %+v", selected)
	}
}

func TestSelectCandidatesAllModeDropsUnsafe(t *testing.T) {
	span := source.Span{}
	candidates := []candidate{
		{fix: diag.Fix{ID: "a", Applicability: diag.FixApplicabilityAlwaysSafe, Edits: []diag.TextEdit{{Span: span}}}},
		{fix: diag.Fix{ID: "b", Applicability: diag.FixApplicabilityManualReview, Edits: []diag.TextEdit{{Span: span}}}},
	}
	selected, skipped := selectCandidates(candidates, ApplyOptions{Mode: ApplyModeAll})
	if len(selected) != 1 || selected[0].fix.ID != "a" {
		t.Fatalf("expected only the AlwaysSafe candidate selected, got %+v", selected)
	}
	if len(skipped) != 1 || skipped[0].ID != "b" {
		t.Fatalf("expected the manual-review candidate skipped, got %+v", skipped)
	}
}

func TestSortCandidatesPutsErrorsBeforeOverlappingWarnings(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte(""))
	span := source.Span{File: fileID, Start: 10, End: 20}

	candidates := []candidate{
		{diag: diag.Diagnostic{Code: diag.CodeDeadBranch, Severity: diag.SevWarning, Primary: span}, fix: diag.Fix{ID: "warn"}, order: 0},
		{diag: diag.Diagnostic{Code: diag.CodeArgType, Severity: diag.SevError, Primary: span}, fix: diag.Fix{ID: "err"}, order: 1},
	}
	sortCandidates(candidates)
	if candidates[0].fix.ID != "err" {
		t.Fatalf("expected the Error-severity candidate first, got %+v", candidates)
	}
}

func TestApplyWritesFileAndReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.rms")
	if err := os.WriteFile(path, []byte("if FOO\ncreate_land {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	insertAt := source.Span{File: fileID, Start: uint32(len("if FOO\ncreate_land {}\n")), End: uint32(len("if FOO\ncreate_land {}\n"))}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CodeUnbalancedIf,
		Severity: diag.SevWarning,
		Message: "if has no matching endif",
		Primary: source.Span{File: fileID, Start: 0, End: 6},
		Fixes:   []diag.Fix{InsertText("insert endif", insertAt, "endif\n", "")},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Applied) != 1 {
		t.Fatalf("expected 1 applied fix, got %+v", result.Applied)
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("expected 1 file change, got %+v", result.FileChanges)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "if FOO\ncreate_land {}\nendif\n"
	if string(got) != want {
		t.Fatalf("unexpected file content:\n got: %q\nwant: %q", got, want)
	}
}

func TestApplyReturnsErrNoFixesWhenNothingHasFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte(""))
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CodeUnknownCommand,
		Primary: source.Span{File: fileID, Start: 0, End: 0},
	}}
	_, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != ErrNoFixes {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}
