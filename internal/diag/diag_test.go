package diag

import (
	"testing"

	"rms-check/internal/source"
)

func testSpan(fs *source.FileSet, id source.FileID, start, end uint32) source.Span {
	return source.Span{File: id, Start: start, End: end}
}

func TestBagSortOrdersByPositionThenSeverityThenCode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("0123456789"))

	bag := NewBag(10)
	bag.Add(Diagnostic{Code: CodeUnknownSymbol, Severity: SevWarning, Primary: testSpan(fs, id, 5, 6)})
	bag.Add(Diagnostic{Code: CodeUnknownCommand, Severity: SevError, Primary: testSpan(fs, id, 0, 3)})
	bag.Add(Diagnostic{Code: CodeShadowBuiltin, Severity: SevHint, Primary: testSpan(fs, id, 0, 3)})

	bag.Sort()
	items := bag.Items()
	if items[0].Code != CodeUnknownCommand {
		t.Fatalf("expected the higher-severity diagnostic at the same span first, got %v", items[0].Code)
	}
	if items[1].Code != CodeShadowBuiltin {
		t.Fatalf("expected the lower-severity diagnostic at the same span second, got %v", items[1].Code)
	}
	if items[2].Code != CodeUnknownSymbol {
		t.Fatalf("expected the later span last, got %v", items[2].Code)
	}
}

func TestBagDedupKeepsFirstOccurrence(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("0123456789"))
	sp := testSpan(fs, id, 0, 3)

	bag := NewBag(10)
	bag.Add(Diagnostic{Code: CodeRedefinedSymbol, Primary: sp, Message: "first"})
	bag.Add(Diagnostic{Code: CodeRedefinedSymbol, Primary: sp, Message: "second"})
	bag.Dedup()

	if bag.Len() != 1 {
		t.Fatalf("expected dedup to collapse to 1 diagnostic, got %d", bag.Len())
	}
	if bag.Items()[0].Message != "first" {
		t.Errorf("expected the first occurrence to survive, got %q", bag.Items()[0].Message)
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("x"))
	sp := testSpan(fs, id, 0, 1)

	bag := NewBag(10)
	bag.Add(Diagnostic{Code: CodeDeadBranch, Severity: SevHint, Primary: sp})
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("a hint-only bag should report neither errors nor warnings")
	}
	bag.Add(Diagnostic{Code: CodeSumOfChances, Severity: SevWarning, Primary: sp})
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected HasWarnings once a warning is added")
	}
}

type recordingReporter struct {
	diags []Diagnostic
}

func (r *recordingReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	r.diags = append(r.diags, Diagnostic{Code: code, Severity: sev, Primary: primary, Message: msg, Notes: notes, Fixes: fixes})
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("FOO"))
	sp := testSpan(fs, id, 0, 3)

	rec := &recordingReporter{}
	b := ReportWarning(rec, CodeUnknownSymbol, sp, "unknown symbol FOO").
		WithNote(sp, "did you mean BAR?")
	b.Emit()
	// A second Emit must be a no-op.
	b.Emit()
	ReportWarning(rec, CodeUnknownSymbol, sp, "unknown symbol FOO").Emit()

	if len(rec.diags) != 2 {
		t.Fatalf("expected 2 reported diagnostics across both builders, got %d", len(rec.diags))
	}
	if len(rec.diags[0].Notes) != 1 {
		t.Fatalf("expected the note to be attached, got %+v", rec.diags[0].Notes)
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("FOO"))
	sp := testSpan(fs, id, 0, 3)

	rec := &recordingReporter{}
	dedup := NewDedupReporter(rec)
	dedup.Report(CodeUnknownSymbol, SevWarning, sp, "unknown symbol FOO", nil, nil)
	dedup.Report(CodeUnknownSymbol, SevWarning, sp, "unknown symbol FOO", nil, nil)
	dedup.Report(CodeUnknownSymbol, SevWarning, sp, "unknown symbol BAR", nil, nil)

	if len(rec.diags) != 2 {
		t.Fatalf("expected the exact duplicate suppressed, got %d diagnostics", len(rec.diags))
	}
}

func TestMaterializeFixesResolvesThunks(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rms", []byte("FOO"))
	sp := testSpan(fs, id, 0, 3)

	thunk := func(ctx FixBuildContext) (Fix, error) {
		return Fix{Title: "resolved", Edits: []TextEdit{{Span: sp, NewText: "BAR"}}}, nil
	}
	fixes := []Fix{{Title: "lazy", Thunk: thunk}}

	resolved, err := MaterializeFixes(FixBuildContext{FileSet: fs}, fixes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Title != "resolved" || resolved[0].Thunk != nil {
		t.Fatalf("unexpected resolved fix: %+v", resolved)
	}
}
