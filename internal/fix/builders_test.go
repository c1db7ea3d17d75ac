package fix

import (
	"testing"

	"rms-check/internal/diag"
	"rms-check/internal/source"
)

func TestInsertTextDefaults(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("if FOO\ncreate_land {}\n"))

	span := source.Span{File: fileID, Start: 22, End: 22}
	f := InsertText("insert missing endif", span, "endif\n", "")

	if f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Errorf("expected default applicability AlwaysSafe, got %v", f.Applicability)
	}
	if f.Kind != diag.FixKindQuickFix {
		t.Errorf("expected default kind QuickFix, got %v", f.Kind)
	}
	if len(f.Edits) != 1 || f.Edits[0].NewText != "endif\n" {
		t.Fatalf("unexpected edits: %+v", f.Edits)
	}
}

func TestDeleteSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("percent_chance 60\n"))

	span := source.Span{File: fileID, Start: 0, End: 18}
	f := DeleteSpan("drop unreachable branch", span, "percent_chance 60\n")

	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	if f.Edits[0].NewText != "" {
		t.Errorf("expected empty replacement text, got %q", f.Edits[0].NewText)
	}
	if f.Edits[0].OldText != "percent_chance 60\n" {
		t.Errorf("unexpected guard text %q", f.Edits[0].OldText)
	}
}

func TestReplaceSpanWithOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("base_terrain GRSS"))

	span := source.Span{File: fileID, Start: 13, End: 17}
	f := ReplaceSpan("use known constant GRASS", span, "GRASS", "GRSS",
		Preferred(), WithID("arg-type-grass"))

	if !f.IsPreferred {
		t.Error("expected IsPreferred to be true")
	}
	if f.ID != "arg-type-grass" {
		t.Errorf("expected explicit fix id, got %q", f.ID)
	}
	if f.Edits[0].NewText != "GRASS" || f.Edits[0].OldText != "GRSS" {
		t.Fatalf("unexpected edit: %+v", f.Edits[0])
	}
}

func TestWrapWithProducesPrefixAndSuffixEdits(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("start_random\nend_random\n"))

	span := source.Span{File: fileID, Start: 0, End: 24}
	f := WrapWith("wrap chain in a comment", span, "/* ", " */",
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics))

	if f.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Errorf("expected applicability override to stick, got %v", f.Applicability)
	}
	if len(f.Edits) != 2 {
		t.Fatalf("expected prefix and suffix edits, got %d", len(f.Edits))
	}
	if f.Edits[0].NewText != "/* " || f.Edits[1].NewText != " */" {
		t.Fatalf("unexpected edits: %+v", f.Edits)
	}
	if f.Edits[0].Span.Start != f.Edits[0].Span.End {
		t.Errorf("prefix edit should be zero-width")
	}
}

func TestNilOptionIsIgnored(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("create_land {}"))

	span := source.Span{File: fileID, Start: 0, End: 0}
	var nilOpt Option
	f := InsertText("noop", span, "", "", nilOpt, WithKind(diag.FixKindSourceAction))

	if f.Kind != diag.FixKindSourceAction {
		t.Errorf("expected explicit option to still apply, got %v", f.Kind)
	}
}
