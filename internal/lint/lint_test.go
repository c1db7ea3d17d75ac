package lint

import (
	"testing"

	"rms-check/internal/atom"
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/walker"
)

func word(text string) atom.Atom   { return atom.Atom{Kind: atom.Word, Text: text} }
func number(text string) atom.Atom { return atom.Atom{Kind: atom.Number, Text: text} }

func runWalk(t *testing.T, content string, tree *node.File, level compat.Level) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.rms", []byte(content))
	file := fs.Get(fileID)

	var got []diag.Diagnostic
	reporter := diag.ReporterFunc(func(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
		got = append(got, diag.Diagnostic{Code: code, Severity: sev, Primary: primary, Message: msg, Notes: notes, Fixes: fixes})
	})

	engine := walker.NewEngine(All()...)
	engine.Walk(file, tree, level, reporter)
	return got
}

func hasCode(diags []diag.Diagnostic, code diag.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// severityOf returns the severity of the first diagnostic with the given
// code, failing the test if none was reported.
func severityOf(t *testing.T, diags []diag.Diagnostic, code diag.Code) diag.Severity {
	t.Helper()
	for _, d := range diags {
		if d.Code == code {
			return d.Severity
		}
	}
	t.Fatalf("expected a diagnostic with code %s, got %+v", code, diags)
	return 0
}

func wantSeverity(t *testing.T, diags []diag.Diagnostic, code diag.Code, want diag.Severity) {
	t.Helper()
	got := severityOf(t, diags, code)
	if got != want {
		t.Fatalf("%s: expected severity %v, got %v", code, want, got)
	}
}

func TestRedefinedSymbolOnSecondConst(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.ConstNode{NameAtom: word("FOO"), ValueAtom: number("1"), HasName: true, HasValue: true},
		&node.ConstNode{NameAtom: word("FOO"), ValueAtom: number("2"), HasName: true, HasValue: true},
	}}
	diags := runWalk(t, "#const FOO 1\n#const FOO 2\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeRedefinedSymbol) {
		t.Fatalf("expected redefined-symbol, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeRedefinedSymbol, diag.SevWarning)
}

func TestUnknownSymbolOnUndefinedFlagInIf(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.IfChainNode{Branches: []node.Branch{
			{Keyword: atom.Atom{Kind: atom.If}, GuardAtom: word("NOT_DEFINED"), HasGuard: true},
		}},
	}}
	diags := runWalk(t, "if NOT_DEFINED\nendif\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeUnknownSymbol) {
		t.Fatalf("expected unknown-symbol, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeUnknownSymbol, diag.SevWarning)
}

func TestSumOfChancesOn90(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.RandomChainNode{Branches: []node.ChanceBranch{
			{Keyword: atom.Atom{Kind: atom.PercentChance}, AmountAtom: number("60"), HasAmount: true},
			{Keyword: atom.Atom{Kind: atom.PercentChance}, AmountAtom: number("30"), HasAmount: true},
		}},
	}}
	diags := runWalk(t, "start_random\npercent_chance 60\npercent_chance 30\nend_random\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeSumOfChances) {
		t.Fatalf("expected sum-of-chances, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeSumOfChances, diag.SevWarning)
}

func TestNoShadowBuiltinForNonCollidingConst(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.ConstNode{NameAtom: word("MY_OWN"), ValueAtom: number("5"), HasName: true, HasValue: true},
	}}
	diags := runWalk(t, "#const MY_OWN 5\n", tree, compat.Conquerors)
	if hasCode(diags, diag.CodeShadowBuiltin) {
		t.Fatalf("did not expect shadow-builtin for a non-colliding name, got %+v", diags)
	}
}

func TestShadowBuiltinOnGrass(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.ConstNode{NameAtom: word("GRASS"), ValueAtom: number("9"), HasName: true, HasValue: true},
	}}
	diags := runWalk(t, "#const GRASS 9\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeShadowBuiltin) {
		t.Fatalf("expected shadow-builtin for #const GRASS, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeShadowBuiltin, diag.SevHint)
}

func TestDeadBranchOnRepeatedGuard(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.IfChainNode{
			EndIf: atom.Atom{Kind: atom.EndIf},
			Branches: []node.Branch{
				{Keyword: atom.Atom{Kind: atom.If}, GuardAtom: word("FOO"), HasGuard: true},
				{Keyword: atom.Atom{Kind: atom.ElseIf}, GuardAtom: word("FOO"), HasGuard: true},
			},
		},
	}}
	diags := runWalk(t, "if FOO\nelseif FOO\nendif\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeDeadBranch) {
		t.Fatalf("expected dead-branch, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeDeadBranch, diag.SevWarning)

	var fixes []diag.Fix
	for _, d := range diags {
		if d.Code == diag.CodeDeadBranch {
			fixes = d.Fixes
		}
	}
	if len(fixes) != 2 {
		t.Fatalf("expected a delete fix and a comment-out fix, got %+v", fixes)
	}
	if !fixes[0].IsPreferred {
		t.Errorf("expected the delete fix to be preferred, got %+v", fixes[0])
	}
	if fixes[1].Kind != diag.FixKindRefactorRewrite || len(fixes[1].Edits) != 2 {
		t.Errorf("expected the wrap-in-comment alternative, got %+v", fixes[1])
	}
}

func TestActorOutsideSectionOnTopLevelCommand(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.CommandNode{NameAtom: word("create_land")},
	}}
	diags := runWalk(t, "create_land {}\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeActorOutsideSection) {
		t.Fatalf("expected actor-outside-section, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeActorOutsideSection, diag.SevWarning)
}

func TestUnknownCommandInsideSection(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.SectionNode{NameAtom: word("LAND_GENERATION"), Body: []node.Node{
			&node.CommandNode{NameAtom: word("bogus_command")},
		}},
	}}
	diags := runWalk(t, "<LAND_GENERATION>\nbogus_command\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeUnknownCommand) {
		t.Fatalf("expected unknown-command, got %+v", diags)
	}
	if hasCode(diags, diag.CodeActorOutsideSection) {
		t.Fatalf("did not expect actor-outside-section inside a real section, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeUnknownCommand, diag.SevWarning)
}

func TestArgCountOnMissingArgument(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.CommandNode{NameAtom: word("create_elevation")},
	}}
	diags := runWalk(t, "create_elevation {}\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeArgCount) {
		t.Fatalf("expected arg-count, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeArgCount, diag.SevError)
}

func TestArgTypeOnWordWhereNumberExpected(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.CommandNode{NameAtom: word("create_elevation"), Args: []atom.Atom{word("SOME_TILES")}},
	}}
	diags := runWalk(t, "create_elevation SOME_TILES\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeArgType) {
		t.Fatalf("expected arg-type, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeArgType, diag.SevError)
}

func TestUnknownAttributeInsideKnownBlock(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.CommandNode{
			NameAtom: word("create_elevation"),
			Args:     []atom.Atom{number("5")},
			HasBlock: true,
			Attributes: []*node.AttributeNode{
				{NameAtom: word("bogus_attribute")},
			},
		},
	}}
	diags := runWalk(t, "create_elevation 5 {\n  bogus_attribute 1\n}\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeUnknownAttribute) {
		t.Fatalf("expected unknown-attribute, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeUnknownAttribute, diag.SevWarning)
}

func TestIncompatibleFeatureBelowMinLevel(t *testing.T) {
	tree := &node.File{Children: []node.Node{
		&node.CommandNode{NameAtom: word("create_custom_terrain"), Args: []atom.Atom{word("MY_CUSTOM")}},
	}}
	diags := runWalk(t, "create_custom_terrain MY_CUSTOM\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeIncompatibleFeature) {
		t.Fatalf("expected incompatible-feature, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeIncompatibleFeature, diag.SevWarning)
}

func TestCommentContentsOnNestedMarker(t *testing.T) {
	body := "/* outer /* inner */"
	tree := &node.File{Children: []node.Node{
		&node.CommentNode{Atom: atom.Atom{Kind: atom.Comment, Text: body, Span: source.Span{Start: 0, End: uint32(len(body))}}},
	}}
	diags := runWalk(t, body+"\n", tree, compat.Conquerors)
	if !hasCode(diags, diag.CodeCommentContents) {
		t.Fatalf("expected comment-contents, got %+v", diags)
	}
	wantSeverity(t, diags, diag.CodeCommentContents, diag.SevWarning)
}
