package parser

import (
	"testing"

	"rms-check/internal/node"
	"rms-check/internal/source"
)

func parseString(content string) (*node.File, []string) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rms", []byte(content))
	file := fs.Get(id)
	var warnings []string
	f := Parse(file, Options{Reporter: reporterFunc(func(kind string, _ source.Span, msg string) {
		warnings = append(warnings, kind+": "+msg)
	})})
	return f, warnings
}

type reporterFunc func(kind string, span source.Span, msg string)

func (f reporterFunc) Report(kind string, span source.Span, msg string) {
	f(kind, span, msg)
}

func TestParseSectionWithCommandAndBlock(t *testing.T) {
	src := `<LAND_GENERATION>
create_land {
  base_size 5
  land_percent 50
}
`
	f, warnings := parseString(src)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(f.Children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(f.Children))
	}
	sec, ok := f.Children[0].(*node.SectionNode)
	if !ok {
		t.Fatalf("expected *node.SectionNode, got %T", f.Children[0])
	}
	if sec.Name() != "<LAND_GENERATION>" {
		t.Errorf("unexpected section name %q", sec.Name())
	}
	if len(sec.Body) != 1 {
		t.Fatalf("expected 1 statement in section body, got %d", len(sec.Body))
	}
	cmd, ok := sec.Body[0].(*node.CommandNode)
	if !ok {
		t.Fatalf("expected *node.CommandNode, got %T", sec.Body[0])
	}
	if cmd.Name() != "create_land" {
		t.Errorf("unexpected command name %q", cmd.Name())
	}
	if !cmd.HasBlock || !cmd.BlockClosed {
		t.Fatalf("expected a closed block")
	}
	if len(cmd.Attributes) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(cmd.Attributes))
	}
	if cmd.Attributes[0].Name() != "base_size" || len(cmd.Attributes[0].Args) != 1 {
		t.Errorf("unexpected first attribute: %+v", cmd.Attributes[0])
	}
	if cmd.Attributes[1].Name() != "land_percent" {
		t.Errorf("unexpected second attribute: %+v", cmd.Attributes[1])
	}
}

func TestParseUnbalancedIfRecovers(t *testing.T) {
	src := `<LAND_GENERATION>
if FOO
create_land {}
`
	f, warnings := parseString(src)
	found := false
	for _, w := range warnings {
		if w == "unbalanced-if: if has no matching endif" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unbalanced-if warning, got %v", warnings)
	}
	sec := f.Children[0].(*node.SectionNode)
	ifc, ok := sec.Body[0].(*node.IfChainNode)
	if !ok {
		t.Fatalf("expected *node.IfChainNode, got %T", sec.Body[0])
	}
	if !ifc.Synthesized {
		t.Errorf("expected a synthesized endif")
	}
	if len(ifc.Branches) != 1 || !ifc.Branches[0].HasGuard || ifc.Branches[0].GuardAtom.Text != "FOO" {
		t.Fatalf("unexpected branches: %+v", ifc.Branches)
	}
}

func TestParseRandomChain(t *testing.T) {
	src := `<LAND_GENERATION>
start_random
percent_chance 60
create_land {}
percent_chance 40
create_land {}
end_random
`
	f, _ := parseString(src)
	sec := f.Children[0].(*node.SectionNode)
	rc, ok := sec.Body[0].(*node.RandomChainNode)
	if !ok {
		t.Fatalf("expected *node.RandomChainNode, got %T", sec.Body[0])
	}
	if rc.Synthesized {
		t.Errorf("did not expect a synthesized end_random")
	}
	if len(rc.Branches) != 2 {
		t.Fatalf("expected 2 chance branches, got %d", len(rc.Branches))
	}
	if rc.Branches[0].AmountAtom.Text != "60" || rc.Branches[1].AmountAtom.Text != "40" {
		t.Fatalf("unexpected chance amounts: %+v", rc.Branches)
	}
}

func TestParseDefineAndConst(t *testing.T) {
	src := "#define TINY_MAPS\n#const BASE_SIZE 5\n"
	f, warnings := parseString(src)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(f.Children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(f.Children))
	}
	def, ok := f.Children[0].(*node.DefineNode)
	if !ok || def.Name() != "TINY_MAPS" {
		t.Fatalf("unexpected define node: %+v", f.Children[0])
	}
	c, ok := f.Children[1].(*node.ConstNode)
	if !ok || c.Name() != "BASE_SIZE" || c.ValueAtom.Text != "5" {
		t.Fatalf("unexpected const node: %+v", f.Children[1])
	}
}

func TestParseStrayEndifRecovers(t *testing.T) {
	src := "<LAND_GENERATION>\nendif\ncreate_land {}\n"
	f, warnings := parseString(src)
	found := false
	for _, w := range warnings {
		if w == "stray-token: unexpected endif with no matching opener" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a stray-token warning, got %v", warnings)
	}
	sec := f.Children[0].(*node.SectionNode)
	if len(sec.Body) != 1 {
		t.Fatalf("expected the stray endif to be dropped, leaving 1 statement, got %d", len(sec.Body))
	}
	if _, ok := sec.Body[0].(*node.CommandNode); !ok {
		t.Fatalf("expected the command to still parse, got %T", sec.Body[0])
	}
}
