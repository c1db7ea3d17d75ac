package lint

import (
	"fmt"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// UnknownAttribute flags an attribute name outside a command's known
// closed vocabulary. Commands with no known vocabulary (CommandSpec.
// Attributes == nil) are skipped rather than flagged wholesale.
type UnknownAttribute struct{}

func (l *UnknownAttribute) Name() diag.Code { return diag.CodeUnknownAttribute }

func (l *UnknownAttribute) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	spec, known := compat.LookupCommand(cmd.Name())
	if !known || spec.Attributes == nil {
		return
	}
	allowed := make(map[string]bool, len(spec.Attributes))
	for _, a := range spec.Attributes {
		allowed[compat.FoldName(a)] = true
	}
	for _, attr := range cmd.Attributes {
		if allowed[compat.FoldName(attr.Name())] {
			continue
		}
		ctx.Report(diag.NewWarning(diag.CodeUnknownAttribute, attr.NameAtom.Span,
			fmt.Sprintf("%q is not a known attribute of %s", attr.Name(), cmd.Name())))
	}
}

func (l *UnknownAttribute) AfterNode(ctx *walker.Context, n node.Node) {}
