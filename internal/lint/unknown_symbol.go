package lint

import (
	"fmt"

	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// UnknownSymbol flags an if/elseif guard naming a flag, const, or built-in
// that isn't defined anywhere up to that point in the file.
type UnknownSymbol struct{}

func (l *UnknownSymbol) Name() diag.Code { return diag.CodeUnknownSymbol }

func (l *UnknownSymbol) BeforeNode(ctx *walker.Context, n node.Node) {
	chain, ok := n.(*node.IfChainNode)
	if !ok {
		return
	}
	for _, b := range chain.Branches {
		if !b.HasGuard {
			continue
		}
		name := b.GuardAtom.Text
		if ctx.Symbols.IsKnownSymbol(name) {
			continue
		}
		d := diag.NewWarning(diag.CodeUnknownSymbol, b.GuardAtom.Span,
			fmt.Sprintf("%q is never defined", name))
		if best, found := closestSymbol(name, knownSymbolNames(ctx)); found {
			d = d.WithNote(b.GuardAtom.Span, fmt.Sprintf("did you mean %q?", best))
		}
		ctx.Report(d)
	}
}

func (l *UnknownSymbol) AfterNode(ctx *walker.Context, n node.Node) {}
