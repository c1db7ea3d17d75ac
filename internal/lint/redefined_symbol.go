package lint

import (
	"fmt"

	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/walker"
)

// RedefinedSymbol flags a #define/#const occurrence that overwrites an
// earlier one in the same file. The walker applies the binding between
// BeforeNode and AfterNode, so this check reads the outcome in AfterNode.
type RedefinedSymbol struct{}

func (l *RedefinedSymbol) Name() diag.Code { return diag.CodeRedefinedSymbol }

func (l *RedefinedSymbol) BeforeNode(ctx *walker.Context, n node.Node) {}

func (l *RedefinedSymbol) AfterNode(ctx *walker.Context, n node.Node) {
	name, span, ok := definedSymbol(n)
	if !ok || !ctx.LastRedefined {
		return
	}
	ctx.Report(diag.NewWarning(diag.CodeRedefinedSymbol, span,
		fmt.Sprintf("%q is already defined", name)))
}

// definedSymbol extracts the name and span of a #define/#const node, or
// ok=false for anything else.
func definedSymbol(n node.Node) (name string, span source.Span, ok bool) {
	switch v := n.(type) {
	case *node.DefineNode:
		if !v.HasName {
			return "", source.Span{}, false
		}
		return v.Name(), v.NameAtom.Span, true
	case *node.ConstNode:
		if !v.HasName {
			return "", source.Span{}, false
		}
		return v.Name(), v.NameAtom.Span, true
	default:
		return "", source.Span{}, false
	}
}
