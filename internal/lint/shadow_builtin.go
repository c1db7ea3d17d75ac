package lint

import (
	"fmt"

	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// ShadowBuiltin flags a #define/#const whose name also names a read-only
// built-in constant at the active compatibility level. The user binding
// still wins per the language's own lookup order (symbols.Table.
// LookupConst checks user consts first), so this is a naming nudge rather
// than a mistake — reported as a Hint.
type ShadowBuiltin struct{}

func (l *ShadowBuiltin) Name() diag.Code { return diag.CodeShadowBuiltin }

func (l *ShadowBuiltin) BeforeNode(ctx *walker.Context, n node.Node) {}

func (l *ShadowBuiltin) AfterNode(ctx *walker.Context, n node.Node) {
	name, span, ok := definedSymbol(n)
	if !ok || !ctx.LastShadowsBuiltin {
		return
	}
	ctx.Report(diag.NewHint(diag.CodeShadowBuiltin, span,
		fmt.Sprintf("%q shadows a built-in constant", name)))
}
