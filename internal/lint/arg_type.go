package lint

import (
	"fmt"

	"rms-check/internal/atom"
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// ArgType flags an argument whose lexical shape doesn't match what the
// command expects at that position, for the handful of commands whose
// per-position shape is known (compat.CommandSpec.ArgKinds). A Word used
// where a Number is expected is only flagged when it isn't itself a known
// symbol resolving to an integer — "land_percent SOME_CONST" is legitimate
// use of a #const standing in for a literal.
type ArgType struct{}

func (l *ArgType) Name() diag.Code { return diag.CodeArgType }

func (l *ArgType) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	spec, known := compat.LookupCommand(cmd.Name())
	if !known || spec.ArgKinds == nil {
		return
	}
	for i, a := range cmd.Args {
		if i >= len(spec.ArgKinds) {
			break
		}
		want := spec.ArgKinds[i]
		if want == compat.ArgAny {
			continue
		}
		switch want {
		case compat.ArgNumber:
			if a.Kind == atom.Word {
				if _, known := ctx.Symbols.LookupConst(a.Text); known {
					continue
				}
				d := diag.NewError(diag.CodeArgType, a.Span,
					fmt.Sprintf("%s expects a number, got %q", cmd.Name(), a.Text))
				if best, ok := closestSymbol(a.Text, knownSymbolNames(ctx)); ok {
					d = d.WithFixSuggestion(fix.ReplaceSpan(
						fmt.Sprintf("use known constant %s", best), a.Span, best, a.Text))
				}
				ctx.Report(d)
			}
		case compat.ArgWord:
			if a.Kind == atom.Number {
				ctx.Report(diag.NewError(diag.CodeArgType, a.Span,
					fmt.Sprintf("%s expects a name, got the number %q", cmd.Name(), a.Text)))
			}
		}
	}
}

func (l *ArgType) AfterNode(ctx *walker.Context, n node.Node) {}

func knownSymbolNames(ctx *walker.Context) []string {
	names := make([]string, 0, len(ctx.Symbols.Flags)+len(ctx.Symbols.Consts)+len(ctx.Symbols.Builtins))
	for name := range ctx.Symbols.Flags {
		names = append(names, name)
	}
	for name := range ctx.Symbols.Consts {
		names = append(names, name)
	}
	for name := range ctx.Symbols.Builtins {
		names = append(names, name)
	}
	return names
}
