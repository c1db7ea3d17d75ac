package lint

import (
	"fmt"
	"strconv"

	"rms-check/internal/atom"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// percentAttributes are the attribute/command names whose single numeric
// argument is conventionally a 0-100 percentage; out-of-window values are
// almost always a typo (a missing digit, a stray zero) rather than intent.
var percentAttributes = map[string]bool{
	"land_percent":   true,
	"effect_percent": true,
}

// NumberOutOfRange flags an integer literal that overflows a 32-bit signed
// value outright, or a percent-shaped argument outside [0, 100].
type NumberOutOfRange struct{}

func (l *NumberOutOfRange) Name() diag.Code { return diag.CodeNumberOutOfRange }

func (l *NumberOutOfRange) BeforeNode(ctx *walker.Context, n node.Node) {
	switch v := n.(type) {
	case *node.CommandNode:
		l.checkArgs(ctx, v.Name(), v.Args)
		for _, a := range v.Attributes {
			l.checkArgs(ctx, a.Name(), a.Args)
		}
	case *node.ConstNode:
		if v.HasValue {
			l.checkOverflow(ctx, v.ValueAtom)
		}
	case *node.RandomChainNode:
		for _, b := range v.Branches {
			if !b.HasAmount {
				continue
			}
			l.checkOverflow(ctx, b.AmountAtom)
			if val, err := strconv.Atoi(b.AmountAtom.Text); err == nil && (val < 0 || val > 100) {
				ctx.Report(diag.NewWarning(diag.CodeNumberOutOfRange, b.AmountAtom.Span,
					fmt.Sprintf("percent_chance %d is outside 0-100", val)))
			}
		}
	}
}

func (l *NumberOutOfRange) checkArgs(ctx *walker.Context, name string, args []atom.Atom) {
	for _, a := range args {
		if a.Kind != atom.Number {
			continue
		}
		l.checkOverflow(ctx, a)
		if percentAttributes[name] {
			if val, err := strconv.Atoi(a.Text); err == nil && (val < 0 || val > 100) {
				ctx.Report(diag.NewWarning(diag.CodeNumberOutOfRange, a.Span,
					fmt.Sprintf("%s %d is outside 0-100", name, val)))
			}
		}
	}
}

func (l *NumberOutOfRange) checkOverflow(ctx *walker.Context, a atom.Atom) {
	if _, err := strconv.ParseInt(a.Text, 10, 32); err != nil {
		ctx.Report(diag.NewWarning(diag.CodeNumberOutOfRange, a.Span,
			fmt.Sprintf("%q does not fit in a 32-bit integer", a.Text)))
	}
}

func (l *NumberOutOfRange) AfterNode(ctx *walker.Context, n node.Node) {}
