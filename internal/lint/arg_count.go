package lint

import (
	"fmt"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// ArgCount flags a known command that ran out of argument atoms before
// reaching its minimum arity — typically because the file ended, or the
// next section header started, mid-statement.
type ArgCount struct{}

func (l *ArgCount) Name() diag.Code { return diag.CodeArgCount }

func (l *ArgCount) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	spec, known := compat.LookupCommand(cmd.Name())
	if !known {
		return
	}
	if len(cmd.Args) < spec.MinArgs {
		ctx.Report(diag.NewError(diag.CodeArgCount, cmd.Span(),
			fmt.Sprintf("%s expects at least %d argument(s), got %d", cmd.Name(), spec.MinArgs, len(cmd.Args))))
	}
}

func (l *ArgCount) AfterNode(ctx *walker.Context, n node.Node) {}
