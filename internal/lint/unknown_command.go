package lint

import (
	"fmt"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// UnknownCommand flags a command name absent from the compatibility
// vocabulary entirely. A name that exists but is gated to a later level is
// IncompatibleFeature's concern, not this one.
type UnknownCommand struct{}

func (l *UnknownCommand) Name() diag.Code { return diag.CodeUnknownCommand }

func (l *UnknownCommand) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	if _, known := compat.LookupCommand(cmd.Name()); known {
		return
	}
	ctx.Report(diag.NewWarning(diag.CodeUnknownCommand, cmd.NameAtom.Span,
		fmt.Sprintf("unknown command %q", cmd.Name())))
}

func (l *UnknownCommand) AfterNode(ctx *walker.Context, n node.Node) {}
