package lint

import (
	"fmt"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// IncompatibleFeature flags a known command used while the active
// compatibility level (which can drift mid-file via a "Compatibility: ..."
// marker comment) falls outside the command's supported window.
type IncompatibleFeature struct{}

func (l *IncompatibleFeature) Name() diag.Code { return diag.CodeIncompatibleFeature }

func (l *IncompatibleFeature) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	spec, known := compat.LookupCommand(cmd.Name())
	if !known {
		return
	}
	level := ctx.Compat.Level()
	if spec.AvailableAt(level) {
		return
	}
	ctx.Report(diag.NewWarning(diag.CodeIncompatibleFeature, cmd.Span(),
		fmt.Sprintf("%s requires %s, active compatibility level is %s", cmd.Name(), spec.MinLevel, level)))
}

func (l *IncompatibleFeature) AfterNode(ctx *walker.Context, n node.Node) {}
