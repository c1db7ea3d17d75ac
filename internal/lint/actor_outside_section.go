package lint

import (
	"fmt"

	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// ActorOutsideSection flags a command statement that isn't enclosed by any
// section header — every real generation command belongs to a section
// (<LAND_GENERATION>, <OBJECTS_GENERATION>, ...); only preprocessor
// statements and section headers themselves are legal at the top level.
type ActorOutsideSection struct{}

func (l *ActorOutsideSection) Name() diag.Code { return diag.CodeActorOutsideSection }

func (l *ActorOutsideSection) BeforeNode(ctx *walker.Context, n node.Node) {
	cmd, ok := n.(*node.CommandNode)
	if !ok {
		return
	}
	if ctx.InState(walker.InSection) {
		return
	}
	ctx.Report(diag.NewWarning(diag.CodeActorOutsideSection, cmd.Span(),
		fmt.Sprintf("%s used outside of any section", cmd.Name())))
}

func (l *ActorOutsideSection) AfterNode(ctx *walker.Context, n node.Node) {}
