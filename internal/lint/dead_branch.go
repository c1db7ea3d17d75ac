package lint

import (
	"fmt"

	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/walker"
)

// DeadBranch flags a later if/elseif branch in the same chain guarded by
// the exact same flag as an earlier one: the first occurrence already
// covers every generation run where that flag is set, so the second can
// never be reached.
type DeadBranch struct{}

func (l *DeadBranch) Name() diag.Code { return diag.CodeDeadBranch }

func (l *DeadBranch) BeforeNode(ctx *walker.Context, n node.Node) {
	chain, ok := n.(*node.IfChainNode)
	if !ok {
		return
	}
	seen := make(map[string]bool, len(chain.Branches))
	for i, b := range chain.Branches {
		if !b.HasGuard {
			continue
		}
		guard := b.GuardAtom.Text
		if seen[guard] {
			span := branchSpan(chain, i)
			d := diag.NewWarning(diag.CodeDeadBranch, span,
				fmt.Sprintf("this branch can never run: %q was already matched above", guard))
			d = d.WithFixSuggestion(fix.DeleteSpan("drop unreachable branch", span, "", fix.Preferred()))
			// Deleting loses whatever logic the author wrote there; offer
			// commenting it out as the cautious alternative so it stays
			// readable but stops contributing to the chain.
			d = d.WithFixSuggestion(fix.WrapWith("comment out unreachable branch instead", span, "/* ", " */"))
			ctx.Report(d)
			continue
		}
		seen[guard] = true
	}
}

func (l *DeadBranch) AfterNode(ctx *walker.Context, n node.Node) {}

// branchSpan covers branch i's keyword through the byte just before the
// next branch's keyword (or the chain's endif, for the last branch) so a
// delete fix removes the whole arm cleanly, guard line included.
func branchSpan(chain *node.IfChainNode, i int) source.Span {
	start := chain.Branches[i].Keyword.Span
	var end uint32
	if i+1 < len(chain.Branches) {
		end = chain.Branches[i+1].Keyword.Span.Start
	} else {
		end = chain.EndIf.Span.Start
	}
	return source.Span{File: start.File, Start: start.Start, End: end}
}
