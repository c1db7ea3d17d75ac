package lint

import (
	"fmt"
	"strconv"

	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/walker"
)

// SumOfChances flags a randomness chain whose percent_chance amounts don't
// add to exactly 100 — the game engine's own behavior in that case is
// documented as undefined, so any deviation is worth surfacing.
type SumOfChances struct{}

func (l *SumOfChances) Name() diag.Code { return diag.CodeSumOfChances }

func (l *SumOfChances) BeforeNode(ctx *walker.Context, n node.Node) {
	chain, ok := n.(*node.RandomChainNode)
	if !ok {
		return
	}
	sum := 0
	for _, b := range chain.Branches {
		if !b.HasAmount {
			continue
		}
		v, err := strconv.Atoi(b.AmountAtom.Text)
		if err != nil {
			continue
		}
		sum += v
	}
	if sum != 100 {
		ctx.Report(diag.NewWarning(diag.CodeSumOfChances, chain.Span(),
			fmt.Sprintf("percent_chance branches sum to %d, expected 100", sum)))
	}
}

func (l *SumOfChances) AfterNode(ctx *walker.Context, n node.Node) {}
