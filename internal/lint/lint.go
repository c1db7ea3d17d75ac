// Package lint implements the concrete checks run over a parsed file by
// internal/walker. Each check is a small walker.Lint that only reads the
// Context it is handed; none of them mutate the tree or the symbol table.
package lint

import "rms-check/internal/walker"

// All returns one instance of every built-in lint, in the order the driver
// runs them. Fresh instances are returned each call since a handful of
// checks (dead-branch's chain-scoped guard memory) are stateless across
// files but some callers still prefer not to share instances across
// concurrent walks.
func All() []walker.Lint {
	return []walker.Lint{
		&UnknownCommand{},
		&ArgCount{},
		&ArgType{},
		&UnknownAttribute{},
		&SumOfChances{},
		&ActorOutsideSection{},
		&IncompatibleFeature{},
		&RedefinedSymbol{},
		&ShadowBuiltin{},
		&UnknownSymbol{},
		&CommentContents{},
		&DeadBranch{},
		&NumberOutOfRange{},
	}
}
