package walker

import (
	"strconv"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/symbols"
)

// Lint is implemented by each concrete check registered with an Engine. A
// lint never mutates the tree or the symbol table; it only inspects the
// Context and the current node and calls ctx.Report.
type Lint interface {
	// Name is the lint's stable id, used for --disable style filtering and
	// as the reported Diagnostic's Code when a lint doesn't need more than
	// one Code of its own.
	Name() diag.Code
	// BeforeNode runs before the walker descends into n's children (and,
	// for a #define/#const, before the symbol table records it — see
	// Context.LastRedefined/LastShadowsBuiltin).
	BeforeNode(ctx *Context, n node.Node)
	// AfterNode runs once n's own children have all been visited, before
	// any following sibling of n.
	AfterNode(ctx *Context, n node.Node)
}

// Engine runs a fixed set of Lints over one file's tree in a single
// pre-order walk.
type Engine struct {
	lints []Lint
}

// NewEngine builds an Engine from the given lints, in the order they will
// be invoked at every node.
func NewEngine(lints ...Lint) *Engine {
	return &Engine{lints: lints}
}

// Walk traverses tree, reporting through reporter (which may be nil for a
// dry run), starting symbol resolution from initialLevel.
func (e *Engine) Walk(file *source.File, tree *node.File, initialLevel compat.Level, reporter diag.Reporter) {
	table := symbols.NewTable(compat.BuiltinConstants(initialLevel))
	resolver := compat.NewResolver(initialLevel)
	ctx := newContext(file, table, resolver, reporter)
	e.walkNodes(ctx, tree.Children)
}

func (e *Engine) before(ctx *Context, n node.Node) {
	ctx.Ancestors = append(ctx.Ancestors, n)
	for _, l := range e.lints {
		l.BeforeNode(ctx, n)
	}
}

func (e *Engine) after(ctx *Context, n node.Node) {
	for _, l := range e.lints {
		l.AfterNode(ctx, n)
	}
	ctx.Ancestors = ctx.Ancestors[:len(ctx.Ancestors)-1]
}

func (e *Engine) walkNodes(ctx *Context, nodes []node.Node) {
	for _, n := range nodes {
		e.walkNode(ctx, n)
	}
}

// walkNode dispatches a single node: #define/#const update the symbol table
// between BeforeNode and structural recursion so a lint's BeforeNode always
// sees the table as it stood immediately before this occurrence, while any
// later sibling sees the occurrence already recorded.
func (e *Engine) walkNode(ctx *Context, n node.Node) {
	switch v := n.(type) {
	case *node.DefineNode:
		e.before(ctx, n)
		if v.HasName {
			redefined, shadows := ctx.Symbols.DefineFlag(v.NameAtom.Text, v.Span())
			ctx.LastRedefined, ctx.LastShadowsBuiltin = redefined, shadows
		}
		e.after(ctx, n)

	case *node.ConstNode:
		e.before(ctx, n)
		if v.HasName && v.HasValue {
			val := parseConstValue(v.ValueAtom.Text)
			redefined, shadows := ctx.Symbols.DefineConst(v.NameAtom.Text, val, v.Span())
			ctx.LastRedefined, ctx.LastShadowsBuiltin = redefined, shadows
		}
		e.after(ctx, n)

	case *node.SectionNode:
		e.before(ctx, n)
		ctx.push(InSection)
		e.walkNodes(ctx, v.Body)
		ctx.pop()
		e.after(ctx, n)

	case *node.CommandNode:
		e.before(ctx, n)
		ctx.push(InCommandBlock)
		for _, a := range v.Attributes {
			e.walkNode(ctx, a)
		}
		ctx.pop()
		e.after(ctx, n)

	case *node.IfChainNode:
		e.before(ctx, n)
		ctx.push(InIf)
		// Both branches are walked unconditionally: the compatibility
		// level can't tell us which arm the mod's own random_placement
		// state machine will pick at map-generation time, so every
		// #define/#const inside any arm still pollutes the shared table.
		for i := range v.Branches {
			e.walkNodes(ctx, v.Branches[i].Body)
		}
		ctx.pop()
		e.after(ctx, n)

	case *node.RandomChainNode:
		e.before(ctx, n)
		ctx.push(InRandom)
		for i := range v.Branches {
			e.walkNodes(ctx, v.Branches[i].Body)
		}
		ctx.pop()
		e.after(ctx, n)

	case *node.CommentNode:
		e.before(ctx, n)
		if lvl, ok := ctx.Compat.ObserveComment(v.Atom.CommentBody()); ok {
			ctx.Symbols.Builtins = compat.BuiltinConstants(lvl)
		}
		e.after(ctx, n)

	default:
		// AttributeNode, IncludeNode and any other childless leaf: no
		// structural recursion needed.
		e.before(ctx, n)
		e.after(ctx, n)
	}
}

func parseConstValue(text string) int32 {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}
