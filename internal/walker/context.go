// Package walker drives a single pre-order traversal of a parsed file,
// threading a symbol table and the active compatibility level through it,
// and dispatching to a set of registered Lints at every node. It owns all
// tree-shape bookkeeping (the lexical state stack, when a #define/#const
// takes effect) so that individual lints only ever reason about the node
// in front of them and the Context's current state.
package walker

import (
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/symbols"
)

// LexState names the lexical construct the walker is currently inside.
// The walker pushes one for every SectionNode and CommandNode (with or
// without a block), and one per IfChainNode or RandomChainNode as a whole
// (not per branch), and pops it on the way back out.
type LexState uint8

const (
	TopLevel LexState = iota
	InSection
	InCommandBlock
	InIf
	InRandom
)

func (s LexState) String() string {
	switch s {
	case TopLevel:
		return "top-level"
	case InSection:
		return "in-section"
	case InCommandBlock:
		return "in-command-block"
	case InIf:
		return "in-if"
	case InRandom:
		return "in-random"
	}
	return "unknown"
}

// Context is the shared state every Lint sees at every node of one file's
// walk.
type Context struct {
	File     *source.File
	Symbols  *symbols.Table
	Compat   *compat.Resolver
	reporter diag.Reporter
	states   []LexState

	// Ancestors holds the chain of nodes currently being walked, innermost
	// last, including the node the callback was invoked for. Lints that
	// need to see an enclosing construct (the command a shadowed
	// attribute belongs to, the chain a branch belongs to) use this
	// instead of carrying their own stack.
	Ancestors []node.Node

	// LastRedefined and LastShadowsBuiltin describe the #define/#const
	// occurrence currently being visited: the walker applies the binding
	// between BeforeNode and AfterNode, so a lint that wants this data for
	// a DefineNode/ConstNode must read it in AfterNode, once the table
	// change (and these fields) are current for this occurrence.
	LastRedefined      bool
	LastShadowsBuiltin bool
}

func newContext(file *source.File, table *symbols.Table, resolver *compat.Resolver, reporter diag.Reporter) *Context {
	return &Context{File: file, Symbols: table, Compat: resolver, reporter: reporter, states: []LexState{TopLevel}}
}

// State returns the innermost lexical state the walker is currently in.
func (c *Context) State() LexState {
	return c.states[len(c.states)-1]
}

// InState reports whether s appears anywhere on the current state stack,
// for lints that care about enclosure rather than immediate nesting (e.g.
// actor-outside-section must see through a nested if/random chain).
func (c *Context) InState(s LexState) bool {
	for _, st := range c.states {
		if st == s {
			return true
		}
	}
	return false
}

func (c *Context) push(s LexState) {
	c.states = append(c.states, s)
}

func (c *Context) pop() {
	c.states = c.states[:len(c.states)-1]
}

// Report forwards a complete Diagnostic to the underlying Reporter. It is
// a no-op if the walk was started with a nil Reporter (a pure-parse dry
// run, or a caller that only wants the parsed tree).
func (c *Context) Report(d diag.Diagnostic) {
	if c.reporter != nil {
		c.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}
