// Package node defines the parse tree produced by internal/parser.
//
// Nodes embed the meaningful atoms of the source, comments outside
// attribute blocks included;
// the tree is not lossless: whitespace atoms, comments inside attribute
// blocks and stray tokens the parser drops are held by no node. The fixer
// and formatter therefore work on byte spans and lines of the file content,
// not on the tree. See the round-trip law in internal/atom for the atom
// stream itself.
package node

import "rms-check/internal/source"

// Kind discriminates the concrete Node variants. The set is closed.
type Kind uint8

const (
	Invalid Kind = iota
	Section
	Command
	Attribute
	Comment
	IfChain
	RandomChain
	Include
	Define
	Const
)

var kindNames = [...]string{
	Invalid:     "invalid",
	Section:     "section",
	Command:     "command",
	Attribute:   "attribute",
	Comment:     "comment",
	IfChain:     "if-chain",
	RandomChain: "random-chain",
	Include:     "include",
	Define:      "define",
	Const:       "const",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is any element of the parse tree. Every node's span is the union of
// its constituent atoms' spans (the span-coverage invariant).
type Node interface {
	Kind() Kind
	Span() source.Span
}

// File is the root of a parsed document: an ordered sequence of top-level
// nodes (sections, preprocessor statements, top-level comments).
type File struct {
	ID       source.FileID
	Children []Node
	SpanV    source.Span
}

func (f *File) Span() source.Span { return f.SpanV }
