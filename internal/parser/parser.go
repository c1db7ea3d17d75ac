// Package parser turns an atom stream into a node.File tree.
//
// Parsing is a single forward pass, never backtracks past a committed
// atom, and never aborts: every malformed construct degrades into a
// best-effort node plus a warning on the side channel, and the walk
// continues to the end of the file. The resulting tree always satisfies
// two invariants: every atom of the file is covered by some node's span
// (the round-trip law lives in internal/atom; the parser only has to
// preserve span coverage, not reconstruct text from nodes), and parsing
// a truncated or garbled file never panics.
package parser

import (
	"rms-check/internal/atom"
	"rms-check/internal/compat"
	"rms-check/internal/lexer"
	"rms-check/internal/node"
	"rms-check/internal/source"
)

// Reporter receives parse-time warnings. Its shape matches lexer.Reporter
// so a single adapter on the caller's side can satisfy both.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Options configures a parse.
type Options struct {
	Reporter Reporter // nil is fine: warnings are simply dropped
}

// Parse lexes and parses file in one pass.
func Parse(file *source.File, opts Options) *node.File {
	atoms := lexer.All(file, lexer.Options{Reporter: reporterAdapter{opts.Reporter}})
	p := &parser{file: file, atoms: atoms, opts: opts}
	return p.parseFile()
}

// reporterAdapter lets a parser.Reporter satisfy lexer.Reporter (and vice
// versa): the two interfaces are structurally identical by design.
type reporterAdapter struct{ r Reporter }

func (a reporterAdapter) Report(kind string, span source.Span, msg string) {
	if a.r != nil {
		a.r.Report(kind, span, msg)
	}
}

type parser struct {
	file  *source.File
	atoms []atom.Atom
	pos   int
	opts  Options
}

func (p *parser) peek() atom.Atom {
	return p.atoms[p.pos]
}

func (p *parser) peekKind() atom.Kind {
	return p.atoms[p.pos].Kind
}

func (p *parser) advance() atom.Atom {
	a := p.atoms[p.pos]
	if a.Kind != atom.EOF {
		p.pos++
	}
	return a
}

func (p *parser) skipOther() {
	for p.peekKind() == atom.Other {
		p.advance()
	}
}

func (p *parser) report(kind string, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(kind, sp, msg)
	}
}

// syntheticAtom builds a zero-width atom of kind k at the parser's current
// position, used to close a chain during error recovery. It carries no
// source text: it was never in the file.
func (p *parser) syntheticAtom(k atom.Kind) atom.Atom {
	off := p.peek().Span.Start
	return atom.Atom{Kind: k, Span: source.Span{File: p.file.ID, Start: off, End: off}}
}

// stopSet is the set of atom kinds that end a statement sequence without
// being consumed by it; control returns to the enclosing construct.
type stopSet map[atom.Kind]bool

var ifStop = stopSet{atom.ElseIf: true, atom.Else: true, atom.EndIf: true}
var randomStop = stopSet{atom.PercentChance: true, atom.EndRandom: true}

func (p *parser) parseFile() *node.File {
	var children []node.Node
	children = append(children, p.parseBody(nil)...)
	for p.peekKind() == atom.Section {
		children = append(children, p.parseSection())
		children = append(children, p.parseBody(nil)...)
	}
	var span source.Span
	if len(p.atoms) > 0 {
		span = source.Span{File: p.file.ID, Start: 0, End: p.atoms[len(p.atoms)-1].Span.End}
	}
	return &node.File{ID: p.file.ID, Children: children, SpanV: span}
}

// parseBody consumes statements until it meets EOF, a section header
// (bodies never silently swallow one — the caller decides whether to
// recurse into it), or an atom kind named in stop.
func (p *parser) parseBody(stop stopSet) []node.Node {
	var out []node.Node
	for {
		k := p.peekKind()
		if k == atom.EOF || k == atom.Section {
			return out
		}
		if stop[k] {
			return out
		}
		if k == atom.Other {
			p.advance()
			continue
		}
		if n := p.parseStatement(); n != nil {
			out = append(out, n)
		}
	}
}

func (p *parser) parseStatement() node.Node {
	switch p.peekKind() {
	case atom.Comment:
		a := p.advance()
		return &node.CommentNode{Atom: a}
	case atom.Define:
		return p.parseDefine()
	case atom.Const:
		return p.parseConst()
	case atom.Include:
		return p.parseInclude()
	case atom.If:
		return p.parseIfChain()
	case atom.StartRandom:
		return p.parseRandomChain()
	case atom.Word, atom.Number:
		return p.parseCommand()
	case atom.ElseIf, atom.Else, atom.EndIf, atom.PercentChance, atom.EndRandom, atom.CloseBlock, atom.OpenBlock:
		// Stray structural atom with no enclosing construct to match it.
		// Recovery: report and drop it; parsing continues from the next atom.
		a := p.advance()
		p.report("stray-token", a.Span, "unexpected "+a.Kind.String()+" with no matching opener")
		return nil
	default:
		// atom.Invalid, or any future kind this parser doesn't know about
		// yet: drop it and keep going rather than looping forever.
		p.advance()
		return nil
	}
}

func (p *parser) parseSection() *node.SectionNode {
	header := p.advance() // atom.Section
	body := p.parseBody(nil)
	span := header.Span
	if len(body) > 0 {
		span = span.Cover(body[len(body)-1].Span())
	}
	return &node.SectionNode{NameAtom: header, Body: body, SpanV: span}
}

func (p *parser) parseDefine() *node.DefineNode {
	kw := p.advance() // atom.Define
	p.skipOther()
	var nameAtom atom.Atom
	hasName := false
	if k := p.peekKind(); k == atom.Word || k == atom.Number {
		nameAtom = p.advance()
		hasName = true
	} else {
		p.report("malformed-define", kw.Span, "#define with no name")
	}
	span := kw.Span
	if hasName {
		span = span.Cover(nameAtom.Span)
	}
	return &node.DefineNode{Keyword: kw, NameAtom: nameAtom, HasName: hasName, SpanV: span}
}

func (p *parser) parseConst() *node.ConstNode {
	kw := p.advance() // atom.Const
	p.skipOther()
	var nameAtom, valueAtom atom.Atom
	hasName, hasValue := false, false
	if k := p.peekKind(); k == atom.Word || k == atom.Number {
		nameAtom = p.advance()
		hasName = true
	}
	p.skipOther()
	if k := p.peekKind(); k == atom.Word || k == atom.Number {
		valueAtom = p.advance()
		hasValue = true
	}
	if !hasName || !hasValue {
		p.report("malformed-const", kw.Span, "#const requires a name and a value")
	}
	span := kw.Span
	if hasValue {
		span = span.Cover(valueAtom.Span)
	} else if hasName {
		span = span.Cover(nameAtom.Span)
	}
	return &node.ConstNode{Keyword: kw, NameAtom: nameAtom, ValueAtom: valueAtom, HasName: hasName, HasValue: hasValue, SpanV: span}
}

func (p *parser) parseInclude() *node.IncludeNode {
	kw := p.advance() // atom.Include
	var args []atom.Atom
	for {
		p.skipOther()
		k := p.peekKind()
		if k != atom.Word && k != atom.Number {
			break
		}
		args = append(args, p.advance())
	}
	span := kw.Span
	if len(args) > 0 {
		span = span.Cover(args[len(args)-1].Span)
	}
	return &node.IncludeNode{Keyword: kw, Args: args, SpanV: span}
}

func (p *parser) parseIfChain() *node.IfChainNode {
	ifAtom := p.advance() // atom.If
	guard, hasGuard := p.parseGuard()
	body := p.parseBody(ifStop)
	branches := []node.Branch{{Keyword: ifAtom, GuardAtom: guard, HasGuard: hasGuard, Body: body}}

	for p.peekKind() == atom.ElseIf {
		kw := p.advance()
		g, hg := p.parseGuard()
		b := p.parseBody(ifStop)
		branches = append(branches, node.Branch{Keyword: kw, GuardAtom: g, HasGuard: hg, Body: b})
	}
	if p.peekKind() == atom.Else {
		kw := p.advance()
		b := p.parseBody(ifStop)
		branches = append(branches, node.Branch{Keyword: kw, Body: b})
	}

	synthesized := false
	var endIf atom.Atom
	if p.peekKind() == atom.EndIf {
		endIf = p.advance()
	} else {
		synthesized = true
		endIf = p.syntheticAtom(atom.EndIf)
		p.report("unbalanced-if", ifAtom.Span, "if has no matching endif")
	}

	span := ifAtom.Span.Cover(endIf.Span)
	return &node.IfChainNode{Branches: branches, EndIf: endIf, Synthesized: synthesized, SpanV: span}
}

// parseGuard reads the flag-name atom that follows "if"/"elseif".
func (p *parser) parseGuard() (atom.Atom, bool) {
	p.skipOther()
	if k := p.peekKind(); k == atom.Word || k == atom.Number {
		return p.advance(), true
	}
	return atom.Atom{}, false
}

func (p *parser) parseRandomChain() *node.RandomChainNode {
	startAtom := p.advance() // atom.StartRandom

	// Anything between start_random and the first percent_chance is not
	// part of any branch; drop it on the floor the same way a stray token
	// would be, rather than inventing a branch with no chance attached.
	for {
		k := p.peekKind()
		if k == atom.Other {
			p.advance()
			continue
		}
		if k == atom.PercentChance || k == atom.EndRandom || k == atom.EOF || k == atom.Section {
			break
		}
		a := p.advance()
		p.report("stray-token", a.Span, "content before the first percent_chance is ignored")
	}

	var branches []node.ChanceBranch
	for p.peekKind() == atom.PercentChance {
		kw := p.advance()
		p.skipOther()
		var amount atom.Atom
		hasAmount := false
		if p.peekKind() == atom.Number {
			amount = p.advance()
			hasAmount = true
		} else {
			p.report("malformed-percent-chance", kw.Span, "percent_chance requires a numeric amount")
		}
		body := p.parseBody(randomStop)
		branches = append(branches, node.ChanceBranch{Keyword: kw, AmountAtom: amount, HasAmount: hasAmount, Body: body})
	}

	synthesized := false
	var endRandom atom.Atom
	if p.peekKind() == atom.EndRandom {
		endRandom = p.advance()
	} else {
		synthesized = true
		endRandom = p.syntheticAtom(atom.EndRandom)
		p.report("unbalanced-random", startAtom.Span, "start_random has no matching end_random")
	}

	span := startAtom.Span.Cover(endRandom.Span)
	return &node.RandomChainNode{StartRandom: startAtom, Branches: branches, EndRandom: endRandom, Synthesized: synthesized, SpanV: span}
}

func (p *parser) parseCommand() *node.CommandNode {
	nameAtom := p.advance()
	arity := -1
	if spec, ok := compat.LookupCommand(nameAtom.Text); ok {
		arity = spec.MaxArgs
	}
	args := p.parseArgs(arity)

	hasBlock := false
	blockClosed := false
	var openBrace, closeBrace atom.Atom
	var attributes []*node.AttributeNode

	p.skipOther()
	if p.peekKind() == atom.OpenBlock {
		hasBlock = true
		openBrace = p.advance()
		attributes = p.parseAttributeBlock()
		p.skipOther()
		if p.peekKind() == atom.CloseBlock {
			closeBrace = p.advance()
			blockClosed = true
		} else {
			closeBrace = p.syntheticAtom(atom.CloseBlock)
			p.report("unbalanced-block", openBrace.Span, "{ has no matching }")
		}
	}

	span := nameAtom.Span
	if len(args) > 0 {
		span = span.Cover(args[len(args)-1].Span)
	}
	if hasBlock {
		span = span.Cover(closeBrace.Span)
	}
	return &node.CommandNode{
		NameAtom: nameAtom, Args: args, HasBlock: hasBlock,
		OpenBrace: openBrace, CloseBrace: closeBrace, BlockClosed: blockClosed,
		Attributes: attributes, SpanV: span,
	}
}

// parseArgs collects n argument atoms when n is known (a recognized
// command's fixed arity), or — for an unrecognized name — a best-effort
// run of Number atoms, since a following Word atom is indistinguishable
// from the start of the next statement without arity data.
func (p *parser) parseArgs(n int) []atom.Atom {
	var args []atom.Atom
	if n >= 0 {
		for i := 0; i < n; i++ {
			p.skipOther()
			k := p.peekKind()
			if k != atom.Word && k != atom.Number {
				break
			}
			args = append(args, p.advance())
		}
		return args
	}
	for {
		p.skipOther()
		if p.peekKind() != atom.Number {
			break
		}
		args = append(args, p.advance())
	}
	return args
}

// parseAttributeBlock reads attribute statements until the closing brace
// (or a recovery boundary: EOF, a section header, or a structural atom
// belonging to an enclosing if/random chain).
func (p *parser) parseAttributeBlock() []*node.AttributeNode {
	var out []*node.AttributeNode
	for {
		k := p.peekKind()
		if k == atom.Other {
			p.advance()
			continue
		}
		if k == atom.Comment {
			p.advance() // embedded comments are preserved by span coverage, not as tree nodes
			continue
		}
		if k == atom.CloseBlock || k == atom.EOF || k == atom.Section ||
			ifStop[k] || randomStop[k] {
			return out
		}
		if k != atom.Word && k != atom.Number {
			a := p.advance()
			p.report("stray-token", a.Span, "unexpected token inside attribute block")
			continue
		}
		nameAtom := p.advance()
		arity := compat.AttributeArity(nameAtom.Text)
		args := p.parseArgs(arity)
		span := nameAtom.Span
		if len(args) > 0 {
			span = span.Cover(args[len(args)-1].Span)
		}
		out = append(out, &node.AttributeNode{NameAtom: nameAtom, Args: args, SpanV: span})
	}
}
