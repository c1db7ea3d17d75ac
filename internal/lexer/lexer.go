package lexer

import (
	"strings"

	"rms-check/internal/atom"
	"rms-check/internal/source"
)

// Lexer streams a file as a sequence of atoms. It is lazy, stateless beyond
// its cursor position, and total: every byte of input ends up in exactly one
// atom, and a malformed construct never aborts the stream — it degrades to
// an Other atom and lexing continues.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	done   bool
}

// New creates a Lexer over file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next atom. Once the stream is exhausted, Next returns an
// EOF atom on every subsequent call.
func (lx *Lexer) Next() atom.Atom {
	if lx.done {
		return lx.eofAtom()
	}
	if lx.cursor.EOF() {
		lx.done = true
		return lx.eofAtom()
	}

	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		return lx.scanWhitespace()
	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanComment()
	case ch == '{':
		return lx.scanOneByte(atom.OpenBlock)
	case ch == '}':
		return lx.scanOneByte(atom.CloseBlock)
	case ch == '<':
		return lx.scanSection()
	default:
		return lx.scanWord()
	}
}

// All drains the lexer into a slice, including the trailing EOF atom.
func All(file *source.File, opts Options) []atom.Atom {
	lx := New(file, opts)
	var atoms []atom.Atom
	for {
		a := lx.Next()
		atoms = append(atoms, a)
		if a.Kind == atom.EOF {
			return atoms
		}
	}
}

func (lx *Lexer) eofAtom() atom.Atom {
	return atom.Atom{Kind: atom.EOF, Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}}
}

func (lx *Lexer) scanOneByte(kind atom.Kind) atom.Atom {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(m)
	return atom.Atom{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanWhitespace() atom.Atom {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(m)
	return atom.Atom{Kind: atom.Other, Span: sp, Text: lx.text(sp)}
}

// scanComment reads a "/* ... */" block comment. Block comments do not
// nest: the first "*/" closes, regardless of any "/*" seen in between. An
// unterminated comment degrades to a single Other atom spanning to EOF, per
// the lexer's totality guarantee, and is reported as "unterminated-comment"
// through opts.Reporter when one is set.
func (lx *Lexer) scanComment() atom.Atom {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(m)
	kind := atom.Comment
	if !closed {
		kind = atom.Other
		if lx.opts.Reporter != nil {
			lx.opts.Reporter.Report("unterminated-comment", sp, "unterminated block comment")
		}
	}
	return atom.Atom{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanSection reads a "<...>" section header. If no closing '>' is found
// before whitespace or EOF, the run degrades to Other.
func (lx *Lexer) scanSection() atom.Atom {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '>' {
			lx.cursor.Bump()
			closed = true
			break
		}
		if isSpace(b) {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(m)
	kind := atom.Section
	if !closed {
		kind = atom.Other
		if lx.opts.Reporter != nil {
			lx.opts.Reporter.Report("malformed-section", sp, "unterminated section header")
		}
	}
	return atom.Atom{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanWord reads a maximal run of non-whitespace, non-delimiter bytes and
// classifies it against the fixed keyword set, a number pattern, or falls
// back to Word. Keyword matching is case-insensitive; the atom's Text keeps
// the source's original casing.
func (lx *Lexer) scanWord() atom.Atom {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) || b == '{' || b == '}' || b == '<' {
			break
		}
		if b == '/' && lx.cursor.PeekAt(1) == '*' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(m)
	text := lx.text(sp)
	return atom.Atom{Kind: classifyWord(text), Span: sp, Text: text}
}

func classifyWord(text string) atom.Kind {
	lower := strings.ToLower(text)
	switch lower {
	case "if":
		return atom.If
	case "elseif":
		return atom.ElseIf
	case "else":
		return atom.Else
	case "endif":
		return atom.EndIf
	case "start_random":
		return atom.StartRandom
	case "percent_chance":
		return atom.PercentChance
	case "end_random":
		return atom.EndRandom
	case "#define":
		return atom.Define
	case "#const":
		return atom.Const
	case "#include_drs", "#include":
		return atom.Include
	}
	if isIntegerLiteral(text) {
		return atom.Number
	}
	return atom.Word
}

func isIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
