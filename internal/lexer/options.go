package lexer

import (
	"rms-check/internal/source"
)

// Reporter is a thin sink so the lexer doesn't need to import diag.
// The lexer only calls it; formatting into a real diagnostic happens
// one layer up.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // nil means lex errors are silently dropped (lexing still continues)
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
