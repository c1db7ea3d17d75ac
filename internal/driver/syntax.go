package driver

import (
	"fortio.org/safecast"

	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/source"
)

// syntaxKindCodes maps the parser's ad hoc recovery-event kind strings to
// the three named unbalanced-construct lints; every other kind collapses
// onto diag.CodeSyntax, since spec.md mints one id per named lint but
// leaves the rest of parse recovery as a single generic code.
var syntaxKindCodes = map[string]diag.Code{
	"unbalanced-if":     diag.CodeUnbalancedIf,
	"unbalanced-block":  diag.CodeUnbalancedBlock,
	"unbalanced-random": diag.CodeUnbalancedRandom,
}

// closerText is the text a fix should insert to close each unbalanced
// construct, appended at end of file since that's where the parser's
// recovery leaves the unmatched opener's enclosing scope.
var closerText = map[string]string{
	"unbalanced-if":     "\nendif\n",
	"unbalanced-block":  "\n}\n",
	"unbalanced-random": "\nend_random\n",
}

// syntaxReporter adapts the parser/lexer's (kind, span, msg) callback
// shape into diag.Diagnostic values appended to a Bag, synthesizing an
// autofix for the three unbalanced-construct kinds that insert the
// missing closer at end of file.
type syntaxReporter struct {
	bag  *diag.Bag
	file *source.File
}

func (r *syntaxReporter) Report(kind string, span source.Span, msg string) {
	code, named := syntaxKindCodes[kind]
	if !named {
		code = diag.CodeSyntax
	}
	d := diag.NewError(code, span, msg)
	if closer, ok := closerText[kind]; ok {
		end, err := safecast.Conv[uint32](len(r.file.Content))
		if err == nil {
			eof := source.Span{File: span.File, Start: end, End: end}
			d = d.WithFixSuggestion(fix.InsertText("insert missing closer", eof, closer, ""))
		}
	}
	r.bag.Add(d)
}
