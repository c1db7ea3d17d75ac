package lint

import (
	"strings"

	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/node"
	"rms-check/internal/source"
	"rms-check/internal/walker"
)

// CommentContents flags a comment body that itself contains "/*" — RMS
// comments don't nest, so the lexer already closed at the first "*/" it
// found; whatever the author intended past that point silently became
// live script text instead of commentary. The suggested fix closes the
// outer comment right before the nested marker, which is the smallest
// change that matches what the lexer actually did.
type CommentContents struct{}

func (l *CommentContents) Name() diag.Code { return diag.CodeCommentContents }

func (l *CommentContents) BeforeNode(ctx *walker.Context, n node.Node) {
	c, ok := n.(*node.CommentNode)
	if !ok {
		return
	}
	body := c.Atom.CommentBody()
	idx := strings.Index(body, "/*")
	if idx < 0 {
		return
	}
	// idx is relative to body; the atom's text is "/*" + body + "*/".
	offset := c.Atom.Span.Start + uint32(len("/*")) + uint32(idx)
	at := source.Span{File: c.Atom.Span.File, Start: offset, End: offset}

	d := diag.NewWarning(diag.CodeCommentContents, c.Atom.Span,
		"comment contains a nested \"/*\"; RMS comments don't nest and the lexer already closed here")
	d = d.WithFixSuggestion(fix.InsertText("close the outer comment here", at, "*/ ", ""))
	ctx.Report(d)
}

func (l *CommentContents) AfterNode(ctx *walker.Context, n node.Node) {}
