package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rms-check/internal/diag"
	"rms-check/internal/source"
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorHint    = color.New(color.FgCyan, color.Bold)
	colorNote    = color.New(color.FgBlue)
	colorCaret   = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return colorError
	case diag.SevWarning:
		return colorWarning
	default:
		return colorHint
	}
}

// Pretty renders bag's diagnostics as human-readable text, one diagnostic
// per block: a "<path>:<line>:<col>: <severity> <code>: <message>" header,
// optionally the offending source line with a caret span under it,
// followed by any notes and fix titles. Callers should bag.Sort() first so
// output reads in file/position order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnosticHeader(w, d, fs, opts)
		if opts.ShowPreview {
			writeSourceContext(w, d.Primary, fs, opts)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeNoteLine(w, note, fs, opts)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				writeFixLine(w, f, opts)
			}
		}
	}
}

// paint colorizes s with c regardless of color's global NoColor detection,
// since PrettyOpts.Color is the caller's explicit decision.
func paint(c *color.Color, s string) string {
	forced := *c
	forced.EnableColor()
	return forced.Sprint(s)
}

func writeDiagnosticHeader(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	path := locationPath(d.Primary, fs, opts.PathMode)
	sevText := d.Severity.String()
	if opts.Color {
		sevText = paint(severityColor(d.Severity), sevText)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevText, d.Code.ID(), d.Message)
}

func locationPath(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

func writeSourceContext(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretLen = int(end.Col - start.Col)
	}
	pad := strings.Repeat(" ", 4+int(maxUint32(start.Col, 1)-1))
	carets := strings.Repeat("^", caretLen)
	if opts.Color {
		carets = paint(colorCaret, carets)
	}
	fmt.Fprintf(w, "%s%s\n", pad, carets)
}

func writeNoteLine(w io.Writer, note diag.Note, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(note.Span)
	path := locationPath(note.Span, fs, opts.PathMode)
	prefix := "note"
	if opts.Color {
		prefix = paint(colorNote, prefix)
	}
	fmt.Fprintf(w, "    %s: %s:%d:%d: %s\n", prefix, path, start.Line, start.Col, note.Msg)
}

func writeFixLine(w io.Writer, f diag.Fix, opts PrettyOpts) {
	marker := ""
	if f.IsPreferred {
		marker = " (preferred)"
	}
	fmt.Fprintf(w, "    fix: %s%s\n", f.Title, marker)
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
