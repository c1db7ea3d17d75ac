package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/source"
)

func TestPrettyPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("if UNDEFINED_FLAG\ncreate_land {}\nendif\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.rms", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.CodeUnknownSymbol, source.Span{File: fileID, Start: 3, End: 17}, "unknown symbol UNDEFINED_FLAG")
	bag.Add(d)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute path", PathModeAbsolute, "/home/user/project/src/test.rms"},
		{"relative path", PathModeRelative, "src/test.rms"},
		{"basename only", PathModeBasename, "test.rms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "warning") {
				t.Error("expected severity label in output")
			}
			if !strings.Contains(output, "unknown-symbol") {
				t.Error("expected code in output")
			}
			if !strings.Contains(output, "unknown symbol UNDEFINED_FLAG") {
				t.Error("expected message in output")
			}
		})
	}
}

func TestPrettyColorWrapsOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("create_land {}\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.CodeArgCount, source.Span{File: fileID, Start: 0, End: 12}, "create_land requires 1 argument"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Color: false})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if plain.String() == colored.String() {
		t.Fatal("expected colorized output to differ from plain output")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("expected ANSI escape codes in colorized output")
	}
}

func TestPrettyShowsNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("#const GRASS 10\n")
	fileID := fs.AddVirtual("test.rms", content)

	primary := source.Span{File: fileID, Start: 7, End: 12}
	d := diag.New(diag.SevWarning, diag.CodeShadowBuiltin, primary, "GRASS shadows a built-in constant")
	d = d.WithNote(source.Span{File: fileID, Start: 0, End: 16}, "built-in constants should not be redefined")
	d = d.WithFixSuggestion(fix.DeleteSpan("remove redefinition", primary, "GRASS"))

	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	output := buf.String()

	if !strings.Contains(output, "note:") {
		t.Fatalf("expected a note line, got:\n%s", output)
	}
	if !strings.Contains(output, "built-in constants should not be redefined") {
		t.Fatalf("expected note message, got:\n%s", output)
	}
	if !strings.Contains(output, "fix: remove redefinition") {
		t.Fatalf("expected fix line, got:\n%s", output)
	}
}

func TestPrettyShowsSourcePreviewWithCaret(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("land_percent 150\n")
	fileID := fs.AddVirtual("test.rms", content)

	span := source.Span{File: fileID, Start: 13, End: 16}
	d := diag.NewWarning(diag.CodeNumberOutOfRange, span, "land_percent 150 is outside 0-100")

	bag := diag.NewBag(2)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowPreview: true})
	output := buf.String()

	if !strings.Contains(output, "land_percent 150") {
		t.Fatalf("expected source line in preview, got:\n%s", output)
	}
	if !strings.Contains(output, "^") {
		t.Fatalf("expected caret underline in preview, got:\n%s", output)
	}
}
