// Package format re-indents and whitespace-normalizes an .rms file. It is
// an external collaborator in the same sense as the ZIP-RMS codec: a thin,
// line-oriented pass over the raw bytes, not a pretty-printer built on the
// atom tree, and it is not held to the round-trip invariant the core
// packages carry.
package format

import (
	"bytes"
)

// Options configures the line-oriented pass.
type Options struct {
	// IndentWidth is the number of spaces per nesting level. Zero means 2.
	IndentWidth int
}

func (o Options) indentWidth() int {
	if o.IndentWidth <= 0 {
		return 2
	}
	return o.IndentWidth
}

// FormatFile returns content with trailing line whitespace stripped, runs
// of more than one blank line collapsed to one, brace-block contents
// re-indented by nesting depth, and exactly one trailing newline.
func FormatFile(content []byte, opts Options) []byte {
	lines := splitLines(content)
	width := opts.indentWidth()

	var out [][]byte
	depth := 0
	blank := 0
	for _, line := range lines {
		trimmed := trimTrailingSpace(line)
		stripped := bytes.TrimSpace(trimmed)

		if len(stripped) == 0 {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, nil)
			continue
		}
		blank = 0

		lineDepth := depth
		if bytes.HasPrefix(stripped, []byte("}")) || isEndKeyword(stripped) {
			lineDepth--
			if lineDepth < 0 {
				lineDepth = 0
			}
		}

		indented := append(bytes.Repeat([]byte(" "), lineDepth*width), stripped...)
		out = append(out, indented)

		depth += netBraceDelta(stripped)
		depth += netKeywordDelta(stripped)
		if depth < 0 {
			depth = 0
		}
	}

	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}

	var buf bytes.Buffer
	for _, line := range out {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func splitLines(content []byte) [][]byte {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))
	return bytes.Split(normalized, []byte("\n"))
}

func trimTrailingSpace(line []byte) []byte {
	return bytes.TrimRight(line, " \t")
}

func netBraceDelta(line []byte) int {
	delta := 0
	for _, b := range line {
		switch b {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

var blockOpeners = [][]byte{[]byte("if "), []byte("start_random")}
var blockClosers = [][]byte{[]byte("endif"), []byte("end_random")}

func isEndKeyword(stripped []byte) bool {
	for _, kw := range blockClosers {
		if bytes.Equal(stripped, kw) || bytes.HasPrefix(stripped, kw) {
			return true
		}
	}
	if bytes.HasPrefix(stripped, []byte("elseif ")) || bytes.Equal(stripped, []byte("else")) {
		return true
	}
	return false
}

func netKeywordDelta(stripped []byte) int {
	for _, kw := range blockClosers {
		if bytes.Equal(stripped, kw) || bytes.HasPrefix(stripped, kw) {
			return -1
		}
	}
	if bytes.Equal(stripped, []byte("else")) || bytes.HasPrefix(stripped, []byte("elseif ")) {
		return 0
	}
	for _, kw := range blockOpeners {
		if bytes.HasPrefix(stripped, kw) || bytes.Equal(stripped, bytes.TrimSpace(kw)) {
			return 1
		}
	}
	return 0
}
