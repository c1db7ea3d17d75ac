package lsp

import (
	"encoding/json"

	"rms-check/internal/diag"
	"rms-check/internal/format"
	"rms-check/internal/source"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	text, ok := s.openDocs[uri]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}

	formatted := format.FormatFile([]byte(text), format.Options{})
	if string(formatted) == text {
		return s.sendResponse(msg.ID, []textEdit{})
	}

	lines := countLines(text)
	edit := textEdit{
		Range: lspRange{
			Start: position{Line: 0, Character: 0},
			End:   position{Line: lines, Character: 0},
		},
		NewText: string(formatted),
	}
	return s.sendResponse(msg.ID, []textEdit{edit})
}

func countLines(text string) int {
	n := 1
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			n++
		}
	}
	return n
}

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := canonicalURI(params.TextDocument.URI)
	actions := s.buildCodeActions(uri, params.Range)
	return s.sendResponse(msg.ID, actions)
}

// buildCodeActions materializes the fixes attached to diagnostics whose
// span overlaps range, and turns each into a quickfix code action scoped
// to the single file uri names.
func (s *Server) buildCodeActions(uri string, rng lspRange) []codeAction {
	snapshot := s.snapshotForURI(uri)
	result, file := snapshotFile(snapshot, uri)
	if result == nil || file == nil || result.Bag == nil {
		return []codeAction{}
	}
	start := offsetForPositionInFile(file, rng.Start)
	end := offsetForPositionInFile(file, rng.End)
	if end < start {
		start, end = end, start
	}
	want := source.Span{File: result.FileID, Start: start, End: end}
	if want.Empty() {
		want.End = want.Start + 1
	}

	var actions []codeAction
	for _, d := range result.Bag.Items() {
		if !d.Primary.Overlaps(want) {
			continue
		}
		fixes, err := diag.MaterializeFixes(diag.FixBuildContext{FileSet: snapshot.FileSet}, d.Fixes)
		if err != nil {
			continue
		}
		for _, f := range fixes {
			if len(f.Edits) == 0 {
				continue
			}
			edits := make([]textEdit, 0, len(f.Edits))
			for _, e := range f.Edits {
				edits = append(edits, textEdit{Range: rangeForSpan(file, e.Span), NewText: e.NewText})
			}
			actions = append(actions, codeAction{
				Title:       f.Title,
				Kind:        "quickfix",
				Diagnostics: []lspDiagnostic{lspDiagnosticFor(file, d)},
				IsPreferred: f.IsPreferred,
				Edit:        &workspaceEdit{Changes: map[string][]textEdit{pathToURI(file.Path): edits}},
			})
		}
	}
	return actions
}

func lspDiagnosticFor(file *source.File, d diag.Diagnostic) lspDiagnostic {
	return lspDiagnostic{
		Range:    rangeForSpan(file, d.Primary),
		Severity: severityToLSP(d.Severity),
		Code:     d.Code.ID(),
		Source:   "surge",
		Message:  d.Message,
	}
}

func severityToLSP(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 4
	}
}
