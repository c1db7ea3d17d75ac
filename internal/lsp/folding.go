package lsp

import (
	"encoding/json"

	"rms-check/internal/node"
	"rms-check/internal/source"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	ranges := s.buildFoldingRanges(params.TextDocument.URI)
	return s.sendResponse(msg.ID, ranges)
}

// buildFoldingRanges returns one range per top-level section and per
// brace-delimited command block, if/elseif/else chain, and start_random/
// end_random chain in the document named by uri.
func (s *Server) buildFoldingRanges(uri string) []foldingRange {
	snapshot := s.snapshotForURI(uri)
	result, file := snapshotFile(snapshot, uri)
	if result == nil || file == nil || result.Tree == nil {
		return []foldingRange{}
	}
	var ranges []foldingRange
	for _, child := range result.Tree.Children {
		ranges = append(ranges, foldNode(file, child)...)
	}
	return ranges
}

func foldNode(file *source.File, n node.Node) []foldingRange {
	var out []foldingRange
	switch v := n.(type) {
	case *node.SectionNode:
		if r, ok := foldSpan(file, v.Span()); ok {
			out = append(out, r)
		}
		for _, child := range v.Body {
			out = append(out, foldNode(file, child)...)
		}
	case *node.CommandNode:
		if v.HasBlock {
			if r, ok := foldRange(file, v.OpenBrace.Span, v.CloseBrace.Span); ok {
				out = append(out, r)
			}
		}
	case *node.IfChainNode:
		if r, ok := foldSpan(file, v.Span()); ok {
			out = append(out, r)
		}
		for _, branch := range v.Branches {
			for _, child := range branch.Body {
				out = append(out, foldNode(file, child)...)
			}
		}
	case *node.RandomChainNode:
		if r, ok := foldSpan(file, v.Span()); ok {
			out = append(out, r)
		}
		for _, branch := range v.Branches {
			for _, child := range branch.Body {
				out = append(out, foldNode(file, child)...)
			}
		}
	}
	return out
}

func foldSpan(file *source.File, span source.Span) (foldingRange, bool) {
	rng := rangeForSpan(file, span)
	if rng.End.Line <= rng.Start.Line {
		return foldingRange{}, false
	}
	return foldingRange{StartLine: rng.Start.Line, EndLine: rng.End.Line}, true
}

func foldRange(file *source.File, open, close source.Span) (foldingRange, bool) {
	start := positionForOffsetInFile(file, open.Start)
	end := positionForOffsetInFile(file, close.End)
	if end.Line <= start.Line {
		return foldingRange{}, false
	}
	return foldingRange{StartLine: start.Line, EndLine: end.Line}, true
}
