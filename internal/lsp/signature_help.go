package lsp

import (
	"encoding/json"
	"fmt"

	"rms-check/internal/compat"
	"rms-check/internal/node"
	"rms-check/internal/source"
)

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params signatureHelpParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	help := s.buildSignatureHelp(params.TextDocument.URI, params.Position)
	if help == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, help)
}

// buildSignatureHelp returns the declared argument list of the command
// statement enclosing pos, or nil if pos isn't inside a command's argument
// region.
func (s *Server) buildSignatureHelp(uri string, pos position) *signatureHelp {
	snapshot := s.snapshotForURI(uri)
	result, file := snapshotFile(snapshot, uri)
	if result == nil || file == nil || result.Tree == nil {
		return nil
	}
	offset := offsetForPositionInFile(file, pos)
	cmd := findCommandAt(result.Tree.Children, offset)
	if cmd == nil {
		return nil
	}
	spec, ok := compat.LookupCommand(cmd.NameAtom.Text)
	if !ok {
		return nil
	}
	return signatureHelpFor(cmd, spec, offset)
}

// findCommandAt returns the innermost command node whose argument region
// (from after its name to the end of its statement) covers offset.
func findCommandAt(nodes []node.Node, offset uint32) *node.CommandNode {
	var best *node.CommandNode
	for _, n := range nodes {
		switch v := n.(type) {
		case *node.SectionNode:
			if within(v.Span(), offset) {
				if found := findCommandAt(v.Body, offset); found != nil {
					best = found
				}
			}
		case *node.IfChainNode:
			if within(v.Span(), offset) {
				for _, branch := range v.Branches {
					if found := findCommandAt(branch.Body, offset); found != nil {
						best = found
					}
				}
			}
		case *node.RandomChainNode:
			if within(v.Span(), offset) {
				for _, branch := range v.Branches {
					if found := findCommandAt(branch.Body, offset); found != nil {
						best = found
					}
				}
			}
		case *node.CommandNode:
			if commandArgRegionContains(v, offset) {
				best = v
			}
		}
	}
	return best
}

func within(span source.Span, offset uint32) bool {
	return offset >= span.Start && offset <= span.End
}

// commandArgRegionContains reports whether offset falls between the end of
// the command name and the end of its last argument (or its name, if it
// takes none), regardless of whether a block follows.
func commandArgRegionContains(cmd *node.CommandNode, offset uint32) bool {
	start := cmd.NameAtom.Span.End
	end := start
	if len(cmd.Args) > 0 {
		end = cmd.Args[len(cmd.Args)-1].Span.End
	}
	if offset < start {
		return false
	}
	if offset <= end {
		return true
	}
	// No argument typed yet, or cursor sits just past the last one: still
	// offer help up to (but not into) an opening brace.
	if cmd.HasBlock {
		return offset <= cmd.OpenBrace.Span.Start
	}
	return offset <= cmd.Span().End
}

func signatureHelpFor(cmd *node.CommandNode, spec compat.CommandSpec, offset uint32) *signatureHelp {
	paramCount := spec.MaxArgs
	if paramCount < 0 {
		paramCount = len(spec.ArgKinds)
		if n := len(cmd.Args); n > paramCount {
			paramCount = n
		}
	}
	params := make([]parameterInformation, 0, paramCount)
	for i := 0; i < paramCount; i++ {
		kind := compat.ArgAny
		if i < len(spec.ArgKinds) {
			kind = spec.ArgKinds[i]
		}
		params = append(params, parameterInformation{Label: fmt.Sprintf("arg%d: %s", i+1, argKindLabel(kind))})
	}

	active := 0
	for _, arg := range cmd.Args {
		if arg.Span.End <= offset {
			active++
		}
	}
	if paramCount > 0 && active >= paramCount {
		active = paramCount - 1
	}

	label := cmd.NameAtom.Text
	for i := range params {
		label += " " + params[i].Label
	}

	return &signatureHelp{
		Signatures: []signatureInformation{
			{Label: label, Parameters: params},
		},
		ActiveSignature: 0,
		ActiveParameter: active,
	}
}

func argKindLabel(kind compat.ArgKind) string {
	switch kind {
	case compat.ArgWord:
		return "word"
	case compat.ArgNumber:
		return "number"
	default:
		return "any"
	}
}
