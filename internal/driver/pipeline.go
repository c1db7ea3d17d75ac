// Package driver wires the atom lexer, parser, walker, and lint engine
// into the pipeline a CLI or LSP front end actually runs: analyze one
// file, or fan out across a directory of *.rms files.
package driver

import (
	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/lint"
	"rms-check/internal/node"
	"rms-check/internal/parser"
	"rms-check/internal/source"
	"rms-check/internal/walker"
)

// Result is one file's complete analysis: the parsed tree and the
// diagnostics produced by parse recovery plus every lint.
type Result struct {
	Path   string
	FileID source.FileID
	Tree   *node.File
	Bag    *diag.Bag
	Level  compat.Level
}

// AnalyzeFile parses and lints the file already loaded into fs as fileID,
// starting symbol resolution at initialLevel. maxDiagnostics caps the
// returned Bag; it is passed to diag.NewBag unchanged, so 0 keeps no
// diagnostics.
func AnalyzeFile(fs *source.FileSet, fileID source.FileID, initialLevel compat.Level, maxDiagnostics int) *Result {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	tree := parser.Parse(file, parser.Options{Reporter: &syntaxReporter{bag: bag, file: file}})

	engine := walker.NewEngine(lint.All()...)
	engine.Walk(file, tree, initialLevel, diag.NewDedupReporter(&diag.BagReporter{Bag: bag}))

	return &Result{
		Path:   file.Path,
		FileID: fileID,
		Tree:   tree,
		Bag:    bag,
		Level:  initialLevel,
	}
}
