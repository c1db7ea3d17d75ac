// Package symbols implements the RMS symbol table: the two disjoint
// mappings a script can populate itself ("#define" flags and "#const"
// integer bindings) plus the read-only built-in constants selected by the
// active compatibility level.
//
// Scope is file-wide and linear from the point of definition. Per
// DESIGN NOTES §9 and the language's own (unhygienic) semantics, a
// "#define"/"#const" inside a conditional branch that later proves
// unreachable still pollutes the table — the walker never removes an
// entry once added.
package symbols

import "rms-check/internal/source"

// ConstBinding is a user "#const" binding: its current value and the span
// of its most recent definition.
type ConstBinding struct {
	Value     int32
	DefinedAt source.Span
}

// FlagBinding is a user "#define" binding: set membership plus the span of
// its most recent definition.
type FlagBinding struct {
	DefinedAt source.Span
}

// Table is the symbol table threaded through one file's walk.
type Table struct {
	Flags    map[string]FlagBinding
	Consts   map[string]ConstBinding
	Builtins map[string]int32
}

// NewTable creates an empty Table seeded with the given built-in constants
// (selected by the active compatibility level).
func NewTable(builtins map[string]int32) *Table {
	return &Table{
		Flags:    make(map[string]FlagBinding),
		Consts:   make(map[string]ConstBinding),
		Builtins: builtins,
	}
}

// DefineFlag records a "#define NAME" at span at. It returns redefined=true
// if NAME was already a user flag, and shadowsBuiltin=true if NAME also
// names a built-in constant.
func (t *Table) DefineFlag(name string, at source.Span) (redefined, shadowsBuiltin bool) {
	_, redefined = t.Flags[name]
	_, shadowsBuiltin = t.Builtins[name]
	t.Flags[name] = FlagBinding{DefinedAt: at}
	return redefined, shadowsBuiltin
}

// DefineConst records a "#const NAME VALUE" at span at, overwriting any
// prior value. It returns redefined=true if NAME was already a user const
// (any prior #define of NAME as a flag also counts, since the two
// namespaces collide in practice), and shadowsBuiltin=true if NAME also
// names a built-in constant.
func (t *Table) DefineConst(name string, value int32, at source.Span) (redefined, shadowsBuiltin bool) {
	_, redefinedConst := t.Consts[name]
	_, redefinedFlag := t.Flags[name]
	_, shadowsBuiltin = t.Builtins[name]
	t.Consts[name] = ConstBinding{Value: value, DefinedAt: at}
	return redefinedConst || redefinedFlag, shadowsBuiltin
}

// IsFlagDefined reports whether name is a known user flag.
func (t *Table) IsFlagDefined(name string) bool {
	_, ok := t.Flags[name]
	return ok
}

// LookupConst resolves name against user consts then built-ins.
func (t *Table) LookupConst(name string) (int32, bool) {
	if c, ok := t.Consts[name]; ok {
		return c.Value, true
	}
	if v, ok := t.Builtins[name]; ok {
		return v, true
	}
	return 0, false
}

// IsKnownSymbol reports whether name is defined anywhere: a user flag, a
// user const, or a built-in constant.
func (t *Table) IsKnownSymbol(name string) bool {
	if t.IsFlagDefined(name) {
		return true
	}
	if _, ok := t.Consts[name]; ok {
		return true
	}
	_, ok := t.Builtins[name]
	return ok
}
