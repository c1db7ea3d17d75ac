package diag

// Code is a stable string identifier for a diagnostic: the lint id carried
// in warning payloads and named by --disable and a project config's
// disabled-lint list. Source comments are not scanned for suppressions.
// Being a defined string type, Code sorts and compares the way the
// underlying id strings do, which is what the fix engine and Bag.Sort rely
// on for deterministic ordering.
type Code string

// String returns the code's literal id.
func (c Code) String() string { return string(c) }

// ID is an alias for String, named for call sites (the fix engine, the
// disabled-lint filters) that think of a diagnostic by its id rather than
// by its display text.
func (c Code) ID() string { return string(c) }

// The 15 named lints, plus number-out-of-range and a catch-all for
// lexer/parser recovery events reported before the walker ever runs.
const (
	CodeUnknownCommand      Code = "unknown-command"
	CodeArgCount            Code = "arg-count"
	CodeArgType             Code = "arg-type"
	CodeUnknownAttribute    Code = "unknown-attribute"
	CodeUnbalancedIf        Code = "unbalanced-if"
	CodeUnbalancedBlock     Code = "unbalanced-block"
	CodeUnbalancedRandom    Code = "unbalanced-random"
	CodeSumOfChances        Code = "sum-of-chances"
	CodeActorOutsideSection Code = "actor-outside-section"
	CodeIncompatibleFeature Code = "incompatible-feature"
	CodeRedefinedSymbol     Code = "redefined-symbol"
	CodeShadowBuiltin       Code = "shadow-builtin"
	CodeUnknownSymbol       Code = "unknown-symbol"
	CodeCommentContents     Code = "comment-contents"
	CodeDeadBranch          Code = "dead-branch"
	CodeNumberOutOfRange    Code = "number-out-of-range"

	// CodeSyntax covers lexer/parser recovery events (unterminated
	// comment, malformed section header, stray structural token,
	// unbalanced construct detected during parsing) that the driver turns
	// into Diagnostics under one generic code rather than minting a
	// one-off id per recovery path.
	CodeSyntax Code = "syntax"
)
