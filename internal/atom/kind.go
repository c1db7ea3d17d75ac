// Package atom defines the lexical atoms produced by the RMS lexer.
//
// An atom is the smallest source-preserving unit: every byte of a source
// file belongs to exactly one atom, and concatenating atom texts in order
// reproduces the file exactly. There is no separate trivia representation —
// whitespace runs and comments are atoms like any other, which is what lets
// the fixer and the formatter rewrite a file by span without losing bytes.
package atom

// Kind classifies an Atom. The set is closed: it mirrors the atom kinds
// named in the data model, plus Invalid/EOF sentinels.
type Kind uint8

const (
	// Invalid marks a zero-value Atom; never produced by the lexer.
	Invalid Kind = iota
	// EOF marks the end of input. It carries an empty span.
	EOF

	// Other is the catch-all kind: whitespace runs, and anything the lexer
	// could not classify (including the tail emitted for a malformed atom).
	Other

	// Section is a header atom such as "<LAND_GENERATION>".
	Section
	// Command is a bare word that starts a command statement.
	Command
	// Word is a bare identifier used as a command or attribute argument.
	Word
	// Number is an integer literal argument, optionally signed.
	Number
	// OpenBlock is the '{' that starts an attribute block.
	OpenBlock
	// CloseBlock is the '}' that ends an attribute block.
	CloseBlock

	// Define is the "#define" preprocessor word.
	Define
	// Const is the "#const" preprocessor word.
	Const
	// If is the "if" conditional-compilation word.
	If
	// ElseIf is the "elseif" conditional-compilation word.
	ElseIf
	// Else is the "else" conditional-compilation word.
	Else
	// EndIf is the "endif" conditional-compilation word.
	EndIf
	// Include is the "#include_drs"/"#include" preprocessor word.
	Include

	// StartRandom opens a randomness chain.
	StartRandom
	// PercentChance introduces one branch of a randomness chain.
	PercentChance
	// EndRandom closes a randomness chain.
	EndRandom

	// Comment is a "/* ... */" block comment, text including the delimiters.
	Comment
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "eof",
	Other:         "other",
	Section:       "section",
	Command:       "command",
	Word:          "word",
	Number:        "number",
	OpenBlock:     "open-block",
	CloseBlock:    "close-block",
	Define:        "define",
	Const:         "const",
	If:            "if",
	ElseIf:        "elseif",
	Else:          "else",
	EndIf:         "endif",
	Include:       "include",
	StartRandom:   "start-random",
	PercentChance: "percent-chance",
	EndRandom:     "end-random",
	Comment:       "comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPreprocessorWord reports whether k is one of the '#'-prefixed or bare
// structural keywords that open/close conditional or define/const statements.
func (k Kind) IsPreprocessorWord() bool {
	switch k {
	case Define, Const, If, ElseIf, Else, EndIf, Include:
		return true
	default:
		return false
	}
}

// IsTrivial reports whether k never carries semantic content of its own —
// atoms the parser skips over when matching grammar productions.
func (k Kind) IsTrivial() bool {
	return k == Other || k == Comment
}
