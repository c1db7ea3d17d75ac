package diag

import "rms-check/internal/source"

// Note is a secondary location attached to a Diagnostic — a related span
// (e.g. the earlier definition a redefined-symbol warning points back to)
// plus a short message explaining its relevance.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is one span-addressed text replacement. OldText, when non-empty,
// is a guard: the fix engine refuses to apply the edit if the file's
// current content at Span doesn't match it, which is how a stale fix
// (computed against an earlier version of the file) fails safely instead
// of corrupting unrelated text.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind coarsely classifies a Fix; it is reported as the fix's "kind"
// in JSON output.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability is the fixer's confidence that applying a Fix without
// human review is safe. Only AlwaysSafe fixes are eligible for --fix --all.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// FixBuildContext is the environment a FixThunk may consult when
// materializing its edits lazily (e.g. to re-read a file's current
// content to compute an insertion point).
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk lazily builds the rest of a Fix. Used when computing the edits
// is expensive enough that it shouldn't happen unless the fix is actually
// selected for application.
type FixThunk func(FixBuildContext) (Fix, error)

// Fix is one candidate automated correction for a Diagnostic. A Diagnostic
// may carry several: the walker distinguishes the one it expects to be
// correct (IsPreferred) from alternatives the user can still pick via a
// code action menu.
type Fix struct {
	// ID is a stable identifier used to target a single fix from the CLI
	// ("fix --id"). Left blank, the fix engine synthesizes one from the
	// owning diagnostic's code and location.
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks a fix that only makes sense applied together with
	// every other fix of the same diagnostic (never picked alone by id).
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk
}

// MaterializeFixes resolves any Thunk-backed fixes against ctx, leaving
// already-concrete fixes untouched. It never mutates the input slice.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	out := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		if f.Thunk == nil {
			out = append(out, f)
			continue
		}
		resolved, err := f.Thunk(ctx)
		if err != nil {
			return nil, err
		}
		resolved.Thunk = nil
		out = append(out, resolved)
	}
	return out, nil
}

// Diagnostic is one finding: a lint warning, or a parse/lex recovery
// event reported before the walker runs.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithNote appends a related-location note and returns the updated value
// (Diagnostic is built up by value, the way a walker constructs one
// inline before handing it to a Reporter).
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix appends a same-always-safe, quick-fix Fix built from edits.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         edits,
	})
	return d
}

// WithFixSuggestion appends an already-constructed Fix verbatim, for
// callers that need non-default Kind/Applicability/Thunk metadata.
func (d Diagnostic) WithFixSuggestion(fix Fix) Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}
