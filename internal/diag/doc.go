// Package diag defines the diagnostic model shared by the lexer, parser,
// walker/lint engine, fixer, and LSP façade.
//
// # Purpose
//
//   - Provide a deterministic, serializable record of a finding (severity,
//     stable code, message, primary span, related notes, candidate fixes).
//   - Offer lightweight producer-side utilities (Reporter, ReportBuilder,
//     Bag) that decouple emission from storage and formatting.
//   - Model fix suggestions as structured text edits the driver or CLI can
//     apply, independent of how they were discovered.
//
// # Scope
//
// Package diag performs no formatting, I/O, or CLI integration. Rendering
// lives in internal/diagfmt; applying fixes lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity — SevHint / SevWarning / SevError.
//   - Code — a stable kebab-case string id (see codes.go), the same string
//     that appears in the JSON wire format's "code" field and that
//     --disable names to silence a lint.
//   - Message — short, actionable text.
//   - Primary — the span the diagnostic is anchored to.
//   - Notes — secondary spans with their own message, used when a finding
//     only makes sense next to another location (e.g. "first defined
//     here" for redefined-symbol).
//   - Fixes — zero or more candidate Fix records.
//
// # Fix suggestions
//
// A Fix carries a Title, a Kind (quickfix / refactor.rewrite / source), an
// Applicability (AlwaysSafe / SafeWithHeuristics / ManualReview), an
// optional IsPreferred flag, and the TextEdits that make up the change. A
// Fix may defer building its edits via a Thunk, resolved through
// MaterializeFixes against a FixBuildContext; this lets a lint describe a
// correction without doing the (possibly file-reading) work of computing
// it unless a caller actually selects that fix.
//
// Only AlwaysSafe fixes are eligible for a bulk "apply everything" run;
// anything else is surfaced as a suggestion the caller must pick
// individually (a code action in the LSP façade, fix --id on the CLI).
//
// # Emitting diagnostics
//
// A phase holds a diag.Reporter and either calls Report(...) directly or
// builds one up via NewReportBuilder / ReportError / ReportWarning /
// ReportHint, chaining WithNote / WithFix / WithFixSuggestion before
// Emit(). diag.BagReporter collects into a Bag, which supports sorting and
// deduplication for stable output.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics as pretty text, JSON, or SARIF.
//   - internal/fix materializes and applies Fix edits to source files.
//   - internal/driver collects a Bag per file and hands it to the CLI or
//     the LSP façade.
package diag
