package diag

import "rms-check/internal/source"

// New builds a bare Diagnostic with no notes or fixes attached.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError is a shortcut for New(SevError, ...).
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is a shortcut for New(SevWarning, ...).
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// NewHint is a shortcut for New(SevHint, ...).
func NewHint(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevHint, code, primary, msg)
}
