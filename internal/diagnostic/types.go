package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"docmap-generator/internal/common"
)

// Diagnostics holds all diagnostic information from one analysis pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
//
// Message is a template with positional fmt verbs; Args are its arguments.
// The two are kept separate so a host UI can re-render or localize the
// message without re-running analysis.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this type of diagnostic.
	Code string
	// Message is the human-readable message template.
	Message string
	// Args are the positional arguments of the message template.
	Args []any
	// Mapper identifies which mapper this relates to (if any).
	Mapper string
	// Property identifies which property path this relates to (if any).
	Property string
	// Internal marks invariant violations, as opposed to configuration
	// errors, so tooling can treat the two differently.
	Internal bool
	// Location is an opaque source location supplied by the host front end.
	// Passed through unchanged.
	Location any
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, mapper, property, template string, args ...any) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  template,
		Args:     args,
		Mapper:   mapper,
		Property: property,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, mapper, property, template string, args ...any) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  template,
		Args:     args,
		Mapper:   mapper,
		Property: property,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, mapper, property, template string, args ...any) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  template,
		Args:     args,
		Mapper:   mapper,
		Property: property,
	})
}

// AddInternal adds an internal-error diagnostic. Internal errors signal an
// invariant violation inside the compiler, never a configuration mistake.
func (d *Diagnostics) AddInternal(mapper, property, template string, args ...any) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     CodeInternal,
		Message:  template,
		Args:     args,
		Mapper:   mapper,
		Property: property,
		Internal: true,
	})
}

// Add appends a fully built diagnostic to the matching severity bucket.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Rendered returns the message template with its arguments applied.
func (d Diagnostic) Rendered() string {
	if len(d.Args) == 0 {
		return d.Message
	}

	return fmt.Sprintf(d.Message, d.Args...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Mapper != "" {
		prefix = append(prefix, "["+d.Mapper+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Rendered()
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
