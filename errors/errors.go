package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDefine    Phase = "define"    // schema to plan
	PhaseReconcile Phase = "reconcile" // declared total size
	PhaseVerify    Phase = "verify"    // plan against a realized type
	PhaseRender    Phase = "render"    // reading realized memory
	PhaseParse     Phase = "parse"     // schema files and type names
	PhaseGenerate  Phase = "generate"  // Go source emission
	PhaseLoad      Phase = "load"      // foreign memory sources
)

// Kind categorizes the error
type Kind string

const (
	KindOverlapOrDisorder    Kind = "overlap_or_disorder"
	KindDeclaredSizeTooSmall Kind = "declared_size_too_small"
	KindLayoutMismatch       Kind = "layout_mismatch"
	KindOutOfBounds          Kind = "out_of_bounds"
	KindOverflow             Kind = "overflow"
	KindFieldMissing         Kind = "field_missing"
	KindDuplicateField       Kind = "duplicate_field"
	KindInvalidInput         Kind = "invalid_input"
	KindUnsupported          Kind = "unsupported"
	KindNotFound             Kind = "not_found"
)

// Sentinels for errors.Is checks against the fatal layout failures.
var (
	ErrOverlapOrDisorder    = &Error{Phase: PhaseDefine, Kind: KindOverlapOrDisorder}
	ErrDeclaredSizeTooSmall = &Error{Phase: PhaseReconcile, Kind: KindDeclaredSizeTooSmall}
	ErrLayoutMismatch       = &Error{Phase: PhaseVerify, Kind: KindLayoutMismatch}
)

// Mismatch describes a field whose realized offset differs from its declared one.
type Mismatch struct {
	Field    string
	Expected uint32
	Actual   uint32
}

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Type != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Type != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", field type ")
			b.WriteString(e.Type)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("field type ")
			b.WriteString(e.Type)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Mismatch returns the offending field of a layout mismatch error.
func (e *Error) Mismatch() (Mismatch, bool) {
	m, ok := e.Value.(Mismatch)
	return m, ok
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Type sets the schema type name of the field
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OverlapOrDisorder reports a field whose offset does not lie past the
// storage consumed by the fields declared before it.
func OverlapOrDisorder(path []string, offset, cursor uint32) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindOverlapOrDisorder,
		Path:   path,
		Detail: fmt.Sprintf("offset %#x is not past previous storage ending at %#x", offset, cursor),
		Value:  offset,
	}
}

// DeclaredSizeTooSmall reports a declared total size below the natural extent.
func DeclaredSizeTooSmall(path []string, declared, extent uint32) *Error {
	return &Error{
		Phase:  PhaseReconcile,
		Kind:   KindDeclaredSizeTooSmall,
		Path:   path,
		Detail: fmt.Sprintf("declared size %#x is smaller than natural extent %#x", declared, extent),
		Value:  declared,
	}
}

// LayoutMismatch reports a field realized at a different offset than declared.
func LayoutMismatch(path []string, expected, actual uint32) *Error {
	field := ""
	if len(path) > 0 {
		field = path[len(path)-1]
	}
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindLayoutMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected offset %#x, actual %#x", expected, actual),
		Value:  Mismatch{Field: field, Expected: expected, Actual: actual},
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// DuplicateField creates a duplicate field name error
func DuplicateField(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateField,
		Path:   path,
		Detail: fmt.Sprintf("field %q declared more than once", fieldName),
	}
}

// Unsupported creates an unsupported feature error
func Unsupported(phase Phase, feature string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: feature + " not supported",
	}
}

// OutOfBounds creates an out of bounds error for a read of length bytes at offset
func OutOfBounds(phase Phase, path []string, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("read of %d bytes at %#x out of bounds", length, offset),
		Value:  offset,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: what + " not found",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a load error wrapping the cause
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}
