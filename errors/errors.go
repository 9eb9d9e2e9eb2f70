package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // JSON or GLB container parsing
	PhaseDecode   Phase = "decode"   // typed accessor decoding
	PhaseValidate Phase = "validate" // document validation
	PhaseResolve  Phase = "resolve"  // buffer data resolution
	PhaseRead     Phase = "read"     // animation/skin readers
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds       Kind = "out_of_bounds"
	KindShortBuffer       Kind = "short_buffer"
	KindComponentMismatch Kind = "component_mismatch"
	KindInvalidEnum       Kind = "invalid_enum"
	KindInvalidStride     Kind = "invalid_stride"
	KindFieldMissing      Kind = "field_missing"
	KindInvalidData       Kind = "invalid_data"
	KindUnsupported       Kind = "unsupported"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
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

	if e.Detail != "" {
		b.WriteString(": ")
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

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// ShortBuffer creates an error for a byte slice too small for the requested decode
func ShortBuffer(phase Phase, path []string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShortBuffer,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Value:  have,
	}
}

// ComponentMismatch creates an error for an accessor whose component type is
// not legal for the requested element shape
func ComponentMismatch(phase Phase, path []string, got, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindComponentMismatch,
		Path:   path,
		Detail: fmt.Sprintf("component type %s cannot decode as %s", got, want),
	}
}

// InvalidEnum creates an error for an unrecognized enum value
func InvalidEnum(phase Phase, path []string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEnum,
		Path:   path,
		Detail: fmt.Sprintf("unrecognized value %v", value),
		Value:  value,
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

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}
