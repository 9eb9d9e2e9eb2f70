package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a single violation.
type Kind string

const (
	// IndexOutOfBounds is an index reference that does not resolve within
	// its collection. Decoding past it would read arbitrary records.
	IndexOutOfBounds Kind = "index_out_of_bounds"
	// InvalidValue is an enum-valued field holding an unrecognized value.
	InvalidValue Kind = "invalid_value"
	// Missing is a required field that is absent or zero where the format
	// requires a value.
	Missing Kind = "missing"
	// LengthMismatch is an offset/count/stride combination that escapes its
	// backing byte range.
	LengthMismatch Kind = "length_mismatch"
	// Nonconformant is a complete-pass concern: legal to decode safely but
	// forbidden by the glTF 2.0 specification.
	Nonconformant Kind = "nonconformant"
)

// Violation is one constraint failure at one location.
type Violation struct {
	Path   Path
	Kind   Kind
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %s: %s", v.Kind, v.Path, v.Detail)
}

// Errors is the aggregated result of a validation pass, ordered by traversal
// order. It implements error; a nil or empty Errors means the pass found
// nothing.
type Errors []Violation

// Error summarizes the first few violations.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	const maxShown = 3
	var b strings.Builder
	lim := min(len(e), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e[i].String())
	}
	if len(e) > lim {
		fmt.Fprintf(&b, "; ... (total %d)", len(e))
	}
	return b.String()
}

// AsError returns e as an error, or nil when the pass found nothing. The
// distinction matters because a typed nil slice wrapped in error is non-nil.
func (e Errors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
