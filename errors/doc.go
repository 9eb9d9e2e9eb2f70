// Package errors provides structured error types for the gltf library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the structural path of the offending
// field and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindShortBuffer).
//		Path("accessors", "3").
//		Detail("need 48 bytes, have 12").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseValidate, path, 10, 5)
//	err := errors.ComponentMismatch(errors.PhaseDecode, path, "U16", "MAT4/F32")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
