// Package errors provides structured error types for the offset library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDefine, errors.KindOverlapOrDisorder).
//		Path("DEVICE_OBJECT", "next").
//		Type("ptr").
//		Detail("offset 0x4 is below end of previous field 0x8").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OverlapOrDisorder(path, 0x4, 0x8)
//	err := errors.LayoutMismatch(path, 0x8, 0x10)
//
// All errors implement the standard error interface and support errors.Is/As.
// The exported Err* sentinels match any error of the same phase and kind:
//
//	if errors.Is(err, errors.ErrLayoutMismatch) { ... }
package errors
