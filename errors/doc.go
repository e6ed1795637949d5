// Package errors provides structured error types for the jnibridge library.
//
// Errors are categorized by Phase (where in the call pipeline the error
// occurred) and Kind (error category). The Error type carries the class,
// member, and signature involved, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindMemberNotFound).
//		Class("java/lang/Integer").
//		Member("valueOf").
//		Sig("(Ljava/lang/String;)Ljava/lang/Integer;").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ClassNotFound("com/example/Missing", nil)
//	err := errors.RuntimeException("divide by zero")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on Phase and Kind.
package errors
