package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the call pipeline the error occurred
type Phase string

const (
	PhaseAttach   Phase = "attach"   // thread attach/detach
	PhaseResolve  Phase = "resolve"  // class and member lookup
	PhaseConvert  Phase = "convert"  // value conversion
	PhaseInvoke   Phase = "invoke"   // method/field dispatch
	PhaseRegister Phase = "register" // native entry-point registration
)

// Kind categorizes the error
type Kind string

const (
	KindAttachFailed     Kind = "attach_failed"
	KindDetachFailed     Kind = "detach_failed"
	KindClassNotFound    Kind = "class_not_found"
	KindMemberNotFound   Kind = "member_not_found"
	KindRuntimeException Kind = "runtime_exception"
	KindRegistration     Kind = "registration"
	KindUnsupported      Kind = "unsupported"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Class  string
	Member string
	Sig    string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Class != "" {
		b.WriteString(": ")
		b.WriteString(e.Class)
		if e.Member != "" {
			b.WriteByte('#')
			b.WriteString(e.Member)
		}
		if e.Sig != "" {
			b.WriteByte(' ')
			b.WriteString(e.Sig)
		}
	}

	if e.Detail != "" {
		if e.Class != "" {
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

// Class sets the class name
func (b *Builder) Class(name string) *Builder {
	b.err.Class = name
	return b
}

// Member sets the method or field name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Sig sets the member signature
func (b *Builder) Sig(sig string) *Builder {
	b.err.Sig = sig
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

// AttachFailed creates a thread-attach error
func AttachFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindAttachFailed,
		Detail: detail,
		Cause:  cause,
	}
}

// DetachFailed creates a thread-detach error
func DetachFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindDetachFailed,
		Detail: "detach current thread",
		Cause:  cause,
	}
}

// ClassNotFound creates a class-lookup error. cause carries the drained
// runtime exception, if the lookup raised one.
func ClassNotFound(class string, cause error) *Error {
	return &Error{
		Phase: PhaseResolve,
		Kind:  KindClassNotFound,
		Class: class,
		Cause: cause,
	}
}

// MemberNotFound creates a method/field-lookup error
func MemberNotFound(class, member, sig string, cause error) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindMemberNotFound,
		Class:  class,
		Member: member,
		Sig:    sig,
		Cause:  cause,
	}
}

// RuntimeException creates an error carrying the decoded message of a
// pending exception raised by the managed side
func RuntimeException(message string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindRuntimeException,
		Detail: message,
	}
}

// Registration creates a native entry-point registration error
func Registration(class string, cause error) *Error {
	return &Error{
		Phase: PhaseRegister,
		Kind:  KindRegistration,
		Class: class,
		Cause: cause,
	}
}

// Unsupported creates an error for a value outside the conversion registry
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}
