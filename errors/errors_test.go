package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindMemberNotFound,
				Class:  "java/lang/Integer",
				Member: "valueOf",
				Sig:    "(Ljava/lang/String;)Ljava/lang/Integer;",
			},
			contains: []string{"[resolve]", "member_not_found", "java/lang/Integer#valueOf", "(Ljava/lang/String;)Ljava/lang/Integer;"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInvoke,
				Kind:  KindRuntimeException,
			},
			contains: []string{"[invoke]", "runtime_exception"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAttach,
				Kind:   KindAttachFailed,
				Detail: "attach current thread",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[attach]", "attach_failed", "attach current thread", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseResolve,
		Kind:  KindClassNotFound,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match the cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := ClassNotFound("com/example/Missing", nil)

	if !errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindClassNotFound}) {
		t.Error("Is should match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindMemberNotFound}) {
		t.Error("Is should not match a different kind")
	}
	if errors.Is(err, errors.New("class_not_found")) {
		t.Error("Is should not match a plain error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseConvert, KindUnsupported).
		Class("com/example/Foo").
		Member("bar").
		Sig("(I)V").
		Detail("value %d out of range", 7).
		Cause(cause).
		Build()

	if err.Phase != PhaseConvert || err.Kind != KindUnsupported {
		t.Fatalf("wrong phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Detail != "value 7 out of range" {
		t.Errorf("detail not formatted: %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not chained")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if e := AttachFailed("x", nil); e.Kind != KindAttachFailed || e.Phase != PhaseAttach {
		t.Error("AttachFailed wrong shape")
	}
	if e := DetachFailed(nil); e.Kind != KindDetachFailed {
		t.Error("DetachFailed wrong kind")
	}
	if e := MemberNotFound("C", "m", "(I)V", nil); e.Member != "m" || e.Sig != "(I)V" {
		t.Error("MemberNotFound wrong shape")
	}
	if e := RuntimeException("oops"); e.Detail != "oops" || e.Phase != PhaseInvoke {
		t.Error("RuntimeException wrong shape")
	}
	if e := Registration("C", errors.New("x")); e.Kind != KindRegistration || e.Cause == nil {
		t.Error("Registration wrong shape")
	}
}
