package bridge

import (
	stderrors "errors"
	"testing"

	"github.com/vmlink/jnibridge/errors"
)

func TestObject_ReleaseIdempotent(t *testing.T) {
	vm := newTestVM()

	obj, err := NewObject("com/example/Calculator", "")
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := obj.Release(); err != nil {
			t.Fatalf("Release %d: %v", i, err)
		}
	}
	s := vm.Stats()
	if s.LiveGlobal != 0 {
		t.Errorf("LiveGlobal = %d", s.LiveGlobal)
	}
	if s.DoubleFrees != 0 {
		t.Errorf("repeated Release reached the runtime, DoubleFrees = %d", s.DoubleFrees)
	}
}

func TestObject_WeakDoesNotRelease(t *testing.T) {
	vm := newTestVM()
	env := vm.Env()

	raw := env.NewStringUTF("held elsewhere")
	w := WrapWeak(raw)
	if err := w.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if got := vm.Stats().LiveLocal; got != 1 {
		t.Errorf("weak release touched the reference, LiveLocal = %d", got)
	}
	env.DeleteLocalRef(raw)
}

func TestObject_WrapGlobal(t *testing.T) {
	vm := newTestVM()
	env := vm.Env()

	raw := env.NewStringUTF("shared")
	g, err := WrapGlobal(raw)
	if err != nil {
		t.Fatalf("WrapGlobal: %v", err)
	}
	// The caller's reference is still theirs to delete.
	env.DeleteLocalRef(raw)

	if got, err := Call[int32](g, "length"); err == nil {
		t.Fatalf("unexpected method resolved: %d", got)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	s := vm.Stats()
	if s.LiveLocal != 0 || s.LiveGlobal != 0 {
		t.Errorf("ledger not clean: %+v", s)
	}
}

func TestObject_OverridesConsumedOnce(t *testing.T) {
	newTestVM()

	obj, err := NewObject("com/example/Calculator", "")
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	defer obj.Release()

	// The override sends this call to a class that does not exist.
	_, err = Call[int32](obj.WithClass("com/example/Missing"), "add",
		Val(int32(1)), Val(int32(2)))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindClassNotFound}) {
		t.Fatalf("wrong error: %v", err)
	}

	// The next call resolves against the object's own class again.
	got, err := Call[int32](obj, "add", Val(int32(1)), Val(int32(2)))
	if err != nil {
		t.Fatalf("add after override: %v", err)
	}
	if got != 3 {
		t.Errorf("add = %d, want 3", got)
	}
}

func TestObject_SignatureOverride(t *testing.T) {
	newTestVM()

	obj, err := NewObject("com/example/Calculator", "")
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	defer obj.Release()

	// A wrong explicit signature fails, and is consumed by the failure.
	if _, err := Call[int32](obj.WithSignature("(III)I"), "add",
		Val(int32(1)), Val(int32(2))); err == nil {
		t.Fatal("mismatched signature resolved")
	}
	if got, err := Call[int32](obj, "add", Val(int32(1)), Val(int32(2))); err != nil || got != 3 {
		t.Errorf("derived signature not restored: %d, %v", got, err)
	}
}

func TestObject_InstanceFields(t *testing.T) {
	newTestVM()

	obj, err := NewObject("com/example/Calculator", "")
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	defer obj.Release()

	if err := Set[int32](obj, "count", 7); err != nil {
		t.Fatalf("Set count: %v", err)
	}
	if got, err := Get[int32](obj, "count"); err != nil || got != 7 {
		t.Errorf("count = %d, %v", got, err)
	}

	if err := Set[string](obj, "label", "totals"); err != nil {
		t.Fatalf("Set label: %v", err)
	}
	if got, err := Get[string](obj, "label"); err != nil || got != "totals" {
		t.Errorf("label = %q, %v", got, err)
	}
}

func TestObject_FieldNotFound(t *testing.T) {
	vm := newTestVM()

	obj, err := NewObject("com/example/Calculator", "")
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	defer obj.Release()

	_, err = Get[int32](obj, "missing")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindMemberNotFound}) {
		t.Fatalf("wrong error: %v", err)
	}
	if vm.Env().ExceptionCheck() {
		t.Error("exception left pending")
	}
}

func TestGetStatic(t *testing.T) {
	newTestVM()

	got, err := GetStatic[int32]("com/example/Calculator", "limit", "")
	if err != nil {
		t.Fatalf("GetStatic: %v", err)
	}
	if got != 100 {
		t.Errorf("limit = %d, want 100", got)
	}
}

func TestObject_NilProxy(t *testing.T) {
	newTestVM()

	var o *Object
	if !o.IsNil() {
		t.Error("nil proxy not nil")
	}
	if o.Ref() != nil {
		t.Error("nil proxy has a reference")
	}
	if err := o.Release(); err != nil {
		t.Errorf("releasing nil proxy: %v", err)
	}
}

// Dispatching through a nil proxy (or one wrapping a null reference) fails
// with a structured error instead of panicking.
func TestObject_NilProxyDispatch(t *testing.T) {
	newTestVM()

	var o *Object
	_, err := Call[int32](o, "add", Val(int32(1)), Val(int32(2)))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindRuntimeException}) {
		t.Fatalf("wrong error: %v", err)
	}
	if err := CallVoid(o, "run"); err == nil {
		t.Error("void call on nil proxy succeeded")
	}
	if _, err := CallObject(o, "self"); err == nil {
		t.Error("object call on nil proxy succeeded")
	}
	if _, err := Get[int32](o, "count"); err == nil {
		t.Error("get on nil proxy succeeded")
	}
	if _, err := GetObject(o, "peer"); err == nil {
		t.Error("object get on nil proxy succeeded")
	}
	if err := Set[int32](o, "count", 1); err == nil {
		t.Error("set on nil proxy succeeded")
	}
	if err := SetObject(o, "peer", nil); err == nil {
		t.Error("object set on nil proxy succeeded")
	}

	null := WrapWeak(nil)
	if _, err := Call[int32](null, "add", Val(int32(1)), Val(int32(2))); err == nil {
		t.Error("call on null-reference proxy succeeded")
	}
}
