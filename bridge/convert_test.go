package bridge

import (
	stderrors "errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
	"github.com/vmlink/jnibridge/internal/fakejni"
)

func echoStatic[T any](t *testing.T, call func() (T, error)) T {
	t.Helper()
	got, err := call()
	if err != nil {
		t.Fatalf("echo: %v", err)
	}
	return got
}

func TestRoundTrip_Primitives(t *testing.T) {
	newTestVM()

	if got := echoStatic(t, func() (bool, error) {
		return CallStatic[bool]("com/example/Echo", "echo", "", Val(true))
	}); got != true {
		t.Errorf("bool = %v", got)
	}
	if got := echoStatic(t, func() (int8, error) {
		return CallStatic[int8]("com/example/Echo", "echo", "", Val(int8(-7)))
	}); got != -7 {
		t.Errorf("int8 = %d", got)
	}
	if got := echoStatic(t, func() (int16, error) {
		return CallStatic[int16]("com/example/Echo", "echo", "", Val(int16(-300)))
	}); got != -300 {
		t.Errorf("int16 = %d", got)
	}
	if got := echoStatic(t, func() (int64, error) {
		return CallStatic[int64]("com/example/Echo", "echo", "", Val(int64(1)<<50))
	}); got != 1<<50 {
		t.Errorf("int64 = %d", got)
	}
	if got := echoStatic(t, func() (float32, error) {
		return CallStatic[float32]("com/example/Echo", "echo", "", Val(float32(1.5)))
	}); got != 1.5 {
		t.Errorf("float32 = %v", got)
	}
	if got := echoStatic(t, func() (float64, error) {
		return CallStatic[float64]("com/example/Echo", "echo", "", Val(2.25))
	}); got != 2.25 {
		t.Errorf("float64 = %v", got)
	}
}

// A scalar byte dispatches through the char category while a byte slice
// dispatches as a byte array; the two never mix.
func TestRoundTrip_ByteCharSplit(t *testing.T) {
	newTestVM()

	c := echoStatic(t, func() (uint8, error) {
		return CallStatic[uint8]("com/example/Echo", "echo", "", Val(uint8('A')))
	})
	if c != 'A' {
		t.Errorf("uint8 = %q", c)
	}

	b := echoStatic(t, func() ([]byte, error) {
		return CallStatic[[]byte]("com/example/Echo", "echo", "", Val([]byte{1, 2, 3}))
	})
	if !reflect.DeepEqual(b, []byte{1, 2, 3}) {
		t.Errorf("[]byte = %v", b)
	}
}

func TestRoundTrip_Containers(t *testing.T) {
	newTestVM()

	s := echoStatic(t, func() (string, error) {
		return CallStatic[string]("com/example/Echo", "echo", "", Val("héllo"))
	})
	if s != "héllo" {
		t.Errorf("string = %q", s)
	}

	f := echoStatic(t, func() ([]float32, error) {
		return CallStatic[[]float32]("com/example/Echo", "echo", "", Val([]float32{0.5, -1}))
	})
	if !reflect.DeepEqual(f, []float32{0.5, -1}) {
		t.Errorf("[]float32 = %v", f)
	}

	in := []string{"c", "a", "b", "a"}
	out := echoStatic(t, func() ([]string, error) {
		return CallStatic[[]string]("com/example/Echo", "echo", "", Val(in))
	})
	if !reflect.DeepEqual(out, in) {
		t.Errorf("element order not preserved: %v", out)
	}

	m := echoStatic(t, func() (map[string]string, error) {
		return CallStatic[map[string]string]("com/example/Echo", "echo", "",
			Val(map[string]string{"k1": "v1", "k2": "v2", "k3": ""}))
	})
	if !reflect.DeepEqual(m, map[string]string{"k1": "v1", "k2": "v2", "k3": ""}) {
		t.Errorf("map = %v", m)
	}
}

func TestRoundTrip_EmptyContainers(t *testing.T) {
	newTestVM()

	if got := echoStatic(t, func() (string, error) {
		return CallStatic[string]("com/example/Echo", "echo", "", Val(""))
	}); got != "" {
		t.Errorf("empty string = %q", got)
	}

	b := echoStatic(t, func() ([]byte, error) {
		return CallStatic[[]byte]("com/example/Echo", "echo", "", Val([]byte{}))
	})
	if len(b) != 0 {
		t.Errorf("empty []byte = %v", b)
	}

	ss := echoStatic(t, func() ([]string, error) {
		return CallStatic[[]string]("com/example/Echo", "echo", "", Val([]string{}))
	})
	if len(ss) != 0 {
		t.Errorf("empty []string = %v", ss)
	}

	m := echoStatic(t, func() (map[string]string, error) {
		return CallStatic[map[string]string]("com/example/Echo", "echo", "",
			Val(map[string]string{}))
	})
	if len(m) != 0 {
		t.Errorf("empty map = %v", m)
	}
}

func TestRoundTrip_NoLeaksAcrossAllTypes(t *testing.T) {
	vm := newTestVM()

	echoStatic(t, func() (string, error) {
		return CallStatic[string]("com/example/Echo", "echo", "", Val("x"))
	})
	echoStatic(t, func() ([]byte, error) {
		return CallStatic[[]byte]("com/example/Echo", "echo", "", Val([]byte("data")))
	})
	echoStatic(t, func() ([]float32, error) {
		return CallStatic[[]float32]("com/example/Echo", "echo", "", Val([]float32{1}))
	})
	echoStatic(t, func() ([]string, error) {
		return CallStatic[[]string]("com/example/Echo", "echo", "", Val([]string{"a", "b"}))
	})
	echoStatic(t, func() (map[string]string, error) {
		return CallStatic[map[string]string]("com/example/Echo", "echo", "",
			Val(map[string]string{"k": "v"}))
	})

	s := vm.Stats()
	if s.LiveLocal != 0 || s.LiveGlobal != 0 || s.DoubleFrees != 0 || s.BadRefUses != 0 {
		t.Errorf("reference ledger not clean: %+v", s)
	}
}

// envVM hands out a wrapped execution context, so tests can inject failures
// into individual runtime primitives.
type envVM struct {
	env jnibridge.Env
}

func (v envVM) Attach() (jnibridge.Env, error) { return v.env, nil }
func (v envVM) Detach() error                  { return nil }

// elementThrowEnv raises a failure and returns null from the element fetch
// at one index.
type elementThrowEnv struct {
	*fakejni.Env
	failIndex int
}

func (e *elementThrowEnv) GetObjectArrayElement(arr jnibridge.Ref, index int) jnibridge.Ref {
	if index == e.failIndex {
		e.Throw("java.lang.ArrayStoreException: element " + strconv.Itoa(index))
		return nil
	}
	return e.Env.GetObjectArrayElement(arr, index)
}

// getThrowEnv raises a failure and returns null from every single-argument
// object call, which in the decode flow is Map.get.
type getThrowEnv struct {
	*fakejni.Env
}

func (e *getThrowEnv) CallObjectMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) jnibridge.Ref {
	out := e.Env.CallObjectMethod(obj, m, args)
	if len(args) != 1 {
		return out
	}
	if out != nil {
		e.Env.DeleteLocalRef(out)
	}
	e.Throw("java.lang.ConcurrentModificationException: rehash during get")
	return nil
}

// A failure raised by the element fetch of the last element must fail the
// call, not return a truncated slice with the failure deferred to teardown.
func TestDecodeStrings_FailureOnLastElement(t *testing.T) {
	vm := newTestVM()
	Init(envVM{env: &elementThrowEnv{Env: vm.Env(), failIndex: 2}})
	defer Init(vm)

	out, err := CallStatic[[]string]("com/example/Echo", "echo", "",
		Val([]string{"a", "b", "c"}))
	if err == nil {
		t.Fatalf("element failure swallowed, result = %v", out)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindRuntimeException}) {
		t.Errorf("wrong error: %v", err)
	}
	if vm.Env().ExceptionCheck() {
		t.Error("exception left pending")
	}
	if s := vm.Stats(); s.LiveLocal != 0 {
		t.Errorf("leaked %d locals on the decode error path", s.LiveLocal)
	}
}

func TestDecodeStringMap_FailureDuringGet(t *testing.T) {
	vm := newTestVM()
	Init(envVM{env: &getThrowEnv{Env: vm.Env()}})
	defer Init(vm)

	out, err := CallStatic[map[string]string]("com/example/Echo", "echo", "",
		Val(map[string]string{"k": "v"}))
	if err == nil {
		t.Fatalf("map value failure swallowed, result = %v", out)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindRuntimeException}) {
		t.Errorf("wrong error: %v", err)
	}
	if vm.Env().ExceptionCheck() {
		t.Error("exception left pending")
	}
	if s := vm.Stats(); s.LiveLocal != 0 {
		t.Errorf("leaked %d locals on the decode error path", s.LiveLocal)
	}
}
