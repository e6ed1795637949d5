package bridge

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckPending_DecodesMessage(t *testing.T) {
	vm := newTestVM()
	env := vm.Env()

	env.Throw("java.lang.IllegalArgumentException: bad input")
	err := checkPending(env)
	if err == nil {
		t.Fatal("pending exception not reported")
	}
	if env.ExceptionCheck() {
		t.Error("pending state not cleared")
	}
	if want := "bad input"; !strings.Contains(err.Error(), want) {
		t.Errorf("message not decoded: %v", err)
	}

	// The ledger stays clean through the decode.
	s := vm.Stats()
	if s.LiveLocal != 0 || s.BadRefUses != 0 {
		t.Errorf("decode leaked: %+v", s)
	}
}

func TestFrameRelease_DrainsAndLogs(t *testing.T) {
	vm := newTestVM()
	env := vm.Env()

	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	f := newFrame(env, 1)
	f.track(env.NewStringUTF("transient"))
	env.Throw("java.lang.IllegalStateException: late failure")
	f.release()

	if env.ExceptionCheck() {
		t.Fatal("teardown did not clear the pending exception")
	}
	entries := logs.FilterMessage("exception pending at call teardown").All()
	if len(entries) != 1 {
		t.Fatalf("teardown log entries = %d, want 1", len(entries))
	}
	if msg, _ := entries[0].ContextMap()["message"].(string); !strings.Contains(msg, "late failure") {
		t.Errorf("logged message = %q", msg)
	}
	if got := vm.Stats().LiveLocal; got != 0 {
		t.Errorf("transients not released, LiveLocal = %d", got)
	}
}

func TestThrowableMessage_NilThrowable(t *testing.T) {
	vm := newTestVM()

	if got := throwableMessage(vm.Env(), nil); got != "" {
		t.Errorf("message for nil throwable = %q", got)
	}
}
