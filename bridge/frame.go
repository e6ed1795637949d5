package bridge

import "github.com/vmlink/jnibridge"

// frame is the call-scoped set of transient references created while
// marshaling one dispatch. Tracked references are released exactly once,
// on every exit path, when the frame is released.
type frame struct {
	env  jnibridge.Env
	refs []jnibridge.Ref
}

func newFrame(env jnibridge.Env, argc int) *frame {
	f := &frame{env: env}
	if argc > 0 {
		f.refs = make([]jnibridge.Ref, 0, argc)
	}
	return f
}

func (f *frame) track(r jnibridge.Ref) {
	if r != nil {
		f.refs = append(f.refs, r)
	}
}

// release deletes all tracked references and drains, without raising, any
// exception still pending at teardown.
func (f *frame) release() {
	for _, r := range f.refs {
		f.env.DeleteLocalRef(r)
	}
	f.refs = f.refs[:0]
	drainPending(f.env)
}
