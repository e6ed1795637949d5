package bridge

import (
	"sync/atomic"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
	"github.com/vmlink/jnibridge/signature"
)

// Strength is the ownership strength of a wrapped reference.
type Strength uint8

const (
	// Local references are owned but only valid on the creating thread
	// until its current native frame unwinds.
	Local Strength = iota
	// Global references are owned and valid across frames and threads
	// until released.
	Global
	// Weak proxies do not own their reference; releasing the proxy leaves
	// the reference untouched.
	Weak
)

// Object is a native-side proxy for one managed object.
//
// Proxies are shared through ordinary Go references; whoever holds the
// proxy last calls Release, which frees the underlying reference according
// to its strength. Release is idempotent.
type Object struct {
	ref      jnibridge.Ref
	strength Strength
	released atomic.Bool

	// Per-call resolution overrides, consumed by the next call on any
	// exit path.
	classOverride string
	sigOverride   string
}

// WrapGlobal creates a new global reference to obj and wraps it. The proxy
// owns the new reference; obj itself stays with the caller.
func WrapGlobal(obj jnibridge.Ref) (*Object, error) {
	env, err := AttachEnv()
	if err != nil {
		return nil, err
	}
	g := env.NewGlobalRef(obj)
	if err := checkPending(env); err != nil {
		if g != nil {
			env.DeleteGlobalRef(g)
		}
		return nil, err
	}
	metricGlobalRefs.Inc()
	return &Object{ref: g, strength: Global}, nil
}

// WrapLocal creates a new local reference to obj and wraps it.
func WrapLocal(obj jnibridge.Ref) (*Object, error) {
	env, err := AttachEnv()
	if err != nil {
		return nil, err
	}
	l := env.NewLocalRef(obj)
	if err := checkPending(env); err != nil {
		if l != nil {
			env.DeleteLocalRef(l)
		}
		return nil, err
	}
	return &Object{ref: l, strength: Local}, nil
}

// AdoptLocal wraps an existing local reference without creating a new one;
// the proxy takes over releasing it.
func AdoptLocal(obj jnibridge.Ref) *Object {
	return &Object{ref: obj, strength: Local}
}

// WrapWeak wraps a reference whose lifetime the caller manages externally,
// such as a callback parameter owned by the runtime.
func WrapWeak(obj jnibridge.Ref) *Object {
	return &Object{ref: obj, strength: Weak}
}

// Ref returns the wrapped reference. It stays owned by the proxy.
func (o *Object) Ref() jnibridge.Ref {
	if o == nil {
		return nil
	}
	return o.ref
}

// IsNil reports whether the proxy wraps no reference.
func (o *Object) IsNil() bool {
	return o == nil || o.ref == nil
}

// WithClass overrides the class used to resolve the next call or field
// access on this proxy, instead of the object's own class. The override
// applies to exactly one operation.
func (o *Object) WithClass(className string) *Object {
	o.classOverride = className
	return o
}

// WithSignature overrides the member signature for the next call or field
// access on this proxy. The override applies to exactly one operation.
func (o *Object) WithSignature(sig string) *Object {
	o.sigOverride = sig
	return o
}

func (o *Object) clearOverrides() {
	if o == nil {
		return
	}
	o.classOverride = ""
	o.sigOverride = ""
}

// nullReceiver is the error for dispatching through a proxy that wraps no
// reference, the same failure the runtime would raise for a null receiver.
func nullReceiver() error {
	return errors.RuntimeException("null receiver")
}

// Release frees the underlying reference according to the proxy's
// strength. Safe to call more than once and on a nil proxy.
func (o *Object) Release() error {
	if o == nil || o.ref == nil {
		return nil
	}
	if !o.released.CompareAndSwap(false, true) {
		return nil
	}
	if o.strength == Weak {
		return nil
	}

	env, err := AttachEnv()
	if err != nil {
		return err
	}
	switch o.strength {
	case Global:
		env.DeleteGlobalRef(o.ref)
		metricGlobalRefs.Dec()
	case Local:
		env.DeleteLocalRef(o.ref)
	}
	return nil
}

// targetClass resolves the class the next operation dispatches against:
// the override class when one was set, otherwise the object's own class.
// The caller owns the returned reference.
func (o *Object) targetClass(env jnibridge.Env) (jnibridge.Ref, string, error) {
	if o.classOverride != "" {
		cls, err := findClass(env, o.classOverride)
		return cls, o.classOverride, err
	}
	cls := env.GetObjectClass(o.ref)
	if err := checkPending(env); err != nil {
		if cls != nil {
			env.DeleteLocalRef(cls)
		}
		return nil, "", err
	}
	if cls == nil {
		return nil, "", errors.New(errors.PhaseResolve, errors.KindClassNotFound).
			Detail("object class unavailable").Build()
	}
	return cls, "", nil
}

// Call invokes an instance method on the proxy and decodes the result as
// T. The signature is derived from T and the argument types unless
// WithSignature set one; resolution uses the object's class unless
// WithClass set one. Both overrides are consumed.
func Call[T signature.Type](o *Object, methodName string, args ...Arg) (T, error) {
	var zero T
	observeCall(kindCall)
	defer o.clearOverrides()
	if o.IsNil() {
		return zero, fail(kindCall, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return zero, fail(kindCall, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = deriveSignature(signature.Of[T](), args)
	}

	target, err := o.resolveCall(env, methodName, sig)
	if err != nil {
		return zero, fail(kindCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return zero, fail(kindCall, err)
	}
	out, err := callAs[T](env, instanceCall{env, o.ref, target.Method, jargs})
	if err != nil {
		return zero, fail(kindCall, err)
	}
	return out, nil
}

// CallVoid invokes a void instance method on the proxy.
func CallVoid(o *Object, methodName string, args ...Arg) error {
	observeCall(kindCall)
	defer o.clearOverrides()
	if o.IsNil() {
		return fail(kindCall, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return fail(kindCall, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = deriveSignature(signature.Void, args)
	}

	target, err := o.resolveCall(env, methodName, sig)
	if err != nil {
		return fail(kindCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return fail(kindCall, err)
	}
	env.CallVoidMethod(o.ref, target.Method, jargs)
	if err := checkPending(env); err != nil {
		return fail(kindCall, err)
	}
	return nil
}

// CallObject invokes an instance method whose result is a managed object
// and wraps it in a Local-strength proxy. Without a WithSignature override
// the return descriptor defaults to java/lang/Object.
func CallObject(o *Object, methodName string, args ...Arg) (*Object, error) {
	observeCall(kindCall)
	defer o.clearOverrides()
	if o.IsNil() {
		return nil, fail(kindCall, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindCall, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = deriveSignature(signature.Object, args)
	}

	target, err := o.resolveCall(env, methodName, sig)
	if err != nil {
		return nil, fail(kindCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return nil, fail(kindCall, err)
	}
	ref := env.CallObjectMethod(o.ref, target.Method, jargs)
	if err := checkPending(env); err != nil {
		if ref != nil {
			env.DeleteLocalRef(ref)
		}
		return nil, fail(kindCall, err)
	}
	return AdoptLocal(ref), nil
}

// resolveCall resolves methodName against the proxy's dispatch class. The
// returned Target owns the class reference.
func (o *Object) resolveCall(env jnibridge.Env, methodName, sig string) (*Target, error) {
	cls, className, err := o.targetClass(env)
	if err != nil {
		return nil, err
	}
	mid, err := lookupMethod(env, cls, className, methodName, sig, false)
	if err != nil {
		env.DeleteLocalRef(cls)
		return nil, err
	}
	return &Target{Class: cls, Method: mid}, nil
}

// resolveField resolves fieldName against the proxy's dispatch class. The
// returned Target owns the class reference.
func (o *Object) resolveField(env jnibridge.Env, fieldName, sig string) (*Target, error) {
	cls, className, err := o.targetClass(env)
	if err != nil {
		return nil, err
	}
	fid, err := lookupField(env, cls, className, fieldName, sig, false)
	if err != nil {
		env.DeleteLocalRef(cls)
		return nil, err
	}
	return &Target{Class: cls, Field: fid}, nil
}
