package bridge

import (
	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
)

// Target is a resolved class plus member. It owns its class reference
// unless the class was supplied by the caller, and releases it exactly
// once. A Target is valid only within the call that resolved it; caching
// across calls requires promoting the class reference first.
type Target struct {
	Class  jnibridge.Ref
	Method jnibridge.MethodID
	Field  jnibridge.FieldID

	borrowedClass bool
	released      bool
}

// Release frees the owned class reference. Safe to call more than once.
func (t *Target) Release(env jnibridge.Env) {
	if t == nil || t.released {
		return
	}
	t.released = true
	if !t.borrowedClass && t.Class != nil {
		env.DeleteLocalRef(t.Class)
	}
}

// findClass looks up a class by name. A runtime exception raised by the
// lookup is drained first so it becomes the cause, not a leftover that
// would poison the next call.
func findClass(env jnibridge.Env, name string) (jnibridge.Ref, error) {
	cls := env.FindClass(name)
	if err := checkPending(env); err != nil {
		if cls != nil {
			env.DeleteLocalRef(cls)
		}
		return nil, errors.ClassNotFound(name, err)
	}
	if cls == nil {
		return nil, errors.ClassNotFound(name, nil)
	}
	return cls, nil
}

func lookupMethod(env jnibridge.Env, cls jnibridge.Ref, className, name, sig string, static bool) (jnibridge.MethodID, error) {
	var mid jnibridge.MethodID
	if static {
		mid = env.GetStaticMethodID(cls, name, sig)
	} else {
		mid = env.GetMethodID(cls, name, sig)
	}
	if err := checkPending(env); err != nil {
		return nil, errors.MemberNotFound(className, name, sig, err)
	}
	if mid == nil {
		return nil, errors.MemberNotFound(className, name, sig, nil)
	}
	return mid, nil
}

func lookupField(env jnibridge.Env, cls jnibridge.Ref, className, name, sig string, static bool) (jnibridge.FieldID, error) {
	var fid jnibridge.FieldID
	if static {
		fid = env.GetStaticFieldID(cls, name, sig)
	} else {
		fid = env.GetFieldID(cls, name, sig)
	}
	if err := checkPending(env); err != nil {
		return nil, errors.MemberNotFound(className, name, sig, err)
	}
	if fid == nil {
		return nil, errors.MemberNotFound(className, name, sig, nil)
	}
	return fid, nil
}

func resolveStaticMethod(env jnibridge.Env, className, name, sig string) (*Target, error) {
	cls, err := findClass(env, className)
	if err != nil {
		return nil, err
	}
	mid, err := lookupMethod(env, cls, className, name, sig, true)
	if err != nil {
		env.DeleteLocalRef(cls)
		return nil, err
	}
	return &Target{Class: cls, Method: mid}, nil
}

func resolveMethod(env jnibridge.Env, className, name, sig string) (*Target, error) {
	cls, err := findClass(env, className)
	if err != nil {
		return nil, err
	}
	mid, err := lookupMethod(env, cls, className, name, sig, false)
	if err != nil {
		env.DeleteLocalRef(cls)
		return nil, err
	}
	return &Target{Class: cls, Method: mid}, nil
}

// resolveMethodOn resolves an instance method against a class reference the
// caller already holds; the Target does not take ownership of it.
func resolveMethodOn(env jnibridge.Env, cls jnibridge.Ref, className, name, sig string) (*Target, error) {
	mid, err := lookupMethod(env, cls, className, name, sig, false)
	if err != nil {
		return nil, err
	}
	return &Target{Class: cls, Method: mid, borrowedClass: true}, nil
}

func resolveStaticField(env jnibridge.Env, className, name, sig string) (*Target, error) {
	cls, err := findClass(env, className)
	if err != nil {
		return nil, err
	}
	fid, err := lookupField(env, cls, className, name, sig, true)
	if err != nil {
		env.DeleteLocalRef(cls)
		return nil, err
	}
	return &Target{Class: cls, Field: fid}, nil
}
