package bridge

import (
	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
	"github.com/vmlink/jnibridge/signature"
)

// invoker abstracts the underlying call primitive per return category so
// static calls, instance calls, and field reads share one decode path.
type invoker interface {
	Object() jnibridge.Ref
	Bool() bool
	Byte() int8
	Char() uint8
	Short() int16
	Int() int32
	Long() int64
	Float() float32
	Double() float64
}

type staticCall struct {
	env  jnibridge.Env
	cls  jnibridge.Ref
	mid  jnibridge.MethodID
	args []jnibridge.Value
}

func (c staticCall) Object() jnibridge.Ref {
	return c.env.CallStaticObjectMethod(c.cls, c.mid, c.args)
}
func (c staticCall) Bool() bool { return c.env.CallStaticBooleanMethod(c.cls, c.mid, c.args) }
func (c staticCall) Byte() int8 { return c.env.CallStaticByteMethod(c.cls, c.mid, c.args) }
func (c staticCall) Char() uint8 { return c.env.CallStaticCharMethod(c.cls, c.mid, c.args) }
func (c staticCall) Short() int16 { return c.env.CallStaticShortMethod(c.cls, c.mid, c.args) }
func (c staticCall) Int() int32 { return c.env.CallStaticIntMethod(c.cls, c.mid, c.args) }
func (c staticCall) Long() int64 { return c.env.CallStaticLongMethod(c.cls, c.mid, c.args) }
func (c staticCall) Float() float32 { return c.env.CallStaticFloatMethod(c.cls, c.mid, c.args) }
func (c staticCall) Double() float64 { return c.env.CallStaticDoubleMethod(c.cls, c.mid, c.args) }

type instanceCall struct {
	env  jnibridge.Env
	obj  jnibridge.Ref
	mid  jnibridge.MethodID
	args []jnibridge.Value
}

func (c instanceCall) Object() jnibridge.Ref {
	return c.env.CallObjectMethod(c.obj, c.mid, c.args)
}
func (c instanceCall) Bool() bool { return c.env.CallBooleanMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Byte() int8 { return c.env.CallByteMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Char() uint8 { return c.env.CallCharMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Short() int16 { return c.env.CallShortMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Int() int32 { return c.env.CallIntMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Long() int64 { return c.env.CallLongMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Float() float32 { return c.env.CallFloatMethod(c.obj, c.mid, c.args) }
func (c instanceCall) Double() float64 { return c.env.CallDoubleMethod(c.obj, c.mid, c.args) }

type fieldGet struct {
	env jnibridge.Env
	obj jnibridge.Ref
	fid jnibridge.FieldID
}

func (g fieldGet) Object() jnibridge.Ref { return g.env.GetObjectField(g.obj, g.fid) }
func (g fieldGet) Bool() bool { return g.env.GetBooleanField(g.obj, g.fid) }
func (g fieldGet) Byte() int8 { return g.env.GetByteField(g.obj, g.fid) }
func (g fieldGet) Char() uint8 { return g.env.GetCharField(g.obj, g.fid) }
func (g fieldGet) Short() int16 { return g.env.GetShortField(g.obj, g.fid) }
func (g fieldGet) Int() int32 { return g.env.GetIntField(g.obj, g.fid) }
func (g fieldGet) Long() int64 { return g.env.GetLongField(g.obj, g.fid) }
func (g fieldGet) Float() float32 { return g.env.GetFloatField(g.obj, g.fid) }
func (g fieldGet) Double() float64 { return g.env.GetDoubleField(g.obj, g.fid) }

type staticFieldGet struct {
	env jnibridge.Env
	cls jnibridge.Ref
	fid jnibridge.FieldID
}

func (g staticFieldGet) Object() jnibridge.Ref { return g.env.GetStaticObjectField(g.cls, g.fid) }
func (g staticFieldGet) Bool() bool { return g.env.GetStaticBooleanField(g.cls, g.fid) }
func (g staticFieldGet) Byte() int8 { return g.env.GetStaticByteField(g.cls, g.fid) }
func (g staticFieldGet) Char() uint8 { return g.env.GetStaticCharField(g.cls, g.fid) }
func (g staticFieldGet) Short() int16 { return g.env.GetStaticShortField(g.cls, g.fid) }
func (g staticFieldGet) Int() int32 { return g.env.GetStaticIntField(g.cls, g.fid) }
func (g staticFieldGet) Long() int64 { return g.env.GetStaticLongField(g.cls, g.fid) }
func (g staticFieldGet) Float() float32 { return g.env.GetStaticFloatField(g.cls, g.fid) }
func (g staticFieldGet) Double() float64 { return g.env.GetStaticDoubleField(g.cls, g.fid) }

// callAs dispatches through inv for T's return category, checks the
// runtime's exception state, and decodes the result. Object-category
// results are decoded and their local reference released before returning.
func callAs[T signature.Type](env jnibridge.Env, inv invoker) (T, error) {
	var zero T
	var out any

	switch any(zero).(type) {
	case bool:
		out = inv.Bool()
	case int8:
		out = inv.Byte()
	case uint8:
		out = inv.Char()
	case int16:
		out = inv.Short()
	case int32:
		out = inv.Int()
	case int64:
		out = inv.Long()
	case float32:
		out = inv.Float()
	case float64:
		out = inv.Double()
	default:
		ref := inv.Object()
		if err := checkPending(env); err != nil {
			if ref != nil {
				env.DeleteLocalRef(ref)
			}
			return zero, err
		}
		res, err := decodeAs[T](env, ref)
		if ref != nil {
			env.DeleteLocalRef(ref)
		}
		return res, err
	}

	if err := checkPending(env); err != nil {
		return zero, err
	}
	return out.(T), nil
}

// CallStatic invokes a static method on className and decodes the result
// as T. When sig is empty the signature is derived from T and the argument
// types; pass an explicit signature to disambiguate overloads.
func CallStatic[T signature.Type](className, methodName, sig string, args ...Arg) (T, error) {
	var zero T
	observeCall(kindStaticCall)

	env, err := AttachEnv()
	if err != nil {
		return zero, fail(kindStaticCall, err)
	}
	if sig == "" {
		sig = deriveSignature(signature.Of[T](), args)
	}

	target, err := resolveStaticMethod(env, className, methodName, sig)
	if err != nil {
		return zero, fail(kindStaticCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return zero, fail(kindStaticCall, err)
	}
	out, err := callAs[T](env, staticCall{env, target.Class, target.Method, jargs})
	if err != nil {
		return zero, fail(kindStaticCall, err)
	}
	return out, nil
}

// CallStaticVoid invokes a void static method on className.
func CallStaticVoid(className, methodName, sig string, args ...Arg) error {
	observeCall(kindStaticCall)

	env, err := AttachEnv()
	if err != nil {
		return fail(kindStaticCall, err)
	}
	if sig == "" {
		sig = deriveSignature(signature.Void, args)
	}

	target, err := resolveStaticMethod(env, className, methodName, sig)
	if err != nil {
		return fail(kindStaticCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return fail(kindStaticCall, err)
	}
	env.CallStaticVoidMethod(target.Class, target.Method, jargs)
	if err := checkPending(env); err != nil {
		return fail(kindStaticCall, err)
	}
	return nil
}

// CallStaticObject invokes a static method whose result is a managed
// object and wraps it in a Local-strength proxy. When sig is empty the
// return descriptor defaults to java/lang/Object.
func CallStaticObject(className, methodName, sig string, args ...Arg) (*Object, error) {
	observeCall(kindStaticCall)

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindStaticCall, err)
	}
	if sig == "" {
		sig = deriveSignature(signature.Object, args)
	}

	target, err := resolveStaticMethod(env, className, methodName, sig)
	if err != nil {
		return nil, fail(kindStaticCall, err)
	}
	defer target.Release(env)

	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return nil, fail(kindStaticCall, err)
	}
	ref := env.CallStaticObjectMethod(target.Class, target.Method, jargs)
	if err := checkPending(env); err != nil {
		if ref != nil {
			env.DeleteLocalRef(ref)
		}
		return nil, fail(kindStaticCall, err)
	}
	return AdoptLocal(ref), nil
}

// NewObject constructs an instance of className and returns a
// Global-strength proxy. The constructor's local result is promoted to a
// global reference before the call's transients are torn down, so the
// proxy outlives the frame and the creating thread. When sig is empty it
// is derived from the argument types with a void return.
func NewObject(className, sig string, args ...Arg) (*Object, error) {
	observeCall(kindConstructor)

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindConstructor, err)
	}
	if sig == "" {
		sig = deriveSignature(signature.Void, args)
	}

	target, err := resolveMethod(env, className, "<init>", sig)
	if err != nil {
		return nil, fail(kindConstructor, err)
	}
	defer target.Release(env)

	obj, err := construct(env, target, args)
	if err != nil {
		return nil, fail(kindConstructor, err)
	}
	return obj, nil
}

// NewObjectOf constructs an instance from a class reference the caller
// already holds, for callbacks that receive a jclass directly.
func NewObjectOf(class jnibridge.Ref, sig string, args ...Arg) (*Object, error) {
	observeCall(kindConstructor)

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindConstructor, err)
	}
	if sig == "" {
		sig = deriveSignature(signature.Void, args)
	}

	target, err := resolveMethodOn(env, class, "", "<init>", sig)
	if err != nil {
		return nil, fail(kindConstructor, err)
	}

	obj, err := construct(env, target, args)
	if err != nil {
		return nil, fail(kindConstructor, err)
	}
	return obj, nil
}

func construct(env jnibridge.Env, target *Target, args []Arg) (*Object, error) {
	f := newFrame(env, len(args))
	defer f.release()

	jargs, err := convertArgs(env, f, args)
	if err != nil {
		return nil, err
	}

	local := env.NewObject(target.Class, target.Method, jargs)
	if err := checkPending(env); err != nil {
		if local != nil {
			env.DeleteLocalRef(local)
		}
		return nil, err
	}
	if local == nil {
		return nil, errors.RuntimeException("constructor returned null")
	}

	global := env.NewGlobalRef(local)
	env.DeleteLocalRef(local)
	if err := checkPending(env); err != nil {
		if global != nil {
			env.DeleteGlobalRef(global)
		}
		return nil, err
	}
	metricGlobalRefs.Inc()
	return &Object{ref: global, strength: Global}, nil
}
