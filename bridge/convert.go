package bridge

import (
	"fmt"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
	"github.com/vmlink/jnibridge/signature"
)

// Arg is one call argument paired with its derived descriptor.
type Arg struct {
	desc  string
	value any
}

// Val builds an argument from a native value. The descriptor is derived
// from the static type; types outside the conversion registry do not
// compile.
func Val[T signature.Type](v T) Arg {
	return Arg{desc: signature.Of[T](), value: v}
}

// Obj builds an argument from an object proxy. The wrapped reference is
// passed as-is; the proxy keeps ownership, so it is never tracked as a
// call transient.
func Obj(o *Object) Arg {
	return Arg{desc: signature.Object, value: o}
}

// ObjAs is Obj with an explicit parameter descriptor, for methods declared
// against a concrete class rather than java/lang/Object.
func ObjAs(o *Object, desc string) Arg {
	return Arg{desc: desc, value: o}
}

// deriveSignature assembles the method signature for a return descriptor
// and an argument list, in declaration order.
func deriveSignature(ret string, args []Arg) string {
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = a.desc
	}
	return signature.Method(ret, params...)
}

// convertArgs converts an argument list outbound. Every reference created
// here is tracked with the frame so it is released when the call ends.
func convertArgs(env jnibridge.Env, f *frame, args []Arg) ([]jnibridge.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]jnibridge.Value, len(args))
	for i, a := range args {
		v, err := convertArg(env, f, a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func convertArg(env jnibridge.Env, f *frame, a Arg) (jnibridge.Value, error) {
	switch v := a.value.(type) {
	case bool, int8, uint8, int16, int32, int64, float32, float64:
		return v, nil

	case string:
		str := env.NewStringUTF(v)
		f.track(str)
		if err := checkPending(env); err != nil {
			return nil, err
		}
		return str, nil

	case []byte:
		arr := env.NewByteArray(len(v))
		f.track(arr)
		if arr != nil {
			env.SetByteArrayRegion(arr, v)
		}
		if err := checkPending(env); err != nil {
			return nil, err
		}
		return arr, nil

	case []float32:
		arr := env.NewFloatArray(len(v))
		f.track(arr)
		if arr != nil {
			env.SetFloatArrayRegion(arr, v)
		}
		if err := checkPending(env); err != nil {
			return nil, err
		}
		return arr, nil

	case []string:
		return encodeStringArray(env, f, v)

	case map[string]string:
		return encodeStringMap(env, f, v)

	case *Object:
		if v == nil {
			return jnibridge.Ref(nil), nil
		}
		return v.ref, nil

	default:
		return nil, errors.Unsupported(errors.PhaseConvert,
			fmt.Sprintf("argument type %T", a.value))
	}
}

func encodeStringArray(env jnibridge.Env, f *frame, data []string) (jnibridge.Ref, error) {
	strCls, err := findClass(env, "java/lang/String")
	if err != nil {
		return nil, err
	}
	arr := env.NewObjectArray(len(data), strCls)
	env.DeleteLocalRef(strCls)
	f.track(arr)
	if err := checkPending(env); err != nil {
		return nil, err
	}

	for i, s := range data {
		str := env.NewStringUTF(s)
		if err := checkPending(env); err != nil {
			if str != nil {
				env.DeleteLocalRef(str)
			}
			return nil, err
		}
		env.SetObjectArrayElement(arr, i, str)
		if str != nil {
			env.DeleteLocalRef(str)
		}
		if err := checkPending(env); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

// encodeStringMap builds a java/util/HashMap by resolving its constructor
// and put member through the regular resolution path.
func encodeStringMap(env jnibridge.Env, f *frame, data map[string]string) (jnibridge.Ref, error) {
	target, err := resolveMethod(env, "java/util/HashMap", "<init>", "()V")
	if err != nil {
		return nil, err
	}
	defer target.Release(env)

	m := env.NewObject(target.Class, target.Method, nil)
	f.track(m)
	if err := checkPending(env); err != nil {
		return nil, err
	}

	put, err := lookupMethod(env, target.Class, "java/util/HashMap", "put",
		"(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;", false)
	if err != nil {
		return nil, err
	}

	for k, v := range data {
		key := env.NewStringUTF(k)
		val := env.NewStringUTF(v)
		if err := checkPending(env); err != nil {
			if key != nil {
				env.DeleteLocalRef(key)
			}
			if val != nil {
				env.DeleteLocalRef(val)
			}
			return nil, err
		}
		prev := env.CallObjectMethod(m, put, []jnibridge.Value{key, val})
		if prev != nil {
			env.DeleteLocalRef(prev)
		}
		if key != nil {
			env.DeleteLocalRef(key)
		}
		if val != nil {
			env.DeleteLocalRef(val)
		}
		if err := checkPending(env); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// decodeAs decodes an object-category result reference into T. A null
// reference decodes to the type's zero value. The reference itself stays
// owned by the caller.
func decodeAs[T signature.Type](env jnibridge.Env, ref jnibridge.Ref) (T, error) {
	var zero T
	var out any
	var err error

	switch any(zero).(type) {
	case string:
		out, err = decodeString(env, ref)
	case []byte:
		out, err = decodeBytes(env, ref)
	case []float32:
		out, err = decodeFloats(env, ref)
	case []string:
		out, err = decodeStrings(env, ref)
	case map[string]string:
		out, err = decodeStringMap(env, ref)
	default:
		return zero, errors.Unsupported(errors.PhaseConvert,
			fmt.Sprintf("result type %T", zero))
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

func decodeString(env jnibridge.Env, ref jnibridge.Ref) (string, error) {
	if ref == nil {
		return "", nil
	}
	s := env.GetStringUTF(ref)
	if err := checkPending(env); err != nil {
		return "", err
	}
	return s, nil
}

func decodeBytes(env jnibridge.Env, ref jnibridge.Ref) ([]byte, error) {
	if ref == nil {
		return nil, nil
	}
	out := env.GetByteArrayRegion(ref)
	if err := checkPending(env); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeFloats(env jnibridge.Env, ref jnibridge.Ref) ([]float32, error) {
	if ref == nil {
		return nil, nil
	}
	out := env.GetFloatArrayRegion(ref)
	if err := checkPending(env); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeStrings(env jnibridge.Env, ref jnibridge.Ref) ([]string, error) {
	if ref == nil {
		return nil, nil
	}
	n := env.GetArrayLength(ref)
	if err := checkPending(env); err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		elem := env.GetObjectArrayElement(ref, i)
		if err := checkPending(env); err != nil {
			if elem != nil {
				env.DeleteLocalRef(elem)
			}
			return nil, err
		}
		s, err := decodeString(env, elem)
		if elem != nil {
			env.DeleteLocalRef(elem)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeStringMap walks a java/util/Map through keySet/toArray/get, a
// recursive use of the resolution and invocation path.
func decodeStringMap(env jnibridge.Env, ref jnibridge.Ref) (map[string]string, error) {
	out := map[string]string{}
	if ref == nil {
		return out, nil
	}

	keySet, err := resolveMethod(env, "java/util/Map", "keySet", "()Ljava/util/Set;")
	if err != nil {
		return nil, err
	}
	defer keySet.Release(env)
	get, err := resolveMethod(env, "java/util/Map", "get",
		"(Ljava/lang/Object;)Ljava/lang/Object;")
	if err != nil {
		return nil, err
	}
	defer get.Release(env)
	toArray, err := resolveMethod(env, "java/util/Set", "toArray", "()[Ljava/lang/Object;")
	if err != nil {
		return nil, err
	}
	defer toArray.Release(env)

	set := env.CallObjectMethod(ref, keySet.Method, nil)
	if err := checkPending(env); err != nil {
		return nil, err
	}
	if set == nil {
		return out, nil
	}
	defer env.DeleteLocalRef(set)

	keys := env.CallObjectMethod(set, toArray.Method, nil)
	if err := checkPending(env); err != nil {
		return nil, err
	}
	if keys == nil {
		return out, nil
	}
	defer env.DeleteLocalRef(keys)

	n := env.GetArrayLength(keys)
	for i := 0; i < n; i++ {
		keyRef := env.GetObjectArrayElement(keys, i)
		if err := checkPending(env); err != nil {
			if keyRef != nil {
				env.DeleteLocalRef(keyRef)
			}
			return nil, err
		}
		valRef := env.CallObjectMethod(ref, get.Method, []jnibridge.Value{keyRef})
		if err := checkPending(env); err != nil {
			if keyRef != nil {
				env.DeleteLocalRef(keyRef)
			}
			if valRef != nil {
				env.DeleteLocalRef(valRef)
			}
			return nil, err
		}
		key, err := decodeString(env, keyRef)
		if err == nil {
			var val string
			val, err = decodeString(env, valRef)
			if err == nil {
				out[key] = val
			}
		}
		if keyRef != nil {
			env.DeleteLocalRef(keyRef)
		}
		if valRef != nil {
			env.DeleteLocalRef(valRef)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
