package bridge

import (
	"fmt"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
	"github.com/vmlink/jnibridge/signature"
)

// GetStatic reads a static field of className as T. When sig is empty the
// field descriptor is derived from T.
func GetStatic[T signature.Type](className, fieldName, sig string) (T, error) {
	var zero T
	observeCall(kindGetField)

	env, err := AttachEnv()
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	if sig == "" {
		sig = signature.Of[T]()
	}

	target, err := resolveStaticField(env, className, fieldName, sig)
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	defer target.Release(env)

	f := newFrame(env, 0)
	defer f.release()

	out, err := callAs[T](env, staticFieldGet{env, target.Class, target.Field})
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	return out, nil
}

// GetStaticObject reads an object-valued static field and wraps it in a
// Local-strength proxy. sig is the field descriptor and must be supplied;
// object fields are declared against a concrete class.
func GetStaticObject(className, fieldName, sig string) (*Object, error) {
	observeCall(kindGetField)

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindGetField, err)
	}
	if sig == "" {
		sig = signature.Object
	}

	target, err := resolveStaticField(env, className, fieldName, sig)
	if err != nil {
		return nil, fail(kindGetField, err)
	}
	defer target.Release(env)

	ref := env.GetStaticObjectField(target.Class, target.Field)
	if err := checkPending(env); err != nil {
		if ref != nil {
			env.DeleteLocalRef(ref)
		}
		return nil, fail(kindGetField, err)
	}
	return AdoptLocal(ref), nil
}

// Get reads an instance field of the proxy as T. WithClass and
// WithSignature overrides are consumed, as for calls.
func Get[T signature.Type](o *Object, fieldName string) (T, error) {
	var zero T
	observeCall(kindGetField)
	defer o.clearOverrides()
	if o.IsNil() {
		return zero, fail(kindGetField, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = signature.Of[T]()
	}

	target, err := o.resolveField(env, fieldName, sig)
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	defer target.Release(env)

	f := newFrame(env, 0)
	defer f.release()

	out, err := callAs[T](env, fieldGet{env, o.ref, target.Field})
	if err != nil {
		return zero, fail(kindGetField, err)
	}
	return out, nil
}

// GetObject reads an object-valued instance field and wraps it in a
// Local-strength proxy.
func GetObject(o *Object, fieldName string) (*Object, error) {
	observeCall(kindGetField)
	defer o.clearOverrides()
	if o.IsNil() {
		return nil, fail(kindGetField, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return nil, fail(kindGetField, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = signature.Object
	}

	target, err := o.resolveField(env, fieldName, sig)
	if err != nil {
		return nil, fail(kindGetField, err)
	}
	defer target.Release(env)

	ref := env.GetObjectField(o.ref, target.Field)
	if err := checkPending(env); err != nil {
		if ref != nil {
			env.DeleteLocalRef(ref)
		}
		return nil, fail(kindGetField, err)
	}
	return AdoptLocal(ref), nil
}

// Set writes an instance field of the proxy. WithClass and WithSignature
// overrides are consumed.
func Set[T signature.Type](o *Object, fieldName string, value T) error {
	observeCall(kindSetField)
	defer o.clearOverrides()
	if o.IsNil() {
		return fail(kindSetField, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return fail(kindSetField, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = signature.Of[T]()
	}

	target, err := o.resolveField(env, fieldName, sig)
	if err != nil {
		return fail(kindSetField, err)
	}
	defer target.Release(env)

	f := newFrame(env, 1)
	defer f.release()

	if err := setField(env, f, o.ref, target.Field, any(value)); err != nil {
		return fail(kindSetField, err)
	}
	return nil
}

// SetObject writes an object-valued instance field from another proxy. A
// nil proxy writes null.
func SetObject(o *Object, fieldName string, value *Object) error {
	observeCall(kindSetField)
	defer o.clearOverrides()
	if o.IsNil() {
		return fail(kindSetField, nullReceiver())
	}

	env, err := AttachEnv()
	if err != nil {
		return fail(kindSetField, err)
	}
	sig := o.sigOverride
	if sig == "" {
		sig = signature.Object
	}

	target, err := o.resolveField(env, fieldName, sig)
	if err != nil {
		return fail(kindSetField, err)
	}
	defer target.Release(env)

	f := newFrame(env, 0)
	defer f.release()

	var ref jnibridge.Ref
	if value != nil {
		ref = value.ref
	}
	env.SetObjectField(o.ref, target.Field, ref)
	if err := checkPending(env); err != nil {
		return fail(kindSetField, err)
	}
	return nil
}

func setField(env jnibridge.Env, f *frame, obj jnibridge.Ref, fid jnibridge.FieldID, value any) error {
	switch v := value.(type) {
	case bool:
		env.SetBooleanField(obj, fid, v)
	case int8:
		env.SetByteField(obj, fid, v)
	case uint8:
		env.SetCharField(obj, fid, v)
	case int16:
		env.SetShortField(obj, fid, v)
	case int32:
		env.SetIntField(obj, fid, v)
	case int64:
		env.SetLongField(obj, fid, v)
	case float32:
		env.SetFloatField(obj, fid, v)
	case float64:
		env.SetDoubleField(obj, fid, v)
	case string, []byte, []float32, []string, map[string]string:
		converted, err := convertArg(env, f, Arg{value: v})
		if err != nil {
			return err
		}
		ref, _ := converted.(jnibridge.Ref)
		env.SetObjectField(obj, fid, ref)
	default:
		return errors.Unsupported(errors.PhaseConvert,
			fmt.Sprintf("field type %T", value))
	}
	return checkPending(env)
}
