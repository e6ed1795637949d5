package fakejni

import (
	"fmt"

	"github.com/vmlink/jnibridge"
)

// Class and member lookup.

func (e *Env) FindClass(name string) jnibridge.Ref {
	c, ok := e.classes[name]
	if !ok {
		e.Throw("java.lang.NoClassDefFoundError: " + name)
		return nil
	}
	return e.newLocal(&Obj{Class: "java/lang/Class", cls: c})
}

func (e *Env) GetObjectClass(obj jnibridge.Ref) jnibridge.Ref {
	o := e.deref(obj)
	if o == nil {
		e.Throw("java.lang.NullPointerException")
		return nil
	}
	// An instance of an unregistered class still has a class object.
	return e.newLocal(&Obj{Class: "java/lang/Class", cls: e.Class(o.Class)})
}

func (e *Env) classOf(r jnibridge.Ref) *Class {
	o := e.deref(r)
	if o == nil {
		return nil
	}
	return o.cls
}

func (e *Env) GetMethodID(class jnibridge.Ref, name, sig string) jnibridge.MethodID {
	c := e.classOf(class)
	if c == nil {
		e.Throw("java.lang.NoSuchMethodError: " + name)
		return nil
	}
	mi, ok := c.methods[name+sig]
	if !ok {
		e.Throw("java.lang.NoSuchMethodError: " + c.name + "." + name + sig)
		return nil
	}
	return mi
}

func (e *Env) GetStaticMethodID(class jnibridge.Ref, name, sig string) jnibridge.MethodID {
	c := e.classOf(class)
	if c == nil {
		e.Throw("java.lang.NoSuchMethodError: " + name)
		return nil
	}
	mi, ok := c.staticMethods[name+sig]
	if !ok {
		e.Throw("java.lang.NoSuchMethodError: " + c.name + "." + name + sig)
		return nil
	}
	return mi
}

func (e *Env) GetFieldID(class jnibridge.Ref, name, sig string) jnibridge.FieldID {
	c := e.classOf(class)
	if c == nil {
		e.Throw("java.lang.NoSuchFieldError: " + name)
		return nil
	}
	fi, ok := c.fields[name+sig]
	if !ok {
		e.Throw("java.lang.NoSuchFieldError: " + c.name + "." + name)
		return nil
	}
	return fi
}

func (e *Env) GetStaticFieldID(class jnibridge.Ref, name, sig string) jnibridge.FieldID {
	c := e.classOf(class)
	if c == nil {
		e.Throw("java.lang.NoSuchFieldError: " + name)
		return nil
	}
	fi, ok := c.staticFields[name+sig]
	if !ok {
		e.Throw("java.lang.NoSuchFieldError: " + c.name + "." + name)
		return nil
	}
	return fi
}

// invoke runs a method body, translating reference arguments to *Obj. A
// deleted reference passed as an argument is recorded as misuse.
func (e *Env) invoke(m jnibridge.MethodID, recv *Obj, args []jnibridge.Value) any {
	mi, ok := m.(*methodInfo)
	if !ok || mi == nil {
		e.Throw("java.lang.NoSuchMethodError: invalid method id")
		return nil
	}
	gargs := make([]any, len(args))
	for i, a := range args {
		if a == nil {
			continue
		}
		if r, isRef := a.(*ref); isRef {
			if r.deleted {
				e.stats.BadRefUses++
				continue
			}
			gargs[i] = r.obj
			continue
		}
		gargs[i] = a
	}
	return mi.fn(e, recv, gargs)
}

// Construction.

func (e *Env) NewObject(class jnibridge.Ref, ctor jnibridge.MethodID, args []jnibridge.Value) jnibridge.Ref {
	out := e.invoke(ctor, nil, args)
	if o, ok := out.(*Obj); ok {
		return e.newLocal(o)
	}
	return nil
}

// Instance calls.

func (e *Env) CallObjectMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) jnibridge.Ref {
	out := e.invoke(m, e.deref(obj), args)
	if o, ok := out.(*Obj); ok {
		return e.newLocal(o)
	}
	return nil
}

func (e *Env) CallVoidMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) {
	e.invoke(m, e.deref(obj), args)
}

func (e *Env) CallBooleanMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) bool {
	v, _ := e.invoke(m, e.deref(obj), args).(bool)
	return v
}

func (e *Env) CallByteMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int8 {
	v, _ := e.invoke(m, e.deref(obj), args).(int8)
	return v
}

func (e *Env) CallCharMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) uint8 {
	v, _ := e.invoke(m, e.deref(obj), args).(uint8)
	return v
}

func (e *Env) CallShortMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int16 {
	v, _ := e.invoke(m, e.deref(obj), args).(int16)
	return v
}

func (e *Env) CallIntMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int32 {
	v, _ := e.invoke(m, e.deref(obj), args).(int32)
	return v
}

func (e *Env) CallLongMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int64 {
	v, _ := e.invoke(m, e.deref(obj), args).(int64)
	return v
}

func (e *Env) CallFloatMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) float32 {
	v, _ := e.invoke(m, e.deref(obj), args).(float32)
	return v
}

func (e *Env) CallDoubleMethod(obj jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) float64 {
	v, _ := e.invoke(m, e.deref(obj), args).(float64)
	return v
}

// Static calls.

func (e *Env) CallStaticObjectMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) jnibridge.Ref {
	out := e.invoke(m, nil, args)
	if o, ok := out.(*Obj); ok {
		return e.newLocal(o)
	}
	return nil
}

func (e *Env) CallStaticVoidMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) {
	e.invoke(m, nil, args)
}

func (e *Env) CallStaticBooleanMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) bool {
	v, _ := e.invoke(m, nil, args).(bool)
	return v
}

func (e *Env) CallStaticByteMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int8 {
	v, _ := e.invoke(m, nil, args).(int8)
	return v
}

func (e *Env) CallStaticCharMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) uint8 {
	v, _ := e.invoke(m, nil, args).(uint8)
	return v
}

func (e *Env) CallStaticShortMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int16 {
	v, _ := e.invoke(m, nil, args).(int16)
	return v
}

func (e *Env) CallStaticIntMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int32 {
	v, _ := e.invoke(m, nil, args).(int32)
	return v
}

func (e *Env) CallStaticLongMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) int64 {
	v, _ := e.invoke(m, nil, args).(int64)
	return v
}

func (e *Env) CallStaticFloatMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) float32 {
	v, _ := e.invoke(m, nil, args).(float32)
	return v
}

func (e *Env) CallStaticDoubleMethod(class jnibridge.Ref, m jnibridge.MethodID, args []jnibridge.Value) float64 {
	v, _ := e.invoke(m, nil, args).(float64)
	return v
}

// Instance field access. Values live in the object's Fields map.

func (e *Env) fieldValue(obj jnibridge.Ref, f jnibridge.FieldID) any {
	fi, ok := f.(*fieldInfo)
	if !ok || fi == nil {
		e.Throw("java.lang.NoSuchFieldError: invalid field id")
		return nil
	}
	o := e.deref(obj)
	if o == nil {
		e.Throw("java.lang.NullPointerException")
		return nil
	}
	if o.Fields == nil {
		return nil
	}
	return o.Fields[fi.name]
}

func (e *Env) setFieldValue(obj jnibridge.Ref, f jnibridge.FieldID, v any) {
	fi, ok := f.(*fieldInfo)
	if !ok || fi == nil {
		e.Throw("java.lang.NoSuchFieldError: invalid field id")
		return
	}
	o := e.deref(obj)
	if o == nil {
		e.Throw("java.lang.NullPointerException")
		return
	}
	if o.Fields == nil {
		o.Fields = map[string]any{}
	}
	o.Fields[fi.name] = v
}

func (e *Env) GetObjectField(obj jnibridge.Ref, f jnibridge.FieldID) jnibridge.Ref {
	if o, ok := e.fieldValue(obj, f).(*Obj); ok {
		return e.newLocal(o)
	}
	return nil
}

func (e *Env) GetBooleanField(obj jnibridge.Ref, f jnibridge.FieldID) bool {
	v, _ := e.fieldValue(obj, f).(bool)
	return v
}

func (e *Env) GetByteField(obj jnibridge.Ref, f jnibridge.FieldID) int8 {
	v, _ := e.fieldValue(obj, f).(int8)
	return v
}

func (e *Env) GetCharField(obj jnibridge.Ref, f jnibridge.FieldID) uint8 {
	v, _ := e.fieldValue(obj, f).(uint8)
	return v
}

func (e *Env) GetShortField(obj jnibridge.Ref, f jnibridge.FieldID) int16 {
	v, _ := e.fieldValue(obj, f).(int16)
	return v
}

func (e *Env) GetIntField(obj jnibridge.Ref, f jnibridge.FieldID) int32 {
	v, _ := e.fieldValue(obj, f).(int32)
	return v
}

func (e *Env) GetLongField(obj jnibridge.Ref, f jnibridge.FieldID) int64 {
	v, _ := e.fieldValue(obj, f).(int64)
	return v
}

func (e *Env) GetFloatField(obj jnibridge.Ref, f jnibridge.FieldID) float32 {
	v, _ := e.fieldValue(obj, f).(float32)
	return v
}

func (e *Env) GetDoubleField(obj jnibridge.Ref, f jnibridge.FieldID) float64 {
	v, _ := e.fieldValue(obj, f).(float64)
	return v
}

// Static field reads. Values live on the class.

func (e *Env) staticValue(class jnibridge.Ref, f jnibridge.FieldID) any {
	fi, ok := f.(*fieldInfo)
	if !ok || fi == nil || !fi.static {
		e.Throw("java.lang.NoSuchFieldError: invalid field id")
		return nil
	}
	return fi.class.staticValues[fi.name]
}

func (e *Env) GetStaticObjectField(class jnibridge.Ref, f jnibridge.FieldID) jnibridge.Ref {
	if o, ok := e.staticValue(class, f).(*Obj); ok {
		return e.newLocal(o)
	}
	return nil
}

func (e *Env) GetStaticBooleanField(class jnibridge.Ref, f jnibridge.FieldID) bool {
	v, _ := e.staticValue(class, f).(bool)
	return v
}

func (e *Env) GetStaticByteField(class jnibridge.Ref, f jnibridge.FieldID) int8 {
	v, _ := e.staticValue(class, f).(int8)
	return v
}

func (e *Env) GetStaticCharField(class jnibridge.Ref, f jnibridge.FieldID) uint8 {
	v, _ := e.staticValue(class, f).(uint8)
	return v
}

func (e *Env) GetStaticShortField(class jnibridge.Ref, f jnibridge.FieldID) int16 {
	v, _ := e.staticValue(class, f).(int16)
	return v
}

func (e *Env) GetStaticIntField(class jnibridge.Ref, f jnibridge.FieldID) int32 {
	v, _ := e.staticValue(class, f).(int32)
	return v
}

func (e *Env) GetStaticLongField(class jnibridge.Ref, f jnibridge.FieldID) int64 {
	v, _ := e.staticValue(class, f).(int64)
	return v
}

func (e *Env) GetStaticFloatField(class jnibridge.Ref, f jnibridge.FieldID) float32 {
	v, _ := e.staticValue(class, f).(float32)
	return v
}

func (e *Env) GetStaticDoubleField(class jnibridge.Ref, f jnibridge.FieldID) float64 {
	v, _ := e.staticValue(class, f).(float64)
	return v
}

// Instance field writes.

func (e *Env) SetObjectField(obj jnibridge.Ref, f jnibridge.FieldID, v jnibridge.Ref) {
	e.setFieldValue(obj, f, e.deref(v))
}

func (e *Env) SetBooleanField(obj jnibridge.Ref, f jnibridge.FieldID, v bool) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetByteField(obj jnibridge.Ref, f jnibridge.FieldID, v int8) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetCharField(obj jnibridge.Ref, f jnibridge.FieldID, v uint8) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetShortField(obj jnibridge.Ref, f jnibridge.FieldID, v int16) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetIntField(obj jnibridge.Ref, f jnibridge.FieldID, v int32) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetLongField(obj jnibridge.Ref, f jnibridge.FieldID, v int64) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetFloatField(obj jnibridge.Ref, f jnibridge.FieldID, v float32) {
	e.setFieldValue(obj, f, v)
}

func (e *Env) SetDoubleField(obj jnibridge.Ref, f jnibridge.FieldID, v float64) {
	e.setFieldValue(obj, f, v)
}

// Strings.

func (e *Env) NewStringUTF(s string) jnibridge.Ref {
	return e.newLocal(NewString(s))
}

func (e *Env) GetStringUTF(str jnibridge.Ref) string {
	o := e.deref(str)
	if o == nil {
		return ""
	}
	return o.Str
}

// Object arrays.

func (e *Env) NewObjectArray(length int, elemClass jnibridge.Ref) jnibridge.Ref {
	return e.newLocal(&Obj{Class: "[Ljava/lang/Object;", Elems: make([]*Obj, length)})
}

func (e *Env) SetObjectArrayElement(arr jnibridge.Ref, index int, v jnibridge.Ref) {
	o := e.deref(arr)
	if o == nil || index < 0 || index >= len(o.Elems) {
		e.Throw("java.lang.ArrayIndexOutOfBoundsException")
		return
	}
	o.Elems[index] = e.deref(v)
}

func (e *Env) GetObjectArrayElement(arr jnibridge.Ref, index int) jnibridge.Ref {
	o := e.deref(arr)
	if o == nil || index < 0 || index >= len(o.Elems) {
		e.Throw("java.lang.ArrayIndexOutOfBoundsException")
		return nil
	}
	return e.newLocal(o.Elems[index])
}

func (e *Env) GetArrayLength(arr jnibridge.Ref) int {
	o := e.deref(arr)
	switch {
	case o == nil:
		return 0
	case o.Elems != nil:
		return len(o.Elems)
	case o.Bytes != nil:
		return len(o.Bytes)
	case o.Floats != nil:
		return len(o.Floats)
	}
	return 0
}

// Primitive arrays.

func (e *Env) NewByteArray(length int) jnibridge.Ref {
	return e.newLocal(&Obj{Class: "[B", Bytes: make([]byte, length)})
}

func (e *Env) SetByteArrayRegion(arr jnibridge.Ref, data []byte) {
	o := e.deref(arr)
	if o == nil || len(data) > len(o.Bytes) {
		e.Throw("java.lang.ArrayIndexOutOfBoundsException")
		return
	}
	copy(o.Bytes, data)
}

func (e *Env) GetByteArrayRegion(arr jnibridge.Ref) []byte {
	o := e.deref(arr)
	if o == nil {
		return nil
	}
	out := make([]byte, len(o.Bytes))
	copy(out, o.Bytes)
	return out
}

func (e *Env) NewFloatArray(length int) jnibridge.Ref {
	return e.newLocal(&Obj{Class: "[F", Floats: make([]float32, length)})
}

func (e *Env) SetFloatArrayRegion(arr jnibridge.Ref, data []float32) {
	o := e.deref(arr)
	if o == nil || len(data) > len(o.Floats) {
		e.Throw("java.lang.ArrayIndexOutOfBoundsException")
		return
	}
	copy(o.Floats, data)
}

func (e *Env) GetFloatArrayRegion(arr jnibridge.Ref) []float32 {
	o := e.deref(arr)
	if o == nil {
		return nil
	}
	out := make([]float32, len(o.Floats))
	copy(out, o.Floats)
	return out
}

// Reference lifetime.

func (e *Env) NewLocalRef(obj jnibridge.Ref) jnibridge.Ref {
	return e.newLocal(e.deref(obj))
}

func (e *Env) DeleteLocalRef(obj jnibridge.Ref) {
	rr, ok := obj.(*ref)
	if !ok || rr == nil {
		e.stats.BadRefUses++
		return
	}
	if rr.deleted || rr.global {
		e.stats.DoubleFrees++
		return
	}
	rr.deleted = true
	e.stats.LiveLocal--
}

func (e *Env) NewGlobalRef(obj jnibridge.Ref) jnibridge.Ref {
	return e.newGlobal(e.deref(obj))
}

func (e *Env) DeleteGlobalRef(obj jnibridge.Ref) {
	rr, ok := obj.(*ref)
	if !ok || rr == nil {
		e.stats.BadRefUses++
		return
	}
	if rr.deleted || !rr.global {
		e.stats.DoubleFrees++
		return
	}
	rr.deleted = true
	e.stats.LiveGlobal--
}

// Exception protocol.

func (e *Env) ExceptionCheck() bool {
	return e.pending != nil
}

func (e *Env) ExceptionOccurred() jnibridge.Ref {
	if e.pending == nil {
		return nil
	}
	return e.newLocal(e.pending)
}

func (e *Env) ExceptionDescribe() {}

func (e *Env) ExceptionClear() {
	e.pending = nil
}

// Native entry-point registration.

func (e *Env) RegisterNatives(class jnibridge.Ref, methods []jnibridge.NativeMethod) error {
	if e.vm.FailRegister {
		return fmt.Errorf("register rejected")
	}
	c := e.classOf(class)
	if c == nil {
		return fmt.Errorf("invalid class reference")
	}
	c.natives = append(c.natives, methods...)
	return nil
}
