package jnibridge

// Ref is an opaque reference to an object inside the managed runtime.
// A nil Ref is the runtime's null reference.
//
// Validity is governed by how the reference was obtained: local references
// die with the call frame that created them and must not cross threads,
// global references live until explicitly deleted and may cross threads.
type Ref any

// MethodID identifies a resolved method within its declaring class.
// It stays valid for the lifetime of the class and carries no ownership.
type MethodID any

// FieldID identifies a resolved field within its declaring class.
type FieldID any

// Value is a single already-converted call argument: a Go primitive passed
// by value, or a Ref for object-typed parameters.
type Value any

// NativeMethod describes one native entry point to register with a class.
type NativeMethod struct {
	Name      string
	Signature string
	Fn        any
}

// VM is the process-wide handle to the managed runtime.
//
// Attach binds the calling thread to the runtime and returns its execution
// context. Attaching an already-attached thread must succeed and return the
// same context (idempotent). Detach unbinds the calling thread.
type VM interface {
	Attach() (Env, error)
	Detach() error
}

// Env is the per-thread execution context granting access to the runtime's
// call interface. An Env must only be used on the thread it was attached on
// and never stored beyond the synchronous extent of an operation.
//
// Lookup operations return a nil result on failure and may additionally set
// the pending-exception flag; callers must check the exception state after
// every call since a null result and a pending failure are otherwise
// indistinguishable.
type Env interface {
	// Class and member lookup.
	FindClass(name string) Ref
	GetObjectClass(obj Ref) Ref
	GetMethodID(class Ref, name, sig string) MethodID
	GetStaticMethodID(class Ref, name, sig string) MethodID
	GetFieldID(class Ref, name, sig string) FieldID
	GetStaticFieldID(class Ref, name, sig string) FieldID

	// Construction.
	NewObject(class Ref, ctor MethodID, args []Value) Ref

	// Instance calls, one per return category.
	CallObjectMethod(obj Ref, m MethodID, args []Value) Ref
	CallVoidMethod(obj Ref, m MethodID, args []Value)
	CallBooleanMethod(obj Ref, m MethodID, args []Value) bool
	CallByteMethod(obj Ref, m MethodID, args []Value) int8
	CallCharMethod(obj Ref, m MethodID, args []Value) uint8
	CallShortMethod(obj Ref, m MethodID, args []Value) int16
	CallIntMethod(obj Ref, m MethodID, args []Value) int32
	CallLongMethod(obj Ref, m MethodID, args []Value) int64
	CallFloatMethod(obj Ref, m MethodID, args []Value) float32
	CallDoubleMethod(obj Ref, m MethodID, args []Value) float64

	// Static calls, one per return category.
	CallStaticObjectMethod(class Ref, m MethodID, args []Value) Ref
	CallStaticVoidMethod(class Ref, m MethodID, args []Value)
	CallStaticBooleanMethod(class Ref, m MethodID, args []Value) bool
	CallStaticByteMethod(class Ref, m MethodID, args []Value) int8
	CallStaticCharMethod(class Ref, m MethodID, args []Value) uint8
	CallStaticShortMethod(class Ref, m MethodID, args []Value) int16
	CallStaticIntMethod(class Ref, m MethodID, args []Value) int32
	CallStaticLongMethod(class Ref, m MethodID, args []Value) int64
	CallStaticFloatMethod(class Ref, m MethodID, args []Value) float32
	CallStaticDoubleMethod(class Ref, m MethodID, args []Value) float64

	// Instance field reads.
	GetObjectField(obj Ref, f FieldID) Ref
	GetBooleanField(obj Ref, f FieldID) bool
	GetByteField(obj Ref, f FieldID) int8
	GetCharField(obj Ref, f FieldID) uint8
	GetShortField(obj Ref, f FieldID) int16
	GetIntField(obj Ref, f FieldID) int32
	GetLongField(obj Ref, f FieldID) int64
	GetFloatField(obj Ref, f FieldID) float32
	GetDoubleField(obj Ref, f FieldID) float64

	// Static field reads.
	GetStaticObjectField(class Ref, f FieldID) Ref
	GetStaticBooleanField(class Ref, f FieldID) bool
	GetStaticByteField(class Ref, f FieldID) int8
	GetStaticCharField(class Ref, f FieldID) uint8
	GetStaticShortField(class Ref, f FieldID) int16
	GetStaticIntField(class Ref, f FieldID) int32
	GetStaticLongField(class Ref, f FieldID) int64
	GetStaticFloatField(class Ref, f FieldID) float32
	GetStaticDoubleField(class Ref, f FieldID) float64

	// Instance field writes.
	SetObjectField(obj Ref, f FieldID, v Ref)
	SetBooleanField(obj Ref, f FieldID, v bool)
	SetByteField(obj Ref, f FieldID, v int8)
	SetCharField(obj Ref, f FieldID, v uint8)
	SetShortField(obj Ref, f FieldID, v int16)
	SetIntField(obj Ref, f FieldID, v int32)
	SetLongField(obj Ref, f FieldID, v int64)
	SetFloatField(obj Ref, f FieldID, v float32)
	SetDoubleField(obj Ref, f FieldID, v float64)

	// Strings.
	NewStringUTF(s string) Ref
	GetStringUTF(str Ref) string

	// Object arrays.
	NewObjectArray(length int, elemClass Ref) Ref
	SetObjectArrayElement(arr Ref, index int, v Ref)
	GetObjectArrayElement(arr Ref, index int) Ref
	GetArrayLength(arr Ref) int

	// Primitive arrays.
	NewByteArray(length int) Ref
	SetByteArrayRegion(arr Ref, data []byte)
	GetByteArrayRegion(arr Ref) []byte
	NewFloatArray(length int) Ref
	SetFloatArrayRegion(arr Ref, data []float32)
	GetFloatArrayRegion(arr Ref) []float32

	// Reference lifetime.
	NewLocalRef(obj Ref) Ref
	DeleteLocalRef(obj Ref)
	NewGlobalRef(obj Ref) Ref
	DeleteGlobalRef(obj Ref)

	// Exception protocol. ExceptionDescribe is diagnostic only; retrieving
	// the message requires invoking Throwable.getMessage through this same
	// interface.
	ExceptionCheck() bool
	ExceptionOccurred() Ref
	ExceptionDescribe()
	ExceptionClear()

	// Native entry-point registration.
	RegisterNatives(class Ref, methods []NativeMethod) error
}
