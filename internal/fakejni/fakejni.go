// Package fakejni is an in-memory managed runtime used by the bridge tests.
//
// It implements the jnibridge.VM and jnibridge.Env contracts over plain Go
// objects and keeps a full reference-accounting ledger, so tests can assert
// that a call leaked nothing, double-freed nothing, and never touched a
// deleted reference. The java.lang and java.util surface the bridge itself
// resolves is preloaded; tests register their own classes with Class.
//
// An Env is not safe for concurrent use, matching the per-thread contract
// it fakes.
package fakejni

import (
	"fmt"

	"github.com/vmlink/jnibridge"
)

// Obj is one fake managed object. Exactly one payload field is meaningful
// for a given class; Fields holds instance field values by name.
type Obj struct {
	Class   string
	Str     string
	Bytes   []byte
	Floats  []float32
	Elems   []*Obj
	Entries map[string]string
	Int     int32
	Message string
	Fields  map[string]any

	cls *Class // set when this Obj stands for a loaded class
}

// NewString builds a fake java/lang/String.
func NewString(s string) *Obj {
	return &Obj{Class: "java/lang/String", Str: s}
}

// NewThrowable builds a fake throwable carrying msg.
func NewThrowable(msg string) *Obj {
	return &Obj{Class: "java/lang/Throwable", Message: msg}
}

// Method implements one fake method body. recv is nil for static methods
// and constructors; args carry primitives as Go values and object
// arguments as *Obj (nil for null).
type Method func(env *Env, recv *Obj, args []any) any

type methodInfo struct {
	class *Class
	name  string
	sig   string
	fn    Method
}

type fieldInfo struct {
	class  *Class
	name   string
	sig    string
	static bool
}

// Class is a fake class definition. Its builder methods return the class
// for chaining.
type Class struct {
	name          string
	methods       map[string]*methodInfo
	staticMethods map[string]*methodInfo
	fields        map[string]*fieldInfo
	staticFields  map[string]*fieldInfo
	staticValues  map[string]any
	natives       []jnibridge.NativeMethod
}

// Method defines an instance method.
func (c *Class) Method(name, sig string, fn Method) *Class {
	c.methods[name+sig] = &methodInfo{class: c, name: name, sig: sig, fn: fn}
	return c
}

// Static defines a static method.
func (c *Class) Static(name, sig string, fn Method) *Class {
	c.staticMethods[name+sig] = &methodInfo{class: c, name: name, sig: sig, fn: fn}
	return c
}

// Ctor defines a constructor; fn must return the new *Obj.
func (c *Class) Ctor(sig string, fn Method) *Class {
	return c.Method("<init>", sig, fn)
}

// Field declares an instance field.
func (c *Class) Field(name, sig string) *Class {
	c.fields[name+sig] = &fieldInfo{class: c, name: name, sig: sig}
	return c
}

// StaticField declares a static field with an initial value. Object-typed
// values are given as *Obj.
func (c *Class) StaticField(name, sig string, value any) *Class {
	c.staticFields[name+sig] = &fieldInfo{class: c, name: name, sig: sig, static: true}
	c.staticValues[name] = value
	return c
}

// Natives returns the native entry points registered against this class.
func (c *Class) Natives() []jnibridge.NativeMethod {
	return c.natives
}

// Stats is the reference-accounting ledger.
type Stats struct {
	LiveLocal   int // local refs created minus deleted
	LiveGlobal  int // global refs created minus deleted
	TotalLocal  int
	TotalGlobal int
	DoubleFrees int // deletes of an already-deleted or wrong-kind ref
	BadRefUses  int // uses of a deleted or foreign ref
	AttachCalls int
	DetachCalls int
}

// VM is the fake runtime handle. Attach always hands back the same Env,
// mirroring the idempotent-attach contract, unless FailAttach is set.
type VM struct {
	env *Env

	FailAttach   bool
	FailRegister bool
}

// New creates a fake runtime with the built-in class surface loaded.
func New() *VM {
	vm := &VM{}
	vm.env = &Env{vm: vm, classes: map[string]*Class{}}
	registerBuiltins(vm.env)
	return vm
}

// Attach implements jnibridge.VM.
func (vm *VM) Attach() (jnibridge.Env, error) {
	if vm.FailAttach {
		return nil, fmt.Errorf("attach rejected")
	}
	vm.env.stats.AttachCalls++
	return vm.env, nil
}

// Detach implements jnibridge.VM.
func (vm *VM) Detach() error {
	vm.env.stats.DetachCalls++
	return nil
}

// Class defines (or returns) a fake class by name.
func (vm *VM) Class(name string) *Class {
	return vm.env.Class(name)
}

// Env returns the fake execution context directly, for tests that drive
// the contract without going through Attach.
func (vm *VM) Env() *Env {
	return vm.env
}

// Stats returns a copy of the accounting ledger.
func (vm *VM) Stats() Stats {
	return vm.env.stats
}

// Env is the fake execution context.
type Env struct {
	vm      *VM
	classes map[string]*Class
	pending *Obj
	stats   Stats
}

// Class defines (or returns) a fake class by name.
func (e *Env) Class(name string) *Class {
	if c, ok := e.classes[name]; ok {
		return c
	}
	c := &Class{
		name:          name,
		methods:       map[string]*methodInfo{},
		staticMethods: map[string]*methodInfo{},
		fields:        map[string]*fieldInfo{},
		staticFields:  map[string]*fieldInfo{},
		staticValues:  map[string]any{},
	}
	e.classes[name] = c
	return c
}

// Throw sets the pending exception to a throwable carrying msg.
func (e *Env) Throw(msg string) {
	e.pending = NewThrowable(msg)
}

// ref is one live reference slot. Deleting it twice or using it after
// deletion is recorded in the ledger rather than crashing the test.
type ref struct {
	obj     *Obj
	global  bool
	deleted bool
}

func (e *Env) newLocal(o *Obj) jnibridge.Ref {
	if o == nil {
		return nil
	}
	e.stats.LiveLocal++
	e.stats.TotalLocal++
	return &ref{obj: o}
}

func (e *Env) newGlobal(o *Obj) jnibridge.Ref {
	if o == nil {
		return nil
	}
	e.stats.LiveGlobal++
	e.stats.TotalGlobal++
	return &ref{obj: o, global: true}
}

// deref resolves a reference to its object, recording misuse.
func (e *Env) deref(r jnibridge.Ref) *Obj {
	if r == nil {
		return nil
	}
	rr, ok := r.(*ref)
	if !ok {
		e.stats.BadRefUses++
		return nil
	}
	if rr.deleted {
		e.stats.BadRefUses++
		return nil
	}
	return rr.obj
}
