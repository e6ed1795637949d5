// Package jnibridge provides a type-directed calling layer into a Java
// Virtual Machine reached over the JNI boundary.
//
// Native Go code can invoke methods, read and write fields, and construct
// objects of the managed runtime without hand-writing JNI signature strings,
// without tracking local/global reference lifetimes by hand, and without
// translating the runtime's exception model manually.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	jnibridge/           Root package with the managed-runtime contract (VM, Env)
//	├── bridge/          Conversion registry, resolver, dispatcher, object proxy
//	├── signature/       JVM type descriptors and method signature derivation
//	├── errors/          Structured error types for the failure taxonomy
//	└── internal/fakejni Handle-accounting fake runtime used by the tests
//
// # Quick Start
//
// Initialize once with a VM implementation, then call:
//
//	bridge.Init(vm)
//
//	n, err := bridge.CallStatic[int32](
//	    "java/lang/Integer", "parseInt", "", bridge.Val("42"))
//
//	obj, err := bridge.NewObject("java/util/ArrayList", "")
//	defer obj.Release()
//	err = bridge.CallVoid(obj, "clear")
//
// Signatures are derived from the Go argument and return types; pass an
// explicit signature string to override the derivation (for example when the
// target method takes a boxed or interface-typed parameter).
//
// # Reference Ownership
//
// Every reference obtained from the runtime carries an ownership strength.
// References created while marshaling arguments are transient and released
// when the call returns, on every path. Constructor results are promoted to
// global references and wrapped in an Object proxy that the caller releases
// explicitly. Weak proxies never release the underlying reference.
//
// # Thread Model
//
// The layer is synchronous and reentrant. Each native thread attaches its
// own execution context; nothing is shared between threads except the
// process-wide VM handle, which is written during startup and teardown only.
// Global-strength proxies may cross threads; local references must not.
package jnibridge
