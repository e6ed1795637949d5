// Package bridge dispatches calls from native code into a managed runtime.
//
// The package wires together the pieces of one dispatch: a process-wide
// runtime handle (Init), per-thread execution contexts (AttachEnv), class
// and member resolution, type-directed value conversion, and transient
// reference accounting. Method signatures are derived from the static Go
// types of the call unless an explicit signature is supplied:
//
//	bridge.Init(vm)
//	n, err := bridge.CallStatic[int32]("java/lang/Integer", "parseInt", "",
//	    bridge.Val("42"))
//
// Object-typed results come back as *Object proxies that own their
// underlying reference and must be released by the final holder:
//
//	obj, err := bridge.NewObject("java/util/ArrayList", "")
//	defer obj.Release()
//	err = bridge.CallVoid(obj, "clear")
//
// Every failure is an *errors.Error carrying the pipeline phase and kind,
// so callers can branch with stderrors.Is against a phase/kind pair.
package bridge
