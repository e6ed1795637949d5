package bridge

import (
	"github.com/vmlink/jnibridge/internal/fakejni"
)

// newTestVM builds a fake runtime with the classes the tests dispatch
// against and installs it as the process runtime handle.
func newTestVM() *fakejni.VM {
	vm := fakejni.New()

	echo := func(env *fakejni.Env, recv *fakejni.Obj, args []any) any {
		return args[0]
	}
	echoCls := vm.Class("com/example/Echo")
	for _, sig := range []string{
		"(Z)Z", "(B)B", "(C)C", "(S)S", "(I)I", "(J)J", "(F)F", "(D)D",
		"(Ljava/lang/String;)Ljava/lang/String;",
		"([B)[B", "([F)[F",
		"([Ljava/lang/String;)[Ljava/lang/String;",
		"(Ljava/util/HashMap;)Ljava/util/HashMap;",
	} {
		echoCls.Static("echo", sig, echo)
	}

	vm.Class("com/example/Calculator").
		Ctor("()V", func(env *fakejni.Env, recv *fakejni.Obj, args []any) any {
			return &fakejni.Obj{Class: "com/example/Calculator", Fields: map[string]any{}}
		}).
		Method("add", "(II)I", func(env *fakejni.Env, recv *fakejni.Obj, args []any) any {
			return args[0].(int32) + args[1].(int32)
		}).
		Static("fail", "()V", func(env *fakejni.Env, recv *fakejni.Obj, args []any) any {
			env.Throw("java.lang.IllegalStateException: boom")
			return nil
		}).
		Field("count", "I").
		Field("label", "Ljava/lang/String;").
		StaticField("limit", "I", int32(100))

	Init(vm)
	return vm
}
