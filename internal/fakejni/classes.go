package fakejni

import (
	"sort"
	"strconv"
)

// registerBuiltins loads the java.lang and java.util surface the bridge
// resolves on its own: string construction, throwable message decoding,
// and the HashMap/Map/Set trio used by map conversion. Integer is included
// because nearly every test touches it.
func registerBuiltins(e *Env) {
	e.Class("java/lang/Object")
	e.Class("java/lang/String")
	e.Class("java/lang/Class")

	e.Class("java/lang/Throwable").
		Method("getMessage", "()Ljava/lang/String;", func(env *Env, recv *Obj, args []any) any {
			if recv == nil {
				return nil
			}
			return NewString(recv.Message)
		})

	e.Class("java/lang/Integer").
		Static("parseInt", "(Ljava/lang/String;)I", func(env *Env, recv *Obj, args []any) any {
			return parseInt(env, args[0])
		}).
		Static("valueOf", "(Ljava/lang/String;)Ljava/lang/Integer;", func(env *Env, recv *Obj, args []any) any {
			n := parseInt(env, args[0])
			if env.ExceptionCheck() {
				return nil
			}
			return &Obj{Class: "java/lang/Integer", Int: n}
		}).
		Method("intValue", "()I", func(env *Env, recv *Obj, args []any) any {
			if recv == nil {
				return int32(0)
			}
			return recv.Int
		})

	mapGet := func(env *Env, recv *Obj, args []any) any {
		key, _ := args[0].(*Obj)
		if recv == nil || recv.Entries == nil || key == nil {
			env.Throw("java.lang.NullPointerException")
			return nil
		}
		val, ok := recv.Entries[key.Str]
		if !ok {
			return nil
		}
		return NewString(val)
	}
	mapKeySet := func(env *Env, recv *Obj, args []any) any {
		if recv == nil || recv.Entries == nil {
			env.Throw("java.lang.NullPointerException")
			return nil
		}
		keys := make([]string, 0, len(recv.Entries))
		for k := range recv.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elems := make([]*Obj, len(keys))
		for i, k := range keys {
			elems[i] = NewString(k)
		}
		return &Obj{Class: "java/util/Set", Elems: elems}
	}
	mapPut := func(env *Env, recv *Obj, args []any) any {
		key, _ := args[0].(*Obj)
		val, _ := args[1].(*Obj)
		if recv == nil || recv.Entries == nil || key == nil {
			env.Throw("java.lang.NullPointerException")
			return nil
		}
		var s string
		if val != nil {
			s = val.Str
		}
		recv.Entries[key.Str] = s
		return nil
	}

	e.Class("java/util/Map").
		Method("get", "(Ljava/lang/Object;)Ljava/lang/Object;", mapGet).
		Method("keySet", "()Ljava/util/Set;", mapKeySet)

	e.Class("java/util/HashMap").
		Ctor("()V", func(env *Env, recv *Obj, args []any) any {
			return &Obj{Class: "java/util/HashMap", Entries: map[string]string{}}
		}).
		Method("put", "(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;", mapPut).
		Method("get", "(Ljava/lang/Object;)Ljava/lang/Object;", mapGet).
		Method("keySet", "()Ljava/util/Set;", mapKeySet)

	e.Class("java/util/Set").
		Method("toArray", "()[Ljava/lang/Object;", func(env *Env, recv *Obj, args []any) any {
			if recv == nil {
				env.Throw("java.lang.NullPointerException")
				return nil
			}
			return &Obj{Class: "[Ljava/lang/Object;", Elems: recv.Elems}
		})
}

func parseInt(env *Env, arg any) int32 {
	s, ok := arg.(*Obj)
	if !ok {
		env.Throw("java.lang.NumberFormatException: null")
		return 0
	}
	n, err := strconv.ParseInt(s.Str, 10, 32)
	if err != nil {
		env.Throw("java.lang.NumberFormatException: For input string: " + strconv.Quote(s.Str))
		return 0
	}
	return int32(n)
}
