package bridge

import (
	"go.uber.org/zap"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
)

// checkPending converts a pending runtime exception into a native error and
// clears the runtime's exception state. Returns nil when nothing is pending.
func checkPending(env jnibridge.Env) error {
	if !env.ExceptionCheck() {
		return nil
	}
	thr := env.ExceptionOccurred()
	env.ExceptionDescribe()
	env.ExceptionClear()
	msg := throwableMessage(env, thr)
	if thr != nil {
		env.DeleteLocalRef(thr)
	}
	return errors.RuntimeException(msg)
}

// drainPending is the teardown variant. An exception discovered only here
// was not the call's primary outcome, so it is logged and swallowed rather
// than raised into the caller's error path.
func drainPending(env jnibridge.Env) {
	if !env.ExceptionCheck() {
		return
	}
	thr := env.ExceptionOccurred()
	env.ExceptionDescribe()
	env.ExceptionClear()
	msg := throwableMessage(env, thr)
	if thr != nil {
		env.DeleteLocalRef(thr)
	}
	Logger().Warn("exception pending at call teardown",
		zap.String("message", msg))
}

// throwableMessage decodes a throwable's message by calling its getMessage
// member, which reuses the invocation machinery from inside the failure
// path. Any exception raised while decoding is cleared and the decode gives
// up instead of recursing.
func throwableMessage(env jnibridge.Env, thr jnibridge.Ref) string {
	if thr == nil {
		return ""
	}

	cls := env.FindClass("java/lang/Throwable")
	if env.ExceptionCheck() {
		env.ExceptionClear()
		return ""
	}
	if cls == nil {
		return ""
	}
	defer env.DeleteLocalRef(cls)

	mid := env.GetMethodID(cls, "getMessage", "()Ljava/lang/String;")
	if env.ExceptionCheck() {
		env.ExceptionClear()
		return ""
	}
	if mid == nil {
		return ""
	}

	str := env.CallObjectMethod(thr, mid, nil)
	if env.ExceptionCheck() {
		env.ExceptionClear()
	}
	if str == nil {
		return ""
	}
	defer env.DeleteLocalRef(str)

	return env.GetStringUTF(str)
}
