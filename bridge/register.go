package bridge

import (
	"go.uber.org/zap"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
)

// RegisterNatives registers native entry points with className, so managed
// code can call back into native functions by name and signature.
func RegisterNatives(className string, methods []jnibridge.NativeMethod) error {
	observeCall(kindRegister)

	env, err := AttachEnv()
	if err != nil {
		return fail(kindRegister, err)
	}

	cls, err := findClass(env, className)
	if err != nil {
		return fail(kindRegister, err)
	}
	defer env.DeleteLocalRef(cls)

	if err := env.RegisterNatives(cls, methods); err != nil {
		drainPending(env)
		return fail(kindRegister, errors.Registration(className, err))
	}
	if err := checkPending(env); err != nil {
		return fail(kindRegister, errors.Registration(className, err))
	}

	Logger().Debug("registered natives",
		zap.String("class", className),
		zap.Int("count", len(methods)))
	return nil
}
