package bridge

import (
	"sync/atomic"

	"github.com/vmlink/jnibridge"
	"github.com/vmlink/jnibridge/errors"
)

type vmSlot struct {
	vm jnibridge.VM
}

var currentVM atomic.Pointer[vmSlot]

// Init stores the process-wide runtime handle. A later call overwrites the
// previous handle; subsequent attaches go to the new runtime.
func Init(vm jnibridge.VM) {
	currentVM.Store(&vmSlot{vm: vm})
	Logger().Info("runtime handle initialized")
}

// AttachEnv binds the calling thread to the runtime and returns its
// execution context. Attaching an already-attached thread returns the same
// context. The context is only valid on the calling thread.
func AttachEnv() (jnibridge.Env, error) {
	slot := currentVM.Load()
	if slot == nil || slot.vm == nil {
		return nil, errors.AttachFailed("runtime handle not initialized", nil)
	}
	env, err := slot.vm.Attach()
	if err != nil {
		return nil, errors.AttachFailed("attach current thread", err)
	}
	return env, nil
}

// DetachEnv unbinds the calling thread from the runtime. Contexts obtained
// on this thread become invalid.
func DetachEnv() error {
	slot := currentVM.Load()
	if slot == nil || slot.vm == nil {
		return errors.AttachFailed("runtime handle not initialized", nil)
	}
	if err := slot.vm.Detach(); err != nil {
		return errors.DetachFailed(err)
	}
	return nil
}
