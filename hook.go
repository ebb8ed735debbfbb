package hookbatch

import (
	"errors"

	"github.com/k2io/hookbatch/internal/patch"
)

// HookPair is one requested hook operation.
type HookPair struct {
	// caller-owned location holding the function address; the engine
	// rewrites it to the trampoline on attach and back on detach
	Slot *uintptr
	// address of the replacement function, never dereferenced here
	Replacement uintptr
}

// Actionable reports whether all addresses of the pair are present.
func (p HookPair) Actionable() bool {
	return p.Slot != nil && *p.Slot != 0 && p.Replacement != 0
}

// Batch is the ordered set of pairs submitted in one manager call.
type Batch []HookPair

// Pair builds a HookPair.
func Pair(slot *uintptr, replacement uintptr) HookPair {
	return HookPair{Slot: slot, Replacement: replacement}
}

// Zip pairs slots and replacements by position.
func Zip(slots []*uintptr, replacements []uintptr) (Batch, error) {
	if len(slots) != len(replacements) {
		return nil, ErrLengthMismatch
	}
	b := make(Batch, len(slots))
	for i := range slots {
		b[i] = Pair(slots[i], replacements[i])
	}
	return b, nil
}

// Actionable counts the pairs that would be handed to the engine.
func (b Batch) Actionable() int {
	n := 0
	for _, p := range b {
		if p.Actionable() {
			n++
		}
	}
	return n
}

func (b Batch) anyActionable() bool {
	for _, p := range b {
		if p.Actionable() {
			return true
		}
	}
	return false
}

var (
	// ErrLengthMismatch means slots and replacements differ in length
	ErrLengthMismatch = errors.New("slots and replacements differ in length")
	// ErrNoEngine means no patching engine is available on this platform
	ErrNoEngine = errors.New("no patching engine available")
	// ErrDoubleHook means already hooked
	ErrDoubleHook = errors.New("double hook")
	// ErrHookNotFound means the hook not found
	ErrHookNotFound = errors.New("hook not found")
	// ErrHookMismatch means the hook was installed with another replacement
	ErrHookMismatch = errors.New("hook installed with different replacement")
	// ErrRelativeAddr means the prologue cannot be moved to a trampoline
	ErrRelativeAddr = patch.ErrRelativeAddr
	// ErrFunctionTooSmall means the function ends inside the patch area
	ErrFunctionTooSmall = patch.ErrTooSmall
	// ErrUndecodable means the prologue could not be disassembled
	ErrUndecodable = patch.ErrUndecodable
	// ErrNotSupported means the engine cannot coordinate the thread
	ErrNotSupported = errors.New("operation not supported")
	// ErrTrampolineMemory means no executable memory for a trampoline
	ErrTrampolineMemory = patch.ErrNoMemory
)
