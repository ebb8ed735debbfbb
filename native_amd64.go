//go:build linux || windows

// Copyright (C) 2022 K2 Cyber Security Inc.
/*
Native patching engine.

Attaching a hook rewrites the entry of the TARGET function with a jump to
the REPLACEMENT function. The whole instructions overwritten by that jump
are moved to a TRAMPOLINE, followed by a jump back to the first untouched
instruction of the target, so calling the trampoline behaves like calling
the original target.

***Target function***
 - JMP rel32 to the replacement when it is within 2GiB
 - MOV R11, replacement; JMP R11 otherwise
 - the remaining bytes of the last overwritten instruction are INT3

***Trampoline***
 - the moved instructions
 - JMP [RIP+0] back to the target

The caller's slot holds the target address before attach and the
trampoline address after it. Detach reverses both.
*/

package hookbatch

import (
	"sync"

	"github.com/k2io/hookbatch/internal/patch"
)

// prologue bytes decoded when looking for the patch area
const lookWindow = 32

type hook struct {
	target      uintptr
	replacement uintptr
	trampoline  uintptr
	// the original instructions at target
	saved []byte
	// the jump written over them
	patched []byte
}

type nativeEngine struct {
	// held from Begin until Commit
	mu    sync.Mutex
	arena patch.Arena
	// hooks applied with trampoline addresses as keys
	hooks map[uintptr]*hook
	// the same hooks with target addresses as keys
	targets map[uintptr]*hook
}

var native = newNativeEngine()

// NativeEngine returns the process wide engine patching x86-64 code in
// place. Only one of its transactions is open at a time.
func NativeEngine() Engine {
	return native
}

func newNativeEngine() *nativeEngine {
	return &nativeEngine{
		hooks:   make(map[uintptr]*hook),
		targets: make(map[uintptr]*hook),
	}
}

func (e *nativeEngine) Begin() Transaction {
	e.mu.Lock()
	return &nativeTx{e: e}
}

type nativeOp struct {
	h      *hook
	slot   *uintptr
	attach bool
}

type nativeTx struct {
	e    *nativeEngine
	ops  []nativeOp
	err  error
	done bool
}

// fail records the first request error; Commit reports it.
func (t *nativeTx) fail(err error) ErrorCode {
	if t.err == nil {
		t.err = err
	}
	return CodeOf(err)
}

func (t *nativeTx) RegisterThread(th Thread) ErrorCode {
	if t.done {
		return ErrorInvalidOperation
	}
	// other threads cannot be suspended from here
	if th != CurrentThread() {
		return t.fail(ErrNotSupported)
	}
	return NoError
}

func (t *nativeTx) pending(target uintptr) bool {
	for _, op := range t.ops {
		if op.h.target == target {
			return true
		}
	}
	return false
}

func (t *nativeTx) Attach(slot *uintptr, replacement uintptr) ErrorCode {
	if t.done {
		return ErrorInvalidOperation
	}
	if slot == nil || *slot == 0 || replacement == 0 {
		return t.fail(ErrorInvalidHandle)
	}
	target := *slot
	if _, ok := t.e.targets[target]; ok || t.pending(target) {
		return t.fail(ErrDoubleHook)
	}
	if t.e.arena.Owns(target) {
		return t.fail(ErrDoubleHook)
	}

	jmp := patch.EntryPatch(target, replacement)
	pro, err := patch.Analyze(patch.Bytes(target, lookWindow), len(jmp))
	if err != nil {
		return t.fail(err)
	}
	tramp, err := t.e.arena.Alloc()
	if err != nil {
		return t.fail(err)
	}

	h := &hook{
		target:      target,
		replacement: replacement,
		trampoline:  tramp,
		saved:       make([]byte, pro.Length),
		patched:     make([]byte, pro.Length),
	}
	copy(h.saved, patch.Bytes(target, pro.Length))
	n := copy(h.patched, jmp)
	for i := n; i < len(h.patched); i++ {
		h.patched[i] = 0xcc // INT3
	}

	// the trampoline is not reachable before commit, write it now
	back := patch.IndirectJump(target + uintptr(pro.Length))
	dst := patch.Bytes(tramp, pro.Length+len(back))
	copy(dst, h.saved)
	copy(dst[pro.Length:], back)

	t.ops = append(t.ops, nativeOp{h: h, slot: slot, attach: true})
	return NoError
}

func (t *nativeTx) Detach(slot *uintptr, replacement uintptr) ErrorCode {
	if t.done {
		return ErrorInvalidOperation
	}
	if slot == nil || *slot == 0 || replacement == 0 {
		return t.fail(ErrorInvalidHandle)
	}
	h, ok := t.e.hooks[*slot]
	if !ok || t.pending(h.target) {
		return t.fail(ErrHookNotFound)
	}
	if h.replacement != replacement {
		return t.fail(ErrHookMismatch)
	}
	t.ops = append(t.ops, nativeOp{h: h, slot: slot})
	return NoError
}

func (t *nativeTx) Commit() ErrorCode {
	if t.done {
		return ErrorInvalidOperation
	}
	t.done = true
	defer t.e.mu.Unlock()

	if t.err != nil {
		t.release(t.ops)
		return CodeOf(t.err)
	}
	for i, op := range t.ops {
		// a failed Write leaves op's own bytes untouched
		if err := patch.Write(op.h.target, op.code()); err != nil {
			t.rollback(t.ops[:i])
			t.release(t.ops)
			return CodeOf(err)
		}
	}

	// all code is in place, publish the new addresses
	for _, op := range t.ops {
		h := op.h
		if op.attach {
			t.e.hooks[h.trampoline] = h
			t.e.targets[h.target] = h
			*op.slot = h.trampoline
			continue
		}
		delete(t.e.hooks, h.trampoline)
		delete(t.e.targets, h.target)
		t.e.arena.Free(h.trampoline)
		*op.slot = h.target
	}
	return NoError
}

// code returns the bytes op writes at its target.
func (op nativeOp) code() []byte {
	if op.attach {
		return op.h.patched
	}
	return op.h.saved
}

// rollback undoes the writes of ops, latest first.
func (t *nativeTx) rollback(ops []nativeOp) {
	for i := len(ops) - 1; i >= 0; i-- {
		undo := nativeOp{h: ops[i].h, attach: !ops[i].attach}
		_ = patch.Write(undo.h.target, undo.code())
	}
}

// release frees the trampolines of attach requests that did not commit.
func (t *nativeTx) release(ops []nativeOp) {
	for _, op := range ops {
		if op.attach {
			t.e.arena.Free(op.h.trampoline)
		}
	}
}
