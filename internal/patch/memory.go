// Package patch holds the x86-64 primitives used to rewrite function
// entry points: prologue analysis, jump encoding, page protection and
// trampoline memory.
package patch

import (
	"os"
	"unsafe"
)

// PageSize is the size of a virtual memory page.
var PageSize = uintptr(os.Getpagesize())

// Bytes views n bytes of memory starting at addr.
func Bytes(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// pageSpan returns the page aligned range covering [addr, addr+size).
func pageSpan(addr, size uintptr) (start, length uintptr) {
	start = PageSize * (addr / PageSize)
	length = PageSize * ((addr + size + PageSize - 1 - start) / PageSize)
	return start, length
}

// writable makes the pages covering [addr, addr+size) writable and
// returns the func restoring their protection.
var writable = makeWritable

// Write copies b over the code at addr, making the pages writable for
// the duration of the copy. When the protection cannot be restored the
// previous bytes are put back before the error is returned.
func Write(addr uintptr, b []byte) error {
	restore, err := writable(addr, uintptr(len(b)))
	if err != nil {
		return err
	}
	dst := Bytes(addr, len(b))
	saved := append([]byte(nil), dst...)
	copy(dst, b)
	if err := restore(); err != nil {
		if undo, uerr := writable(addr, uintptr(len(b))); uerr == nil {
			copy(dst, saved)
			_ = undo()
		}
		return err
	}
	return nil
}
