//go:build linux || darwin

package patch

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func makeWritable(addr, size uintptr) (func() error, error) {
	start, length := pageSpan(addr, size)
	prots, err := pageProtections(start, length)
	if err != nil {
		return nil, err
	}
	if err := mprotect(start, length, unix.PROT_EXEC|unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return nil, err
	}
	return func() error {
		for i, prot := range prots {
			if err := unix.Mprotect(Bytes(start+uintptr(i)*PageSize, int(PageSize)), prot); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func mprotect(start, length uintptr, prot int) error {
	for i := uintptr(0); i < length; i += PageSize {
		if err := unix.Mprotect(Bytes(start+i, int(PageSize)), prot); err != nil {
			return err
		}
	}
	return nil
}

func allocExec(size uintptr) (uintptr, error) {
	b, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&b[0])), nil
}

func freeExec(addr, size uintptr) error {
	return unix.Munmap(Bytes(addr, int(size)))
}
