package patch

import (
	"golang.org/x/sys/windows"
)

func makeWritable(addr, size uintptr) (func() error, error) {
	start, length := pageSpan(addr, size)
	var old uint32
	if err := windows.VirtualProtect(start, length, windows.PAGE_EXECUTE_READWRITE, &old); err != nil {
		return nil, err
	}
	return func() error {
		var tmp uint32
		return windows.VirtualProtect(start, length, old, &tmp)
	}, nil
}

func allocExec(size uintptr) (uintptr, error) {
	return windows.VirtualAlloc(0, size,
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
}

func freeExec(addr, _ uintptr) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
