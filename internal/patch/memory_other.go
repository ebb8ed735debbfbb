//go:build !linux && !darwin && !windows

package patch

import (
	"errors"
)

var errUnsupported = errors.New("code patching not supported on this platform")

func makeWritable(addr, size uintptr) (func() error, error) {
	return nil, errUnsupported
}

func allocExec(size uintptr) (uintptr, error) {
	return 0, errUnsupported
}

func freeExec(addr, size uintptr) error {
	return errUnsupported
}
