package hookbatch

import (
	"errors"
	"strconv"
)

// Engine is the code patching capability used by the Manager.
type Engine interface {
	// Begin opens a transaction, blocking while another one is open.
	Begin() Transaction
}

// Transaction brackets a set of attach and detach requests. Nothing a
// request asks for is visible before Commit returns NoError.
type Transaction interface {
	// RegisterThread asks the engine to keep t consistent with the
	// rewritten code across the commit.
	RegisterThread(t Thread) ErrorCode
	// Attach redirects the function at *slot to replacement and, on
	// commit, stores the trampoline address in *slot.
	Attach(slot *uintptr, replacement uintptr) ErrorCode
	// Detach removes a hook installed by Attach and, on commit, stores
	// the original function address in *slot.
	Detach(slot *uintptr, replacement uintptr) ErrorCode
	// Commit applies every request or none of them.
	Commit() ErrorCode
}

// Thread identifies an OS thread to the engine.
type Thread uint64

// ErrorCode is the engine's numeric result. Zero is success; the other
// values follow the Win32 codes used by Detours.
type ErrorCode int32

const (
	NoError               ErrorCode = 0
	ErrorInvalidHandle    ErrorCode = 6
	ErrorNotEnoughMemory  ErrorCode = 8
	ErrorInvalidBlock     ErrorCode = 9
	ErrorInvalidOperation ErrorCode = 4317
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "no error"
	case ErrorInvalidHandle:
		return "invalid handle"
	case ErrorNotEnoughMemory:
		return "not enough memory"
	case ErrorInvalidBlock:
		return "invalid block"
	case ErrorInvalidOperation:
		return "invalid operation"
	}
	return "error " + strconv.Itoa(int(c))
}

func (c ErrorCode) Error() string {
	return c.String()
}

// CodeOf maps an error to the code an engine reports for it.
func CodeOf(err error) ErrorCode {
	var c ErrorCode
	switch {
	case err == nil:
		return NoError
	case errors.As(err, &c):
		return c
	case errors.Is(err, ErrTrampolineMemory):
		return ErrorNotEnoughMemory
	case errors.Is(err, ErrRelativeAddr),
		errors.Is(err, ErrFunctionTooSmall),
		errors.Is(err, ErrUndecodable),
		errors.Is(err, ErrHookMismatch):
		return ErrorInvalidBlock
	case errors.Is(err, ErrHookNotFound),
		errors.Is(err, ErrNotSupported):
		return ErrorInvalidHandle
	}
	return ErrorInvalidOperation
}
