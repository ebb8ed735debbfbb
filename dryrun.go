package hookbatch

import (
	"sync"
	"unsafe"
)

// Request is one call a DryRunEngine transaction received.
type Request struct {
	Op          string  `json:"op"`
	Slot        uintptr `json:"slot,omitempty"`
	Target      uintptr `json:"target,omitempty"`
	Replacement uintptr `json:"replacement,omitempty"`
	Thread      Thread  `json:"thread,omitempty"`
}

// DryRunEngine records the requests of its transactions and patches
// nothing. Commit returns CommitCode.
type DryRunEngine struct {
	CommitCode ErrorCode

	mu       sync.Mutex
	requests []Request
	begins   int
}

// Requests returns the requests recorded so far, in order.
func (e *DryRunEngine) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Request(nil), e.requests...)
}

// Transactions returns the number of transactions opened.
func (e *DryRunEngine) Transactions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.begins
}

func (e *DryRunEngine) record(r Request) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, r)
}

func (e *DryRunEngine) Begin() Transaction {
	e.mu.Lock()
	e.begins++
	e.mu.Unlock()
	e.record(Request{Op: "begin"})
	return dryRunTx{e}
}

type dryRunTx struct {
	e *DryRunEngine
}

func (t dryRunTx) RegisterThread(th Thread) ErrorCode {
	t.e.record(Request{Op: "thread", Thread: th})
	return NoError
}

func (t dryRunTx) Attach(slot *uintptr, replacement uintptr) ErrorCode {
	t.e.record(request("attach", slot, replacement))
	return NoError
}

func (t dryRunTx) Detach(slot *uintptr, replacement uintptr) ErrorCode {
	t.e.record(request("detach", slot, replacement))
	return NoError
}

func (t dryRunTx) Commit() ErrorCode {
	t.e.record(Request{Op: "commit"})
	return t.e.CommitCode
}

func request(op string, slot *uintptr, replacement uintptr) Request {
	r := Request{Op: op, Replacement: replacement}
	if slot != nil {
		r.Slot = uintptr(unsafe.Pointer(slot))
		r.Target = *slot
	}
	return r
}
