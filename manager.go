package hookbatch

import (
	"runtime"
)

// Phase is the terminal state a manager call ended in.
type Phase int

const (
	// PhaseIdle: the batch was empty and nothing was done.
	PhaseIdle Phase = iota
	// PhaseNoWork: no pair was actionable, no transaction was opened.
	PhaseNoWork
	// PhaseCommitted: the transaction committed.
	PhaseCommitted
	// PhaseCommitFailed: the engine refused the commit.
	PhaseCommitFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseNoWork:
		return "no work"
	case PhaseCommitted:
		return "committed"
	case PhaseCommitFailed:
		return "commit failed"
	}
	return "unknown"
}

// Outcome describes how a manager call ended.
type Outcome struct {
	Phase Phase
	// number of pairs requested from the engine
	Applied int
	// commit result, NoError unless Phase is PhaseCommitFailed
	Code ErrorCode
}

// Manager installs and removes batches of hooks, one engine transaction
// per call.
//
// Calls for overlapping slots from different goroutines must be
// serialized by the caller unless the engine does it.
type Manager struct {
	engine Engine
	log    Logger
	debug  bool
}

// NewManager creates a manager. Without WithEngine it uses the native
// engine and fails with ErrNoEngine where there is none.
func NewManager(opts ...Option) (*Manager, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Manager{
		engine: c.Engine,
		log:    c.Logger,
		debug:  c.Debug,
	}, nil
}

type mode struct {
	request func(tx Transaction, slot *uintptr, replacement uintptr) ErrorCode
	verb    string
	noWork  string
	done    string
	failed  string
}

var (
	attachMode = mode{
		request: Transaction.Attach,
		verb:    "attach",
		noWork:  "no functions to hook",
		done:    "hooked functions",
		failed:  "error hooking functions",
	}
	detachMode = mode{
		request: Transaction.Detach,
		verb:    "detach",
		noWork:  "no functions to unhook",
		done:    "removed function hooks",
		failed:  "error removing function hooks",
	}
)

// AttachHooks hooks every actionable pair of batch in one transaction.
// The outcome is only reported to the logger.
func (m *Manager) AttachHooks(module string, batch Batch) {
	m.Attach(module, batch)
}

// DetachHooks removes the hooks of every actionable pair of batch in one
// transaction. The outcome is only reported to the logger.
func (m *Manager) DetachHooks(module string, batch Batch) {
	m.Detach(module, batch)
}

// Attach is AttachHooks returning the outcome.
func (m *Manager) Attach(module string, batch Batch) Outcome {
	return m.run(attachMode, module, batch)
}

// Detach is DetachHooks returning the outcome.
func (m *Manager) Detach(module string, batch Batch) Outcome {
	return m.run(detachMode, module, batch)
}

func (m *Manager) run(md mode, module string, batch Batch) Outcome {
	if len(batch) == 0 {
		return Outcome{Phase: PhaseIdle}
	}
	if !batch.anyActionable() {
		m.log.Info(md.noWork, "module", module)
		return Outcome{Phase: PhaseNoWork}
	}

	// the registered thread must stay the one issuing the requests
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tx := m.engine.Begin()
	thread := CurrentThread()
	code := tx.RegisterThread(thread)
	if m.debug {
		m.log.Debug("register thread", "module", module, "thread", uint64(thread), "code", int32(code))
	}

	applied := 0
	for i, p := range batch {
		if !p.Actionable() {
			continue
		}
		code = md.request(tx, p.Slot, p.Replacement)
		if m.debug {
			m.log.Debug(md.verb, "module", module, "index", i,
				"target", *p.Slot, "replacement", p.Replacement, "code", int32(code))
		}
		applied++
	}

	code = tx.Commit()
	if code != NoError {
		m.log.Warn(md.failed, "module", module, "count", applied, "code", int32(code))
		return Outcome{Phase: PhaseCommitFailed, Applied: applied, Code: code}
	}
	m.log.Info(md.done, "module", module, "count", applied)
	return Outcome{Phase: PhaseCommitted, Applied: applied}
}
