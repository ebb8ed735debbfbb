package hookbatch

import (
	"fmt"
	"sync"
)

type logRecord struct {
	level string
	msg   string
	attrs map[string]any
}

// captureLogger records every log call.
type captureLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *captureLogger) add(level, msg string, args []any) {
	r := logRecord{level: level, msg: msg, attrs: make(map[string]any)}
	for i := 0; i+1 < len(args); i += 2 {
		r.attrs[fmt.Sprint(args[i])] = args[i+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

func (l *captureLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }

// outcomes returns the info and warn records, dropping debug tracing.
func (l *captureLogger) outcomes() []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logRecord
	for _, r := range l.records {
		if r.level != "debug" {
			out = append(out, r)
		}
	}
	return out
}

// codeEngine is a test engine returning fixed request results.
type codeEngine struct {
	requestCode ErrorCode
	commitCode  ErrorCode
	requests    int
	commits     int
}

func (e *codeEngine) Begin() Transaction { return codeTx{e} }

type codeTx struct{ e *codeEngine }

func (t codeTx) RegisterThread(Thread) ErrorCode { return NoError }

func (t codeTx) Attach(*uintptr, uintptr) ErrorCode {
	t.e.requests++
	return t.e.requestCode
}

func (t codeTx) Detach(*uintptr, uintptr) ErrorCode {
	t.e.requests++
	return t.e.requestCode
}

func (t codeTx) Commit() ErrorCode {
	t.e.commits++
	return t.e.commitCode
}
