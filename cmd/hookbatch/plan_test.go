package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ELF file whose symbol table holds main.handle (0x401000),
// main.wrapHandle (0x401100) and runtime.main (0x402000)
const fixture = "../../internal/symbols/testdata/hooks.elf"

func TestResolve(t *testing.T) {
	syms := map[string]uintptr{"main.wrap": 0x4010}
	assert.Equal(t, uintptr(0x2000), resolve(syms, "0x2000"))
	assert.Equal(t, uintptr(0x4010), resolve(syms, "main.wrap"))
	assert.Zero(t, resolve(syms, "main.missing"))
}

func TestRunPlan(t *testing.T) {
	var out bytes.Buffer
	err := runPlan(&out, []string{fixture, "main.handle=main.wrapHandle", "no.such.func=0x2000"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "hooks.elf: committed, 1 request(s)")
	assert.Contains(t, out.String(), "attach 0x401000 -> 0x401100")
}

func TestRunPlanDetachJSON(t *testing.T) {
	jsonOut, detach = true, true
	t.Cleanup(func() { jsonOut, detach = false, false })

	var out bytes.Buffer
	require.NoError(t, runPlan(&out, []string{fixture, "runtime.main=0x1000"}))

	var res planResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "committed", res.Phase)
	assert.Equal(t, 1, res.Count)
	var ops []string
	for _, r := range res.Requests {
		ops = append(ops, r.Op)
	}
	assert.Equal(t, []string{"begin", "thread", "detach", "commit"}, ops)
	assert.Equal(t, uintptr(0x402000), res.Requests[2].Target)
}

func TestRunPlanNothingToDo(t *testing.T) {
	jsonOut = true
	t.Cleanup(func() { jsonOut = false })

	var out bytes.Buffer
	require.NoError(t, runPlan(&out, []string{fixture, "no.such.func=0x2000"}))

	var res planResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "no work", res.Phase)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Requests)
}

func TestRunPlanInvalidPair(t *testing.T) {
	// the pair is rejected before the binary is opened
	err := runPlan(&bytes.Buffer{}, []string{"/nonexistent/binary", "runtime.main"})
	assert.ErrorContains(t, err, "want target=replacement")
}

func TestRunSymbols(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runSymbols(&out, []string{fixture, "runtime.main", "main.handle"}))
	assert.Equal(t,
		"          0x401000  main.handle\n          0x402000  runtime.main\n",
		out.String())
}
