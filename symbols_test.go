package hookbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const symbolFixture = "internal/symbols/testdata/hooks.elf"

func TestLookupSymbols(t *testing.T) {
	found, err := LookupSymbols(symbolFixture, "runtime.main", "no.such.symbol")
	require.NoError(t, err)
	assert.Equal(t, Symbols{"runtime.main": 0x402000}, found)

	all, err := LookupSymbols(symbolFixture)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, uintptr(0x401100), all["main.wrapHandle"])
}

func TestLookupSymbolsMissingFile(t *testing.T) {
	_, err := LookupSymbols("/nonexistent/binary")
	assert.Error(t, err)
}
