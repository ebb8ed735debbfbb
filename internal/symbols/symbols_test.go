package symbols

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testdata/hooks.elf is an x86-64 ELF file with a symbol table and no
// code: main.handle, main.wrapHandle, runtime.main and an undefined
// symbol.
const fixture = "testdata/hooks.elf"

func TestReadElf(t *testing.T) {
	tab, err := Read(fixture)
	require.NoError(t, err)

	assert.Equal(t, Table{
		"main.handle":     0x401000,
		"main.wrapHandle": 0x401100,
		"runtime.main":    0x402000,
	}, tab)
	assert.Equal(t, []string{"main.handle", "main.wrapHandle", "runtime.main"}, tab.Names())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an object file"), 0o644))
	_, err = Read(text)
	assert.ErrorIs(t, err, ErrUnrecognized)
}
