// Package symbols reads symbol tables of ELF, Mach-O and PE files.
package symbols

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ErrUnrecognized means the file is not an object file of a known format.
var ErrUnrecognized = errors.New("unrecognized object file")

// Table maps symbol names to their link-time addresses.
type Table map[string]uintptr

// Names returns the symbol names sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type rawFile interface {
	Symbols() (Table, error)
}

var objType = []func(io.ReaderAt) (rawFile, error){
	openElf,
	openMacho,
	openPE,
}

// Read returns the symbol table of the object file at name.
func Read(name string) (Table, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	for _, try := range objType {
		if raw, err := try(r); err == nil {
			return raw.Symbols()
		}
	}
	return nil, fmt.Errorf("open %s: %w", name, ErrUnrecognized)
}
