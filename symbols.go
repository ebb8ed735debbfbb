package hookbatch

import (
	"github.com/k2io/hookbatch/internal/symbols"
)

// Symbols maps symbol names to link-time addresses.
type Symbols = symbols.Table

// LookupSymbols reads the symbol table of the object file at path and
// returns the link-time addresses of names, or of every symbol when no
// name is given. Names missing from the table are omitted.
func LookupSymbols(path string, names ...string) (Symbols, error) {
	t, err := symbols.Read(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return t, nil
	}
	found := make(Symbols, len(names))
	for _, n := range names {
		if addr, ok := t[n]; ok {
			found[n] = addr
		}
	}
	return found, nil
}
