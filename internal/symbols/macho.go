package symbols

import (
	"debug/macho"
	"io"
)

type machoFile struct {
	macho *macho.File
}

func openMacho(r io.ReaderAt) (rawFile, error) {
	f, err := macho.NewFile(r)
	if err != nil {
		return nil, err
	}
	return &machoFile{f}, nil
}

func (f *machoFile) Symbols() (Table, error) {
	t := make(Table)
	if f.macho.Symtab == nil {
		return t, nil
	}
	for _, s := range f.macho.Symtab.Syms {
		if s.Value == 0 || s.Name == "" {
			continue
		}
		t[s.Name] = uintptr(s.Value)
	}
	return t, nil
}
