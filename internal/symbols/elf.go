package symbols

import (
	"debug/elf"
	"io"
)

type elfFile struct {
	elf *elf.File
}

func openElf(r io.ReaderAt) (rawFile, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	return &elfFile{f}, nil
}

func (e *elfFile) Symbols() (Table, error) {
	syms, err := e.elf.Symbols()
	if err != nil {
		return nil, err
	}
	t := make(Table, len(syms))
	for _, s := range syms {
		if s.Value == 0 || s.Name == "" {
			continue
		}
		t[s.Name] = uintptr(s.Value)
	}
	return t, nil
}
