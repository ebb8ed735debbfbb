package patch

import (
	"fmt"
	"sync"
)

// SlotSize is the size of one trampoline. The longest one is a 13 byte
// patch area rounded up to whole instructions plus IndirectJumpLen.
const SlotSize = 64

// Arena hands out trampoline slots from executable pages.
type Arena struct {
	mu    sync.Mutex
	pages []*arenaPage
}

type arenaPage struct {
	base uintptr
	used []bool
}

func (p *arenaPage) owns(addr uintptr) bool {
	return addr >= p.base && addr < p.base+PageSize
}

// Alloc returns the address of a free slot.
func (a *Arena) Alloc() (uintptr, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.pages {
		for i, u := range p.used {
			if !u {
				p.used[i] = true
				return p.base + uintptr(i)*SlotSize, nil
			}
		}
	}
	base, err := allocExec(PageSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoMemory, err)
	}
	p := &arenaPage{base: base, used: make([]bool, PageSize/SlotSize)}
	p.used[0] = true
	a.pages = append(a.pages, p)
	return base, nil
}

// Free releases a slot. Pages with no slot in use are unmapped.
func (a *Arena) Free(addr uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, p := range a.pages {
		if !p.owns(addr) {
			continue
		}
		p.used[(addr-p.base)/SlotSize] = false
		for _, u := range p.used {
			if u {
				return
			}
		}
		if freeExec(p.base, PageSize) == nil {
			a.pages = append(a.pages[:i], a.pages[i+1:]...)
		}
		return
	}
}

// Owns reports whether addr is a slot handed out by a.
func (a *Arena) Owns(addr uintptr) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.pages {
		if p.owns(addr) {
			return p.used[(addr-p.base)/SlotSize]
		}
	}
	return false
}

// Len returns the number of slots in use.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, p := range a.pages {
		for _, u := range p.used {
			if u {
				n++
			}
		}
	}
	return n
}
