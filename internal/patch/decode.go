package patch

import (
	"errors"
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

var (
	// ErrRelativeAddr means an instruction in the patch area cannot be
	// moved to a trampoline
	ErrRelativeAddr = errors.New("relative address in instruction")
	// ErrTooSmall means the function ends inside the patch area
	ErrTooSmall = errors.New("function too small to patch")
	// ErrUndecodable means the prologue is not valid x86-64 code
	ErrUndecodable = errors.New("undecodable instruction")
	// ErrNoMemory means no executable memory for a trampoline
	ErrNoMemory = errors.New("cannot allocate trampoline")
)

// Prologue describes the whole instructions covering a patch area.
type Prologue struct {
	// bytes to move to the trampoline
	Length int
	// instructions, for debug output
	Insts []string
}

// Analyze decodes whole instructions from the start of code until at
// least need bytes are covered. Every one of them must be relocatable
// and none may end the function.
func Analyze(code []byte, need int) (Prologue, error) {
	var p Prologue
	for p.Length < need {
		if p.Length >= len(code) {
			return p, ErrTooSmall
		}
		inst, err := x86asm.Decode(code[p.Length:], 64)
		if err == nil && inst.Op == 0 {
			// a lone prefix, the instruction runs past the buffer
			err = x86asm.ErrTruncated
		}
		if err != nil {
			return p, fmt.Errorf("%w at +%d: %v", ErrUndecodable, p.Length, err)
		}
		p.Insts = append(p.Insts, inst.String())
		if !relocatable(inst) {
			return p, ErrRelativeAddr
		}
		p.Length += inst.Len
		if terminates(inst) && p.Length < need {
			return p, ErrTooSmall
		}
	}
	return p, nil
}

func relocatable(inst x86asm.Inst) bool {
	for _, a := range inst.Args {
		if a == nil {
			break
		}
		if mem, ok := a.(x86asm.Mem); ok {
			if mem.Base == x86asm.RIP {
				return false
			}
		} else if _, ok := a.(x86asm.Rel); ok {
			return false
		}
	}
	return true
}

func terminates(inst x86asm.Inst) bool {
	switch inst.Op {
	case x86asm.RET, x86asm.JMP, x86asm.INT:
		return true
	}
	return false
}
