package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// push rbp; mov rbp, rsp; sub rsp, 0x20; mov [rbp-8], rdi;
// mov [rbp-0x10], rsi; ret
var prologue = []byte{
	0x55,
	0x48, 0x89, 0xe5,
	0x48, 0x83, 0xec, 0x20,
	0x48, 0x89, 0x7d, 0xf8,
	0x48, 0x89, 0x75, 0xf0,
	0xc3,
}

func TestAnalyze(t *testing.T) {
	p, err := Analyze(prologue, Rel32JumpLen)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Length)
	assert.Len(t, p.Insts, 3)

	p, err = Analyze(prologue, AbsJumpLen)
	require.NoError(t, err)
	assert.Equal(t, 16, p.Length)
	assert.Len(t, p.Insts, 5)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want error
	}{
		// lea rax, [rip+0]
		{"rip relative", []byte{0x48, 0x8d, 0x05, 0, 0, 0, 0, 0xc3}, ErrRelativeAddr},
		// jmp rel32
		{"relative branch", []byte{0xe9, 0x10, 0, 0, 0, 0xc3}, ErrRelativeAddr},
		// xor eax, eax; ret
		{"returns early", []byte{0x31, 0xc0, 0xc3, 0x90, 0x90, 0x90}, ErrTooSmall},
		{"short buffer", []byte{0x55}, ErrTooSmall},
		{"truncated", []byte{0x48}, ErrUndecodable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.code, Rel32JumpLen)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPageSpan(t *testing.T) {
	start, length := pageSpan(PageSize+10, 20)
	assert.Equal(t, PageSize, start)
	assert.Equal(t, PageSize, length)

	start, length = pageSpan(2*PageSize-2, 5)
	assert.Equal(t, PageSize, start)
	assert.Equal(t, 2*PageSize, length)
}
