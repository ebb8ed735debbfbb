package patch

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRel32Reachable(t *testing.T) {
	from := uintptr(0x7f0000000000)
	assert.True(t, Rel32Reachable(from, from+0x100))
	assert.True(t, Rel32Reachable(from, from-0x100))
	assert.True(t, Rel32Reachable(from, from+Rel32JumpLen+0x7fffffff))
	assert.False(t, Rel32Reachable(from, from+Rel32JumpLen+0x80000000))
	assert.True(t, Rel32Reachable(from, from+Rel32JumpLen-0x80000000))
	assert.False(t, Rel32Reachable(from, from+Rel32JumpLen-0x80000001))
}

func TestRel32Jump(t *testing.T) {
	from := uintptr(0x401000)

	fwd := Rel32Jump(from, from+0x20)
	assert.Len(t, fwd, Rel32JumpLen)
	assert.Equal(t, byte(0xe9), fwd[0])
	assert.Equal(t, int32(0x20-5), int32(binary.LittleEndian.Uint32(fwd[1:])))

	back := Rel32Jump(from, from-0x20)
	assert.Equal(t, int32(-0x20-5), int32(binary.LittleEndian.Uint32(back[1:])))
}

func TestAbsJump(t *testing.T) {
	to := uintptr(0x123456789abc)
	b := AbsJump(to)
	assert.Len(t, b, AbsJumpLen)
	assert.Equal(t, []byte{0x49, 0xbb}, b[:2])
	assert.Equal(t, uint64(to), binary.LittleEndian.Uint64(b[2:10]))
	assert.Equal(t, []byte{0x41, 0xff, 0xe3}, b[10:])
}

func TestIndirectJump(t *testing.T) {
	to := uintptr(0x7fff12345678)
	b := IndirectJump(to)
	assert.Len(t, b, IndirectJumpLen)
	assert.Equal(t, []byte{0xff, 0x25, 0, 0, 0, 0}, b[:6])
	assert.Equal(t, uint64(to), binary.LittleEndian.Uint64(b[6:]))
}

func TestEntryPatch(t *testing.T) {
	from := uintptr(0x7f0000000000)
	assert.Len(t, EntryPatch(from, from+0x1000), Rel32JumpLen)
	assert.Len(t, EntryPatch(from, from+1<<40), AbsJumpLen)
}
