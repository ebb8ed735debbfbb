package patch

const (
	// Rel32JumpLen is the size of JMP rel32.
	Rel32JumpLen = 5
	// AbsJumpLen is the size of MOV R11, imm64; JMP R11.
	AbsJumpLen = 13
	// IndirectJumpLen is the size of JMP [RIP+0] followed by the target.
	IndirectJumpLen = 14
)

// Rel32Reachable reports whether a JMP rel32 placed at from reaches to.
func Rel32Reachable(from, to uintptr) bool {
	rel := int64(to) - int64(from+Rel32JumpLen)
	return rel == int64(int32(rel))
}

// Rel32Jump encodes JMP rel32 placed at from. The caller checks
// Rel32Reachable first.
func Rel32Jump(from, to uintptr) []byte {
	addr := uint32(int32(int64(to) - int64(from+Rel32JumpLen)))
	return []byte{
		0xe9,                        // JMP rel32
		byte(addr), byte(addr >> 8), // .
		byte(addr >> 16), byte(addr >> 24), // .
	}
}

// AbsJump encodes a jump through R11, which is free at function entry.
func AbsJump(to uintptr) []byte {
	addr := uint64(to)
	return []byte{
		0x49, 0xbb, // MOV R11, addr64
		byte(addr), byte(addr >> 8), // .
		byte(addr >> 16), byte(addr >> 24), // .
		byte(addr >> 32), byte(addr >> 40), // .
		byte(addr >> 48), byte(addr >> 56), // .
		0x41, 0xff, 0xe3, // JMP R11
	}
}

// IndirectJump encodes JMP [RIP+0] with the target stored inline. It
// clobbers no register, so it is used to leave a trampoline.
func IndirectJump(to uintptr) []byte {
	addr := uint64(to)
	return []byte{
		0xff, 0x25, 0x00, 0x00, 0x00, 0x00, // JMP [RIP+0]
		byte(addr), byte(addr >> 8), // .
		byte(addr >> 16), byte(addr >> 24), // .
		byte(addr >> 32), byte(addr >> 40), // .
		byte(addr >> 48), byte(addr >> 56), // .
	}
}

// EntryPatch returns the shortest jump from a function entry at from to
// to.
func EntryPatch(from, to uintptr) []byte {
	if Rel32Reachable(from, to) {
		return Rel32Jump(from, to)
	}
	return AbsJump(to)
}
