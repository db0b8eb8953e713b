package cpu

// Advance commits the delay slot: the instruction at nextPC becomes current
// and the one after it lies delta bytes further on.
func Advance(pc, nextPC *uint32, delta uint32) {
	*pc = *nextPC
	*nextPC += delta
}

// Branch advances past the branch. When taken the target is the delay slot
// plus the sign-extended word offset, otherwise execution falls through.
func Branch(taken bool, pc, nextPC *uint32, offset uint16) {
	if taken {
		Advance(pc, nextPC, signExtend16(offset)<<2)
		return
	}
	Advance(pc, nextPC, 4)
}

// BranchAndLink stores the return address pc+8 in link whether or not the
// branch is taken, then behaves as Branch.
func BranchAndLink(taken bool, pc, nextPC *uint32, offset uint16, link *uint32) {
	*link = *pc + 8
	Branch(taken, pc, nextPC, offset)
}

// jumpTarget forms the absolute target of j/jal from the delay slot region.
func jumpTarget(nextPC, target uint32) uint32 {
	return (nextPC & 0xF0000000) | (target << 2)
}
