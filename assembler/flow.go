package assembler

import (
	"fmt"
	"strings"
)

// branchOffset returns the 16-bit word offset from the delay slot at pc+4 to target.
func (asm *Assembler) branchOffset(operand string, pc uint32) (uint16, error) {
	target, err := asm.parseValue(operand)
	if err != nil {
		return 0, err
	}
	diff := target - int64(pc+4)
	if diff%4 != 0 {
		return 0, fmt.Errorf("branch target %08x is not word aligned", uint32(target))
	}
	diff >>= 2
	if !fitsSigned16(diff) {
		return 0, fmt.Errorf("branch to '%s' out of range", strings.TrimSpace(operand))
	}
	return uint16(diff), nil
}

// jumpIndex returns the 26-bit word index for a j/jal at pc. The target must
// share the top four bits with the delay slot.
func (asm *Assembler) jumpIndex(operand string, pc uint32) (uint32, error) {
	v, err := asm.parseValue(operand)
	if err != nil {
		return 0, err
	}
	target := uint32(v)
	if target&3 != 0 {
		return 0, fmt.Errorf("jump target %08x is not word aligned", target)
	}
	if target&0xF0000000 != (pc+4)&0xF0000000 {
		return 0, fmt.Errorf("jump target %08x outside the current 256MB region", target)
	}
	return (target >> 2) & 0x03FFFFFF, nil
}
