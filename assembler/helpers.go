package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// encodeR builds an R-type word for op.
func encodeR(op cpu.Op, rs, rt, rd, shamt uint32) uint32 {
	info := op.Info()
	return info.Opcode<<26 | rs<<21 | rt<<16 | rd<<11 | (shamt&0x1F)<<6 | info.Funct
}

// encodeI builds an I-type word for op. REGIMM branches carry their selector in rt.
func encodeI(op cpu.Op, rs, rt uint32, imm uint16) uint32 {
	info := op.Info()
	if info.Opcode == cpu.OpcodeRegimm {
		rt = info.Funct
	}
	return info.Opcode<<26 | rs<<21 | rt<<16 | uint32(imm)
}

// encodeJ builds a J-type word for op from a 26-bit word index.
func encodeJ(op cpu.Op, index uint32) uint32 {
	return op.Info().Opcode<<26 | index&0x03FFFFFF
}

// immediate16 checks that v fits a 16-bit field, signed or unsigned.
func immediate16(v int64) (uint16, error) {
	if v < -0x8000 || v > 0xFFFF {
		return 0, fmt.Errorf("immediate %d out of 16-bit range", v)
	}
	return uint16(v), nil
}

// fitsSigned16 reports whether v survives sign extension from 16 bits.
func fitsSigned16(v int64) bool {
	return v >= -0x8000 && v <= 0x7FFF
}

// expectOperands fails unless n carries exactly count operands.
func expectOperands(n *Node, count int) error {
	if len(n.Operands) != count {
		return fmt.Errorf("%s requires %d operand(s), got %d", n.Mnemonic, count, len(n.Operands))
	}
	return nil
}

func wordsToBytes(words []uint32) []byte {
	if len(words) == 0 {
		return nil
	}
	return cpu.WordsToBytes(words)
}
