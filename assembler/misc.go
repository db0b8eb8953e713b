package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// pseudoOps lists the pseudo-instructions and the number of machine words
// each expands to. A zero count is sized per use.
var pseudoOps = map[string]int{
	"nop":  1,
	"move": 1,
	"b":    1,
	"bal":  1,
	"beqz": 1,
	"bnez": 1,
	"not":  1,
	"neg":  1,
	"negu": 1,
	"li":   0,
	"la":   2,
}

// pseudoSize returns the byte size of a pseudo-instruction node.
func (asm *Assembler) pseudoSize(n *Node) (uint32, bool) {
	count, ok := pseudoOps[n.Mnemonic]
	if !ok {
		return 0, false
	}
	if count == 0 {
		count = asm.liWords(n)
	}
	return uint32(count) * 4, true
}

// liWords sizes li: one word when the value fits a single addiu or ori.
// Values that need labels are sized as two words.
func (asm *Assembler) liWords(n *Node) int {
	if len(n.Operands) != 2 {
		return 1
	}
	v, err := asm.parseConstant(n.Operands[1])
	if err != nil {
		return 2
	}
	if fitsSigned16(v) || (v >= 0 && v <= 0xFFFF) {
		return 1
	}
	return 2
}

// assemblePseudo expands a pseudo-instruction into machine words.
func (asm *Assembler) assemblePseudo(n *Node, pc uint32) ([]uint32, error) {
	ops := n.Operands
	switch n.Mnemonic {
	case "nop":
		if err := expectOperands(n, 0); err != nil {
			return nil, err
		}
		return []uint32{0}, nil

	case "move":
		r, err := registers(n, 2)
		if err != nil {
			return nil, err
		}
		return []uint32{encodeR(cpu.OpADDU, r[1], cpu.RegZero, r[0], 0)}, nil

	case "not":
		r, err := registers(n, 2)
		if err != nil {
			return nil, err
		}
		return []uint32{encodeR(cpu.OpNOR, r[1], cpu.RegZero, r[0], 0)}, nil

	case "neg", "negu":
		r, err := registers(n, 2)
		if err != nil {
			return nil, err
		}
		op := cpu.OpSUB
		if n.Mnemonic == "negu" {
			op = cpu.OpSUBU
		}
		return []uint32{encodeR(op, cpu.RegZero, r[1], r[0], 0)}, nil

	case "b", "bal":
		if err := expectOperands(n, 1); err != nil {
			return nil, err
		}
		off, err := asm.branchOffset(ops[0], pc)
		if err != nil {
			return nil, err
		}
		if n.Mnemonic == "bal" {
			return []uint32{encodeI(cpu.OpBGEZAL, cpu.RegZero, 0, off)}, nil
		}
		return []uint32{encodeI(cpu.OpBEQ, cpu.RegZero, cpu.RegZero, off)}, nil

	case "beqz", "bnez":
		if err := expectOperands(n, 2); err != nil {
			return nil, err
		}
		rs, err := parseRegister(ops[0])
		if err != nil {
			return nil, err
		}
		off, err := asm.branchOffset(ops[1], pc)
		if err != nil {
			return nil, err
		}
		op := cpu.OpBEQ
		if n.Mnemonic == "bnez" {
			op = cpu.OpBNE
		}
		return []uint32{encodeI(op, rs, cpu.RegZero, off)}, nil

	case "li", "la":
		if err := expectOperands(n, 2); err != nil {
			return nil, err
		}
		rt, err := parseRegister(ops[0])
		if err != nil {
			return nil, err
		}
		v, err := asm.parseValue(ops[1])
		if err != nil {
			return nil, err
		}
		if v < -0x80000000 || v > 0xFFFFFFFF {
			return nil, fmt.Errorf("value %d does not fit in 32 bits", v)
		}
		if n.Size == 4 {
			if fitsSigned16(v) {
				return []uint32{encodeI(cpu.OpADDIU, cpu.RegZero, rt, uint16(v))}, nil
			}
			return []uint32{encodeI(cpu.OpORI, cpu.RegZero, rt, uint16(v))}, nil
		}
		u := uint32(v)
		return []uint32{
			encodeI(cpu.OpLUI, 0, rt, uint16(u>>16)),
			encodeI(cpu.OpORI, rt, rt, uint16(u)),
		}, nil
	}
	return nil, fmt.Errorf("unknown pseudo-instruction: %s", n.Mnemonic)
}
