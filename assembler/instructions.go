package assembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// isKnownMnemonic reports whether name is a machine instruction or a pseudo-instruction.
func isKnownMnemonic(name string) bool {
	if _, ok := cpu.LookupMnemonic(name); ok {
		return true
	}
	_, ok := pseudoOps[name]
	return ok
}

// generateInstructionCode returns the machine words for one instruction node at pc.
func (asm *Assembler) generateInstructionCode(n *Node, pc uint32) ([]uint32, error) {
	if _, ok := pseudoOps[n.Mnemonic]; ok {
		return asm.assemblePseudo(n, pc)
	}

	op, ok := cpu.LookupMnemonic(n.Mnemonic)
	if !ok {
		return nil, fmt.Errorf("unknown instruction: %s", n.Mnemonic)
	}
	word, err := asm.assembleOp(op, n, pc)
	if err != nil {
		return nil, err
	}
	return []uint32{word}, nil
}

// assembleOp encodes a single machine instruction according to its operand syntax.
func (asm *Assembler) assembleOp(op cpu.Op, n *Node, pc uint32) (uint32, error) {
	ops := n.Operands
	switch op.Info().Syntax {
	case cpu.SyntaxRdRsRt:
		r, err := registers(n, 3)
		if err != nil {
			return 0, err
		}
		return encodeR(op, r[1], r[2], r[0], 0), nil

	case cpu.SyntaxRdRtRs:
		r, err := registers(n, 3)
		if err != nil {
			return 0, err
		}
		return encodeR(op, r[2], r[1], r[0], 0), nil

	case cpu.SyntaxRdRtShamt:
		if err := expectOperands(n, 3); err != nil {
			return 0, err
		}
		r, err := parseRegisters(ops[:2])
		if err != nil {
			return 0, err
		}
		sa, err := asm.parseConstant(ops[2])
		if err != nil {
			return 0, err
		}
		if sa < 0 || sa > 31 {
			return 0, fmt.Errorf("shift amount %d out of range", sa)
		}
		return encodeR(op, 0, r[1], r[0], uint32(sa)), nil

	case cpu.SyntaxRs:
		r, err := registers(n, 1)
		if err != nil {
			return 0, err
		}
		return encodeR(op, r[0], 0, 0, 0), nil

	case cpu.SyntaxRdRs:
		// "jalr rs" links through $ra.
		if len(ops) == 1 {
			r, err := registers(n, 1)
			if err != nil {
				return 0, err
			}
			return encodeR(op, r[0], 0, cpu.RegRA, 0), nil
		}
		r, err := registers(n, 2)
		if err != nil {
			return 0, err
		}
		return encodeR(op, r[1], 0, r[0], 0), nil

	case cpu.SyntaxRsRt:
		r, err := registers(n, 2)
		if err != nil {
			return 0, err
		}
		return encodeR(op, r[0], r[1], 0, 0), nil

	case cpu.SyntaxRd:
		r, err := registers(n, 1)
		if err != nil {
			return 0, err
		}
		return encodeR(op, 0, 0, r[0], 0), nil

	case cpu.SyntaxRtRsImm:
		if err := expectOperands(n, 3); err != nil {
			return 0, err
		}
		r, err := parseRegisters(ops[:2])
		if err != nil {
			return 0, err
		}
		imm, err := asm.immediateOperand(ops[2])
		if err != nil {
			return 0, err
		}
		return encodeI(op, r[1], r[0], imm), nil

	case cpu.SyntaxRtImm:
		if err := expectOperands(n, 2); err != nil {
			return 0, err
		}
		rt, err := parseRegister(ops[0])
		if err != nil {
			return 0, err
		}
		imm, err := asm.immediateOperand(ops[1])
		if err != nil {
			return 0, err
		}
		return encodeI(op, 0, rt, imm), nil

	case cpu.SyntaxRtOffsetBase:
		if err := expectOperands(n, 2); err != nil {
			return 0, err
		}
		rt, err := parseRegister(ops[0])
		if err != nil {
			return 0, err
		}
		off, base, err := parseMemory(ops[1], asm)
		if err != nil {
			return 0, err
		}
		imm, err := immediate16(off)
		if err != nil {
			return 0, err
		}
		return encodeI(op, base, rt, imm), nil

	case cpu.SyntaxRsRtOffset:
		if err := expectOperands(n, 3); err != nil {
			return 0, err
		}
		r, err := parseRegisters(ops[:2])
		if err != nil {
			return 0, err
		}
		off, err := asm.branchOffset(ops[2], pc)
		if err != nil {
			return 0, err
		}
		return encodeI(op, r[0], r[1], off), nil

	case cpu.SyntaxRsOffset:
		if err := expectOperands(n, 2); err != nil {
			return 0, err
		}
		rs, err := parseRegister(ops[0])
		if err != nil {
			return 0, err
		}
		off, err := asm.branchOffset(ops[1], pc)
		if err != nil {
			return 0, err
		}
		return encodeI(op, rs, 0, off), nil

	case cpu.SyntaxTarget:
		if err := expectOperands(n, 1); err != nil {
			return 0, err
		}
		index, err := asm.jumpIndex(ops[0], pc)
		if err != nil {
			return 0, err
		}
		return encodeJ(op, index), nil
	}
	return 0, fmt.Errorf("unsupported syntax for %s", n.Mnemonic)
}

// registers checks the operand count and parses every operand as a register.
func registers(n *Node, count int) ([]uint32, error) {
	if err := expectOperands(n, count); err != nil {
		return nil, err
	}
	return parseRegisters(n.Operands)
}

func (asm *Assembler) immediateOperand(s string) (uint16, error) {
	v, err := asm.parseValue(s)
	if err != nil {
		return 0, err
	}
	return immediate16(v)
}
