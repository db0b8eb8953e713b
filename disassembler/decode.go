package disassembler

import (
	"fmt"

	"github.com/Urethramancer/mips/cpu"
)

// Decode returns the mnemonic and operand text for one instruction word at pc.
// Words that do not decode are rendered as a .word directive.
func Decode(word, pc uint32) (string, string) {
	inst, err := cpu.Decode(word)
	if err != nil {
		return ".word", fmt.Sprintf("0x%08x", word)
	}
	return format(inst, pc)
}

func reg(r uint32) string {
	return "$" + cpu.RegisterNames[r&0x1F]
}

// format renders a decoded instruction, preferring the common pseudo-instructions.
func format(inst *cpu.Instruction, pc uint32) (string, string) {
	info := inst.Op.Info()

	switch {
	case inst.Word == 0:
		return "nop", ""
	case inst.Op == cpu.OpADDU && inst.Rt == cpu.RegZero:
		return "move", fmt.Sprintf("%s, %s", reg(inst.Rd), reg(inst.Rs))
	case inst.Op == cpu.OpBEQ && inst.Rs == cpu.RegZero && inst.Rt == cpu.RegZero:
		return "b", fmt.Sprintf("0x%08x", branchTarget(inst, pc))
	case inst.Op == cpu.OpJALR && inst.Rd == cpu.RegRA:
		return info.Mnemonic, reg(inst.Rs)
	}

	var ops string
	switch info.Syntax {
	case cpu.SyntaxRdRsRt:
		ops = fmt.Sprintf("%s, %s, %s", reg(inst.Rd), reg(inst.Rs), reg(inst.Rt))
	case cpu.SyntaxRdRtShamt:
		ops = fmt.Sprintf("%s, %s, %d", reg(inst.Rd), reg(inst.Rt), inst.Shamt)
	case cpu.SyntaxRdRtRs:
		ops = fmt.Sprintf("%s, %s, %s", reg(inst.Rd), reg(inst.Rt), reg(inst.Rs))
	case cpu.SyntaxRs:
		ops = reg(inst.Rs)
	case cpu.SyntaxRdRs:
		ops = fmt.Sprintf("%s, %s", reg(inst.Rd), reg(inst.Rs))
	case cpu.SyntaxRsRt:
		ops = fmt.Sprintf("%s, %s", reg(inst.Rs), reg(inst.Rt))
	case cpu.SyntaxRd:
		ops = reg(inst.Rd)
	case cpu.SyntaxRtRsImm:
		ops = fmt.Sprintf("%s, %s, %s", reg(inst.Rt), reg(inst.Rs), immediate(inst))
	case cpu.SyntaxRtImm:
		ops = fmt.Sprintf("%s, %s", reg(inst.Rt), immediate(inst))
	case cpu.SyntaxRtOffsetBase:
		ops = fmt.Sprintf("%s, %d(%s)", reg(inst.Rt), int16(inst.Imm), reg(inst.Rs))
	case cpu.SyntaxRsRtOffset:
		ops = fmt.Sprintf("%s, %s, 0x%08x", reg(inst.Rs), reg(inst.Rt), branchTarget(inst, pc))
	case cpu.SyntaxRsOffset:
		ops = fmt.Sprintf("%s, 0x%08x", reg(inst.Rs), branchTarget(inst, pc))
	case cpu.SyntaxTarget:
		ops = fmt.Sprintf("0x%08x", (pc+4)&0xF0000000|inst.Target<<2)
	}
	return info.Mnemonic, ops
}

// immediate renders sign-extended immediates in decimal and the rest in hex.
func immediate(inst *cpu.Instruction) string {
	if inst.Op.Info().SignedImm {
		return fmt.Sprintf("%d", int16(inst.Imm))
	}
	return fmt.Sprintf("0x%x", inst.Imm)
}

func branchTarget(inst *cpu.Instruction, pc uint32) uint32 {
	return pc + 4 + inst.SignedImm()<<2
}
