package cpu

import (
	"fmt"
)

// Instruction holds the fields of one decoded MIPS word.
// Only the fields belonging to Op's format are meaningful.
type Instruction struct {
	Op     Op
	Word   uint32
	Rs     uint32
	Rt     uint32
	Rd     uint32
	Shamt  uint32
	Imm    uint16
	Target uint32
}

// Format returns the encoding family of the instruction.
func (inst *Instruction) Format() Format {
	return inst.Op.Info().Format
}

// SignedImm returns the immediate sign-extended to 32 bits.
func (inst *Instruction) SignedImm() uint32 {
	return signExtend16(inst.Imm)
}

// ZeroImm returns the immediate zero-extended to 32 bits.
func (inst *Instruction) ZeroImm() uint32 {
	return uint32(inst.Imm)
}

// Field extraction.
func opcodeOf(word uint32) uint32 { return word >> 26 }
func rsOf(word uint32) uint32     { return (word >> 21) & 0x1F }
func rtOf(word uint32) uint32     { return (word >> 16) & 0x1F }
func rdOf(word uint32) uint32     { return (word >> 11) & 0x1F }
func shamtOf(word uint32) uint32  { return (word >> 6) & 0x1F }
func functOf(word uint32) uint32  { return word & 0x3F }

// Decode splits a 32-bit instruction word into its fields and identifies the
// operation. Unknown encodings and non-zero reserved fields are rejected with
// ErrInvalidInstruction; nothing is executed here.
func Decode(word uint32) (*Instruction, error) {
	inst := &Instruction{
		Word: word,
		Rs:   rsOf(word),
		Rt:   rtOf(word),
	}

	opcode := opcodeOf(word)
	switch opcode {
	case OpcodeSpecial:
		inst.Rd = rdOf(word)
		inst.Shamt = shamtOf(word)
		op, ok := byFunct[functOf(word)]
		if !ok {
			return nil, fmt.Errorf("unknown function %#02x in %08x: %w", functOf(word), word, ErrInvalidInstruction)
		}
		inst.Op = op

	case OpcodeJ, OpcodeJAL:
		inst.Rs, inst.Rt = 0, 0
		inst.Target = word & 0x03FFFFFF
		if opcode == OpcodeJ {
			inst.Op = OpJ
		} else {
			inst.Op = OpJAL
		}
		return inst, nil

	case OpcodeRegimm:
		inst.Imm = uint16(word)
		op, ok := byRegimm[inst.Rt]
		if !ok {
			return nil, fmt.Errorf("unknown branch selector %d in %08x: %w", inst.Rt, word, ErrInvalidInstruction)
		}
		inst.Op = op
		return inst, nil

	default:
		inst.Imm = uint16(word)
		op, ok := byOpcode[opcode]
		if !ok {
			return nil, fmt.Errorf("unknown opcode %#02x in %08x: %w", opcode, word, ErrInvalidInstruction)
		}
		inst.Op = op
	}

	if err := inst.checkReserved(); err != nil {
		return nil, err
	}
	return inst, nil
}

// checkReserved enforces that fields unused by the instruction's syntax are zero.
func (inst *Instruction) checkReserved() error {
	var bad string
	switch inst.Op.Info().Syntax {
	case SyntaxRdRtShamt:
		if inst.Rs != 0 {
			bad = "rs"
		}
	case SyntaxRdRsRt, SyntaxRdRtRs:
		if inst.Shamt != 0 {
			bad = "shamt"
		}
	case SyntaxRs:
		switch {
		case inst.Shamt != 0:
			bad = "shamt"
		case inst.Rt != 0 || inst.Rd != 0:
			bad = "rt/rd"
		}
	case SyntaxRdRs:
		switch {
		case inst.Shamt != 0:
			bad = "shamt"
		case inst.Rt != 0:
			bad = "rt"
		}
	case SyntaxRsRt:
		switch {
		case inst.Shamt != 0:
			bad = "shamt"
		case inst.Rd != 0:
			bad = "rd"
		}
	case SyntaxRd:
		switch {
		case inst.Shamt != 0:
			bad = "shamt"
		case inst.Rs != 0 || inst.Rt != 0:
			bad = "rs/rt"
		}
	case SyntaxRsOffset:
		// blez and bgtz have no selector; rt must be zero.
		if inst.Op.Info().Opcode != OpcodeRegimm && inst.Rt != 0 {
			bad = "rt"
		}
	}
	if bad != "" {
		return fmt.Errorf("%s: reserved field %s set in %08x: %w", inst.Op, bad, inst.Word, ErrInvalidInstruction)
	}
	return nil
}
