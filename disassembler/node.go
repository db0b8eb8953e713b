package disassembler

import "github.com/Urethramancer/mips/cpu"

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a branch or jump target.
	JumpTarget LabelType = iota
	// SubroutineEntry is for a jal or branch-and-link target.
	SubroutineEntry
)

// Instruction represents a single decoded word at a specific address.
type Instruction struct {
	Address  uint32
	Word     uint32
	Decoded  *cpu.Instruction // nil for words that do not decode
	Mnemonic string
	Operands string
	IsCode   bool // Flag to mark as reachable code
}

// target returns the absolute branch or jump target, if the instruction has one.
func (inst *Instruction) target() (uint32, bool) {
	d := inst.Decoded
	if d == nil {
		return 0, false
	}
	switch {
	case d.Op.IsBranch():
		return inst.Address + 4 + d.SignedImm()<<2, true
	case d.Op == cpu.OpJ || d.Op == cpu.OpJAL:
		return (inst.Address+4)&0xF0000000 | d.Target<<2, true
	}
	return 0, false
}

// isTerminal reports whether execution never falls through past the delay slot.
func (inst *Instruction) isTerminal() bool {
	d := inst.Decoded
	if d == nil {
		return true
	}
	switch d.Op {
	case cpu.OpJ, cpu.OpJR:
		return true
	case cpu.OpBEQ:
		return d.Rs == cpu.RegZero && d.Rt == cpu.RegZero
	}
	return false
}

// hasDelaySlot reports whether the following word executes as a delay slot.
func (inst *Instruction) hasDelaySlot() bool {
	return inst.Decoded != nil && (inst.Decoded.Op.IsBranch() || inst.Decoded.Op.IsJump())
}
