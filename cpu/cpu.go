package cpu

import (
	"fmt"
	"io"
)

// Memory is the byte-addressable store behind the CPU. The core only ever
// passes 4-byte slices at word-aligned addresses, holding big-endian words.
type Memory interface {
	Read(addr uint32, p []byte) error
	Write(addr uint32, p []byte) error
}

// CPU registers and the memory they operate on.
type CPU struct {
	// pc is the instruction being executed by the next Step.
	pc uint32
	// npc is the instruction in the delay slot, already committed to.
	npc uint32
	// regs is the register file. regs[0] reads as zero at all times.
	regs [NumRegisters]uint32
	hi   uint32
	lo   uint32

	mem Memory

	signedByteLoads bool
}

// Option configures a CPU at creation.
type Option func(*CPU)

// WithSignExtendedByteLoads makes lb sign-extend the loaded byte, as the ISA
// defines it. Without it lb and lbu both load the raw byte.
func WithSignExtendedByteLoads() Option {
	return func(c *CPU) {
		c.signedByteLoads = true
	}
}

// New creates a CPU with all registers and both program counters at zero.
// The memory is borrowed, not owned.
func New(mem Memory, opts ...Option) *CPU {
	c := &CPU{mem: mem}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Reset clears the register file, HI, LO and both program counters.
func (c *CPU) Reset() error {
	c.pc = 0
	c.npc = 0
	c.hi = 0
	c.lo = 0
	c.regs = [NumRegisters]uint32{}
	return nil
}

// Register returns the value of register index 0-31.
func (c *CPU) Register(index uint) (uint32, error) {
	if index >= NumRegisters {
		return 0, fmt.Errorf("register %d: %w", index, ErrInvalidArgument)
	}
	return c.regs[index], nil
}

// SetRegister writes register index 0-31. Writes to register 0 are discarded.
func (c *CPU) SetRegister(index uint, value uint32) error {
	if index >= NumRegisters {
		return fmt.Errorf("register %d: %w", index, ErrInvalidArgument)
	}
	c.setReg(uint32(index), value)
	return nil
}

// PC returns the address of the next instruction to execute.
func (c *CPU) PC() uint32 {
	return c.pc
}

// SetPC jumps to pc, with the delay slot following it.
func (c *CPU) SetPC(pc uint32) error {
	c.pc = pc
	c.npc = pc + 4
	return nil
}

// NextPC returns the address of the instruction after PC in execution order.
func (c *CPU) NextPC() uint32 {
	return c.npc
}

// HI returns the multiply high word or the division remainder.
func (c *CPU) HI() uint32 {
	return c.hi
}

// LO returns the multiply low word or the division quotient.
func (c *CPU) LO() uint32 {
	return c.lo
}

// SetDebugLevel is accepted for driver compatibility and has no effect.
func (c *CPU) SetDebugLevel(level uint, dest io.Writer) error {
	return nil
}

// Free detaches the memory. Stepping a freed CPU fails.
func (c *CPU) Free() {
	c.mem = nil
}

// setReg is the single write path into the register file.
func (c *CPU) setReg(r, v uint32) {
	c.regs[r] = v
	c.regs[0] = 0
}
