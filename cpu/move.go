package cpu

import "fmt"

// load executes lb, lbu, lh, lhu, lw, lwl and lwr. The destination is only
// written once the memory read has succeeded.
func (c *CPU) load(inst *Instruction) error {
	addr := c.effectiveAddress(inst)
	off := addr & 3

	switch inst.Op {
	case OpLH, OpLHU:
		if _, err := halfwordOffset(addr); err != nil {
			return fmt.Errorf("%s at %08x: %w", inst.Op, addr, err)
		}
	}

	word, err := c.readWord(addr)
	if err != nil {
		return err
	}

	var v uint32
	switch inst.Op {
	case OpLW:
		v = word
	case OpLB, OpLBU:
		b := uint8(word >> byteShift(off))
		v = uint32(b)
		if inst.Op == OpLB && c.signedByteLoads {
			v = signExtend8(b)
		}
	case OpLH, OpLHU:
		h := uint16(word >> ((2 - off) * 8))
		v = uint32(h)
		if inst.Op == OpLH {
			v = signExtend16(h)
		}
	case OpLWL:
		// Bytes off..3 of the word fill the register from the top.
		keep := uint32(1)<<(off*8) - 1
		v = word<<(off*8) | c.regs[inst.Rt]&keep
	case OpLWR:
		// Bytes 0..off of the word fill the register from the bottom.
		s := byteShift(off)
		v = word>>s | c.regs[inst.Rt]&^(uint32(0xFFFFFFFF)>>s)
	default:
		return fmt.Errorf("%s is not a load: %w", inst.Op, ErrInvalidInstruction)
	}

	c.setReg(inst.Rt, v)
	return nil
}

// store executes sb, sh, sw, swl and swr. Sub-word stores read the
// containing word, replace only the addressed bytes and write it back.
func (c *CPU) store(inst *Instruction) error {
	addr := c.effectiveAddress(inst)
	off := addr & 3
	rt := c.regs[inst.Rt]

	if inst.Op == OpSW {
		return c.writeWord(addr, rt)
	}

	if inst.Op == OpSH {
		if _, err := halfwordOffset(addr); err != nil {
			return fmt.Errorf("%s at %08x: %w", inst.Op, addr, err)
		}
	}

	word, err := c.readWord(addr)
	if err != nil {
		return err
	}

	switch inst.Op {
	case OpSB:
		s := byteShift(off)
		word = word&^(0xFF<<s) | (rt&0xFF)<<s
	case OpSH:
		s := (2 - off) * 8
		word = word&^(0xFFFF<<s) | (rt&0xFFFF)<<s
	case OpSWL:
		// The top 4-off bytes of rt land on addr..end of word.
		s := off * 8
		word = word&^(uint32(0xFFFFFFFF)>>s) | rt>>s
	case OpSWR:
		// The low off+1 bytes of rt land on start of word..addr.
		s := byteShift(off)
		word = word&(uint32(1)<<s-1) | rt<<s
	default:
		return fmt.Errorf("%s is not a store: %w", inst.Op, ErrInvalidInstruction)
	}

	return c.writeWord(addr, word)
}
