package cpu

import "fmt"

// Step fetches, decodes and executes the instruction at PC, then commits the
// delay slot. An error leaves the program counters where they were.
func (c *CPU) Step() error {
	if c.mem == nil {
		return fmt.Errorf("step on a freed cpu: %w", ErrInvalidArgument)
	}

	// Fetch
	var buf [4]byte
	if err := c.mem.Read(c.pc, buf[:]); err != nil {
		return err
	}
	word := DecodeWord(buf)

	// Decode
	inst, err := Decode(word)
	if err != nil {
		return fmt.Errorf("decode failed at %08x: %w", c.pc, err)
	}

	// Execute
	return c.execute(inst)
}

// execute runs one decoded instruction. Jumps and branches set both program
// counters themselves and return early; everything else falls through to
// the common commit.
func (c *CPU) execute(inst *Instruction) error {
	rs := c.regs[inst.Rs]
	rt := c.regs[inst.Rt]

	switch inst.Op {
	// Control transfer
	case OpJR:
		c.pc, c.npc = c.npc, rs
		return nil
	case OpJALR:
		c.setReg(inst.Rd, c.pc+8)
		c.pc, c.npc = c.npc, rs
		return nil
	case OpJ:
		c.pc, c.npc = c.npc, jumpTarget(c.npc, inst.Target)
		return nil
	case OpJAL:
		c.setReg(RegRA, c.pc+8)
		c.pc, c.npc = c.npc, jumpTarget(c.npc, inst.Target)
		return nil
	case OpBEQ:
		Branch(rs == rt, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBNE:
		Branch(rs != rt, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBLEZ:
		Branch(int32(rs) <= 0, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBGTZ:
		Branch(int32(rs) > 0, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBLTZ:
		Branch(int32(rs) < 0, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBGEZ:
		Branch(int32(rs) >= 0, &c.pc, &c.npc, inst.Imm)
		return nil
	case OpBLTZAL, OpBGEZAL:
		taken := int32(rs) < 0
		if inst.Op == OpBGEZAL {
			taken = !taken
		}
		var link uint32
		BranchAndLink(taken, &c.pc, &c.npc, inst.Imm, &link)
		c.setReg(RegRA, link)
		return nil

	// Register arithmetic and logic
	case OpADD, OpSUB:
		op := Add
		if inst.Op == OpSUB {
			op = Sub
		}
		v, err := op(rs, rt)
		if err != nil {
			return fmt.Errorf("%s at %08x: %w", inst.Op, c.pc, err)
		}
		c.setReg(inst.Rd, v)
	case OpADDU:
		c.setReg(inst.Rd, Addu(rs, rt))
	case OpSUBU:
		c.setReg(inst.Rd, Subu(rs, rt))
	case OpAND:
		c.setReg(inst.Rd, And(rs, rt))
	case OpOR:
		c.setReg(inst.Rd, Or(rs, rt))
	case OpXOR:
		c.setReg(inst.Rd, Xor(rs, rt))
	case OpNOR:
		c.setReg(inst.Rd, Nor(rs, rt))
	case OpSLT:
		c.setReg(inst.Rd, Slt(rs, rt))
	case OpSLTU:
		c.setReg(inst.Rd, Sltu(rs, rt))
	case OpSLL:
		c.setReg(inst.Rd, Sll(rt, inst.Shamt))
	case OpSRL:
		c.setReg(inst.Rd, Srl(rt, inst.Shamt))
	case OpSRA:
		c.setReg(inst.Rd, Sra(rt, inst.Shamt))
	case OpSLLV:
		c.setReg(inst.Rd, Sll(rt, rs))
	case OpSRLV:
		c.setReg(inst.Rd, Srl(rt, rs))
	case OpSRAV:
		c.setReg(inst.Rd, Sra(rt, rs))

	// HI/LO
	case OpMULT:
		c.hi, c.lo = Mult(rs, rt)
	case OpMULTU:
		c.hi, c.lo = Multu(rs, rt)
	case OpDIV:
		c.hi, c.lo = Div(rs, rt)
	case OpDIVU:
		var err error
		c.hi, c.lo, err = Divu(rs, rt)
		if err != nil {
			return fmt.Errorf("divu by zero at %08x: %w", c.pc, err)
		}
	case OpMFHI:
		c.setReg(inst.Rd, c.hi)
	case OpMFLO:
		c.setReg(inst.Rd, c.lo)
	case OpMTHI:
		c.hi = rs
	case OpMTLO:
		c.lo = rs

	// Immediate arithmetic and logic
	case OpADDI:
		v, err := Add(rs, inst.SignedImm())
		if err != nil {
			return fmt.Errorf("%s at %08x: %w", inst.Op, c.pc, err)
		}
		c.setReg(inst.Rt, v)
	case OpADDIU:
		c.setReg(inst.Rt, Addu(rs, inst.SignedImm()))
	case OpSLTI:
		c.setReg(inst.Rt, Slt(rs, inst.SignedImm()))
	case OpSLTIU:
		c.setReg(inst.Rt, Sltu(rs, inst.SignedImm()))
	case OpANDI:
		c.setReg(inst.Rt, And(rs, inst.ZeroImm()))
	case OpORI:
		c.setReg(inst.Rt, Or(rs, inst.ZeroImm()))
	case OpXORI:
		c.setReg(inst.Rt, Xor(rs, inst.ZeroImm()))
	case OpLUI:
		c.setReg(inst.Rt, inst.ZeroImm()<<16)

	// Memory
	case OpLB, OpLBU, OpLH, OpLHU, OpLW, OpLWL, OpLWR:
		if err := c.load(inst); err != nil {
			return err
		}
	case OpSB, OpSH, OpSW, OpSWL, OpSWR:
		if err := c.store(inst); err != nil {
			return err
		}

	default:
		return fmt.Errorf("no handler for %s (%08x): %w", inst.Op, inst.Word, ErrInvalidInstruction)
	}

	c.regs[0] = 0
	Advance(&c.pc, &c.npc, 4)
	return nil
}
