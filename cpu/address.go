package cpu

// effectiveAddress is base register plus the sign-extended offset.
func (c *CPU) effectiveAddress(inst *Instruction) uint32 {
	return c.regs[inst.Rs] + inst.SignedImm()
}

// readWord fetches the aligned word that contains addr.
func (c *CPU) readWord(addr uint32) (uint32, error) {
	var buf [4]byte
	if err := c.mem.Read(addr&^3, buf[:]); err != nil {
		return 0, err
	}
	return DecodeWord(buf), nil
}

// writeWord stores v as the aligned word that contains addr.
func (c *CPU) writeWord(addr, v uint32) error {
	buf := EncodeWord(v)
	return c.mem.Write(addr&^3, buf[:])
}

// halfwordOffset validates a halfword access and returns its offset in the word.
func halfwordOffset(addr uint32) (uint32, error) {
	off := addr & 3
	if off != 0 && off != 2 {
		return 0, ErrInvalidAlignment
	}
	return off, nil
}
