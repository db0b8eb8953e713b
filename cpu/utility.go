package cpu

// signExtend16 widens a 16-bit value to 32 bits, copying bit 15 upward.
func signExtend16(v uint16) uint32 {
	return uint32(int32(int16(v)))
}

// signExtend8 widens an 8-bit value to 32 bits, copying bit 7 upward.
func signExtend8(v uint8) uint32 {
	return uint32(int32(int8(v)))
}

// byteShift is the right shift that brings byte off (0 = most significant)
// of a big-endian word down to bits 7-0.
func byteShift(off uint32) uint32 {
	return (3 - off) * 8
}
