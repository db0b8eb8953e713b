package cpu

// Add is the signed 32-bit add. Overflow is detected from the operand and
// result signs and reported as ErrArithmeticOverflow, in which case the
// result must not be stored.
func Add(a, b uint32) (uint32, error) {
	sum := a + b
	// Both operands share a sign that the result does not.
	if (a^sum)&(b^sum)&0x80000000 != 0 {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}

// Addu adds without overflow detection.
func Addu(a, b uint32) uint32 {
	return a + b
}

// Sub is the signed 32-bit subtract, trapping like Add.
func Sub(a, b uint32) (uint32, error) {
	diff := a - b
	// Operands differ in sign and the result took the subtrahend's sign.
	if (a^b)&(a^diff)&0x80000000 != 0 {
		return 0, ErrArithmeticOverflow
	}
	return diff, nil
}

// Subu subtracts without overflow detection.
func Subu(a, b uint32) uint32 {
	return a - b
}

// Slt returns 1 when a < b as signed values, else 0.
func Slt(a, b uint32) uint32 {
	if int32(a) < int32(b) {
		return 1
	}
	return 0
}

// Sltu returns 1 when a < b as unsigned values, else 0.
func Sltu(a, b uint32) uint32 {
	if a < b {
		return 1
	}
	return 0
}

// Mult forms the signed 64-bit product and splits it into hi and lo.
func Mult(a, b uint32) (hi, lo uint32) {
	p := int64(int32(a)) * int64(int32(b))
	return uint32(uint64(p) >> 32), uint32(p)
}

// Multu forms the unsigned 64-bit product and splits it into hi and lo.
func Multu(a, b uint32) (hi, lo uint32) {
	p := uint64(a) * uint64(b)
	return uint32(p >> 32), uint32(p)
}

// Div is the signed divide: hi is the remainder, lo the quotient, both
// truncated toward zero. Division by zero yields zero in both.
func Div(a, b uint32) (hi, lo uint32) {
	if b == 0 {
		return 0, 0
	}
	x, y := int32(a), int32(b)
	return uint32(x % y), uint32(x / y)
}

// Divu is the unsigned divide. Division by zero yields zero in both halves
// and reports ErrInvalidInstruction; hi and lo are still meant to be stored.
func Divu(a, b uint32) (hi, lo uint32, err error) {
	if b == 0 {
		return 0, 0, ErrInvalidInstruction
	}
	return a % b, a / b, nil
}
