package cpu

// And is bitwise AND.
func And(a, b uint32) uint32 { return a & b }

// Or is bitwise OR.
func Or(a, b uint32) uint32 { return a | b }

// Xor is bitwise exclusive OR.
func Xor(a, b uint32) uint32 { return a ^ b }

// Nor is bitwise NOT OR.
func Nor(a, b uint32) uint32 { return ^(a | b) }

// Sll shifts left by n (0-31), filling with zeros.
func Sll(a, n uint32) uint32 {
	return a << (n & 0x1F)
}

// Srl shifts right by n (0-31), filling with zeros.
func Srl(a, n uint32) uint32 {
	return a >> (n & 0x1F)
}

// Sra shifts right by n (0-31), filling the vacated bits with the sign bit.
// The fill is built explicitly rather than relying on a signed shift.
func Sra(a, n uint32) uint32 {
	n &= 0x1F
	result := a >> n
	if a&0x80000000 != 0 {
		result |= ^(uint32(0xFFFFFFFF) >> n)
	}
	return result
}
