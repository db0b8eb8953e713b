package cpu

// Register numbers with a conventional ABI role.
const (
	RegZero = 0
	RegAT   = 1
	RegV0   = 2
	RegV1   = 3
	RegA0   = 4
	RegA1   = 5
	RegA2   = 6
	RegA3   = 7
	RegT0   = 8
	RegS0   = 16
	RegT8   = 24
	RegK0   = 26
	RegGP   = 28
	RegSP   = 29
	RegFP   = 30
	RegRA   = 31
)

// NumRegisters is the size of the general-purpose register file.
const NumRegisters = 32

// RegisterNames holds the ABI name of each register, without the '$'.
var RegisterNames = [NumRegisters]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// RegisterByName resolves an ABI name ("sp"), a number ("29") or "s8" to a
// register index. The leading '$' must already be stripped.
func RegisterByName(name string) (uint32, bool) {
	for i, n := range RegisterNames {
		if n == name {
			return uint32(i), true
		}
	}
	if name == "s8" {
		return RegFP, true
	}
	var n uint32
	if name == "" || len(name) > 2 {
		return 0, false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + uint32(r-'0')
	}
	if n >= NumRegisters {
		return 0, false
	}
	return n, true
}
