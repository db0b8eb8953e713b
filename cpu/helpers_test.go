package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/mips/memory"
)

// encR builds an R-type word.
func encR(funct, rs, rt, rd, shamt uint32) uint32 {
	return rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

// encI builds an I-type word; imm is truncated to 16 bits.
func encI(opcode, rs, rt uint32, imm int32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | uint32(imm)&0xFFFF
}

// encJ builds a J-type word from a byte address.
func encJ(opcode, addr uint32) uint32 {
	return opcode<<26 | (addr>>2)&0x03FFFFFF
}

const nop = 0

// recordingMemory counts writes passing through to a RAM.
type recordingMemory struct {
	*memory.RAM
	writes []uint32
}

func (m *recordingMemory) Write(addr uint32, p []byte) error {
	m.writes = append(m.writes, addr)
	return m.RAM.Write(addr, p)
}

// newTestCPU loads words at address 0 of a 4 KiB RAM and points PC at them.
func newTestCPU(t *testing.T, words []uint32, opts ...Option) (*CPU, *recordingMemory) {
	t.Helper()
	mem := &recordingMemory{RAM: memory.NewRAM(0x1000, 4)}
	require.NoError(t, mem.RAM.Load(0, WordsToBytes(words)))
	c := New(mem, opts...)
	require.NoError(t, c.SetPC(0))
	return c, mem
}

func stepN(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, c.Step(), "step %d at pc %08x", i, c.PC())
	}
}

func reg(t *testing.T, c *CPU, i uint) uint32 {
	t.Helper()
	v, err := c.Register(i)
	require.NoError(t, err)
	return v
}

func writeWordAt(t *testing.T, m *recordingMemory, addr, v uint32) {
	t.Helper()
	b := EncodeWord(v)
	require.NoError(t, m.RAM.Write(addr, b[:]))
}

func readWordAt(t *testing.T, m *recordingMemory, addr uint32) uint32 {
	t.Helper()
	var b [4]byte
	require.NoError(t, m.RAM.Read(addr, b[:]))
	return DecodeWord(b)
}
