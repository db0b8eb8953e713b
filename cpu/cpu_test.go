package cpu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/mips/memory"
)

func TestNew(t *testing.T) {
	c := New(memory.NewRAM(64, 4))
	assert.Zero(t, c.PC())
	assert.Zero(t, c.NextPC())
	assert.Zero(t, c.HI())
	assert.Zero(t, c.LO())
	for i := uint(0); i < NumRegisters; i++ {
		assert.Zero(t, reg(t, c, i))
	}
}

func TestRegisterAccess(t *testing.T) {
	c := New(memory.NewRAM(64, 4))

	t.Run("get and set", func(t *testing.T) {
		require.NoError(t, c.SetRegister(10, 0x12345678))
		assert.Equal(t, uint32(0x12345678), reg(t, c, 10))
	})

	t.Run("register zero is hardwired", func(t *testing.T) {
		require.NoError(t, c.SetRegister(0, 0x12345678))
		assert.Zero(t, reg(t, c, 0))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := c.Register(32)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorIs(t, c.SetRegister(99, 1), ErrInvalidArgument)
	})

	t.Run("pc", func(t *testing.T) {
		require.NoError(t, c.SetPC(0x1000))
		assert.Equal(t, uint32(0x1000), c.PC())
		assert.Equal(t, uint32(0x1004), c.NextPC())
	})
}

func TestReset(t *testing.T) {
	c, _ := newTestCPU(t, []uint32{encR(FunctMULTU, RegT0, RegT0, 0, 0)})
	require.NoError(t, c.SetRegister(RegT0, 0x10000))
	stepN(t, c, 1)
	require.NotZero(t, c.HI())

	require.NoError(t, c.Reset())
	assert.Zero(t, c.PC())
	assert.Zero(t, c.NextPC())
	assert.Zero(t, c.HI())
	assert.Zero(t, c.LO())
	assert.Zero(t, reg(t, c, RegT0))
}

func TestDebugLevelIsInert(t *testing.T) {
	c, _ := newTestCPU(t, []uint32{encI(OpcodeADDIU, 0, RegT0, 1)})
	var out bytes.Buffer
	require.NoError(t, c.SetDebugLevel(3, &out))
	stepN(t, c, 1)
	assert.Zero(t, out.Len())
}

func TestFree(t *testing.T) {
	c, _ := newTestCPU(t, []uint32{nop})
	c.Free()
	assert.ErrorIs(t, c.Step(), ErrInvalidArgument)
}

func TestIndependentInstances(t *testing.T) {
	ram := memory.NewRAM(0x100, 4)
	require.NoError(t, ram.Load(0, WordsToBytes([]uint32{encI(OpcodeADDIU, 0, RegT0, 5)})))

	a, b := New(ram), New(ram)
	require.NoError(t, a.SetPC(0))
	require.NoError(t, b.SetPC(0))
	require.NoError(t, a.Step())

	assert.Equal(t, uint32(5), reg(t, a, RegT0))
	assert.Zero(t, reg(t, b, RegT0))
	assert.Zero(t, b.PC())
}
