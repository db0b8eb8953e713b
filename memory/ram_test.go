package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAM_ReadWrite(t *testing.T) {
	ram := NewRAM(1024, 4)

	t.Run("write and read", func(t *testing.T) {
		require.NoError(t, ram.Write(0x100, []byte{0xDE, 0xAD, 0xBE, 0xEF}))

		buf := make([]byte, 4)
		require.NoError(t, ram.Read(0x100, buf))
		assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf)
	})

	t.Run("zeroed on creation", func(t *testing.T) {
		buf := make([]byte, 8)
		require.NoError(t, ram.Read(0x200, buf))
		assert.Equal(t, make([]byte, 8), buf)
	})

	t.Run("out of range", func(t *testing.T) {
		err := ram.Read(1024, make([]byte, 4))
		assert.ErrorIs(t, err, ErrInvalidAddress)

		err = ram.Write(1020, make([]byte, 8))
		assert.ErrorIs(t, err, ErrInvalidAddress)

		err = ram.Read(0xFFFFFFFC, make([]byte, 4))
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("misaligned", func(t *testing.T) {
		err := ram.Read(2, make([]byte, 4))
		assert.ErrorIs(t, err, ErrInvalidArgument)

		err = ram.Write(0, make([]byte, 3))
		assert.ErrorIs(t, err, ErrInvalidArgument)

		err = ram.Read(0, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestRAM_ByteGranularity(t *testing.T) {
	ram := NewRAM(16, 0)
	assert.Equal(t, uint32(1), ram.BlockSize())
	require.NoError(t, ram.Write(3, []byte{0x42}))

	buf := make([]byte, 1)
	require.NoError(t, ram.Read(3, buf))
	assert.Equal(t, byte(0x42), buf[0])
}

func TestRAM_Load(t *testing.T) {
	ram := NewRAM(64, 4)

	require.NoError(t, ram.Load(8, []byte{1, 2, 3, 4, 5}))

	buf := make([]byte, 8)
	require.NoError(t, ram.Read(8, buf))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0}, buf)

	assert.NoError(t, ram.Load(0, nil))
	assert.ErrorIs(t, ram.Load(60, make([]byte, 8)), ErrInvalidAddress)
	assert.Equal(t, uint32(64), ram.Size())
}
