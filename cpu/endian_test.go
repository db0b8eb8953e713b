package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCodec(t *testing.T) {
	assert.Equal(t, uint32(0x12345678), DecodeWord([4]byte{0x12, 0x34, 0x56, 0x78}))
	assert.Equal(t, [4]byte{0xDE, 0xAD, 0xBE, 0xEF}, EncodeWord(0xDEADBEEF))

	for _, x := range []uint32{0, 1, 0x80, 0xFF00, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, 0x01020304} {
		assert.Equal(t, x, DecodeWord(EncodeWord(x)), "%08x", x)
	}
	for x := uint32(1); x != 0; x <<= 1 {
		assert.Equal(t, x|0x5A, DecodeWord(EncodeWord(x|0x5A)))
	}
}

func TestWordsAndBytes(t *testing.T) {
	b := WordsToBytes([]uint32{0x01020304, 0xA0B0C0D0})
	assert.Equal(t, []byte{1, 2, 3, 4, 0xA0, 0xB0, 0xC0, 0xD0}, b)
	assert.Equal(t, []uint32{0x01020304, 0xA0B0C0D0}, BytesToWords(b))

	// Trailing bytes pad to a full word.
	assert.Equal(t, []uint32{0x01020304, 0x05000000}, BytesToWords([]byte{1, 2, 3, 4, 5}))
}
