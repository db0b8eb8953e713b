package cpu

import (
	"encoding/binary"
)

// DecodeWord interprets four bytes as a big-endian word, whatever the host order.
func DecodeWord(b [4]byte) uint32 {
	return binary.BigEndian.Uint32(b[:])
}

// EncodeWord is the inverse of DecodeWord.
func EncodeWord(w uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], w)
	return b
}

// WordsToBytes converts a slice of 32-bit words to a big-endian byte slice.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// BytesToWords interprets bytes as big-endian 32-bit words.
// A trailing partial word is padded with zero bytes.
func BytesToWords(b []byte) []uint32 {
	if rem := len(b) % 4; rem != 0 {
		b = append(b[:len(b):len(b)], make([]byte, 4-rem)...)
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return out
}
