// Package memory provides the byte-addressable store a CPU runs against.
package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for accesses that fall outside the RAM.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidArgument is returned for accesses that are not whole,
	// aligned blocks.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RAM is a flat block of memory starting at address 0. Every access must
// start on a block boundary and cover a whole number of blocks.
type RAM struct {
	data      []byte
	blockSize uint32
}

// NewRAM creates size bytes of zeroed memory with the given block size.
// A block size of zero is treated as one, allowing any access.
func NewRAM(size, blockSize uint32) *RAM {
	if blockSize == 0 {
		blockSize = 1
	}
	return &RAM{
		data:      make([]byte, size),
		blockSize: blockSize,
	}
}

// Size returns the number of addressable bytes.
func (r *RAM) Size() uint32 {
	return uint32(len(r.data))
}

// BlockSize returns the access granularity.
func (r *RAM) BlockSize() uint32 {
	return r.blockSize
}

func (r *RAM) check(addr uint32, n int) error {
	if n == 0 || uint32(n)%r.blockSize != 0 || addr%r.blockSize != 0 {
		return fmt.Errorf("access of %d bytes at %08x with block size %d: %w", n, addr, r.blockSize, ErrInvalidArgument)
	}
	if uint64(addr)+uint64(n) > uint64(len(r.data)) {
		return fmt.Errorf("access of %d bytes at %08x beyond %08x: %w", n, addr, len(r.data), ErrInvalidAddress)
	}
	return nil
}

// Read copies len(p) bytes starting at addr into p.
func (r *RAM) Read(addr uint32, p []byte) error {
	if err := r.check(addr, len(p)); err != nil {
		return err
	}
	copy(p, r.data[addr:])
	return nil
}

// Write copies p into memory starting at addr.
func (r *RAM) Write(addr uint32, p []byte) error {
	if err := r.check(addr, len(p)); err != nil {
		return err
	}
	copy(r.data[addr:], p)
	return nil
}

// Load copies an image into memory at addr, padding the tail to a whole
// block with zeros.
func (r *RAM) Load(addr uint32, image []byte) error {
	if rem := uint32(len(image)) % r.blockSize; rem != 0 {
		image = append(image[:len(image):len(image)], make([]byte, r.blockSize-rem)...)
	}
	if len(image) == 0 {
		return nil
	}
	return r.Write(addr, image)
}
