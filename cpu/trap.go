package cpu

import "errors"

// Exceptions raised by Step and the instruction primitives. Errors returned
// from Step wrap one of these; test with errors.Is.
var (
	// ErrInvalidInstruction covers unknown opcodes and functions, non-zero
	// reserved fields, bad branch selectors and unsigned division by zero.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrInvalidAlignment is raised by halfword accesses off a 2-byte boundary.
	ErrInvalidAlignment = errors.New("invalid alignment")
	// ErrArithmeticOverflow is raised by signed add and subtract.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrInvalidArgument is returned for out of range register indices and
	// for a CPU that has been freed.
	ErrInvalidArgument = errors.New("invalid argument")
)
