package assembler

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// checkDirective validates a directive at parse time and records .equ symbols,
// so that later sizing can rely on them.
func (asm *Assembler) checkDirective(n *Node) error {
	switch n.Mnemonic {
	case ".equ":
		if len(n.Operands) != 2 {
			return fmt.Errorf("%s requires a name and a value", n.Mnemonic)
		}
		name := strings.ToLower(strings.TrimSpace(n.Operands[0]))
		if !reLabel.MatchString(name) {
			return fmt.Errorf("invalid symbol name: %s", n.Operands[0])
		}
		val, err := asm.parseConstant(n.Operands[1])
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		asm.symbols[name] = val
		return nil

	case ".org", ".space", ".align":
		if len(n.Operands) != 1 {
			return fmt.Errorf("%s requires a single argument", n.Mnemonic)
		}
	case ".word", ".half", ".byte":
		if len(n.Operands) == 0 {
			return fmt.Errorf("%s requires at least one value", n.Mnemonic)
		}
	case ".ascii", ".asciiz":
		if _, err := parseString(n.Raw); err != nil {
			return err
		}
	default:
		if !slices.Contains(ignoredDirectives, n.Mnemonic) {
			return fmt.Errorf("unknown directive: %s", n.Mnemonic)
		}
	}
	return nil
}

// ignoredDirectives are accepted for compatibility and emit nothing.
var ignoredDirectives = []string{".text", ".data", ".globl", ".global", ".set", ".ent", ".end"}

// parseOrg returns the new location counter for a .org node. Moving backwards
// is rejected.
func (asm *Assembler) parseOrg(n *Node, pc uint32) (uint32, error) {
	v, err := asm.parseConstant(n.Operands[0])
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid .org: %w", n.Line, err)
	}
	addr := uint32(v)
	if addr < pc {
		return 0, fmt.Errorf("line %d: .org %08x is behind the current address %08x", n.Line, addr, pc)
	}
	return addr, nil
}

// getDirectiveSize calculates the byte size of a directive for the sizing pass.
//
// Note: pc is passed so .align can be sized correctly.
func (asm *Assembler) getDirectiveSize(n *Node, pc uint32) (uint32, error) {
	switch n.Mnemonic {
	case ".word", ".half", ".byte":
		return uint32(len(n.Operands)) * getElementSize(n.Mnemonic), nil

	case ".ascii", ".asciiz":
		s, err := parseString(n.Raw)
		if err != nil {
			return 0, err
		}
		if n.Mnemonic == ".asciiz" {
			return uint32(len(s)) + 1, nil
		}
		return uint32(len(s)), nil

	case ".space":
		count, err := asm.parseConstant(n.Operands[0])
		if err != nil {
			return 0, fmt.Errorf("invalid count for .space: %w", err)
		}
		if count < 0 {
			return 0, fmt.Errorf("negative count for .space: %d", count)
		}
		return uint32(count), nil

	case ".align":
		boundary, err := asm.alignment(n)
		if err != nil {
			return 0, err
		}
		return (boundary - pc%boundary) % boundary, nil
	}
	return 0, nil
}

// generateDirectiveCode generates the binary data for assembler directives.
// Returns a byte slice, as data directives are not always word-aligned.
func (asm *Assembler) generateDirectiveCode(n *Node, pc uint32) ([]byte, error) {
	switch n.Mnemonic {
	case ".word", ".half", ".byte":
		return asm.assembleData(n)

	case ".ascii", ".asciiz":
		s, err := parseString(n.Raw)
		if err != nil {
			return nil, err
		}
		out := []byte(s)
		if n.Mnemonic == ".asciiz" {
			out = append(out, 0)
		}
		return out, nil

	case ".space", ".align":
		return make([]byte, n.Size), nil
	}
	return nil, nil
}

// assembleData emits the big-endian values of .word, .half and .byte.
func (asm *Assembler) assembleData(n *Node) ([]byte, error) {
	elementSize := getElementSize(n.Mnemonic)
	var buf []byte
	for _, tok := range n.Operands {
		val, err := asm.parseValue(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid constant '%s': %w", tok, err)
		}
		switch elementSize {
		case 1:
			buf = append(buf, byte(val))
		case 2:
			buf = append(buf, byte(val>>8), byte(val))
		case 4:
			buf = append(buf, byte(val>>24), byte(val>>16), byte(val>>8), byte(val))
		}
	}
	return buf, nil
}

// alignment returns the byte boundary for ".align n", which aligns to 2^n.
func (asm *Assembler) alignment(n *Node) (uint32, error) {
	v, err := asm.parseConstant(n.Operands[0])
	if err != nil {
		return 0, fmt.Errorf("invalid .align: %w", err)
	}
	if v < 0 || v > 16 {
		return 0, fmt.Errorf(".align %d out of range", v)
	}
	return 1 << uint(v), nil
}

// getElementSize returns element size in bytes for data-storage directives.
func getElementSize(directive string) uint32 {
	switch directive {
	case ".half":
		return 2
	case ".word":
		return 4
	default:
		return 1
	}
}
