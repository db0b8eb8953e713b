package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/mips/cpu"
)

var (
	reLabel  = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reMemory = regexp.MustCompile(`^(.*)\(\s*(\$[A-Za-z0-9]+)\s*\)$`)
)

// parseRegister parses "$t0", "$8" and friends into a register number.
func parseRegister(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "$") {
		return 0, fmt.Errorf("expected register, got '%s'", s)
	}
	r, ok := cpu.RegisterByName(strings.ToLower(s[1:]))
	if !ok {
		return 0, fmt.Errorf("unknown register: %s", s)
	}
	return r, nil
}

// parseRegisters parses every operand as a register.
func parseRegisters(ops []string) ([]uint32, error) {
	regs := make([]uint32, len(ops))
	for i, s := range ops {
		r, err := parseRegister(s)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}

// parseMemory parses "offset($base)" or "($base)".
func parseMemory(s string, asm *Assembler) (int64, uint32, error) {
	s = strings.TrimSpace(s)
	m := reMemory.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("expected offset(base), got '%s'", s)
	}
	base, err := parseRegister(m[2])
	if err != nil {
		return 0, 0, err
	}
	var off int64
	if expr := strings.TrimSpace(m[1]); expr != "" {
		off, err = asm.parseValue(expr)
		if err != nil {
			return 0, 0, err
		}
	}
	return off, base, nil
}

// parseValue evaluates an operand that may name a label, a symbol or a number,
// optionally combined with + and -.
func (asm *Assembler) parseValue(s string) (int64, error) {
	return asm.evaluate(s, true)
}

// parseConstant evaluates an operand that may not refer to labels.
func (asm *Assembler) parseConstant(s string) (int64, error) {
	return asm.evaluate(s, false)
}

func (asm *Assembler) evaluate(s string, labels bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	if isCharLiteral(s) {
		return parseTerm(s, asm, labels)
	}

	var total int64
	sign := int64(1)
	start := 0
	for i := 1; i <= len(s); i++ {
		if i < len(s) && (s[i] != '+' && s[i] != '-' || !splitsAt(s, i)) {
			continue
		}
		v, err := parseTerm(s[start:i], asm, labels)
		if err != nil {
			return 0, err
		}
		total += sign * v
		if i < len(s) {
			sign = 1
			if s[i] == '-' {
				sign = -1
			}
			start = i + 1
		}
	}
	return total, nil
}

// splitsAt reports whether the sign at s[i] is a binary operator rather than
// the sign of the following number.
func splitsAt(s string, i int) bool {
	prev := strings.TrimSpace(s[:i])
	if prev == "" {
		return false
	}
	c := prev[len(prev)-1]
	return c != '+' && c != '-'
}

func isCharLiteral(s string) bool {
	return len(s) >= 3 && s[0] == '\'' && s[len(s)-1] == '\''
}

// parseTerm parses a single number, character literal, symbol or label.
func parseTerm(s string, asm *Assembler, labels bool) (int64, error) {
	s = strings.TrimSpace(s)
	if isCharLiteral(s) {
		c, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			return 0, fmt.Errorf("invalid character literal: %s", s)
		}
		return int64(c), nil
	}

	name := strings.ToLower(s)
	if val, ok := asm.symbols[name]; ok {
		return val, nil
	}
	if labels && reLabel.MatchString(s) {
		if addr, ok := asm.labels[name]; ok {
			return int64(addr), nil
		}
		return 0, fmt.Errorf("undefined label: %s", s)
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	case strings.HasPrefix(s, "%"):
		base = 2
		s = s[1:]
	}
	val, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		return -int64(val), nil
	}
	return int64(val), nil
}

// parseString unquotes a double-quoted string operand.
func parseString(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got '%s'", s)
	}
	out, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("invalid string %s: %w", s, err)
	}
	return out, nil
}
