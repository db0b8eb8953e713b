// Package assembler turns MIPS-I assembly source into big-endian machine code.
package assembler

import (
	"fmt"
	"strings"
)

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
	labels  map[string]uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
		labels:  make(map[string]uint32),
	}
}

// Labels returns the address of every label seen by the last Assemble call.
func (asm *Assembler) Labels() map[string]uint32 {
	out := make(map[string]uint32, len(asm.labels))
	for k, v := range asm.labels {
		out[k] = v
	}
	return out
}

// Assemble takes MIPS assembly code and returns the machine code, laid out
// from baseAddress.
func (asm *Assembler) Assemble(src string, baseAddress uint32) ([]byte, error) {
	asm.symbols = make(map[string]int64)
	asm.labels = make(map[string]uint32)
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass: resolve label addresses and node sizes until stable.
	for {
		pc := baseAddress
		changed := false
		for _, n := range nodes {
			switch n.Type {
			case NodeLabel:
				if addr, ok := asm.labels[n.Label]; !ok || addr != pc {
					asm.labels[n.Label] = pc
					changed = true
				}
				continue
			case NodeDirective:
				if n.Mnemonic == ".org" {
					addr, err := asm.parseOrg(n, pc)
					if err != nil {
						return nil, err
					}
					pc = addr
					continue
				}
			}

			size, err := asm.getSize(n, pc)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			if n.Size != size {
				changed = true
			}
			n.Size = size
			pc += size
		}
		if !changed {
			break
		}
	}

	// Generate machine code.
	var code []byte
	pc := baseAddress
	for _, n := range nodes {
		var out []byte
		var err error

		switch n.Type {
		case NodeLabel:
			continue
		case NodeDirective:
			if n.Mnemonic == ".org" {
				addr, _ := asm.parseOrg(n, pc)
				out = make([]byte, addr-pc)
				pc = addr
				code = append(code, out...)
				continue
			}
			out, err = asm.generateDirectiveCode(n, pc)
		case NodeInstruction:
			var words []uint32
			words, err = asm.generateInstructionCode(n, pc)
			out = wordsToBytes(words)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: error generating code for '%s': %w", n.Line, n.Mnemonic, err)
		}
		if uint32(len(out)) != n.Size {
			return nil, fmt.Errorf("line %d: '%s' produced %d bytes, sized as %d", n.Line, n.Mnemonic, len(out), n.Size)
		}
		code = append(code, out...)
		pc += n.Size
	}

	return code, nil
}

// getSize returns the number of bytes a node emits at pc.
func (asm *Assembler) getSize(n *Node, pc uint32) (uint32, error) {
	switch n.Type {
	case NodeDirective:
		return asm.getDirectiveSize(n, pc)
	case NodeInstruction:
		if size, ok := asm.pseudoSize(n); ok {
			return size, nil
		}
		return 4, nil
	}
	return 0, nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	seen := make(map[string]bool)
	for i, line := range lines {
		line = stripComment(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for {
			idx := strings.IndexRune(line, ':')
			if idx == -1 {
				break
			}
			label := strings.TrimSpace(line[:idx])
			if label == "" || !reLabel.MatchString(label) {
				break
			}
			label = strings.ToLower(label)
			if seen[label] {
				return nil, fmt.Errorf("line %d: duplicate label: %s", i+1, label)
			}
			seen[label] = true
			nodes = append(nodes, &Node{Type: NodeLabel, Line: i + 1, Label: label})
			line = strings.TrimSpace(line[idx+1:])
		}

		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}
		mnemonic = strings.ToLower(mnemonic)

		var operands []string
		if operandStr != "" {
			operands = splitOperands(operandStr)
		}

		n := &Node{Line: i + 1, Mnemonic: mnemonic, Operands: operands, Raw: operandStr}
		if strings.HasPrefix(mnemonic, ".") {
			n.Type = NodeDirective
			if err := asm.checkDirective(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		} else {
			n.Type = NodeInstruction
			if !isKnownMnemonic(mnemonic) {
				return nil, fmt.Errorf("line %d: unknown instruction: %s", i+1, mnemonic)
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// stripComment drops '#' and ';' comments, leaving quoted text alone.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#' || c == ';':
			return line[:i]
		}
	}
	return line
}

// splitOperands splits an operand string by commas, but ignores commas inside parentheses and quotes.
func splitOperands(s string) []string {
	var result []string
	var quote byte
	parenLevel := 0
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			parenLevel++
		case c == ')':
			parenLevel--
		case c == ',' && parenLevel == 0:
			result = append(result, strings.TrimSpace(s[last:i]))
			last = i + 1
		}
	}
	result = append(result, strings.TrimSpace(s[last:]))
	return result
}
