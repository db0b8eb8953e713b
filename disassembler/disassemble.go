// Package disassembler turns big-endian MIPS-I machine code back into
// assembly source that the assembler accepts.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/mips/cpu"
	"golang.org/x/exp/slices"
)

// Disassemble performs a multi-stage disassembly of code loaded at base.
// Execution is assumed to start at base.
func Disassemble(code []byte, base uint32) (string, error) {
	if len(code) == 0 {
		return "", nil
	}
	if base&3 != 0 {
		return "", fmt.Errorf("base address %08x is not word aligned: %w", base, cpu.ErrInvalidAlignment)
	}

	// --- STAGE 1: Linear Sweep ---
	instructions := make(map[uint32]*Instruction)
	end := base + uint32(len(code)&^3)
	for pc := base; pc < end; pc += 4 {
		off := pc - base
		word := cpu.DecodeWord([4]byte(code[off : off+4]))
		inst := &Instruction{Address: pc, Word: word}
		inst.Decoded, _ = cpu.Decode(word)
		inst.Mnemonic, inst.Operands = Decode(word, pc)
		instructions[pc] = inst
	}

	// --- STAGE 2: Control Flow Analysis ---
	labelTargets := make(map[uint32]LabelType)
	delaySlots := make(map[uint32]bool)
	q := newQueue()
	q.push(base)

	for {
		addr, ok := q.pop()
		if !ok {
			break
		}

		inst, exists := instructions[addr]
		if !exists || inst.IsCode {
			continue
		}
		inst.IsCode = true

		if inst.hasDelaySlot() {
			q.push(addr + 4)
			if inst.isTerminal() {
				delaySlots[addr+4] = true
			}
		} else if !inst.isTerminal() && !delaySlots[addr] {
			q.push(addr + 4)
		}

		if target, ok := inst.target(); ok {
			q.push(target)
			if inst.Decoded.Op.Links() {
				labelTargets[target] = SubroutineEntry
			} else if _, exists := labelTargets[target]; !exists {
				labelTargets[target] = JumpTarget
			}
		}
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder

	// Targets outside the image become symbols so the output reassembles.
	var external []uint32
	for addr := range labelTargets {
		if inst, ok := instructions[addr]; !ok || !inst.IsCode {
			external = append(external, addr)
		}
	}
	slices.Sort(external)
	for _, addr := range external {
		fmt.Fprintf(&out, "    %-8s %s, 0x%08x\n", ".equ", labelName(addr, labelTargets[addr]), addr)
	}

	stringCounter := 1
	pc := base
	totalEnd := base + uint32(len(code))

	for pc < totalEnd {
		// If the current address is not marked as code, find the end of the
		// data block and pass it to the data analyzer.
		if inst, isCode := instructions[pc]; !isCode || !inst.IsCode {
			dataEnd := pc
			for dataEnd < totalEnd {
				if inst, isCode := instructions[dataEnd]; isCode && inst.IsCode {
					break
				}
				dataEnd++
			}
			out.WriteString(analyzeAndFormatData(code[pc-base:dataEnd-base], pc, &stringCounter))
			pc = dataEnd
			continue
		}

		// It's a code instruction. Check if a label needs to be printed.
		if labelType, exists := labelTargets[pc]; exists {
			fmt.Fprintf(&out, "%s:\n", labelName(pc, labelType))
		}

		inst := instructions[pc]
		finalOperands := inst.Operands
		if target, ok := inst.target(); ok {
			if labelType, exists := labelTargets[target]; exists {
				finalOperands = strings.TrimSuffix(finalOperands, fmt.Sprintf("0x%08x", target)) + labelName(target, labelType)
			}
		}

		if finalOperands != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", inst.Mnemonic, finalOperands)
		} else {
			fmt.Fprintf(&out, "    %s\n", inst.Mnemonic)
		}
		pc += 4
	}

	return out.String(), nil
}

// labelName generates a label for an address based on its type.
func labelName(addr uint32, t LabelType) string {
	if t == SubroutineEntry {
		return fmt.Sprintf("sub_%08x", addr)
	}
	return fmt.Sprintf("loc_%08x", addr)
}

// addrQueue is a simple worklist queue for addresses to decode.
type addrQueue struct {
	items []uint32
	seen  map[uint32]bool
}

func newQueue() *addrQueue {
	return &addrQueue{seen: make(map[uint32]bool)}
}

func (q *addrQueue) push(addr uint32) {
	addr &^= 3 // Align to word boundary
	if !q.seen[addr] {
		q.items = append(q.items, addr)
		q.seen[addr] = true
	}
}

func (q *addrQueue) pop() (uint32, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
