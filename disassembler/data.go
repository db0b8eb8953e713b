package disassembler

import (
	"fmt"
	"strconv"
	"strings"
)

// isPrintableASCII checks if a byte is a standard printable ASCII character.
func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

// analyzeAndFormatData renders a region that is not reachable code as data
// directives, picking out NUL-terminated strings and four-character tags.
func analyzeAndFormatData(data []byte, baseAddr uint32, stringCounter *int) string {
	var sb strings.Builder
	n := len(data)
	if n == 0 {
		return ""
	}

	i := 0
	minStrLen := 4

	for i < n {
		// Skip non-printables first
		start := i
		for start < n && !isPrintableASCII(data[start]) {
			start++
		}
		if start > i {
			sb.WriteString(formatHexBytes(data[i:start]))
		}

		// Find printable run
		end := start
		for end < n && isPrintableASCII(data[end]) {
			end++
		}
		if end <= start {
			i = start
			continue
		}

		run := data[start:end]
		runAddr := baseAddr + uint32(start)
		isNullTerminated := end < n && data[end] == 0x00

		// Rule 1: printable + NUL, at least 4 chars: string
		if isNullTerminated && len(run) >= minStrLen {
			label := fmt.Sprintf("string%d:", *stringCounter)
			(*stringCounter)++
			fmt.Fprintf(&sb, "%-8s .asciiz  %s\n", label, strconv.Quote(string(run)))
			i = end + 1
			continue
		}

		// Rule 2: 4-byte aligned, 4 printable chars: tag
		if len(run) == 4 && runAddr%4 == 0 {
			label := fmt.Sprintf("string%d:", *stringCounter)
			(*stringCounter)++
			fmt.Fprintf(&sb, "%-8s .ascii   %s\n", label, strconv.Quote(string(run)))
			i = end
			continue
		}

		// Rule 3: anything else, emit as hex
		sb.WriteString(formatHexBytes(run))
		i = end
	}

	return sb.String()
}

// formatHexBytes formats a slice of bytes into .byte directives, 16 bytes per line.
func formatHexBytes(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	const bytesPerLine = 16

	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i:end]

		sb.WriteString("    .byte    ")
		for j, b := range chunk {
			if j > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, "0x%02x", b)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
