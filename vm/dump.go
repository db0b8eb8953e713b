package vm

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/Urethramancer/mips/cpu"
)

// DumpRegisters writes the register file, PC, HI and LO as a table.
func (v *VM) DumpRegisters(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Reg", "Value", "Reg", "Value", "Reg", "Value", "Reg", "Value"})

	const cols = 4
	rows := cpu.NumRegisters / cols
	for r := 0; r < rows; r++ {
		var row []string
		for c := 0; c < cols; c++ {
			i := uint(c*rows + r)
			val, _ := v.CPU.Register(i)
			row = append(row, "$"+cpu.RegisterNames[i], fmt.Sprintf("%08x", val))
		}
		table.Append(row)
	}
	table.Append([]string{
		"pc", fmt.Sprintf("%08x", v.CPU.PC()),
		"npc", fmt.Sprintf("%08x", v.CPU.NextPC()),
		"hi", fmt.Sprintf("%08x", v.CPU.HI()),
		"lo", fmt.Sprintf("%08x", v.CPU.LO()),
	})
	table.Render()
}
