package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/mips/disassembler"
)

func main() {
	opt := arg.New("dismips")
	opt.SetDefaultHelp(true)
	if err := opt.SetOption(arg.GroupDefault, "b", "base", "Address the image is loaded at.", "0", false, arg.VarString, nil); err != nil {
		fail(err)
	}
	if err := opt.SetOption(arg.GroupDefault, "o", "out", "Output file. Prints to stdout when empty.", "", false, arg.VarString, nil); err != nil {
		fail(err)
	}
	if err := opt.SetPositional("FILE", "Binary image.", "", true, arg.VarString); err != nil {
		fail(err)
	}

	if err := opt.Parse(os.Args); err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fail(err)
	}

	base, err := strconv.ParseUint(opt.GetString("base"), 0, 32)
	if err != nil {
		fail(fmt.Errorf("invalid base address %q", opt.GetString("base")))
	}

	// Read the binary file directly. Do NOT modify it.
	code, err := os.ReadFile(opt.GetPosString("FILE"))
	if err != nil {
		fail(err)
	}

	text, err := disassembler.Disassemble(code, uint32(base))
	if err != nil {
		fail(err)
	}

	outputFile := opt.GetString("out")
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fail(err)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
