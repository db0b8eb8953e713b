package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"

	"github.com/Urethramancer/mips/assembler"
)

func main() {
	opt := arg.New("asmips")
	opt.SetDefaultHelp(true)
	if err := opt.SetOption(arg.GroupDefault, "b", "base", "Address the code is assembled for.", "0", false, arg.VarString, nil); err != nil {
		fail(err)
	}
	if err := opt.SetOption(arg.GroupDefault, "o", "out", "Output file for the binary image. Prints hex words when empty.", "", false, arg.VarString, nil); err != nil {
		fail(err)
	}
	if err := opt.SetPositional("FILE", "Assembly source file.", "", true, arg.VarString); err != nil {
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

	data, err := os.ReadFile(opt.GetPosString("FILE"))
	if err != nil {
		fail(err)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data), uint32(base))
	if err != nil {
		fail(err)
	}

	if out := opt.GetString("out"); out != "" {
		if err := os.WriteFile(out, code, 0644); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(code), out)
		return
	}

	// Print the image as big-endian hex words.
	for i := 0; i < len(code); i += 4 {
		if i > 0 {
			fmt.Print(" ")
		}
		end := i + 4
		if end > len(code) {
			end = len(code)
		}
		fmt.Printf("%x", code[i:end])
	}
	fmt.Println()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
