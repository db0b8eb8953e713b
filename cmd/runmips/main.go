package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/mips/vm"
)

// This program loads a raw big-endian MIPS image, runs it until it returns to
// the sentinel address and prints the final registers.
func main() {
	def := vm.DefaultConfig()
	opt := arg.New("runmips")
	opt.SetDefaultHelp(true)
	options := []struct {
		short, long, help string
		def               any
		typ               uint8
	}{
		{"b", "base", "Load address.", "0", arg.VarString},
		{"m", "mem", "RAM size in bytes.", hex(def.MemorySize), arg.VarString},
		{"", "block", "RAM block size in bytes.", hex(def.BlockSize), arg.VarString},
		{"a", "arg", "Value placed in $a0.", hex(def.Argument), arg.VarString},
		{"s", "sp", "Initial stack pointer.", hex(def.StackPointer), arg.VarString},
		{"", "sentinel", "Return address that ends the run.", hex(def.Sentinel), arg.VarString},
		{"n", "max-steps", "Step limit, 0 for none.", def.MaxSteps, arg.VarInt},
		{"t", "trace", "Log every executed instruction.", false, arg.VarBool},
		{"v", "verbose", "Log loading and completion.", false, arg.VarBool},
		{"", "sign-extend-lb", "Sign-extend bytes loaded by lb.", false, arg.VarBool},
	}
	for _, o := range options {
		if err := opt.SetOption(arg.GroupDefault, o.short, o.long, o.help, o.def, false, o.typ, nil); err != nil {
			fail(err)
		}
	}
	if err := opt.SetPositional("FILE", "Binary image to run.", "", true, arg.VarString); err != nil {
		fail(err)
	}

	if err := opt.Parse(os.Args); err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fail(err)
	}

	cfg := def
	base := number(opt.GetString("base"))
	cfg.MemorySize = number(opt.GetString("mem"))
	cfg.BlockSize = number(opt.GetString("block"))
	cfg.Argument = number(opt.GetString("arg"))
	cfg.StackPointer = number(opt.GetString("sp"))
	cfg.Sentinel = number(opt.GetString("sentinel"))
	cfg.MaxSteps = opt.GetInt("max-steps")
	cfg.SignExtendByteLoads = opt.GetBool("sign-extend-lb")
	cfg.Trace = opt.GetBool("trace")

	logrus.SetOutput(os.Stderr)
	switch {
	case cfg.Trace:
		logrus.SetLevel(logrus.DebugLevel)
	case opt.GetBool("verbose"):
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}

	code, err := os.ReadFile(opt.GetPosString("FILE"))
	if err != nil {
		fail(err)
	}

	v := vm.New(cfg)
	if err := v.LoadCode(base, code); err != nil {
		fail(err)
	}

	runErr := v.Run()
	v.DumpRegisters(os.Stdout)
	if runErr != nil {
		fail(runErr)
	}
	fmt.Printf("Returned after %d steps.\n", v.Steps())
}

func hex(v uint32) string {
	return fmt.Sprintf("0x%x", v)
}

// number parses decimal, 0x hex or 0b binary.
func number(s string) uint32 {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		fail(fmt.Errorf("invalid number %q", s))
	}
	return uint32(v)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
