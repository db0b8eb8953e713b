// Package vm hosts a CPU on a block of RAM: it loads an image, seeds the
// calling convention registers and runs until the program returns.
package vm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/mips/cpu"
	"github.com/Urethramancer/mips/disassembler"
	"github.com/Urethramancer/mips/memory"
)

// ErrStepLimit is returned when a program has not returned after MaxSteps steps.
var ErrStepLimit = errors.New("step limit reached")

// Config holds the machine layout and the calling convention a program is
// started with.
type Config struct {
	// MemorySize is the RAM size in bytes.
	MemorySize uint32
	// BlockSize is the RAM access granularity.
	BlockSize uint32
	// Argument is placed in $a0.
	Argument uint32
	// StackPointer is placed in $sp.
	StackPointer uint32
	// Sentinel is placed in $ra. Reaching it ends the run.
	Sentinel uint32
	// MaxSteps bounds Run. Zero means no bound.
	MaxSteps int
	// SignExtendByteLoads makes lb sign-extend.
	SignExtendByteLoads bool
	// Trace logs every step at debug level.
	Trace bool
}

// DefaultConfig returns the layout used by the command line runner.
func DefaultConfig() Config {
	return Config{
		MemorySize:   0x20000,
		BlockSize:    4,
		Argument:     12,
		StackPointer: 0x1000,
		Sentinel:     0x10000000,
		MaxSteps:     1000000,
	}
}

// VM is a CPU, the RAM it runs on and the run configuration.
type VM struct {
	CPU *cpu.CPU
	RAM *memory.RAM

	cfg   Config
	steps int
}

// New creates a VM with zeroed RAM and a reset CPU.
func New(cfg Config) *VM {
	ram := memory.NewRAM(cfg.MemorySize, cfg.BlockSize)
	var opts []cpu.Option
	if cfg.SignExtendByteLoads {
		opts = append(opts, cpu.WithSignExtendedByteLoads())
	}
	return &VM{
		CPU: cpu.New(ram, opts...),
		RAM: ram,
		cfg: cfg,
	}
}

// Config returns the configuration the VM was created with.
func (v *VM) Config() Config {
	return v.cfg
}

// Steps returns the number of instructions executed by Run so far.
func (v *VM) Steps() int {
	return v.steps
}

// LoadCode copies code to addr, points the PC at it and seeds $a0, $sp and $ra.
func (v *VM) LoadCode(addr uint32, code []byte) error {
	if err := v.RAM.Load(addr, code); err != nil {
		return fmt.Errorf("loading %d bytes at %08x: %w", len(code), addr, err)
	}
	if err := v.CPU.Reset(); err != nil {
		return err
	}

	seed := []struct {
		reg uint
		val uint32
	}{
		{cpu.RegA0, v.cfg.Argument},
		{cpu.RegSP, v.cfg.StackPointer},
		{cpu.RegRA, v.cfg.Sentinel},
	}
	for _, s := range seed {
		if err := v.CPU.SetRegister(s.reg, s.val); err != nil {
			return err
		}
	}
	if err := v.CPU.SetPC(addr); err != nil {
		return err
	}
	v.steps = 0

	logrus.WithFields(logrus.Fields{
		"addr":  fmt.Sprintf("%08x", addr),
		"bytes": len(code),
	}).Info("code loaded")
	return nil
}

// Step executes a single instruction, tracing it when configured to.
func (v *VM) Step() error {
	if v.cfg.Trace && logrus.IsLevelEnabled(logrus.DebugLevel) {
		v.trace()
	}
	if err := v.CPU.Step(); err != nil {
		return err
	}
	v.steps++
	return nil
}

// Done reports whether the program has returned to the sentinel.
func (v *VM) Done() bool {
	return v.CPU.PC() == v.cfg.Sentinel
}

// Run steps the CPU until the program returns to the sentinel address, the
// step limit is reached or a step fails.
func (v *VM) Run() error {
	for !v.Done() {
		if v.cfg.MaxSteps > 0 && v.steps >= v.cfg.MaxSteps {
			return fmt.Errorf("after %d steps at %08x: %w", v.steps, v.CPU.PC(), ErrStepLimit)
		}
		if err := v.Step(); err != nil {
			return fmt.Errorf("step %d: %w", v.steps+1, err)
		}
	}

	v0, _ := v.CPU.Register(cpu.RegV0)
	logrus.WithFields(logrus.Fields{
		"steps": v.steps,
		"v0":    v0,
	}).Info("program returned")
	return nil
}

func (v *VM) trace() {
	pc := v.CPU.PC()
	fields := logrus.Fields{
		"pc": fmt.Sprintf("%08x", pc),
	}

	var buf [4]byte
	if err := v.RAM.Read(pc, buf[:]); err == nil {
		word := cpu.DecodeWord(buf)
		mn, ops := disassembler.Decode(word, pc)
		fields["word"] = fmt.Sprintf("%08x", word)
		fields["inst"] = strings.TrimSpace(mn + " " + ops)
	}
	logrus.WithFields(fields).Debug("step")
}
