package vm_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/mips/assembler"
	"github.com/Urethramancer/mips/cpu"
	"github.com/Urethramancer/mips/memory"
	"github.com/Urethramancer/mips/vm"
)

const fibSource = `
# Recursive Fibonacci: v0 = fib(a0)
fib:	addiu $sp, $sp, -12
	sw $ra, 8($sp)
	sw $s0, 4($sp)
	sw $s1, 0($sp)
	move $s0, $a0
	slti $t0, $a0, 2
	beq $t0, $zero, recurse
	nop
	move $v0, $a0
	b done
	nop
recurse:
	addiu $a0, $s0, -1
	jal fib
	nop
	move $s1, $v0
	addiu $a0, $s0, -2
	jal fib
	nop
	addu $v0, $v0, $s1
done:	lw $s1, 0($sp)
	lw $s0, 4($sp)
	lw $ra, 8($sp)
	jr $ra
	addiu $sp, $sp, 12
`

func load(t *testing.T, cfg vm.Config, src string) *vm.VM {
	t.Helper()
	code, err := assembler.New().Assemble(src, 0)
	require.NoError(t, err)
	v := vm.New(cfg)
	require.NoError(t, v.LoadCode(0, code))
	return v
}

func TestFibonacci(t *testing.T) {
	tests := []struct {
		n, want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{10, 55},
		{12, 144},
	}
	for _, tc := range tests {
		cfg := vm.DefaultConfig()
		cfg.Argument = tc.n
		v := load(t, cfg, fibSource)

		require.NoError(t, v.Run(), "fib(%d)", tc.n)
		got, err := v.CPU.Register(cpu.RegV0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "fib(%d)", tc.n)

		// The stack is balanced and the callee-saved registers restored.
		sp, _ := v.CPU.Register(cpu.RegSP)
		assert.Equal(t, cfg.StackPointer, sp)
		assert.Equal(t, cfg.Sentinel, v.CPU.PC())
		assert.Positive(t, v.Steps())
	}
}

func TestLoadCodeSeedsRegisters(t *testing.T) {
	cfg := vm.DefaultConfig()
	v := vm.New(cfg)
	require.NoError(t, v.LoadCode(0x100, []byte{0, 0, 0, 0}))

	a0, _ := v.CPU.Register(cpu.RegA0)
	sp, _ := v.CPU.Register(cpu.RegSP)
	ra, _ := v.CPU.Register(cpu.RegRA)
	assert.Equal(t, cfg.Argument, a0)
	assert.Equal(t, cfg.StackPointer, sp)
	assert.Equal(t, cfg.Sentinel, ra)
	assert.Equal(t, uint32(0x100), v.CPU.PC())
	assert.Equal(t, uint32(0x104), v.CPU.NextPC())
	assert.Zero(t, v.Steps())
}

func TestLoadCodeOutOfRange(t *testing.T) {
	cfg := vm.DefaultConfig()
	cfg.MemorySize = 0x100
	v := vm.New(cfg)
	err := v.LoadCode(0xFC, make([]byte, 8))
	require.Error(t, err)
	assert.True(t, errors.Is(err, memory.ErrInvalidAddress))
}

func TestStepLimit(t *testing.T) {
	cfg := vm.DefaultConfig()
	cfg.MaxSteps = 100
	v := load(t, cfg, "spin: b spin\n nop")

	err := v.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrStepLimit))
	assert.Equal(t, 100, v.Steps())
}

func TestRunStopsOnError(t *testing.T) {
	v := load(t, vm.DefaultConfig(), "addiu $t0, $zero, 1\n.word 0xffffffff")

	err := v.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrInvalidInstruction))
	assert.Contains(t, err.Error(), "step 2")
	assert.Equal(t, 1, v.Steps())
	assert.Equal(t, uint32(4), v.CPU.PC())
}

func TestRunOverflow(t *testing.T) {
	v := load(t, vm.DefaultConfig(), "lui $t0, 0x7fff\n ori $t0, $t0, 0xffff\n addi $t0, $t0, 1")

	err := v.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrArithmeticOverflow))
}

func TestSignExtendByteLoads(t *testing.T) {
	src := `
	la $t0, data
	lb $v0, 0($t0)
	jr $ra
	nop
data:	.byte 0x80
`
	v := load(t, vm.DefaultConfig(), src)
	require.NoError(t, v.Run())
	raw, _ := v.CPU.Register(cpu.RegV0)
	assert.Equal(t, uint32(0x80), raw)

	cfg := vm.DefaultConfig()
	cfg.SignExtendByteLoads = true
	v = load(t, cfg, src)
	require.NoError(t, v.Run())
	ext, _ := v.CPU.Register(cpu.RegV0)
	assert.Equal(t, uint32(0xFFFFFF80), ext)
}

func TestTrace(t *testing.T) {
	hook := test.NewGlobal()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(logrus.InfoLevel)

	cfg := vm.DefaultConfig()
	cfg.Trace = true
	v := load(t, cfg, "jr $ra\n addiu $v0, $zero, 7")
	hook.Reset()
	require.NoError(t, v.Run())

	var steps []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "step" {
			steps = append(steps, e)
		}
	}
	require.Len(t, steps, 2)
	assert.Equal(t, "00000000", steps[0].Data["pc"])
	assert.Equal(t, "03e00008", steps[0].Data["word"])
	assert.Equal(t, "jr $ra", steps[0].Data["inst"])
	assert.Equal(t, "addiu $v0, $zero, 7", steps[1].Data["inst"])

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "program returned", last.Message)
}

func TestDumpRegisters(t *testing.T) {
	cfg := vm.DefaultConfig()
	cfg.Argument = 12
	v := load(t, cfg, fibSource)
	require.NoError(t, v.Run())

	var buf bytes.Buffer
	v.DumpRegisters(&buf)
	out := buf.String()
	assert.Contains(t, out, "$v0")
	assert.Contains(t, out, "00000090")
	assert.Contains(t, out, "$ra")
	assert.Contains(t, out, "10000000")
}
