package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		word   uint32
		op     Op
		format Format
	}{
		{"addu", encR(FunctADDU, 4, 5, 2, 0), OpADDU, FormatR},
		{"sra", encR(FunctSRA, 0, 5, 2, 3), OpSRA, FormatR},
		{"jr", encR(FunctJR, RegRA, 0, 0, 0), OpJR, FormatR},
		{"j", encJ(OpcodeJ, 0x40), OpJ, FormatJ},
		{"jal", encJ(OpcodeJAL, 0x40), OpJAL, FormatJ},
		{"addiu", encI(OpcodeADDIU, 29, 29, -8), OpADDIU, FormatI},
		{"bgezal", encI(OpcodeRegimm, 4, RegimmBGEZAL, 2), OpBGEZAL, FormatI},
		{"bltz", encI(OpcodeRegimm, 4, RegimmBLTZ, 2), OpBLTZ, FormatI},
		{"lwr", encI(OpcodeLWR, 4, 5, 3), OpLWR, FormatI},
		{"nop", 0, OpSLL, FormatR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := Decode(tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.op, inst.Op)
			assert.Equal(t, tc.format, inst.Format())
			if tc.name != "nop" {
				assert.Equal(t, tc.name, tc.op.String())
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	inst, err := Decode(encI(OpcodeADDIU, 29, 8, -8))
	require.NoError(t, err)
	assert.Equal(t, uint32(29), inst.Rs)
	assert.Equal(t, uint32(8), inst.Rt)
	assert.Equal(t, uint32(0xFFFFFFF8), inst.SignedImm())
	assert.Equal(t, uint32(0xFFF8), inst.ZeroImm())

	inst, err = Decode(encJ(OpcodeJ, 0x0FFFFFFC))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x03FFFFFF), inst.Target)

	inst, err = Decode(encR(FunctSLL, 0, 3, 4, 31))
	require.NoError(t, err)
	assert.Equal(t, uint32(31), inst.Shamt)
	assert.Equal(t, uint32(4), inst.Rd)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		word uint32
	}{
		{"unknown funct", encR(0x3F, 1, 2, 3, 0)},
		{"unknown opcode", 0x3F << 26},
		{"cop1", 0x11 << 26},
		{"shamt on add", encR(FunctADD, 1, 2, 3, 1)},
		{"shamt on sllv", encR(FunctSLLV, 1, 2, 3, 4)},
		{"rs on sll", encR(FunctSLL, 1, 2, 3, 4)},
		{"rt on jr", encR(FunctJR, 1, 2, 0, 0)},
		{"rd on jr", encR(FunctJR, 1, 0, 3, 0)},
		{"rt on jalr", encR(FunctJALR, 1, 2, 31, 0)},
		{"rd on mult", encR(FunctMULT, 1, 2, 3, 0)},
		{"rd on divu", encR(FunctDIVU, 1, 2, 3, 0)},
		{"rs on mfhi", encR(FunctMFHI, 1, 0, 3, 0)},
		{"rd on mtlo", encR(FunctMTLO, 1, 0, 3, 0)},
		{"bad regimm selector", encI(OpcodeRegimm, 1, 5, 0)},
		{"rt on bgtz", encI(OpcodeBGTZ, 1, 2, 0)},
		{"rt on blez", encI(OpcodeBLEZ, 1, 2, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.word)
			assert.ErrorIs(t, err, ErrInvalidInstruction)
		})
	}
}

func TestTableConsistency(t *testing.T) {
	seen := map[string]bool{}
	for op := OpInvalid + 1; op < opCount; op++ {
		info := Table[op]
		require.NotEmpty(t, info.Mnemonic, "op %d has no table entry", op)
		assert.False(t, seen[info.Mnemonic], "duplicate mnemonic %s", info.Mnemonic)
		seen[info.Mnemonic] = true

		found, ok := LookupMnemonic(info.Mnemonic)
		assert.True(t, ok)
		assert.Equal(t, op, found)
	}
	assert.Equal(t, "invalid", OpInvalid.String())
	assert.True(t, OpBEQ.IsBranch())
	assert.True(t, OpBLTZAL.Links())
	assert.True(t, OpJR.IsJump())
	assert.False(t, OpADDU.IsBranch())
}

func TestRegisterByName(t *testing.T) {
	for name, want := range map[string]uint32{"zero": 0, "sp": 29, "ra": 31, "31": 31, "0": 0, "t0": 8, "s8": 30, "fp": 30} {
		got, ok := RegisterByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"32", "x1", "", "100", "-1"} {
		_, ok := RegisterByName(name)
		assert.False(t, ok, name)
	}
}
