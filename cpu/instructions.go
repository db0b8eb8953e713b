package cpu

// Format is the encoding family of an instruction word.
type Format int

const (
	// FormatR is the register form, opcode 0.
	FormatR Format = iota
	// FormatI is the immediate form, every opcode that is not R or J.
	FormatI
	// FormatJ is the jump form, opcodes 2 and 3.
	FormatJ
)

// Syntax describes which fields an instruction uses. It drives reserved-field
// checks in the decoder and operand layout in the assembler and disassembler.
type Syntax int

const (
	// SyntaxRdRsRt is "op rd, rs, rt".
	SyntaxRdRsRt Syntax = iota
	// SyntaxRdRtShamt is "op rd, rt, sa".
	SyntaxRdRtShamt
	// SyntaxRdRtRs is "op rd, rt, rs".
	SyntaxRdRtRs
	// SyntaxRs is "op rs".
	SyntaxRs
	// SyntaxRdRs is "op rd, rs".
	SyntaxRdRs
	// SyntaxRsRt is "op rs, rt", results in HI/LO.
	SyntaxRsRt
	// SyntaxRd is "op rd".
	SyntaxRd
	// SyntaxRtRsImm is "op rt, rs, imm".
	SyntaxRtRsImm
	// SyntaxRtImm is "op rt, imm".
	SyntaxRtImm
	// SyntaxRtOffsetBase is "op rt, offset(rs)".
	SyntaxRtOffsetBase
	// SyntaxRsRtOffset is "op rs, rt, label".
	SyntaxRsRtOffset
	// SyntaxRsOffset is "op rs, label".
	SyntaxRsOffset
	// SyntaxTarget is "op target".
	SyntaxTarget
)

// Op enumerates every instruction the core executes.
type Op int

// Instruction set. OpInvalid is the zero value and never executes.
const (
	OpInvalid Op = iota

	// R-type
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// REGIMM, opcode 1 with the selector in rt
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// J-type
	OpJ
	OpJAL

	// I-type
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR
	OpSB
	OpSH
	OpSWL
	OpSW
	OpSWR

	opCount
)

// Primary opcodes (bits 31-26).
const (
	OpcodeSpecial = 0x00
	OpcodeRegimm  = 0x01
	OpcodeJ       = 0x02
	OpcodeJAL     = 0x03
	OpcodeBEQ     = 0x04
	OpcodeBNE     = 0x05
	OpcodeBLEZ    = 0x06
	OpcodeBGTZ    = 0x07
	OpcodeADDI    = 0x08
	OpcodeADDIU   = 0x09
	OpcodeSLTI    = 0x0A
	OpcodeSLTIU   = 0x0B
	OpcodeANDI    = 0x0C
	OpcodeORI     = 0x0D
	OpcodeXORI    = 0x0E
	OpcodeLUI     = 0x0F
	OpcodeLB      = 0x20
	OpcodeLH      = 0x21
	OpcodeLWL     = 0x22
	OpcodeLW      = 0x23
	OpcodeLBU     = 0x24
	OpcodeLHU     = 0x25
	OpcodeLWR     = 0x26
	OpcodeSB      = 0x28
	OpcodeSH      = 0x29
	OpcodeSWL     = 0x2A
	OpcodeSW      = 0x2B
	OpcodeSWR     = 0x2E
)

// Function codes (bits 5-0) for opcode 0.
const (
	FunctSLL   = 0x00
	FunctSRL   = 0x02
	FunctSRA   = 0x03
	FunctSLLV  = 0x04
	FunctSRLV  = 0x06
	FunctSRAV  = 0x07
	FunctJR    = 0x08
	FunctJALR  = 0x09
	FunctMFHI  = 0x10
	FunctMTHI  = 0x11
	FunctMFLO  = 0x12
	FunctMTLO  = 0x13
	FunctMULT  = 0x18
	FunctMULTU = 0x19
	FunctDIV   = 0x1A
	FunctDIVU  = 0x1B
	FunctADD   = 0x20
	FunctADDU  = 0x21
	FunctSUB   = 0x22
	FunctSUBU  = 0x23
	FunctAND   = 0x24
	FunctOR    = 0x25
	FunctXOR   = 0x26
	FunctNOR   = 0x27
	FunctSLT   = 0x2A
	FunctSLTU  = 0x2B
)

// REGIMM selectors, carried in the rt field of opcode 1.
const (
	RegimmBLTZ   = 0x00
	RegimmBGEZ   = 0x01
	RegimmBLTZAL = 0x10
	RegimmBGEZAL = 0x11
)

// Info is the static description of one instruction.
type Info struct {
	Mnemonic string
	Format   Format
	Syntax   Syntax
	// Opcode is the primary opcode. Funct is the R-type function code, or the
	// rt selector for REGIMM branches.
	Opcode uint32
	Funct  uint32
	// SignedImm is set when the 16-bit immediate is sign-extended.
	SignedImm bool
}

// Table describes every Op, indexed by Op.
var Table = [opCount]Info{
	OpSLL:   {"sll", FormatR, SyntaxRdRtShamt, OpcodeSpecial, FunctSLL, false},
	OpSRL:   {"srl", FormatR, SyntaxRdRtShamt, OpcodeSpecial, FunctSRL, false},
	OpSRA:   {"sra", FormatR, SyntaxRdRtShamt, OpcodeSpecial, FunctSRA, false},
	OpSLLV:  {"sllv", FormatR, SyntaxRdRtRs, OpcodeSpecial, FunctSLLV, false},
	OpSRLV:  {"srlv", FormatR, SyntaxRdRtRs, OpcodeSpecial, FunctSRLV, false},
	OpSRAV:  {"srav", FormatR, SyntaxRdRtRs, OpcodeSpecial, FunctSRAV, false},
	OpJR:    {"jr", FormatR, SyntaxRs, OpcodeSpecial, FunctJR, false},
	OpJALR:  {"jalr", FormatR, SyntaxRdRs, OpcodeSpecial, FunctJALR, false},
	OpMFHI:  {"mfhi", FormatR, SyntaxRd, OpcodeSpecial, FunctMFHI, false},
	OpMTHI:  {"mthi", FormatR, SyntaxRs, OpcodeSpecial, FunctMTHI, false},
	OpMFLO:  {"mflo", FormatR, SyntaxRd, OpcodeSpecial, FunctMFLO, false},
	OpMTLO:  {"mtlo", FormatR, SyntaxRs, OpcodeSpecial, FunctMTLO, false},
	OpMULT:  {"mult", FormatR, SyntaxRsRt, OpcodeSpecial, FunctMULT, false},
	OpMULTU: {"multu", FormatR, SyntaxRsRt, OpcodeSpecial, FunctMULTU, false},
	OpDIV:   {"div", FormatR, SyntaxRsRt, OpcodeSpecial, FunctDIV, false},
	OpDIVU:  {"divu", FormatR, SyntaxRsRt, OpcodeSpecial, FunctDIVU, false},
	OpADD:   {"add", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctADD, false},
	OpADDU:  {"addu", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctADDU, false},
	OpSUB:   {"sub", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctSUB, false},
	OpSUBU:  {"subu", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctSUBU, false},
	OpAND:   {"and", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctAND, false},
	OpOR:    {"or", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctOR, false},
	OpXOR:   {"xor", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctXOR, false},
	OpNOR:   {"nor", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctNOR, false},
	OpSLT:   {"slt", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctSLT, false},
	OpSLTU:  {"sltu", FormatR, SyntaxRdRsRt, OpcodeSpecial, FunctSLTU, false},

	OpBLTZ:   {"bltz", FormatI, SyntaxRsOffset, OpcodeRegimm, RegimmBLTZ, true},
	OpBGEZ:   {"bgez", FormatI, SyntaxRsOffset, OpcodeRegimm, RegimmBGEZ, true},
	OpBLTZAL: {"bltzal", FormatI, SyntaxRsOffset, OpcodeRegimm, RegimmBLTZAL, true},
	OpBGEZAL: {"bgezal", FormatI, SyntaxRsOffset, OpcodeRegimm, RegimmBGEZAL, true},

	OpJ:   {"j", FormatJ, SyntaxTarget, OpcodeJ, 0, false},
	OpJAL: {"jal", FormatJ, SyntaxTarget, OpcodeJAL, 0, false},

	OpBEQ:   {"beq", FormatI, SyntaxRsRtOffset, OpcodeBEQ, 0, true},
	OpBNE:   {"bne", FormatI, SyntaxRsRtOffset, OpcodeBNE, 0, true},
	OpBLEZ:  {"blez", FormatI, SyntaxRsOffset, OpcodeBLEZ, 0, true},
	OpBGTZ:  {"bgtz", FormatI, SyntaxRsOffset, OpcodeBGTZ, 0, true},
	OpADDI:  {"addi", FormatI, SyntaxRtRsImm, OpcodeADDI, 0, true},
	OpADDIU: {"addiu", FormatI, SyntaxRtRsImm, OpcodeADDIU, 0, true},
	OpSLTI:  {"slti", FormatI, SyntaxRtRsImm, OpcodeSLTI, 0, true},
	OpSLTIU: {"sltiu", FormatI, SyntaxRtRsImm, OpcodeSLTIU, 0, true},
	OpANDI:  {"andi", FormatI, SyntaxRtRsImm, OpcodeANDI, 0, false},
	OpORI:   {"ori", FormatI, SyntaxRtRsImm, OpcodeORI, 0, false},
	OpXORI:  {"xori", FormatI, SyntaxRtRsImm, OpcodeXORI, 0, false},
	OpLUI:   {"lui", FormatI, SyntaxRtImm, OpcodeLUI, 0, false},
	OpLB:    {"lb", FormatI, SyntaxRtOffsetBase, OpcodeLB, 0, true},
	OpLH:    {"lh", FormatI, SyntaxRtOffsetBase, OpcodeLH, 0, true},
	OpLWL:   {"lwl", FormatI, SyntaxRtOffsetBase, OpcodeLWL, 0, true},
	OpLW:    {"lw", FormatI, SyntaxRtOffsetBase, OpcodeLW, 0, true},
	OpLBU:   {"lbu", FormatI, SyntaxRtOffsetBase, OpcodeLBU, 0, true},
	OpLHU:   {"lhu", FormatI, SyntaxRtOffsetBase, OpcodeLHU, 0, true},
	OpLWR:   {"lwr", FormatI, SyntaxRtOffsetBase, OpcodeLWR, 0, true},
	OpSB:    {"sb", FormatI, SyntaxRtOffsetBase, OpcodeSB, 0, true},
	OpSH:    {"sh", FormatI, SyntaxRtOffsetBase, OpcodeSH, 0, true},
	OpSWL:   {"swl", FormatI, SyntaxRtOffsetBase, OpcodeSWL, 0, true},
	OpSW:    {"sw", FormatI, SyntaxRtOffsetBase, OpcodeSW, 0, true},
	OpSWR:   {"swr", FormatI, SyntaxRtOffsetBase, OpcodeSWR, 0, true},
}

// Lookup tables built from Table.
var (
	byFunct   = map[uint32]Op{}
	byRegimm  = map[uint32]Op{}
	byOpcode  = map[uint32]Op{}
	mnemonics = map[string]Op{}
)

func init() {
	for i := OpInvalid + 1; i < opCount; i++ {
		info := Table[i]
		switch {
		case info.Opcode == OpcodeSpecial:
			byFunct[info.Funct] = i
		case info.Opcode == OpcodeRegimm:
			byRegimm[info.Funct] = i
		default:
			byOpcode[info.Opcode] = i
		}
		mnemonics[info.Mnemonic] = i
	}
}

// String returns the assembler mnemonic.
func (op Op) String() string {
	if op <= OpInvalid || op >= opCount {
		return "invalid"
	}
	return Table[op].Mnemonic
}

// Info returns the table entry for op.
func (op Op) Info() Info {
	if op <= OpInvalid || op >= opCount {
		return Info{Mnemonic: "invalid"}
	}
	return Table[op]
}

// IsBranch reports whether op is a PC-relative conditional branch.
func (op Op) IsBranch() bool {
	s := op.Info().Syntax
	return s == SyntaxRsRtOffset || s == SyntaxRsOffset
}

// IsJump reports whether op transfers control to an absolute or register target.
func (op Op) IsJump() bool {
	return op == OpJ || op == OpJAL || op == OpJR || op == OpJALR
}

// Links reports whether op writes a return address.
func (op Op) Links() bool {
	switch op {
	case OpJAL, OpJALR, OpBLTZAL, OpBGEZAL:
		return true
	}
	return false
}

// LookupMnemonic finds the Op for an assembler mnemonic.
func LookupMnemonic(name string) (Op, bool) {
	op, ok := mnemonics[name]
	return op, ok
}
