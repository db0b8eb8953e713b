package assembler

// NodeType defines the type of an assembly node.
type NodeType int

const (
	// NodeInstruction type.
	NodeInstruction NodeType = iota
	// NodeLabel type.
	NodeLabel
	// NodeDirective type.
	NodeDirective
)

// Node represents one parsed element from the assembly source.
type Node struct {
	Type     NodeType
	Line     int
	Label    string
	Mnemonic string
	Operands []string
	Raw      string // Operand text as written, for string directives
	Size     uint32 // Tracked between sizing passes
}
