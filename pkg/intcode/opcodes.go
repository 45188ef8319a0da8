package intcode

import "fmt"

// Opcode identifies an instruction: the two low decimal digits of a cell.
type Opcode int64

const (
	OpAdd                Opcode = 1  // p3 = p1 + p2
	OpMultiply           Opcode = 2  // p3 = p1 * p2
	OpInput              Opcode = 3  // p1 = next input value
	OpOutput             Opcode = 4  // emit p1
	OpJumpIfTrue         Opcode = 5  // if p1 != 0 { pc = p2 }
	OpJumpIfFalse        Opcode = 6  // if p1 == 0 { pc = p2 }
	OpLessThan           Opcode = 7  // p3 = p1 < p2 ? 1 : 0
	OpEquals             Opcode = 8  // p3 = p1 == p2 ? 1 : 0
	OpRelativeBaseOffset Opcode = 9  // relative base += p1
	OpHalt               Opcode = 99 // stop
)

// noWrite marks an opcode without a write-target parameter.
const noWrite = -1

// OpcodeInfo provides metadata about each opcode for decoding and listing.
type OpcodeInfo struct {
	Name   string // Mnemonic
	Params int    // Number of parameter cells following the opcode
	Write  int    // Index of the write-target parameter, or -1
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdd:                {"ADD", 3, 2},
	OpMultiply:           {"MUL", 3, 2},
	OpInput:              {"IN", 1, 0},
	OpOutput:             {"OUT", 1, noWrite},
	OpJumpIfTrue:         {"JNZ", 2, noWrite},
	OpJumpIfFalse:        {"JZ", 2, noWrite},
	OpLessThan:           {"LT", 3, 2},
	OpEquals:             {"EQ", 3, 2},
	OpRelativeBaseOffset: {"ARB", 1, noWrite},
	OpHalt:               {"HALT", 0, noWrite},
}

// LookupOpcode returns the metadata for op and whether op is defined.
func LookupOpcode(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int64(op))
}

// Len returns the width of the instruction in cells, opcode included.
// Unknown opcodes have width 1.
func (op Opcode) Len() int {
	return 1 + opcodeInfoTable[op].Params
}

// IsJump reports whether op may set the program counter directly.
func (op Opcode) IsJump() bool {
	return op == OpJumpIfTrue || op == OpJumpIfFalse
}

// AllOpcodes returns every defined opcode.
func AllOpcodes() []Opcode {
	ops := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		ops = append(ops, op)
	}
	return ops
}

// Mode is a parameter addressing mode.
type Mode int64

const (
	ModePosition  Mode = 0 // operand is an address
	ModeImmediate Mode = 1 // operand is the value
	ModeRelative  Mode = 2 // operand + relative base is an address
)

// String returns a human-readable name for a Mode.
func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", int64(m))
	}
}
