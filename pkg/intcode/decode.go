package intcode

import (
	"fmt"
	"strings"
)

// maxParams is the widest parameter list of any instruction.
const maxParams = 3

// Param is one resolved instruction operand.
type Param struct {
	Mode Mode
	Raw  int64 // Operand cell as stored in memory
	Addr int64 // Effective address for Position and Relative modes
}

// Value returns the operand's value: the raw operand in immediate mode,
// otherwise the cell at the effective address.
func (p Param) Value(m *Memory) int64 {
	if p.Mode == ModeImmediate {
		return p.Raw
	}
	return m.Get(p.Addr)
}

// String renders the operand in listing notation: [a], #v, rb+o.
func (p Param) String() string {
	switch p.Mode {
	case ModeImmediate:
		return fmt.Sprintf("#%d", p.Raw)
	case ModeRelative:
		if p.Raw < 0 {
			return fmt.Sprintf("rb%d", p.Raw)
		}
		return fmt.Sprintf("rb+%d", p.Raw)
	default:
		return fmt.Sprintf("[%d]", p.Raw)
	}
}

// Instruction is a decoded instruction. It is recomputed on every step and
// never stored back into memory.
type Instruction struct {
	PC     int64
	Op     Opcode
	Params [maxParams]Param
	N      int // Number of valid entries in Params
}

// Arg returns the i-th parameter.
func (in Instruction) Arg(i int) Param {
	return in.Params[i]
}

// Len returns the width of the instruction in cells.
func (in Instruction) Len() int64 {
	return int64(1 + in.N)
}

// String renders the instruction as "MNEMONIC p1, p2, p3".
func (in Instruction) String() string {
	if in.N == 0 {
		return in.Op.String()
	}
	parts := make([]string, in.N)
	for i := 0; i < in.N; i++ {
		parts[i] = in.Params[i].String()
	}
	return in.Op.String() + " " + strings.Join(parts, ", ")
}

// SplitOpcode separates a cell into its opcode and the mode digits of the
// following parameters, least-significant digit first. Parameters past the
// supplied digits are Position mode.
func SplitOpcode(value int64) (Opcode, [maxParams]Mode) {
	var modes [maxParams]Mode
	rest := value / 100
	for i := range modes {
		modes[i] = Mode(rest % 10)
		rest /= 10
	}
	return Opcode(value % 100), modes
}

// ModeOf returns the addressing mode of the k-th (zero-based) parameter
// encoded in value.
func ModeOf(value int64, k int) Mode {
	rest := value / 100
	for ; k > 0; k-- {
		rest /= 10
	}
	return Mode(rest % 10)
}

// Decode reads the instruction at pc and resolves each parameter against
// relativeBase.
func Decode(m *Memory, pc, relativeBase int64) (Instruction, error) {
	value := m.Get(pc)
	op, modes := SplitOpcode(value)

	info, ok := LookupOpcode(op)
	if !ok {
		return Instruction{}, &OpcodeError{PC: pc, Value: value}
	}

	in := Instruction{PC: pc, Op: op, N: info.Params}
	for i := 0; i < info.Params; i++ {
		raw := m.Get(pc + 1 + int64(i))
		p := Param{Mode: modes[i], Raw: raw}

		switch modes[i] {
		case ModePosition:
			p.Addr = raw
		case ModeImmediate:
			if i == info.Write {
				return Instruction{}, &ModeError{PC: pc, Value: value, Param: i, Mode: ModeImmediate}
			}
		case ModeRelative:
			p.Addr = raw + relativeBase
		default:
			return Instruction{}, &ModeError{PC: pc, Value: value, Param: i, Mode: modes[i]}
		}

		if p.Mode != ModeImmediate && p.Addr < 0 {
			return Instruction{}, &AddressError{PC: pc, Address: p.Addr}
		}
		in.Params[i] = p
	}

	return in, nil
}
