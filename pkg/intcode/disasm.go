package intcode

import (
	"errors"
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of program.
// Listing starts at address 0 and assumes a relative base of 0. Cells
// that do not decode as an instruction are shown as DATA.
func Disassemble(program []int64) string {
	return DisassembleWithName(program, "")
}

// DisassembleWithName returns a listing with a name header.
func DisassembleWithName(program []int64, name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; Intcode program, %d cells\n\n", len(program)))

	mem := NewMemory(program)
	addr := int64(0)
	for addr < int64(len(program)) {
		line, width := disassembleAt(mem, addr, int64(len(program)))
		sb.WriteString(fmt.Sprintf("%04d  %s\n", addr, line))
		addr += width
	}

	return sb.String()
}

// disassembleAt formats the cell at addr. Returns the line and how many
// cells it covers.
func disassembleAt(mem *Memory, addr, end int64) (string, int64) {
	in, err := Decode(mem, addr, 0)
	if err != nil {
		var addrErr *AddressError
		if !errors.As(err, &addrErr) {
			return fmt.Sprintf("DATA %d", mem.Get(addr)), 1
		}
		// Relative operands may be negative until the base is known.
		in = decodeUnchecked(mem, addr)
	}
	if addr+in.Len() > end {
		return fmt.Sprintf("DATA %d", mem.Get(addr)), 1
	}
	return in.String(), in.Len()
}

// decodeUnchecked decodes a well-formed instruction without address
// validation. Only used for listings.
func decodeUnchecked(mem *Memory, addr int64) Instruction {
	value := mem.Get(addr)
	op, modes := SplitOpcode(value)
	info, _ := LookupOpcode(op)
	in := Instruction{PC: addr, Op: op, N: info.Params}
	for i := 0; i < info.Params; i++ {
		raw := mem.Get(addr + 1 + int64(i))
		in.Params[i] = Param{Mode: modes[i], Raw: raw, Addr: raw}
	}
	return in
}
