package intcode

import (
	"errors"
	"fmt"
)

// ErrHalted is returned when stepping a computer that has already executed
// a halt instruction.
var ErrHalted = errors.New("intcode: computer has halted")

// OpcodeError reports a cell whose low two digits name no instruction.
type OpcodeError struct {
	PC    int64 // Address of the offending cell
	Value int64 // Raw cell value
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("intcode: unknown opcode %d (cell %d) at pc %d", e.Value%100, e.Value, e.PC)
}

// ModeError reports an addressing mode digit outside {0,1,2}, or an
// immediate mode on a write-target parameter.
type ModeError struct {
	PC    int64 // Address of the instruction
	Value int64 // Raw instruction cell
	Param int   // Zero-based parameter index
	Mode  Mode
}

func (e *ModeError) Error() string {
	if e.Mode == ModeImmediate {
		return fmt.Sprintf("intcode: immediate mode on write parameter %d of %d at pc %d", e.Param+1, e.Value, e.PC)
	}
	return fmt.Sprintf("intcode: invalid mode %d for parameter %d of %d at pc %d", int64(e.Mode), e.Param+1, e.Value, e.PC)
}

// AddressError reports an effective address below zero.
type AddressError struct {
	PC      int64 // Address of the instruction
	Address int64 // Computed effective address
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("intcode: negative address %d at pc %d", e.Address, e.PC)
}
