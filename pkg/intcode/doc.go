// Package intcode provides a suspendable virtual machine for Intcode
// programs: flat sequences of signed 64-bit integers that are both code and
// data.
//
// # Architecture Overview
//
// The package consists of a few small components, leaves first:
//
//   - Memory: a sparse, auto-extending address space. Reading a cell that
//     was never written yields 0.
//
//   - Decoder: splits a cell into an Opcode and per-parameter addressing
//     Modes (Position, Immediate, Relative) and resolves each parameter
//     against the current program counter and relative base.
//
//   - Computer: the fetch/decode/execute loop. A Computer is always in one
//     of three states: Runnable, WaitingForInput or Done. The only
//     suspension point is an input instruction with nothing to read.
//
//   - IO: an injectable Inputter/Outputter pair. Queued input is consumed
//     first; an attached strategy supplies the rest and receives every
//     output value. Game renderers, robots, ASCII terminals and network
//     mailboxes are all strategies plugged into the same engine.
//
// # Suspend and Resume
//
// Input starvation is not an error. When an input instruction finds no
// value, the Computer moves to WaitingForInput without advancing its program
// counter. Queueing a value with Input makes it Runnable again and the same
// instruction is decoded once more on the next Run.
//
// # Errors
//
// Programs are trusted, but malformed ones still surface as typed errors
// (OpcodeError, ModeError, AddressError, ErrHalted) instead of aborting the
// process, so a driver running many computers can fail one and keep the
// others.
package intcode
