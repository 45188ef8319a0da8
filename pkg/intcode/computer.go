package intcode

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode")

// State is the lifecycle of a Computer.
type State int

const (
	// Runnable means the next Step will execute an instruction.
	Runnable State = iota
	// WaitingForInput means an input instruction found no value. The
	// program counter still points at it.
	WaitingForInput
	// Done means a halt instruction ran. Done is terminal.
	Done
)

// String returns a human-readable name for a State.
func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case WaitingForInput:
		return "waiting-for-input"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Computer executes one Intcode program.
type Computer struct {
	program []int64 // As loaded, for Reset

	mem          *Memory
	pc           int64
	relativeBase int64
	state        State
	steps        uint64

	input  []int64 // FIFO of queued input values
	output []int64 // FIFO of emitted values when no IO is attached
	io     IO

	last    int64
	hasLast bool

	patches [][2]int64 // (address, value) pairs reapplied by Reset

	// Trace logs every decoded instruction at debug level.
	Trace bool
}

// Option configures a Computer when it is created.
type Option func(*Computer)

// WithTrace sets Trace.
func WithTrace(on bool) Option {
	return func(c *Computer) { c.Trace = on }
}

// WithPatch stores value at addr after the program is loaded. Reset applies
// the patch again. addr may lie far beyond the program.
func WithPatch(addr, value int64) Option {
	return func(c *Computer) {
		c.patches = append(c.patches, [2]int64{addr, value})
		c.mem.Set(addr, value)
	}
}

// New creates a Computer with program loaded at address 0.
func New(program []int64, opts ...Option) *Computer {
	c := &Computer{
		program: append([]int64(nil), program...),
		mem:     NewMemory(program),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetIO attaches an I/O strategy. Queued input is still consumed before
// the strategy is asked for a value. While a strategy is attached, output
// values go to it instead of the output queue.
func (c *Computer) SetIO(io IO) {
	c.io = io
}

// Input queues values for input instructions. A computer waiting for input
// becomes runnable again.
func (c *Computer) Input(values ...int64) {
	c.input = append(c.input, values...)
	if len(values) > 0 && c.state == WaitingForInput {
		c.state = Runnable
	}
}

// InputText queues s as ASCII codes, one value per byte.
func (c *Computer) InputText(s string) {
	values := make([]int64, len(s))
	for i := 0; i < len(s); i++ {
		values[i] = int64(s[i])
	}
	c.Input(values...)
}

// State returns the lifecycle state.
func (c *Computer) State() State {
	return c.state
}

// IsRunnable reports whether the next Step will execute an instruction.
func (c *Computer) IsRunnable() bool {
	return c.state == Runnable
}

// PC returns the program counter.
func (c *Computer) PC() int64 {
	return c.pc
}

// RelativeBase returns the relative base register.
func (c *Computer) RelativeBase() int64 {
	return c.relativeBase
}

// Steps returns the number of instructions executed.
func (c *Computer) Steps() uint64 {
	return c.steps
}

// Memory exposes the computer's address space.
func (c *Computer) Memory() *Memory {
	return c.mem
}

// Peek returns the value at addr.
func (c *Computer) Peek(addr int64) int64 {
	return c.mem.Get(addr)
}

// Poke stores value at addr.
func (c *Computer) Poke(addr, value int64) {
	c.mem.Set(addr, value)
}

// PendingInput returns the number of queued input values.
func (c *Computer) PendingInput() int {
	return len(c.input)
}

// PendingOutput returns the number of values in the output queue.
func (c *Computer) PendingOutput() int {
	return len(c.output)
}

// DrainOutput removes and returns all queued output values.
func (c *Computer) DrainOutput() []int64 {
	out := c.output
	c.output = nil
	return out
}

// LastOutput returns the most recent value emitted, whether or not it is
// still queued.
func (c *Computer) LastOutput() (int64, bool) {
	return c.last, c.hasLast
}

// Run steps until the computer halts or waits for input, and returns the
// last value it has emitted. ok is false if it has never emitted a value.
func (c *Computer) Run() (last int64, ok bool, err error) {
	if c.state == WaitingForInput {
		// Retry the input instruction in case a strategy can now supply it.
		c.state = Runnable
	}
	for c.state == Runnable {
		if err := c.Step(); err != nil {
			return c.last, c.hasLast, err
		}
	}
	return c.last, c.hasLast, nil
}

// Step executes one instruction.
func (c *Computer) Step() error {
	if c.state == Done {
		return ErrHalted
	}

	in, err := Decode(c.mem, c.pc, c.relativeBase)
	if err != nil {
		return err
	}
	if c.Trace {
		log.Debugf("[%04d] %-24s rb=%d", c.pc, in, c.relativeBase)
	}

	c.state = Runnable
	next := c.pc + in.Len()

	switch in.Op {
	case OpAdd:
		c.mem.Set(in.Params[2].Addr, in.Params[0].Value(c.mem)+in.Params[1].Value(c.mem))

	case OpMultiply:
		c.mem.Set(in.Params[2].Addr, in.Params[0].Value(c.mem)*in.Params[1].Value(c.mem))

	case OpInput:
		value, ok := c.nextInput()
		if !ok {
			c.state = WaitingForInput
			return nil
		}
		c.mem.Set(in.Params[0].Addr, value)

	case OpOutput:
		c.emit(in.Params[0].Value(c.mem))

	case OpJumpIfTrue:
		if in.Params[0].Value(c.mem) != 0 {
			next = in.Params[1].Value(c.mem)
		}

	case OpJumpIfFalse:
		if in.Params[0].Value(c.mem) == 0 {
			next = in.Params[1].Value(c.mem)
		}

	case OpLessThan:
		c.mem.Set(in.Params[2].Addr, boolValue(in.Params[0].Value(c.mem) < in.Params[1].Value(c.mem)))

	case OpEquals:
		c.mem.Set(in.Params[2].Addr, boolValue(in.Params[0].Value(c.mem) == in.Params[1].Value(c.mem)))

	case OpRelativeBaseOffset:
		c.relativeBase += in.Params[0].Value(c.mem)

	case OpHalt:
		c.state = Done
		c.steps++
		log.Debugf("halted at pc %d after %d steps", c.pc, c.steps)
		return nil
	}

	c.steps++
	c.pc = next
	return nil
}

func (c *Computer) nextInput() (int64, bool) {
	if len(c.input) > 0 {
		v := c.input[0]
		c.input = c.input[1:]
		return v, true
	}
	if c.io != nil {
		return c.io.Input()
	}
	return 0, false
}

func (c *Computer) emit(value int64) {
	c.last, c.hasLast = value, true
	if c.io != nil {
		c.io.Output(value)
		return
	}
	c.output = append(c.output, value)
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Clone returns an independent copy of the computer in its current state.
// The attached IO strategy is shared, not copied.
func (c *Computer) Clone() *Computer {
	clone := *c
	clone.mem = c.mem.Clone()
	clone.input = append([]int64(nil), c.input...)
	clone.output = append([]int64(nil), c.output...)
	return &clone
}

// Reset reloads the original program, reapplies patches and clears
// registers, queues and state. The attached IO strategy is kept.
func (c *Computer) Reset() {
	c.mem = NewMemory(c.program)
	for _, p := range c.patches {
		c.mem.Set(p[0], p[1])
	}
	c.pc = 0
	c.relativeBase = 0
	c.state = Runnable
	c.steps = 0
	c.input = nil
	c.output = nil
	c.last, c.hasLast = 0, false
}
