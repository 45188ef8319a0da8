package intcode

// Inputter supplies values to input instructions.
// Input returns false when no value is available yet; the computer then
// suspends in WaitingForInput instead of failing.
type Inputter interface {
	Input() (int64, bool)
}

// Outputter receives every value emitted by an output instruction, in
// program order.
type Outputter interface {
	Output(value int64)
}

// IO is the capability a caller plugs into a Computer to define an external
// protocol.
type IO interface {
	Inputter
	Outputter
}

// InputFunc adapts a function to an Inputter.
type InputFunc func() (int64, bool)

// Input calls f.
func (f InputFunc) Input() (int64, bool) {
	return f()
}

// OutputFunc adapts a function to an Outputter.
type OutputFunc func(int64)

// Output calls f.
func (f OutputFunc) Output(value int64) {
	f(value)
}

// Combine pairs an input strategy with an output strategy. Either may be
// nil: a nil Inputter never has input, a nil Outputter discards values.
func Combine(in Inputter, out Outputter) IO {
	return combined{in: in, out: out}
}

type combined struct {
	in  Inputter
	out Outputter
}

func (c combined) Input() (int64, bool) {
	if c.in == nil {
		return 0, false
	}
	return c.in.Input()
}

func (c combined) Output(value int64) {
	if c.out != nil {
		c.out.Output(value)
	}
}

// Constant returns an Inputter that always supplies v.
func Constant(v int64) Inputter {
	return InputFunc(func() (int64, bool) { return v, true })
}

// Feed is an Inputter that drains a preloaded list of values.
type Feed struct {
	values []int64
}

// NewFeed creates a Feed that supplies values in order.
func NewFeed(values ...int64) *Feed {
	return &Feed{values: append([]int64(nil), values...)}
}

// Push appends more values to the feed.
func (f *Feed) Push(values ...int64) {
	f.values = append(f.values, values...)
}

// Len returns the number of values left.
func (f *Feed) Len() int {
	return len(f.values)
}

// Input returns the next value, or false once the feed is empty.
func (f *Feed) Input() (int64, bool) {
	if len(f.values) == 0 {
		return 0, false
	}
	v := f.values[0]
	f.values = f.values[1:]
	return v, true
}

// Collector is an Outputter that records every value.
type Collector struct {
	Values []int64
}

// Output records value.
func (c *Collector) Output(value int64) {
	c.Values = append(c.Values, value)
}

// Last returns the most recent value recorded.
func (c *Collector) Last() (int64, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}
	return c.Values[len(c.Values)-1], true
}

// Grouper is an Outputter that buffers values and calls Fn with each
// complete group of Size values, e.g. (x, y, tile) triplets.
type Grouper struct {
	Size int
	Fn   func(group []int64)

	buf []int64
}

// NewGrouper creates a Grouper for groups of size values.
func NewGrouper(size int, fn func(group []int64)) *Grouper {
	return &Grouper{Size: size, Fn: fn, buf: make([]int64, 0, size)}
}

// Output buffers value and flushes a full group.
func (g *Grouper) Output(value int64) {
	g.buf = append(g.buf, value)
	if len(g.buf) < g.Size {
		return
	}
	group := g.buf
	g.buf = make([]int64, 0, g.Size)
	g.Fn(group)
}

// Pending returns the number of values buffered toward the next group.
func (g *Grouper) Pending() int {
	return len(g.buf)
}
