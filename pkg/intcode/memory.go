package intcode

// Memory is a sparse address space of signed 64-bit cells.
// Cells that were never written read as 0. Memory never shrinks.
type Memory struct {
	cells map[int64]int64
}

// NewMemory creates a memory with program loaded at addresses 0..len-1.
func NewMemory(program []int64) *Memory {
	m := &Memory{cells: make(map[int64]int64, len(program))}
	for i, v := range program {
		m.cells[int64(i)] = v
	}
	return m
}

// Get returns the value at addr, or 0 if the cell was never written.
func (m *Memory) Get(addr int64) int64 {
	return m.cells[addr]
}

// Set stores value at addr.
func (m *Memory) Set(addr, value int64) {
	m.cells[addr] = value
}

// Len returns the number of cells that have been written.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Slice returns n consecutive cells starting at from, zero-filled.
func (m *Memory) Slice(from int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = m.cells[from+int64(i)]
	}
	return out
}

// Clone returns an independent copy of the memory.
func (m *Memory) Clone() *Memory {
	c := &Memory{cells: make(map[int64]int64, len(m.cells))}
	for k, v := range m.cells {
		c.cells[k] = v
	}
	return c
}
