package network

// Mailbox is an input strategy for a single networked computer. It hands
// out queued packets one value at a time and the sentinel when empty, so
// input never suspends the computer.
type Mailbox struct {
	Sentinel int64

	queue []int64
	polls int // Consecutive sentinel reads
}

// NewMailbox creates a Mailbox whose first value is addr.
func NewMailbox(addr int64) *Mailbox {
	return &Mailbox{Sentinel: DefaultSentinel, queue: []int64{addr}}
}

// Deliver queues a packet's x and y.
func (m *Mailbox) Deliver(p Packet) {
	m.queue = append(m.queue, p.X, p.Y)
	m.polls = 0
}

// Input returns the next queued value or the sentinel.
func (m *Mailbox) Input() (int64, bool) {
	if len(m.queue) == 0 {
		m.polls++
		return m.Sentinel, true
	}
	v := m.queue[0]
	m.queue = m.queue[1:]
	m.polls = 0
	return v, true
}

// Idle reports whether the mailbox is empty and has answered at least n
// sentinel reads in a row.
func (m *Mailbox) Idle(n int) bool {
	return len(m.queue) == 0 && m.polls >= n
}

// Len returns the number of queued values.
func (m *Mailbox) Len() int {
	return len(m.queue)
}
