// Package network runs many Intcode computers as a cooperative, single
// threaded packet network.
//
// Every computer boots with its address as first input. Each pass visits
// the computers round-robin: a starved computer is fed the sentinel (-1 by
// default), every computer runs until it suspends, and its output is
// routed as (destination, x, y) packets. Packets addressed to the NAT are
// remembered, and when a whole pass moves nothing the NAT re-injects its
// last packet into the idle target to break the stall.
package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/intcode/pkg/intcode"
)

var log = commonlog.GetLogger("intcode.network")

const (
	// DefaultNATAddress is the destination that reaches the NAT.
	DefaultNATAddress = 255
	// DefaultSentinel is read by a computer with no packet waiting.
	DefaultSentinel = -1

	packetSize = 3
)

// ErrDeadlock is returned when the fleet is idle and the NAT cannot wake
// it: either it has no packet or the idle target has halted.
var ErrDeadlock = errors.New("network: fleet idle with no NAT packet")

// ErrAllFailed is returned when every computer in the fleet has failed.
var ErrAllFailed = errors.New("network: every computer failed")

// Packet is a routed (x, y) pair.
type Packet struct {
	Dest int64
	X, Y int64
}

// IncompletePacketError reports output that does not divide into packets.
type IncompletePacketError struct {
	Address int
	Output  []int64
}

func (e *IncompletePacketError) Error() string {
	return fmt.Sprintf("network: computer %d produced an incomplete packet %v", e.Address, e.Output)
}

// UndeliverableError reports a packet for an address that is neither in
// the fleet nor the NAT.
type UndeliverableError struct {
	Address int
	Packet  Packet
}

func (e *UndeliverableError) Error() string {
	return fmt.Sprintf("network: computer %d sent packet to unknown address %d", e.Address, e.Packet.Dest)
}

// Config controls a Network.
type Config struct {
	NATAddress int64 // Destination remembered by the NAT (255)
	Sentinel   int64 // Input fed to starved computers (-1)
	IdleTarget int   // Computer that receives NAT packets (0)
	MaxPasses  int   // Abort after this many passes; 0 means no limit

	Computer []intcode.Option // Applied to every computer at boot
}

// Option configures a Network.
type Option func(*Config)

// WithNAT sets the NAT address.
func WithNAT(addr int64) Option {
	return func(c *Config) { c.NATAddress = addr }
}

// WithSentinel sets the value fed to computers with nothing to read.
func WithSentinel(v int64) Option {
	return func(c *Config) { c.Sentinel = v }
}

// WithIdleTarget sets which computer receives the NAT's packet.
func WithIdleTarget(addr int) Option {
	return func(c *Config) { c.IdleTarget = addr }
}

// WithComputerOptions configures every computer in the fleet, e.g. with
// intcode.WithTrace or intcode.WithPatch.
func WithComputerOptions(opts ...intcode.Option) Option {
	return func(c *Config) { c.Computer = append(c.Computer, opts...) }
}

// WithMaxPasses bounds the number of round-robin passes.
func WithMaxPasses(n int) Option {
	return func(c *Config) { c.MaxPasses = n }
}

// Result summarizes a network run.
type Result struct {
	FirstNATY     int64 // Y of the first packet sent to the NAT
	HasFirstNATY  bool
	RepeatedY     int64 // Y the NAT delivered twice in a row
	Passes        int
	NATDeliveries int
	Failed        map[int]error // Computers removed from the fleet
}

// Network is a fleet of computers plus the NAT.
type Network struct {
	ID     uuid.UUID
	config Config
	nodes  []*intcode.Computer
	failed map[int]error

	nat    Packet
	hasNAT bool
}

// New boots size copies of program. Computer i receives i as its first
// input.
func New(program []int64, size int, opts ...Option) (*Network, error) {
	cfg := Config{NATAddress: DefaultNATAddress, Sentinel: DefaultSentinel}
	for _, opt := range opts {
		opt(&cfg)
	}
	if size <= 0 {
		return nil, fmt.Errorf("network: size must be positive, got %d", size)
	}
	if cfg.IdleTarget < 0 || cfg.IdleTarget >= size {
		return nil, fmt.Errorf("network: idle target %d outside fleet of %d", cfg.IdleTarget, size)
	}
	if cfg.NATAddress >= 0 && cfg.NATAddress < int64(size) {
		return nil, fmt.Errorf("network: NAT address %d collides with a computer", cfg.NATAddress)
	}

	boot := intcode.New(program, cfg.Computer...)
	n := &Network{
		ID:     uuid.New(),
		config: cfg,
		nodes:  make([]*intcode.Computer, size),
		failed: make(map[int]error),
	}
	for i := range n.nodes {
		node := boot.Clone()
		node.Input(int64(i))
		n.nodes[i] = node
	}
	return n, nil
}

// Node returns the computer at addr.
func (n *Network) Node(addr int) *intcode.Computer {
	return n.nodes[addr]
}

// Size returns the number of computers.
func (n *Network) Size() int {
	return len(n.nodes)
}

// NAT returns the packet the NAT currently remembers.
func (n *Network) NAT() (Packet, bool) {
	return n.nat, n.hasNAT
}

// Run drives the fleet until the NAT delivers the same Y twice in a row.
func (n *Network) Run(ctx context.Context) (Result, error) {
	var res Result
	var lastDelivered int64
	delivered := false

	for {
		if err := ctx.Err(); err != nil {
			return n.result(res), err
		}
		if n.config.MaxPasses > 0 && res.Passes >= n.config.MaxPasses {
			return n.result(res), fmt.Errorf("network: no repeated NAT delivery after %d passes", res.Passes)
		}
		res.Passes++

		active := n.pass(&res)
		if len(n.failed) == len(n.nodes) {
			return n.result(res), ErrAllFailed
		}
		if active {
			continue
		}

		if !n.hasNAT {
			return n.result(res), ErrDeadlock
		}
		target := n.config.IdleTarget
		if _, dead := n.failed[target]; dead {
			return n.result(res), fmt.Errorf("network: idle target %d has failed: %w", target, n.failed[target])
		}
		if n.nodes[target].State() == intcode.Done {
			return n.result(res), fmt.Errorf("network: idle target %d has halted: %w", target, ErrDeadlock)
		}

		n.nodes[target].Input(n.nat.X, n.nat.Y)
		res.NATDeliveries++
		log.Debugf("[%s] NAT -> %d: x=%d y=%d", n.ID, target, n.nat.X, n.nat.Y)

		if delivered && lastDelivered == n.nat.Y {
			res.RepeatedY = n.nat.Y
			log.Infof("[%s] NAT delivered y=%d twice after %d passes", n.ID, n.nat.Y, res.Passes)
			return n.result(res), nil
		}
		lastDelivered, delivered = n.nat.Y, true
	}
}

// pass visits every live computer once. Returns whether any packet moved
// or any output was produced.
func (n *Network) pass(res *Result) bool {
	active := false

	for addr, node := range n.nodes {
		if _, dead := n.failed[addr]; dead {
			continue
		}

		if node.State() == intcode.WaitingForInput && node.PendingInput() == 0 {
			node.Input(n.config.Sentinel)
		}
		if node.State() == intcode.Done {
			continue
		}
		if _, _, err := node.Run(); err != nil {
			n.fail(addr, err)
			continue
		}

		output := node.DrainOutput()
		if len(output) == 0 {
			continue
		}
		active = true

		if len(output)%packetSize != 0 {
			n.fail(addr, &IncompletePacketError{Address: addr, Output: output})
			continue
		}

		for i := 0; i < len(output); i += packetSize {
			p := Packet{Dest: output[i], X: output[i+1], Y: output[i+2]}
			if err := n.route(addr, p, res); err != nil {
				n.fail(addr, err)
				break
			}
		}
	}

	return active
}

func (n *Network) route(from int, p Packet, res *Result) error {
	switch {
	case p.Dest == n.config.NATAddress:
		if !res.HasFirstNATY {
			res.FirstNATY, res.HasFirstNATY = p.Y, true
		}
		n.nat, n.hasNAT = p, true
		log.Debugf("[%s] %d -> NAT: x=%d y=%d", n.ID, from, p.X, p.Y)
		return nil

	case p.Dest >= 0 && p.Dest < int64(len(n.nodes)):
		n.nodes[p.Dest].Input(p.X, p.Y)
		log.Debugf("[%s] %d -> %d: x=%d y=%d", n.ID, from, p.Dest, p.X, p.Y)
		return nil

	default:
		return &UndeliverableError{Address: from, Packet: p}
	}
}

func (n *Network) fail(addr int, err error) {
	n.failed[addr] = err
	log.Errorf("[%s] computer %d removed from network: %s", n.ID, addr, err)
}

func (n *Network) result(res Result) Result {
	if len(n.failed) > 0 {
		res.Failed = make(map[int]error, len(n.failed))
		for k, v := range n.failed {
			res.Failed[k] = v
		}
	}
	return res
}
