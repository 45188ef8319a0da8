// Package robot implements the hull-painting robot as an Intcode I/O
// strategy.
//
// The program reads the color of the panel under the robot (0 black,
// 1 white) and answers with pairs: the color to paint, then a turn
// (0 left, 1 right). After each turn the robot moves one panel forward.
package robot

import (
	"fmt"
	"strings"

	"github.com/chazu/intcode/pkg/intcode"
)

const (
	Black int64 = 0
	White int64 = 1
)

// Point is a hull coordinate. y grows downward.
type Point struct {
	X, Y int64
}

// Direction is a compass heading, clockwise from Up.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var steps = [4]Point{Up: {0, -1}, Right: {1, 0}, Down: {0, 1}, Left: {-1, 0}}

// Robot is an intcode.IO that paints the hull.
type Robot struct {
	pos     Point
	facing  Direction
	panels  map[Point]int64
	painted map[Point]bool

	turning bool  // Next output is a turn
	Err     error // First invalid output, if any
}

// New creates a robot at the origin facing up. The starting panel has the
// given color.
func New(start int64) *Robot {
	r := &Robot{
		panels:  make(map[Point]int64),
		painted: make(map[Point]bool),
	}
	if start != Black {
		r.panels[Point{}] = start
	}
	return r
}

// Input returns the color under the robot.
func (r *Robot) Input() (int64, bool) {
	return r.panels[r.pos], true
}

// Output applies a paint or turn command.
func (r *Robot) Output(value int64) {
	if r.turning {
		r.turning = false
		switch value {
		case 0:
			r.facing = (r.facing + 3) % 4
		case 1:
			r.facing = (r.facing + 1) % 4
		default:
			r.invalid("turn", value)
			return
		}
		step := steps[r.facing]
		r.pos = Point{X: r.pos.X + step.X, Y: r.pos.Y + step.Y}
		return
	}

	r.turning = true
	if value != Black && value != White {
		r.invalid("color", value)
		return
	}
	r.panels[r.pos] = value
	r.painted[r.pos] = true
}

func (r *Robot) invalid(what string, value int64) {
	if r.Err == nil {
		r.Err = fmt.Errorf("robot: invalid %s %d at (%d, %d)", what, value, r.pos.X, r.pos.Y)
	}
}

// Position returns where the robot stands and which way it faces.
func (r *Robot) Position() (Point, Direction) {
	return r.pos, r.facing
}

// Color returns the color of panel p.
func (r *Robot) Color(p Point) int64 {
	return r.panels[p]
}

// PaintedCount returns how many distinct panels were painted at least once.
func (r *Robot) PaintedCount() int {
	return len(r.painted)
}

// Render draws the white panels as '#'.
func (r *Robot) Render() string {
	var minX, maxX, minY, maxY int64
	first := true
	for p, c := range r.panels {
		if c != White {
			continue
		}
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if first {
		return ""
	}

	var sb strings.Builder
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if r.panels[Point{X: x, Y: y}] == White {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Paint runs program with a robot starting on a panel of the given color.
// opts configure the robot's computer.
func Paint(program []int64, start int64, opts ...intcode.Option) (*Robot, error) {
	r := New(start)
	c := intcode.New(program, opts...)
	c.SetIO(r)

	if _, _, err := c.Run(); err != nil {
		return r, err
	}
	if r.Err != nil {
		return r, r.Err
	}
	if c.State() != intcode.Done {
		return r, fmt.Errorf("robot: program stopped in state %s", c.State())
	}
	return r, nil
}
