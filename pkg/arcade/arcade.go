// Package arcade decodes an Intcode game's output stream into a screen and
// drives its joystick.
//
// The game emits (x, y, tile) triplets. The triplet (-1, 0, n) is not a
// tile: it sets the score to n.
package arcade

import (
	"fmt"
	"strings"

	"github.com/chazu/intcode/pkg/intcode"
)

// Tile is a screen cell.
type Tile int64

const (
	Empty  Tile = 0
	Wall   Tile = 1
	Block  Tile = 2
	Paddle Tile = 3
	Ball   Tile = 4
)

var tileGlyphs = map[Tile]byte{
	Empty:  ' ',
	Wall:   '.',
	Block:  '#',
	Paddle: '-',
	Ball:   'o',
}

// Point is a screen coordinate. y grows downward.
type Point struct {
	X, Y int64
}

var scorePoint = Point{X: -1, Y: 0}

// Screen is an Outputter that applies draw triplets.
type Screen struct {
	tiles   map[Point]Tile
	grouper *intcode.Grouper

	Score int64
	Err   error // First invalid tile seen, if any

	// OnDraw, when set, is called after every triplet.
	OnDraw func(*Screen)
}

// NewScreen creates an empty screen.
func NewScreen() *Screen {
	s := &Screen{tiles: make(map[Point]Tile)}
	s.grouper = intcode.NewGrouper(3, s.draw)
	return s
}

// Output feeds one value of the triplet stream.
func (s *Screen) Output(value int64) {
	s.grouper.Output(value)
}

func (s *Screen) draw(g []int64) {
	p := Point{X: g[0], Y: g[1]}
	if p == scorePoint {
		s.Score = g[2]
	} else if _, ok := tileGlyphs[Tile(g[2])]; !ok {
		if s.Err == nil {
			s.Err = fmt.Errorf("arcade: invalid tile %d at (%d, %d)", g[2], p.X, p.Y)
		}
	} else {
		s.tiles[p] = Tile(g[2])
	}
	if s.OnDraw != nil {
		s.OnDraw(s)
	}
}

// At returns the tile at p.
func (s *Screen) At(p Point) Tile {
	return s.tiles[p]
}

// Count returns how many cells show t.
func (s *Screen) Count(t Tile) int {
	n := 0
	for _, tile := range s.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Find returns a position of tile t.
func (s *Screen) Find(t Tile) (Point, bool) {
	for p, tile := range s.tiles {
		if tile == t {
			return p, true
		}
	}
	return Point{}, false
}

// Render draws the screen, preceded by a score line.
func (s *Screen) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Blocks: %d - Score: %d\n", s.Count(Block), s.Score))
	if len(s.tiles) == 0 {
		return sb.String()
	}

	var minX, maxX, minY, maxY int64
	first := true
	for p := range s.tiles {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sb.WriteByte(tileGlyphs[s.tiles[Point{X: x, Y: y}]])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Autopilot is an Inputter that keeps the paddle under the ball.
type Autopilot struct {
	Screen *Screen
}

// Input returns -1, 0 or 1: the joystick direction toward the ball.
func (a Autopilot) Input() (int64, bool) {
	ball, okBall := a.Screen.Find(Ball)
	paddle, okPaddle := a.Screen.Find(Paddle)
	if !okBall || !okPaddle {
		return 0, true
	}
	switch {
	case ball.X < paddle.X:
		return -1, true
	case ball.X > paddle.X:
		return 1, true
	default:
		return 0, true
	}
}

// Cabinet is a screen plus autopilot joystick, ready to attach to a
// computer.
type Cabinet struct {
	*Screen
	Autopilot
}

// NewCabinet creates a Cabinet with an empty screen.
func NewCabinet() *Cabinet {
	s := NewScreen()
	return &Cabinet{Screen: s, Autopilot: Autopilot{Screen: s}}
}

// Play runs the game to completion. With freePlay set, address 0 is set to
// 2 first ("insert quarters"). opts configure the game's computer.
func Play(program []int64, freePlay bool, opts ...intcode.Option) (*Cabinet, error) {
	cab := NewCabinet()
	if freePlay {
		opts = append(opts, intcode.WithPatch(0, 2))
	}
	c := intcode.New(program, opts...)
	c.SetIO(cab)

	if _, _, err := c.Run(); err != nil {
		return cab, err
	}
	if cab.Err != nil {
		return cab, cab.Err
	}
	if c.State() != intcode.Done {
		return cab, fmt.Errorf("arcade: game stopped in state %s", c.State())
	}
	return cab, nil
}
