// Package springscript parses springdroid programs and renders them as the
// ASCII input an Intcode springdroid reads.
//
// A program is up to 15 boolean instructions followed by WALK or RUN:
//
//	NOT A J
//	NOT C T
//	OR T J
//	AND D J
//	WALK
//
// X operands are the sensors A-D (A-I under RUN) or the writable registers
// T and J. Y operands must be T or J. Lines starting with "--" are comments.
package springscript

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/chazu/intcode/pkg/intcode"
)

// MaxInstructions is the springdroid's memory limit.
const MaxInstructions = 15

const (
	walkSensors = "ABCD"
	runSensors  = "ABCDEFGHI"
	writable    = "TJ"
)

// Script is a parsed springscript program.
type Script struct {
	Instructions []*Instruction `parser:"@@*"`
	Mode         string         `parser:"@( \"WALK\" | \"RUN\" )"`
}

// Instruction is one AND, OR or NOT.
type Instruction struct {
	Pos lexer.Position

	Op string `parser:"@( \"AND\" | \"OR\" | \"NOT\" )"`
	X  string `parser:"@Ident"`
	Y  string `parser:"@Ident"`
}

func (in *Instruction) String() string {
	return in.Op + " " + in.X + " " + in.Y
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var scriptParser = participle.MustBuild[Script](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Upper("Ident"),
)

// Parse parses and validates a springscript program.
func Parse(text string) (*Script, error) {
	s, err := scriptParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("springscript: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the instruction limit and operand registers.
func (s *Script) Validate() error {
	if len(s.Instructions) > MaxInstructions {
		return fmt.Errorf("springscript: %d instructions, at most %d allowed", len(s.Instructions), MaxInstructions)
	}
	readable := walkSensors + writable
	if s.Mode == "RUN" {
		readable = runSensors + writable
	}
	for _, in := range s.Instructions {
		if len(in.X) != 1 || !strings.Contains(readable, in.X) {
			return fmt.Errorf("springscript: %s: %s cannot read register %q in %s mode", in.Pos, in.Op, in.X, s.Mode)
		}
		if len(in.Y) != 1 || !strings.Contains(writable, in.Y) {
			return fmt.Errorf("springscript: %s: %s cannot write register %q", in.Pos, in.Op, in.Y)
		}
	}
	return nil
}

// Text renders the program as springdroid input, one instruction per line.
func (s *Script) Text() string {
	var sb strings.Builder
	for _, in := range s.Instructions {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	sb.WriteString(s.Mode)
	sb.WriteByte('\n')
	return sb.String()
}

// Jump evaluates the program for one sensor reading. ground[i] reports
// whether there is ground i+1 tiles ahead. T and J start false.
func (s *Script) Jump(ground [9]bool) bool {
	var t, j bool
	reg := func(name string) *bool {
		if name == "T" {
			return &t
		}
		return &j
	}
	read := func(name string) bool {
		switch name {
		case "T":
			return t
		case "J":
			return j
		default:
			return ground[name[0]-'A']
		}
	}

	for _, in := range s.Instructions {
		x, y := read(in.X), reg(in.Y)
		switch in.Op {
		case "AND":
			*y = x && *y
		case "OR":
			*y = x || *y
		case "NOT":
			*y = !x
		}
	}
	return j
}

// FellError reports a droid that fell into a hole. Transcript holds the
// droid's ASCII output, including its last moments.
type FellError struct {
	Transcript string
}

func (e *FellError) Error() string {
	return "springscript: droid fell into space"
}

// Run feeds the script to a springdroid program and returns the reported
// hull damage. opts configure the droid's computer.
func Run(program []int64, s *Script, opts ...intcode.Option) (int64, error) {
	c := intcode.New(program, opts...)
	c.InputText(s.Text())

	if _, _, err := c.Run(); err != nil {
		return 0, err
	}
	if c.State() != intcode.Done {
		return 0, fmt.Errorf("springscript: droid stopped in state %s", c.State())
	}

	transcript, damage, ok := intcode.Text(c.DrainOutput())
	if !ok {
		return 0, &FellError{Transcript: transcript}
	}
	return damage, nil
}
