package intcode

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// programText is the grammar of a program file: comma-separated signed
// integers on one line.
type programText struct {
	Cells []string `parser:"@Int ( \",\" @Int )*"`
}

func (p *programText) values() ([]int64, error) {
	out := make([]int64, len(p.Cells))
	for i, cell := range p.Cells {
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

var programLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Punct", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var programParser = participle.MustBuild[programText](
	participle.Lexer(programLexer),
	participle.Elide("Whitespace"),
)

// ParseProgram parses program text such as "1,9,10,3,2,3,11,0,99,30,40,50".
func ParseProgram(text string) ([]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("intcode: empty program")
	}
	p, err := programParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("intcode: parse program: %w", err)
	}
	cells, err := p.values()
	if err != nil {
		return nil, fmt.Errorf("intcode: parse program: %w", err)
	}
	return cells, nil
}

// LoadProgram reads and parses a program file.
func LoadProgram(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intcode: cannot read %s: %w", path, err)
	}
	p, err := programParser.ParseBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("intcode: parse error in %s: %w", path, err)
	}
	cells, err := p.values()
	if err != nil {
		return nil, fmt.Errorf("intcode: parse error in %s: %w", path, err)
	}
	return cells, nil
}

// FormatProgram renders program in the comma-separated text form.
func FormatProgram(program []int64) string {
	parts := make([]string, len(program))
	for i, v := range program {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
