package springscript

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/intcode/pkg/intcode"
)

const walkScript = `
-- jump if there is a hole in range and ground to land on
NOT A J
NOT B T
OR T J
NOT C T
OR T J
AND D J
WALK
`

func TestParse(t *testing.T) {
	s, err := Parse(walkScript)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(s.Instructions) != 6 {
		t.Fatalf("Expected 6 instructions, got %d", len(s.Instructions))
	}
	if s.Mode != "WALK" {
		t.Errorf("Mode = %q, want WALK", s.Mode)
	}
	if got := s.Instructions[1].String(); got != "NOT B T" {
		t.Errorf("Instructions[1] = %q, want %q", got, "NOT B T")
	}
}

func TestParseLowercase(t *testing.T) {
	s, err := Parse("not a j\nrun\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := s.Text(), "NOT A J\nRUN\n"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestText(t *testing.T) {
	s, err := Parse(walkScript)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "NOT A J\nNOT B T\nOR T J\nNOT C T\nOR T J\nAND D J\nWALK\n"
	if got := s.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"write to sensor", "AND J A\nWALK", `cannot write register "A"`},
		{"run sensor in walk", "NOT E J\nWALK", `cannot read register "E" in WALK mode`},
		{"unknown register", "OR Z J\nRUN", `cannot read register "Z"`},
		{"missing mode", "NOT A J\n", "springscript:"},
		{"too long", strings.Repeat("NOT A J\n", 16) + "WALK", "16 instructions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := Parse("NOT E J\nNOT I T\nRUN"); err != nil {
		t.Errorf("RUN should allow E-I sensors: %v", err)
	}
	if _, err := Parse(strings.Repeat("NOT A J\n", 15) + "WALK"); err != nil {
		t.Errorf("15 instructions should be accepted: %v", err)
	}
}

func TestJump(t *testing.T) {
	s, err := Parse(walkScript)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name   string
		ground string
		want   bool
	}{
		{"solid", "#########", false},
		{"hole ahead, land on D", ".########", true},
		{"hole at C", "##.######", true},
		{"hole at D", "###.#####", false},
		{"hole ahead, D missing", ".#.......", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ground [9]bool
			for i := range ground {
				ground[i] = tt.ground[i] == '#'
			}
			if got := s.Jump(ground); got != tt.want {
				t.Errorf("Jump(%s) = %v, want %v", tt.ground, got, tt.want)
			}
		})
	}
}

// droid builds a program that prints text and then, if damage is non-zero,
// the damage value.
func droid(text string, damage int64) []int64 {
	var program []int64
	for _, b := range []byte(text) {
		program = append(program, 104, int64(b))
	}
	if damage != 0 {
		program = append(program, 104, damage)
	}
	return append(program, 99)
}

func TestRun(t *testing.T) {
	s, _ := Parse(walkScript)

	damage, err := Run(droid("Walking...\n\n", 19358870), s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if damage != 19358870 {
		t.Errorf("damage = %d, want 19358870", damage)
	}
}

func TestRunFell(t *testing.T) {
	s, _ := Parse(walkScript)

	_, err := Run(droid("Didn't make it across:\n#####.###\n", 0), s)
	var fell *FellError
	if !errors.As(err, &fell) {
		t.Fatalf("Expected FellError, got %v", err)
	}
	if !strings.Contains(fell.Transcript, "#####.###") {
		t.Errorf("Transcript = %q, want the hull view", fell.Transcript)
	}
}

func TestRunReadsScript(t *testing.T) {
	s, _ := Parse("NOT A J\nWALK")

	// Read the first character of the script and report it as the result
	// offset into non-ASCII range.
	program := []int64{3, 100, 1001, 100, 1000, 100, 4, 100, 99}
	damage, err := Run(program, s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if damage != 'N'+1000 {
		t.Errorf("damage = %d, want %d", damage, 'N'+1000)
	}

	damage, err = Run(program, s, intcode.WithPatch(4, 2000))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if damage != 'N'+2000 {
		t.Errorf("patched damage = %d, want %d", damage, 'N'+2000)
	}

	var opErr *intcode.OpcodeError
	if _, err := Run([]int64{42}, s); !errors.As(err, &opErr) {
		t.Errorf("Expected OpcodeError, got %v", err)
	}
}
