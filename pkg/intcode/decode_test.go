package intcode

import (
	"errors"
	"strconv"
	"testing"
)

func TestSplitOpcodeDigits(t *testing.T) {
	// opcode is v mod 100; mode k is the k-th least significant digit of
	// v / 100, defaulting to 0.
	for v := int64(0); v < 30000; v += 7 {
		op, modes := SplitOpcode(v)
		if int64(op) != v%100 {
			t.Fatalf("SplitOpcode(%d) opcode = %d, want %d", v, op, v%100)
		}

		digits := strconv.FormatInt(v/100, 10)
		for k := 0; k < maxParams; k++ {
			want := Mode(0)
			if v/100 > 0 && k < len(digits) {
				want = Mode(digits[len(digits)-1-k] - '0')
			}
			if modes[k] != want {
				t.Fatalf("SplitOpcode(%d) mode %d = %d, want %d", v, k, modes[k], want)
			}
			if got := ModeOf(v, k); got != want {
				t.Fatalf("ModeOf(%d, %d) = %d, want %d", v, k, got, want)
			}
		}
	}
}

func TestSplitOpcodeExample(t *testing.T) {
	op, modes := SplitOpcode(1002)
	if op != OpMultiply {
		t.Errorf("Expected MUL, got %s", op)
	}
	want := [maxParams]Mode{ModePosition, ModeImmediate, ModePosition}
	if modes != want {
		t.Errorf("Expected modes %v, got %v", want, modes)
	}
}

func TestModeOfPastDigits(t *testing.T) {
	if got := ModeOf(21202, 5); got != ModePosition {
		t.Errorf("Expected position mode past the digits, got %s", got)
	}
}

func TestDecodeParams(t *testing.T) {
	mem := NewMemory([]int64{21101, 4, -5, 3})
	in, err := Decode(mem, 0, 100)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if in.Op != OpAdd || in.N != 3 {
		t.Fatalf("Expected ADD with 3 params, got %s with %d", in.Op, in.N)
	}
	if p := in.Arg(0); p.Mode != ModeImmediate || p.Value(mem) != 4 {
		t.Errorf("param 1 = %+v, want immediate 4", p)
	}
	if p := in.Arg(1); p.Mode != ModeImmediate || p.Value(mem) != -5 {
		t.Errorf("param 2 = %+v, want immediate -5", p)
	}
	if p := in.Arg(2); p.Mode != ModeRelative || p.Addr != 103 {
		t.Errorf("param 3 = %+v, want relative address 103", p)
	}
	if in.Len() != 4 {
		t.Errorf("Expected length 4, got %d", in.Len())
	}
}

func TestDecodeRelativeAddress(t *testing.T) {
	mem := NewMemory([]int64{204, -1})
	mem.Set(1999, 31337)

	in, err := Decode(mem, 0, 2000)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p := in.Arg(0)
	if p.Addr != 1999 {
		t.Errorf("Expected effective address 1999, got %d", p.Addr)
	}
	if p.Value(mem) != 31337 {
		t.Errorf("Expected value 31337, got %d", p.Value(mem))
	}
}

func TestDecodePositionValue(t *testing.T) {
	mem := NewMemory([]int64{4, 3, 99, 12})
	in, err := Decode(mem, 0, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := in.Arg(0).Value(mem); got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
}

func TestDecodeHalt(t *testing.T) {
	in, err := Decode(NewMemory([]int64{99}), 0, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if in.Op != OpHalt || in.N != 0 || in.Len() != 1 {
		t.Errorf("Expected bare HALT, got %+v", in)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		program []int64
		check   func(error) bool
	}{
		{"unknown opcode", []int64{10}, func(err error) bool { var e *OpcodeError; return errors.As(err, &e) }},
		{"negative cell", []int64{-1}, func(err error) bool { var e *OpcodeError; return errors.As(err, &e) }},
		{"bad mode", []int64{1901}, func(err error) bool { var e *ModeError; return errors.As(err, &e) }},
		{"immediate input target", []int64{103, 0}, func(err error) bool { var e *ModeError; return errors.As(err, &e) }},
		{"negative position", []int64{1, -3, 0, 0}, func(err error) bool { var e *AddressError; return errors.As(err, &e) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(NewMemory(tt.program), 0, 0)
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	mem := NewMemory([]int64{21101, 4, -5, 3})
	in, _ := Decode(mem, 0, 0)
	if got, want := in.String(), "ADD #4, #-5, rb+3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	mem = NewMemory([]int64{2005, 7, -2})
	in = decodeUnchecked(mem, 0)
	if got, want := in.String(), "JNZ [7], rb-2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
