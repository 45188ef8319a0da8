package intcode

import (
	"bufio"
	"io"
	"strings"
)

// maxASCII is the largest value treated as a character.
const maxASCII = 127

// Text converts output values to a string. A value outside the ASCII range
// is not a character: the last such value is returned as result.
func Text(values []int64) (text string, result int64, ok bool) {
	var sb strings.Builder
	for _, v := range values {
		if v < 0 || v > maxASCII {
			result, ok = v, true
			continue
		}
		sb.WriteByte(byte(v))
	}
	return sb.String(), result, ok
}

// ASCIIOutput writes character output to W. Values outside the ASCII range
// are kept in Result instead of being printed.
type ASCIIOutput struct {
	W io.Writer

	Result    int64
	HasResult bool
	Err       error // First write error, if any
}

// Output writes value as a byte, or records it as the result.
func (a *ASCIIOutput) Output(value int64) {
	if value < 0 || value > maxASCII {
		a.Result, a.HasResult = value, true
		return
	}
	if a.Err != nil {
		return
	}
	_, a.Err = a.W.Write([]byte{byte(value)})
}

// ASCIIInput feeds text read line by line from a reader, one byte per
// input instruction. Each line is delivered with its trailing newline.
type ASCIIInput struct {
	r       *bufio.Reader
	pending []byte

	// Echo, when set, receives each line as it is consumed.
	Echo func(line string)
}

// NewASCIIInput creates an ASCIIInput reading from r.
func NewASCIIInput(r io.Reader) *ASCIIInput {
	return &ASCIIInput{r: bufio.NewReader(r)}
}

// Input returns the next byte of input. It reports false at end of input.
func (a *ASCIIInput) Input() (int64, bool) {
	if len(a.pending) == 0 {
		line, err := a.r.ReadString('\n')
		if line == "" && err != nil {
			return 0, false
		}
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		if a.Echo != nil {
			a.Echo(line)
		}
		a.pending = []byte(line)
	}
	b := a.pending[0]
	a.pending = a.pending[1:]
	return int64(b), true
}

// Terminal is an interactive text console: lines from In become input,
// character output goes to Out.
type Terminal struct {
	*ASCIIInput
	*ASCIIOutput
}

// NewTerminal creates a Terminal over a reader and writer.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		ASCIIInput:  NewASCIIInput(r),
		ASCIIOutput: &ASCIIOutput{W: w},
	}
}
