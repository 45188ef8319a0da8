// Intcode CLI - runs Intcode programs with a choice of I/O strategies
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/pkg/arcade"
	"github.com/chazu/intcode/pkg/intcode"
	"github.com/chazu/intcode/pkg/network"
	"github.com/chazu/intcode/pkg/robot"
	"github.com/chazu/intcode/pkg/springscript"
)

// patchList collects repeated -patch flags.
type patchList []manifest.Patch

func (p *patchList) String() string {
	parts := make([]string, len(*p))
	for i, patch := range *p {
		parts[i] = patch.String()
	}
	return strings.Join(parts, ",")
}

func (p *patchList) Set(s string) error {
	patch, err := manifest.ParsePatch(s)
	if err != nil {
		return err
	}
	*p = append(*p, patch)
	return nil
}

func main() {
	var patches patchList

	configDir := flag.String("config", "", "Directory containing intcode.toml (default: search upward from .)")
	mode := flag.String("mode", "", "Run mode: "+strings.Join(manifest.Modes, ", "))
	inputs := flag.String("in", "", "Comma-separated input values queued before running")
	trace := flag.Bool("trace", false, "Log every executed instruction (needs -v 2)")
	verbosity := flag.Int("v", 0, "Log verbosity (1 info, 2 debug)")
	disasm := flag.Bool("disasm", false, "Print a disassembly listing and exit")
	size := flag.Int("size", 0, "Network size (network mode)")
	nat := flag.Int64("nat", 0, "NAT address (network mode)")
	script := flag.String("script", "", "Springscript file (springscript mode)")
	flag.Var(&patches, "patch", "Set a memory cell before running, as address=value (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: intcode [options] [program.txt]\n\n")
		fmt.Fprintf(os.Stderr, "Runs an Intcode program. Settings come from intcode.toml when present;\n")
		fmt.Fprintf(os.Stderr, "flags override them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  intcode -in 1 day5.txt                 # Queue input 1, print outputs\n")
		fmt.Fprintf(os.Stderr, "  intcode -mode ascii day25.txt          # Interactive text console\n")
		fmt.Fprintf(os.Stderr, "  intcode -mode network day23.txt        # 50-node packet network\n")
		fmt.Fprintf(os.Stderr, "  intcode -mode arcade -patch 0=2 day13.txt  # Autoplay with quarters\n")
		fmt.Fprintf(os.Stderr, "  intcode -mode springscript -script walk.ss day21.txt\n")
		fmt.Fprintf(os.Stderr, "  intcode -disasm day9.txt               # Disassemble\n")
	}
	flag.Parse()

	m, err := loadManifest(*configDir)
	if err != nil {
		fatal(err)
	}

	// Flags override the manifest only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			m.Run.Mode = *mode
		case "trace":
			m.Run.Trace = *trace
		case "v":
			m.Log.Verbosity = *verbosity
		case "size":
			m.Network.Size = *size
		case "nat":
			m.Network.NAT = *nat
		case "script":
			m.Run.Script = *script
		case "patch":
			m.Program.Patch = append(m.Program.Patch, patches...)
		}
	})
	if *inputs != "" {
		values, err := intcode.ParseProgram(*inputs)
		if err != nil {
			fatal(fmt.Errorf("bad -in values: %w", err))
		}
		m.Run.Input = values
	}
	if err := m.Validate(); err != nil {
		fatal(err)
	}

	if logPath := m.LogPath(); logPath != "" {
		commonlog.Configure(m.Log.Verbosity, &logPath)
	} else {
		commonlog.Configure(m.Log.Verbosity, nil)
	}

	path := m.ProgramPath()
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		flag.Usage()
		os.Exit(1)
	}

	program, err := intcode.LoadProgram(path)
	if err != nil {
		fatal(err)
	}

	if *disasm {
		// Only patches inside the program show up in the listing.
		listed := intcode.New(program, computerOptions(m)...).Memory().Slice(0, len(program))
		fmt.Print(intcode.DisassembleWithName(listed, filepath.Base(path)))
		return
	}

	if err := run(m, program); err != nil {
		fatal(err)
	}
}

func loadManifest(dir string) (*manifest.Manifest, error) {
	if dir != "" {
		return manifest.Load(dir)
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(), nil
	}
	return m, nil
}

// computerOptions turns the manifest's trace and patch settings into
// options for every computer a mode creates.
func computerOptions(m *manifest.Manifest) []intcode.Option {
	opts := []intcode.Option{intcode.WithTrace(m.Run.Trace)}
	for _, p := range m.Program.Patch {
		opts = append(opts, intcode.WithPatch(p.Address, p.Value))
	}
	return opts
}

func run(m *manifest.Manifest, program []int64) error {
	opts := computerOptions(m)
	switch m.Run.Mode {
	case "queue":
		return runQueue(m, program, opts)
	case "ascii":
		return runASCII(m, program, opts)
	case "network":
		return runNetwork(m, program, opts)
	case "arcade":
		return runArcade(program, opts)
	case "robot":
		return runRobot(m, program, opts)
	case "springscript":
		return runSpringscript(m, program, opts)
	default:
		return fmt.Errorf("unknown mode %q", m.Run.Mode)
	}
}

func runQueue(m *manifest.Manifest, program []int64, opts []intcode.Option) error {
	c := intcode.New(program, opts...)
	c.Input(m.Run.Input...)

	if _, _, err := c.Run(); err != nil {
		return err
	}
	for _, v := range c.DrainOutput() {
		fmt.Println(v)
	}
	if c.State() == intcode.WaitingForInput {
		return fmt.Errorf("program is waiting for input at pc %d", c.PC())
	}
	return nil
}

func runASCII(m *manifest.Manifest, program []int64, opts []intcode.Option) error {
	term := intcode.NewTerminal(os.Stdin, os.Stdout)
	c := intcode.New(program, opts...)
	c.SetIO(term)
	c.Input(m.Run.Input...)

	if _, _, err := c.Run(); err != nil {
		return err
	}
	if term.Err != nil {
		return term.Err
	}
	if term.HasResult {
		fmt.Println(term.Result)
	}
	if c.State() == intcode.WaitingForInput {
		return errors.New("input closed while the program was waiting")
	}
	return nil
}

func runNetwork(m *manifest.Manifest, program []int64, opts []intcode.Option) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	net, err := network.New(program, m.Network.Size,
		network.WithNAT(m.Network.NAT),
		network.WithSentinel(m.Network.Sentinel),
		network.WithIdleTarget(m.Network.IdleTarget),
		network.WithMaxPasses(m.Network.MaxPasses),
		network.WithComputerOptions(opts...),
	)
	if err != nil {
		return err
	}

	res, err := net.Run(ctx)
	if res.HasFirstNATY {
		fmt.Printf("First NAT Y: %d\n", res.FirstNATY)
	}
	for addr, ferr := range res.Failed {
		fmt.Fprintf(os.Stderr, "Warning: computer %d failed: %v\n", addr, ferr)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Repeated NAT Y: %d (after %d passes)\n", res.RepeatedY, res.Passes)
	return nil
}

func runArcade(program []int64, opts []intcode.Option) error {
	cab, err := arcade.Play(program, false, opts...)
	if err != nil {
		return err
	}
	fmt.Print(cab.Render())
	return nil
}

func runRobot(m *manifest.Manifest, program []int64, opts []intcode.Option) error {
	start := robot.Black
	if len(m.Run.Input) > 0 {
		start = m.Run.Input[0]
	}
	r, err := robot.Paint(program, start, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("Painted %d panels\n", r.PaintedCount())
	fmt.Print(r.Render())
	return nil
}

func runSpringscript(m *manifest.Manifest, program []int64, opts []intcode.Option) error {
	path := m.ScriptPath()
	if path == "" {
		return errors.New("springscript mode needs -script or [run] script")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	s, err := springscript.Parse(string(data))
	if err != nil {
		return err
	}

	damage, err := springscript.Run(program, s, opts...)
	var fell *springscript.FellError
	if errors.As(err, &fell) {
		fmt.Fprint(os.Stderr, fell.Transcript)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Hull damage: %d\n", damage)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
