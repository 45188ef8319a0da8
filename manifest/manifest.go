// Package manifest handles intcode.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up by Load and FindAndLoad.
const FileName = "intcode.toml"

// Modes lists the accepted run modes.
var Modes = []string{"queue", "ascii", "network", "arcade", "robot", "springscript"}

// Manifest represents an intcode.toml run configuration.
type Manifest struct {
	Program Program       `toml:"program"`
	Run     RunConfig     `toml:"run"`
	Network NetworkConfig `toml:"network"`
	Log     LogConfig     `toml:"log"`

	// Dir is the directory containing the intcode.toml file (set at load time).
	Dir string `toml:"-"`
}

// Program locates the program text and the cells to patch after loading.
type Program struct {
	Path  string  `toml:"path"`
	Patch []Patch `toml:"patch"`
}

// Patch overwrites one memory cell before the program starts.
type Patch struct {
	Address int64 `toml:"address"`
	Value   int64 `toml:"value"`
}

func (p Patch) String() string {
	return fmt.Sprintf("%d=%d", p.Address, p.Value)
}

// RunConfig selects the I/O strategy.
type RunConfig struct {
	Mode   string  `toml:"mode"`
	Input  []int64 `toml:"input"`
	Trace  bool    `toml:"trace"`
	Script string  `toml:"script"`
}

// NetworkConfig configures network mode.
type NetworkConfig struct {
	Size       int   `toml:"size"`
	NAT        int64 `toml:"nat"`
	Sentinel   int64 `toml:"sentinel"`
	IdleTarget int   `toml:"idle-target"`
	MaxPasses  int   `toml:"max-passes"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Manifest {
	return &Manifest{
		Run: RunConfig{Mode: "queue"},
		Network: NetworkConfig{
			Size:     50,
			NAT:      255,
			Sentinel: -1,
		},
	}
}

// Load parses an intcode.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	// Unset keys keep their defaults.
	m := Default()
	md, err := toml.Decode(string(data), m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks values that have no sensible fallback.
func (m *Manifest) Validate() error {
	if !slices.Contains(Modes, m.Run.Mode) {
		return fmt.Errorf("unknown run mode %q (want one of %s)", m.Run.Mode, strings.Join(Modes, ", "))
	}
	if m.Network.Size <= 0 {
		return fmt.Errorf("network size must be positive, got %d", m.Network.Size)
	}
	if m.Network.IdleTarget < 0 || m.Network.IdleTarget >= m.Network.Size {
		return fmt.Errorf("network idle-target %d outside fleet of %d", m.Network.IdleTarget, m.Network.Size)
	}
	for _, p := range m.Program.Patch {
		if p.Address < 0 {
			return fmt.Errorf("patch %s: negative address", p)
		}
	}
	return nil
}

// ProgramPath returns the program path, resolved against the manifest
// directory when relative.
func (m *Manifest) ProgramPath() string {
	return m.resolve(m.Program.Path)
}

// ScriptPath returns the springscript path, resolved like ProgramPath.
func (m *Manifest) ScriptPath() string {
	return m.resolve(m.Run.Script)
}

// LogPath returns the log file path, resolved like ProgramPath. Empty means
// stderr.
func (m *Manifest) LogPath() string {
	return m.resolve(m.Log.File)
}

func (m *Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.Dir == "" {
		return path
	}
	return filepath.Join(m.Dir, path)
}

// ParsePatch parses the "address=value" form used on the command line.
func ParsePatch(s string) (Patch, error) {
	addr, value, ok := strings.Cut(s, "=")
	if !ok {
		return Patch{}, fmt.Errorf("patch %q: want address=value", s)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(addr), 10, 64)
	if err != nil {
		return Patch{}, fmt.Errorf("patch %q: bad address: %w", s, err)
	}
	if a < 0 {
		return Patch{}, fmt.Errorf("patch %q: negative address", s)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return Patch{}, fmt.Errorf("patch %q: bad value: %w", s, err)
	}
	return Patch{Address: a, Value: v}, nil
}
