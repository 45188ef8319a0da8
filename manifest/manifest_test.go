package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
path = "day23.txt"
patch = [{ address = 0, value = 2 }]

[run]
mode = "network"
input = [1, -2, 30000000000]
trace = true

[network]
size = 4
nat = 100
sentinel = -7
idle-target = 3
max-passes = 1000

[log]
verbosity = 2
file = "run.log"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Program.Path != "day23.txt" {
		t.Errorf("program path = %q, want day23.txt", m.Program.Path)
	}
	if len(m.Program.Patch) != 1 || m.Program.Patch[0] != (Patch{Address: 0, Value: 2}) {
		t.Errorf("program patch = %v, want [0=2]", m.Program.Patch)
	}
	if m.Run.Mode != "network" {
		t.Errorf("run mode = %q, want network", m.Run.Mode)
	}
	if len(m.Run.Input) != 3 || m.Run.Input[2] != 30000000000 {
		t.Errorf("run input = %v, want [1 -2 30000000000]", m.Run.Input)
	}
	if !m.Run.Trace {
		t.Error("run trace = false, want true")
	}
	want := NetworkConfig{Size: 4, NAT: 100, Sentinel: -7, IdleTarget: 3, MaxPasses: 1000}
	if m.Network != want {
		t.Errorf("network = %+v, want %+v", m.Network, want)
	}
	if m.Log.Verbosity != 2 {
		t.Errorf("log verbosity = %d, want 2", m.Log.Verbosity)
	}
	if got := m.ProgramPath(); got != filepath.Join(m.Dir, "day23.txt") {
		t.Errorf("ProgramPath() = %q, want it under %q", got, m.Dir)
	}
	if got := m.LogPath(); got != filepath.Join(m.Dir, "run.log") {
		t.Errorf("LogPath() = %q, want it under %q", got, m.Dir)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[program]
path = "/abs/prog.txt"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Run.Mode != "queue" {
		t.Errorf("default mode = %q, want queue", m.Run.Mode)
	}
	if m.Network.Size != 50 || m.Network.NAT != 255 || m.Network.Sentinel != -1 {
		t.Errorf("default network = %+v, want size 50, nat 255, sentinel -1", m.Network)
	}
	if got := m.ProgramPath(); got != "/abs/prog.txt" {
		t.Errorf("ProgramPath() = %q, want /abs/prog.txt", got)
	}
	if m.ScriptPath() != "" || m.LogPath() != "" {
		t.Errorf("expected empty script and log paths, got %q %q", m.ScriptPath(), m.LogPath())
	}
}

func TestLoadManifestExplicitZero(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[network]
sentinel = 0
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Network.Sentinel != 0 {
		t.Errorf("sentinel = %d, want 0", m.Network.Sentinel)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad mode", "[run]\nmode = \"turbo\"\n", `unknown run mode "turbo"`},
		{"unknown key", "[run]\nmood = \"happy\"\n", `unknown key "run.mood"`},
		{"syntax", "[run\n", "parse error"},
		{"bad size", "[network]\nsize = 0\n", "size must be positive"},
		{"idle target", "[network]\nsize = 2\nidle-target = 2\n", "idle-target 2 outside"},
		{"negative patch", "[program]\npatch = [{ address = -1, value = 0 }]\n", "negative address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	// Create nested directory structure
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "[run]\nmode = \"arcade\"\n")

	// Should find manifest when starting from a deep subdirectory
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Run.Mode != "arcade" {
		t.Errorf("run mode = %q, want arcade", m.Run.Mode)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no intcode.toml exists")
	}
}

func TestParsePatch(t *testing.T) {
	p, err := ParsePatch("0=2")
	if err != nil {
		t.Fatalf("ParsePatch failed: %v", err)
	}
	if p != (Patch{Address: 0, Value: 2}) {
		t.Errorf("ParsePatch(0=2) = %v", p)
	}
	if p, _ := ParsePatch(" 12 = -5 "); p != (Patch{Address: 12, Value: -5}) {
		t.Errorf("ParsePatch with spaces = %v, want 12=-5", p)
	}

	for _, bad := range []string{"", "5", "x=1", "1=y", "-1=0"} {
		if _, err := ParsePatch(bad); err == nil {
			t.Errorf("ParsePatch(%q) should fail", bad)
		}
	}
}
