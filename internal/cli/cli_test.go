package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursegrid/pkg/config"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
)

const sampleCSV = `code,name,duration,semester,requirement
ENC-01,Introduction to Computer Engineering,68,1,
MAT-01,Calculus I,90,1,
MAT-02,Calculus II,90,2,MAT-01
ENC-02,Digital Systems,68,2,ENC-01;MAT-01;GEN-99
ENC-03,Computer Architecture,68,4,ENC-02;MAT-02;ENC-01
`

// run executes the root command with args in a scratch directory and a
// private cache.
func run(t *testing.T, dir string, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Chdir(dir)

	var logs bytes.Buffer
	root := New(&logs, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "ec.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	want := []string{"browse", "cache", "completion", "layout", "render", "serve"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)

	if err := run(t, dir, "layout", input, "--prefix", "ENC,MAT"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	l, err := graph.ReadLayoutFile(filepath.Join(dir, "ec.layout.json"))
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(l.Boxes) != 5 || len(l.Edges) != 6 {
		t.Errorf("layout has %d boxes and %d edges, want 5 and 6", len(l.Boxes), len(l.Edges))
	}
	if _, err := os.Stat(filepath.Join(dir, "cache", appName)); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}
}

func TestLayoutCommand_DanglingWithoutPrefixes(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)

	err := run(t, dir, "layout", input, "--no-cache")
	if err == nil || !strings.Contains(err.Error(), "GEN-99") {
		t.Fatalf("layout error = %v, want dangling GEN-99", err)
	}
}

func TestLayoutCommand_ConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)
	cfg := `[grid]
box_width = 120
box_height = 50

[requirements]
prefixes = ["ENC", "MAT"]
`
	cfgPath := filepath.Join(dir, "grid.toml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.json")
	if err := run(t, dir, "--config", cfgPath, "layout", input, "--box-height", "40", "-o", out); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	b, ok := l.Box("MAT-02")
	if !ok {
		t.Fatal("MAT-02 missing from layout")
	}
	if got := b.Rect.X1 - b.Rect.X0; got != 120 {
		t.Errorf("box width = %g, want 120 (config)", got)
	}
	if got := b.Rect.Y1 - b.Rect.Y0; got != 40 {
		t.Errorf("box height = %g, want 40 (flag)", got)
	}
}

func TestLayoutCommand_ConfigInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("[requirements]\nprefixes = [\"ENC\", \"MAT\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, dir, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)

	if err := run(t, dir, "render", input, "-f", "svg,dot", "--prefix", "ENC,MAT", "--separators"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "ec.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(`id="course-ENC-03"`)) {
		t.Errorf("unexpected svg output:\n%s", svg)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "ec.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !bytes.Contains(dot, []byte("digraph")) {
		t.Errorf("dot output missing digraph:\n%s", dot)
	}
}

func TestRenderCommand_FromLayoutFile(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)
	if err := run(t, dir, "layout", input, "-p", "ENC", "-p", "MAT"); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	layoutPath := filepath.Join(dir, "ec.layout.json")
	out := filepath.Join(dir, "plan.svg")
	if err := run(t, dir, "render", layoutPath, "-o", out, "--background", "none"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if bytes.Contains(svg, []byte(`fill="#ffffff"`)) {
		t.Error("transparent render should not paint a background")
	}
}

func TestRenderCommand_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)
	if err := run(t, dir, "render", input, "-f", "gif"); err == nil {
		t.Fatal("render -f gif should fail")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.configPath = filepath.Join(t.TempDir(), "absent.toml")
	if _, err := c.loadConfig(); err == nil {
		t.Fatal("loadConfig() with a missing --config file should fail")
	}
}

func TestPipelineFlags_OnlyChangedOverride(t *testing.T) {
	var flags pipelineFlags
	cmd := &cobra.Command{Use: "test"}
	flags.registerLoad(cmd.Flags())
	flags.registerLayout(cmd.Flags())
	flags.registerRender(cmd.Flags())
	if err := cmd.Flags().Parse([]string{"--lane-pitch", "3", "--columns", "10", "--palette", "#111,#222"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Grid.BoxWidth = 150
	cfg.Requirements.Prefixes = []string{"ENC"}

	opts := flags.options(cmd, cfg)
	want := grid.DefaultConfig()
	want.BoxWidth = 150
	want.LanePitch = 3
	want.Columns = 10
	if diff := cmp.Diff(want, opts.Grid); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ENC"}, opts.Prefixes); diff != "" {
		t.Errorf("Prefixes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#111", "#222"}, opts.Palette); diff != "" {
		t.Errorf("Palette mismatch (-want +got):\n%s", diff)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir)
	if err := run(t, dir, "render", input, "-p", "ENC,MAT", "-f", "svg,json"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	cacheRoot := filepath.Join(dir, "cache", appName)
	n, err := clearCache(cacheRoot)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if n == 0 {
		t.Error("clearCache() removed nothing after a cached render")
	}
	if n, err := clearCache(cacheRoot); err != nil || n != 0 {
		t.Errorf("second clearCache() = %d, %v; want 0, nil", n, err)
	}
	if n, err := clearCache(filepath.Join(dir, "missing")); err != nil || n != 0 {
		t.Errorf("clearCache(missing) = %d, %v; want 0, nil", n, err)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %s", shell, appName)
			}
		})
	}
}
