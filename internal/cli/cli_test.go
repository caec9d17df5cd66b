package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/radial-viewer/internal/analysis"
)

// createGreyPNG writes a uniform grey PNG into a temp dir and returns its path.
func createGreyPNG(t *testing.T, width, height int, v uint8) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "cli-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestInfo(t *testing.T) {
	path := createGreyPNG(t, 20, 10, 100)

	out, _, err := run(t, "", "info", path)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "20x10 png alpha=false") {
		t.Errorf("unexpected output: %q", out)
	}

	out, _, err = run(t, "", "info", "--json", path)
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	if !strings.Contains(out, `"width": 20`) {
		t.Errorf("unexpected JSON output: %q", out)
	}

	if _, _, err := run(t, "", "info", "/nonexistent/image.png"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, _, err := run(t, "", "info"); err == nil {
		t.Error("expected error without a file argument")
	}
}

func TestProfile(t *testing.T) {
	path := createGreyPNG(t, 30, 30, 100)

	out, _, err := run(t, "", "profile", path, "--radius", "5")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.HasPrefix(out, "R=5: avg=100.0000 over ") {
		t.Errorf("unexpected output: %q", out)
	}

	out, _, err = run(t, "", "profile", path, "-r", "3", "--cx=-50", "--cy=-50")
	if err != nil {
		t.Fatalf("profile off image: %v", err)
	}
	if strings.TrimSpace(out) != "R=3: no data" {
		t.Errorf("unexpected output: %q", out)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing radius", []string{"profile", path}},
		{"zero radius", []string{"profile", path, "--radius", "0"}},
		{"only cx", []string{"profile", path, "--radius", "2", "--cx", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, "", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSweep_Stdout(t *testing.T) {
	path := createGreyPNG(t, 30, 30, 60)

	out, errOut, err := run(t, "", "sweep", path, "--min", "0", "--max", "10", "--step", "5")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header and 3 rows: %q", len(lines), out)
	}
	if lines[0] != "R,avg,samples" {
		t.Errorf("header: got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,60.0000,1") {
		t.Errorf("first row: got %q", lines[1])
	}
	if !strings.Contains(errOut, "sweep: 3 radii, 3 with data") {
		t.Errorf("summary missing from stderr: %q", errOut)
	}
}

func TestSweep_Export(t *testing.T) {
	path := createGreyPNG(t, 30, 30, 60)
	out := filepath.Join(t.TempDir(), "profile.parquet")

	stdout, errOut, err := run(t, "", "sweep", path, "--max", "12", "--step", "4", "--out", out)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if stdout != "" {
		t.Errorf("export should not write the profile to stdout: %q", stdout)
	}
	if !strings.Contains(errOut, "exported 4 rows to "+out) {
		t.Errorf("export line missing from stderr: %q", errOut)
	}

	profile, err := analysis.Import(out)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(profile) != 4 || profile[3].Radius != 12 {
		t.Errorf("imported profile: %+v", profile)
	}
}

func TestSweep_InvalidParams(t *testing.T) {
	path := createGreyPNG(t, 10, 10, 60)

	tests := []struct {
		name string
		args []string
	}{
		{"zero step", []string{"--max", "5", "--step", "0"}},
		{"max below min", []string{"--min", "5", "--max", "1"}},
		{"not a number", []string{"--max", "ten"}},
		{"missing max", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sweep", path}, tt.args...)
			if _, _, err := run(t, "", args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRings(t *testing.T) {
	// Bright ring of radius 12 around (25,20)
	img := image.NewNRGBA(image.Rect(0, 0, 50, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			d := math.Hypot(float64(x-25), float64(y-20))
			if math.Abs(d-12) <= 1 {
				img.SetNRGBA(x, y, color.NRGBA{220, 220, 220, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	path := filepath.Join(t.TempDir(), "ring.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, _, err := run(t, "", "rings", path, "--min-radius", "8", "--max-radius", "16", "-n", "1")
	if err != nil {
		t.Fatalf("rings: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ring R=") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, _, err := run(t, "", "rings", path, "--min-radius", "8", "--max-radius", "16", "--level", "255"); err == nil {
		t.Error("expected error when no pixel reaches the level")
	}
	if _, _, err := run(t, "", "rings", path, "--min-radius", "8"); err == nil {
		t.Error("expected error without --max-radius")
	}
}

func TestHistogram(t *testing.T) {
	path := createGreyPNG(t, 20, 10, 100)

	out, _, err := run(t, "", "histogram", path)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	want := "100 200\npeak 100 (200 of 200)\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}

	out, _, err = run(t, "", "histogram", "--json", path)
	if err != nil {
		t.Fatalf("histogram --json: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "[") {
		t.Errorf("expected a JSON array: %q", out)
	}
}

func TestServe(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	out, _, err := run(t, in, "serve")
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !strings.Contains(out, `"id":1`) {
		t.Errorf("missing ping response: %q", out)
	}
}

func TestServe_PluginDir(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	// A directory without modules is fine
	if _, _, err := run(t, in, "serve", "--plugin-dir", t.TempDir()); err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestRoot_Config(t *testing.T) {
	path := createGreyPNG(t, 10, 10, 60)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("csv_precision: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "", "--config", cfgPath, "sweep", path, "--max", "0")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if !strings.Contains(out, "0,60.0,1") {
		t.Errorf("precision from config not applied: %q", out)
	}

	if _, _, err := run(t, "", "--config", "/nonexistent/config.yaml", "info", path); err == nil {
		t.Error("expected error for missing config file")
	}
	if _, _, err := run(t, "", "--log-level", "chatty", "info", path); err == nil {
		t.Error("expected error for unknown log level")
	}
}
