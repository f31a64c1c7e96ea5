package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const scenario = `name = "basic"
description = "hover a point"

[[charts]]
width = 400
height = 300
[[charts.series]]
name = "s"
points = [[25, 25], [50, 50], [75, 75]]

[[steps]]
action = "snapshot"
label = "idle"

[[steps]]
action = "move"
x = 200
y = 150

[[steps]]
action = "snapshot"
label = "hovered"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplay(t *testing.T) {
	out, err := run(t, "replay", writeFile(t, "basic.toml", scenario))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	for _, want := range []string{"replay basic", "hover a point", "SNAPSHOT", "idle", "hovered", "frames"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	var idle string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "idle") {
			idle = line
		}
	}
	if !strings.Contains(idle, "hidden") {
		t.Errorf("idle row = %q, want a hidden tooltip", idle)
	}
}

func TestReplayTraceOverride(t *testing.T) {
	sc := writeFile(t, "basic.toml", scenario)
	trace := writeFile(t, "trace.json", `{"steps": [{"action": "snapshot", "label": "only"}]}`)
	out, err := run(t, "replay", sc, "--trace", trace)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out, "only") || strings.Contains(out, "hovered") {
		t.Errorf("output = %q, want only the trace's snapshot", out)
	}
}

func TestReplayFrameLimit(t *testing.T) {
	sc := writeFile(t, "basic.toml", scenario+"\n[[steps]]\naction = \"wait\"\nframes = 50\n")
	_, err := run(t, "replay", sc, "--max-frames", "5")
	if err == nil || !strings.Contains(err.Error(), "not finished after 5 frames") {
		t.Errorf("err = %v, want the frame limit", err)
	}
}

func TestReplayErrors(t *testing.T) {
	if _, err := run(t, "replay", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing scenario replayed")
	}
	sc := writeFile(t, "bad.toml", scenario+"\n[[steps]]\naction = \"jump\"\n")
	if _, err := run(t, "replay", sc); err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("err = %v, want unknown action", err)
	}
	if _, err := run(t, "replay"); err == nil {
		t.Error("replay without a scenario succeeded")
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"below", []string{"--box", "50x30", "--at", "200,150"}, "175 166"},
		{"near side", []string{"--box", "50x30", "--at", "200,150", "--near"}, "175 104"},
		{"distance", []string{"--box", "50x30", "--at", "200,150", "--distance", "4"}, "175 154"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"place"}, tt.args...)...)
			if err != nil {
				t.Fatalf("place: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("place = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := run(t, "place", "--box", "50", "--at", "1,1"); err == nil || !strings.Contains(err.Error(), "--box") {
		t.Errorf("err = %v, want a --box error", err)
	}
	if _, err := run(t, "place", "--box", "5x5", "--at", "1,1", "--plot", "1,2"); err == nil {
		t.Error("short --plot accepted")
	}
}

func TestDistribute(t *testing.T) {
	out, err := run(t, "distribute", "--length", "100", "20:10", "25:10", "30:10")
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header, separator and 3 rows:\n%s", len(lines), out)
	}
	for i, want := range []string{"10", "20", "30"} {
		fields := strings.Fields(lines[i+2])
		if len(fields) != 6 || fields[4] != want {
			t.Errorf("row %d = %v, want pos %s", i, fields, want)
		}
	}

	out, err = run(t, "distribute", "--length", "15", "5:10:1", "6:10")
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if !strings.Contains(out, "✗") || !strings.Contains(out, "-") {
		t.Errorf("output = %q, want a dropped box", out)
	}

	if _, err := run(t, "distribute", "--length", "10", "oops"); err == nil {
		t.Error("malformed box accepted")
	}
}

func TestLegend(t *testing.T) {
	out, err := run(t, "legend", "--items", "10", "--space", "100")
	if err != nil {
		t.Fatalf("legend: %v", err)
	}
	if !strings.Contains(out, "4 pages, clip height 72") {
		t.Errorf("output = %q, want 4 pages", out)
	}
	for _, row := range []string{"1     0    0 1 2", "4     180  9"} {
		if !strings.Contains(out, row) {
			t.Errorf("output missing %q:\n%s", row, out)
		}
	}

	out, err = run(t, "legend", "--items", "3", "--space", "100")
	if err != nil {
		t.Fatalf("legend: %v", err)
	}
	if !strings.Contains(out, "fits in 60") {
		t.Errorf("output = %q, want the legend to fit", out)
	}

	if _, err := run(t, "legend"); err == nil {
		t.Error("legend without items succeeded")
	}
}
