package cmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withDemoFlags(t *testing.T, output string) {
	t.Helper()
	prevOut, prevW, prevH, prevAll, prevSpeed := demoOutput, demoWidth, demoHeight, demoCaptureAll, demoSpeed
	t.Cleanup(func() {
		demoOutput, demoWidth, demoHeight, demoCaptureAll, demoSpeed = prevOut, prevW, prevH, prevAll, prevSpeed
	})
	demoOutput = output
	demoWidth, demoHeight = 100, 30
	demoCaptureAll = false
	demoSpeed = 0.02
}

func TestDemoCommand_Subcommands(t *testing.T) {
	want := map[string]bool{"list": false, "run": false, "cast": false}
	for _, sub := range demoCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("demo should have a %q subcommand", name)
		}
	}
}

func TestListScenarios(t *testing.T) {
	var out bytes.Buffer
	listScenarios(&out)
	if !strings.Contains(out.String(), "basic") || !strings.Contains(out.String(), "premium") {
		t.Errorf("list output missing scenarios:\n%s", out.String())
	}
}

func TestGetScenario(t *testing.T) {
	withDemoFlags(t, "")

	if _, err := getScenario("missing"); err == nil || !strings.Contains(err.Error(), "shield demo list") {
		t.Errorf("getScenario(missing) error = %v", err)
	}

	s, err := getScenario("basic")
	if err != nil {
		t.Fatalf("getScenario(basic) error = %v", err)
	}
	if s.Width != 100 || s.Height != 30 {
		t.Errorf("dimensions = %dx%d, want flag overrides 100x30", s.Width, s.Height)
	}
}

func TestRunDemoRun(t *testing.T) {
	withDemoFlags(t, "")

	var out bytes.Buffer
	if err := runDemoRun(&out, "basic"); err != nil {
		t.Fatalf("runDemoRun() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Captured ") {
		t.Errorf("output should start with the frame count, got %q", firstLine(out.String()))
	}
	if !strings.Contains(out.String(), "Annotation: Ask a question") {
		t.Error("output should include annotations")
	}
}

func TestRunDemoCast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium.cast")
	withDemoFlags(t, path)

	var out bytes.Buffer
	if err := runDemoCast(&out, "premium"); err != nil {
		t.Fatalf("runDemoCast() error = %v", err)
	}
	if !strings.Contains(out.String(), "Generated "+path) {
		t.Errorf("output = %q", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cast file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"version":2,"width":100,"height":30`) {
		t.Errorf("unexpected cast header: %q", firstLine(string(data)))
	}
}

func firstLine(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Scan()
	return sc.Text()
}
