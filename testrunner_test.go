package vignette

import (
	"os"
	"strings"
	"testing"
)

func TestLoadTestScriptValid(t *testing.T) {
	script := `{"steps":[
		{"action":"key","key":"b"},
		{"action":"wait","frames":3},
		{"action":"waitScene","scene":"battle","timeout":500},
		{"action":"snapshot","label":"arrived"}
	]}`
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Errorf("steps = %d, want 4", len(runner.steps))
	}
	if runner.Done() || runner.Err() != nil {
		t.Error("fresh runner reports done or error")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"invalid json", `{not json}`, "parse test script"},
		{"no steps", `{"steps":[]}`, "no steps"},
		{"unknown action", `{"steps":[{"action":"click"}]}`, "unknown action"},
		{"key without key", `{"steps":[{"action":"key"}]}`, "step 0"},
		{"zero wait", `{"steps":[{"action":"key","key":"w"},{"action":"wait"}]}`, "step 1"},
		{"unknown scene", `{"steps":[{"action":"waitScene","scene":"lobby"}]}`, "lobby"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTestRunnerKeyAndWait(t *testing.T) {
	d, _ := newTestDirector(t, DefaultConfig())
	runner, err := LoadTestScript([]byte(`{"steps":[
		{"action":"key","keys":["x","y"]},
		{"action":"wait","frames":2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d.SetTestRunner(runner)

	var keys []string
	d.Keyboard().OnKeyDown(func(ev KeyEvent) { keys = append(keys, ev.Key) })

	ticks := 0
	for !runner.Done() && ticks < 20 {
		d.Tick(testDT)
		ticks++
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Errorf("keys = %v", keys)
	}
	// two ticks deliver the keys, two wait, and the last notices the end
	if ticks != 5 {
		t.Errorf("finished after %d ticks, want 5", ticks)
	}
}

func TestTestRunnerScenario(t *testing.T) {
	d, _ := newTestDirector(t, DefaultConfig())
	d.SnapshotDir = t.TempDir()
	runner, err := LoadTestScript([]byte(`{"steps":[
		{"action":"key","key":"b"},
		{"action":"waitScene","scene":"battle","timeout":400},
		{"action":"snapshot","label":"battle"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d.SetTestRunner(runner)

	for i := 0; i < 600 && !runner.Done(); i++ {
		d.Tick(testDT)
	}
	if !runner.Done() || runner.Err() != nil {
		t.Fatalf("done=%t err=%v", runner.Done(), runner.Err())
	}
	if d.Store().State().Scene.Type != SceneBattle {
		t.Errorf("scene = %s, want battle", d.Store().State().Scene.Type)
	}
	entries, err := os.ReadDir(d.SnapshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_battle.json") {
		t.Errorf("snapshots = %v", entries)
	}
}

func TestTestRunnerWaitSceneTimeout(t *testing.T) {
	d, _ := newTestDirector(t, DefaultConfig())
	runner, err := LoadTestScript([]byte(`{"steps":[
		{"action":"waitScene","scene":"battle","timeout":5},
		{"action":"key","key":"b"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d.SetTestRunner(runner)
	for i := 0; i < 10; i++ {
		d.Tick(testDT)
	}
	if !runner.Done() {
		t.Fatal("runner should stop on timeout")
	}
	if runner.Err() == nil || !strings.Contains(runner.Err().Error(), "timed out") {
		t.Errorf("err = %v", runner.Err())
	}
	if d.Store().State().ChangePending() {
		t.Error("steps after the timeout ran")
	}
}
