package vignette

import (
	"encoding/json"
	"errors"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string    `json:"action"`
	Label  string    `json:"label,omitempty"`
	Key    string    `json:"key,omitempty"`
	Keys   []string  `json:"keys,omitempty"`
	Frames int       `json:"frames,omitempty"`
	Scene  SceneType `json:"scene,omitempty"`
	// Timeout bounds waitScene in frames. Zero waits forever.
	Timeout int `json:"timeout,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected keys, waits, and frame snapshots across
// ticks for scripted scenario runs. Attach to a Director via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int

	waitScene   SceneType
	waitTimeout int
	waiting     bool

	done bool
	err  error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Director via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "key":
		if st.Key == "" && len(st.Keys) == 0 {
			return errors.New("key step needs key or keys")
		}
	case "wait":
		if st.Frames <= 0 {
			return errors.New("wait step needs positive frames")
		}
	case "waitScene":
		if st.Scene == SceneNone || !st.Scene.Valid() {
			return fmt.Errorf("waitScene: unknown scene %q", st.Scene)
		}
	case "snapshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// SetTestRunner attaches a TestRunner. Its step method is called at the
// start of every Tick, before injected keys are processed.
func (d *Director) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err reports why the script stopped early, such as a waitScene timeout.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Director.Tick.
func (r *TestRunner) step(d *Director) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.waiting {
		if d.store.State().Scene.Type == r.waitScene {
			r.waiting = false
		} else {
			if r.waitTimeout > 0 {
				r.waitTimeout--
				if r.waitTimeout == 0 {
					r.err = fmt.Errorf("test script: timed out waiting for scene %s", r.waitScene)
					r.done = true
					d.warnf("%v", r.err)
				}
			}
			return
		}
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key":
		if st.Key != "" {
			d.InjectKey(st.Key)
		}
		d.InjectKeys(st.Keys...)
	case "wait":
		r.waitCount = st.Frames - 1 // this frame counts as one
	case "waitScene":
		r.waitScene = st.Scene
		r.waitTimeout = st.Timeout
		r.waiting = d.store.State().Scene.Type != st.Scene
	case "snapshot":
		d.Snapshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.waiting && len(d.injectQueue) == 0 {
		r.done = true
	}
}
