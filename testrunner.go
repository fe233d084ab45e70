package plumber

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`

	key ebiten.Key // parsed from Key at load time
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// stepHost is what a TestRunner drives besides its key injector.
type stepHost interface {
	Screenshot(label string)
	RequestQuit()
}

// TestRunner sequences injected key presses and screenshots across frames
// for automated testing. Feed Keys() to the keyboard under test and pass
// the runner to Run through RunConfig.TestRunner.
type TestRunner struct {
	steps       []testStep
	cursor      int
	waitCount   int
	pendingLift []ebiten.Key // keys tapped last frame, released this frame
	keys        *KeyInjector
	done        bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner.
//
//	{"steps": [
//	  {"action": "tap", "key": "Digit2"},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "animated"},
//	  {"action": "press", "key": "D"},
//	  {"action": "release", "key": "D"},
//	  {"action": "quit"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			st.key = k
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps, keys: NewKeyInjector()}, nil
}

// Keys returns the injector the script presses keys on.
func (r *TestRunner) Keys() *KeyInjector {
	return r.keys
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called before the scene update.
func (r *TestRunner) step(h stepHost) {
	// Taps last exactly one frame.
	for _, k := range r.pendingLift {
		r.keys.Release(k)
	}
	r.pendingLift = r.pendingLift[:0]

	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	logger.Debug("test script step", zap.String("action", st.Action), zap.String("key", st.Key), zap.Int("step", r.cursor))

	switch st.Action {
	case "press":
		r.keys.Press(st.key)
	case "release":
		r.keys.Release(st.key)
	case "tap":
		r.keys.Press(st.key)
		r.pendingLift = append(r.pendingLift, st.key)
	case "screenshot":
		h.Screenshot(st.Label)
	case "quit":
		h.RequestQuit()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pendingLift) == 0 {
		r.done = true
	}
}
