package reveal

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a scroll script.
type scriptStep struct {
	Action   string  `yaml:"action"`
	Label    string  `yaml:"label,omitempty"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
	Selector string  `yaml:"selector,omitempty"`
	Name     string  `yaml:"name,omitempty"`
	Value    string  `yaml:"value,omitempty"`
}

type scrollScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner replays a scroll script against a Document, one step per
// Update, for demos and automated visual checks. Attach it with
// Document.SetScript.
//
// Actions:
//
//	scroll      swipe to (x, y) over frames updates
//	scrollBy    swipe by (x, y) over frames updates
//	wait        idle for frames updates
//	resize      set the viewport to width x height
//	remove      detach the first element matching selector
//	attr        set attribute name=value on the first element matching selector
//	screenshot  queue a labeled screenshot (taken by Run or FlushScreenshots)
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML or JSON scroll script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script scrollScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a script runner; its step method runs at the start of
// every Update. nil detaches.
func (d *Document) SetScript(r *ScriptRunner) {
	d.script = r
}

// Done reports whether every step has run and all injected scrolling has
// been consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one update.
func (r *ScriptRunner) step(d *Document) {
	if r.done {
		return
	}
	// Wait for queued scrolling to drain before advancing.
	if len(d.injectQueue) > 0 {
		return
	}
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

	switch st.Action {
	case "scroll":
		d.InjectSwipe(st.X, st.Y, st.Frames)
	case "scrollBy":
		x, y := d.queuedScroll()
		d.InjectSwipe(x+st.X, y+st.Y, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	case "resize":
		d.viewport.SetSize(st.Width, st.Height)
	case "remove":
		if el := d.QuerySelector(st.Selector); el != nil && el != d.root {
			el.RemoveFromParent()
		}
	case "attr":
		if el := d.QuerySelector(st.Selector); el != nil {
			el.SetAttr(st.Name, st.Value)
		}
	case "screenshot":
		d.Screenshot(st.Label)
	default:
		Logger().Warn("unknown script action", zap.String("action", st.Action), zap.Int("step", r.cursor-1))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
