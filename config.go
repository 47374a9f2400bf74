package reveal

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the global defaults an engine resolves element attributes
// against, plus engine tuning. Every field can come from the environment
// (REVEAL_*) or from the defaults section of a catalog file.
type Config struct {
	// Selector picks the tracked elements.
	Selector string `env:"REVEAL_SELECTOR" envDefault:"[data-aos]" yaml:"selector"`
	// ChildSelector picks stagger children inside a stagger container.
	ChildSelector string `env:"REVEAL_CHILD_SELECTOR" envDefault:"[data-aos-child]" yaml:"childSelector"`
	// ChildEffect is used for stagger children whose marker has no value.
	ChildEffect string `env:"REVEAL_CHILD_EFFECT" envDefault:"fade-up" yaml:"childEffect"`

	Offset    float64       `env:"REVEAL_OFFSET" envDefault:"120" yaml:"offset"`
	Delay     time.Duration `env:"REVEAL_DELAY" envDefault:"0s" yaml:"delay"`
	Duration  time.Duration `env:"REVEAL_DURATION" envDefault:"400ms" yaml:"duration"`
	Easing    string        `env:"REVEAL_EASING" envDefault:"ease" yaml:"easing"`
	Once      bool          `env:"REVEAL_ONCE" envDefault:"false" yaml:"once"`
	Mirror    bool          `env:"REVEAL_MIRROR" envDefault:"false" yaml:"mirror"`
	Placement string        `env:"REVEAL_ANCHOR_PLACEMENT" envDefault:"top-bottom" yaml:"anchorPlacement"`
	Stagger   time.Duration `env:"REVEAL_STAGGER" envDefault:"100ms" yaml:"stagger"`
	Stiffness float64       `env:"REVEAL_STIFFNESS" envDefault:"180" yaml:"stiffness"`
	Damping   float64       `env:"REVEAL_DAMPING" envDefault:"18" yaml:"damping"`

	// Disable turns Init into a no-op engine.
	Disable bool `env:"REVEAL_DISABLE" envDefault:"false" yaml:"disable"`
	// RespectReducedMotion applies terminal styles without animation when
	// the host reports a reduced-motion preference at Init.
	RespectReducedMotion bool `env:"REVEAL_RESPECT_REDUCED_MOTION" envDefault:"true" yaml:"respectReducedMotion"`
	// RefreshOnResize re-scans the document when the viewport is resized.
	RefreshOnResize bool `env:"REVEAL_REFRESH_ON_RESIZE" envDefault:"true" yaml:"refreshOnResize"`

	// BatchWindow coalesces newly discovered elements before they are
	// attached to the shared intersection observer.
	BatchWindow time.Duration `env:"REVEAL_BATCH_WINDOW" envDefault:"30ms" yaml:"batchWindow"`
	// MutationWindow debounces inserted-node bursts.
	MutationWindow time.Duration `env:"REVEAL_MUTATION_WINDOW" envDefault:"80ms" yaml:"mutationWindow"`
	// FrameBudget is the frame interval above which the scroll sampler
	// logs a slow-frame warning.
	FrameBudget time.Duration `env:"REVEAL_FRAME_BUDGET" envDefault:"50ms" yaml:"frameBudget"`
}

// DefaultConfig returns the built-in defaults, ignoring the environment.
func DefaultConfig() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic("reveal: default config: " + err.Error())
	}
	return cfg
}

// ConfigFromEnv loads the configuration from REVEAL_* environment variables,
// using the built-in defaults for unset ones.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Preset is a named ruleset selected by an element's effect name. Nil and
// empty fields inherit the global default.
type Preset struct {
	// From is the pre-reveal visual state.
	From Style `yaml:"from"`
	// To is the revealed visual state. Nil means Visible().
	To *Style `yaml:"to"`
	// Keyframes names a keyframe list run on reveal.
	Keyframes string `yaml:"keyframes"`
	// Spring selects the spring integrator.
	Spring bool `yaml:"spring"`
	// Stagger marks the effect as a stagger container.
	Stagger bool `yaml:"stagger"`
	// Class is added on reveal and removed on reset.
	Class string `yaml:"class"`

	Duration  *time.Duration `yaml:"duration"`
	Delay     *time.Duration `yaml:"delay"`
	Easing    string         `yaml:"easing"`
	Offset    *float64       `yaml:"offset"`
	Once      *bool          `yaml:"once"`
	Mirror    *bool          `yaml:"mirror"`
	Interval  *time.Duration `yaml:"interval"`
	Stiffness *float64       `yaml:"stiffness"`
	Damping   *float64       `yaml:"damping"`
}
