package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/reveal"
)

// CheckResult summarizes a valid catalog.
type CheckResult struct {
	Presets   []string      `json:"presets"`
	Keyframes []string      `json:"keyframes"`
	Duration  time.Duration `json:"duration"`
	Offset    float64       `json:"offset"`
	Easing    string        `json:"easing"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <catalog.yaml>",
		Short: "Validate an effect catalog",
		Long: `Parse an effect catalog, validate its keyframe lists and defaults, and
check that every preset names a known easing and keyframe list.

Exit codes:
  0 - catalog is valid
  1 - catalog is invalid
  2 - catalog could not be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &formatter{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return runCheck(f, args[0])
		},
	}
}

func runCheck(f *formatter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return f.fail(ExitCommandError, "read catalog", err)
	}
	c, err := reveal.LoadCatalog(data)
	if err != nil {
		return f.fail(ExitFailure, "invalid catalog", err)
	}
	cfg, err := c.Config(reveal.DefaultConfig())
	if err != nil {
		return f.fail(ExitFailure, "invalid catalog", err)
	}
	if err := checkPresets(c); err != nil {
		return f.fail(ExitFailure, "invalid catalog", err)
	}

	res := CheckResult{
		Presets:   slices.Sorted(maps.Keys(c.Presets)),
		Keyframes: slices.Sorted(maps.Keys(c.Keyframes)),
		Duration:  cfg.Duration,
		Offset:    cfg.Offset,
		Easing:    cfg.Easing,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "catalog ok: %d presets, %d keyframe lists\n", len(res.Presets), len(res.Keyframes))
	fmt.Fprintf(&b, "defaults: duration %v, offset %gpx, easing %s\n", res.Duration, res.Offset, res.Easing)
	return f.success(res, b.String())
}

// checkPresets reports the first preset, in name order, that refers to an
// unknown easing or keyframe list.
func checkPresets(c *reveal.Catalog) error {
	builtin := reveal.BuiltinKeyframes()
	for _, name := range slices.Sorted(maps.Keys(c.Presets)) {
		p := c.Presets[name]
		if p.Easing != "" {
			if _, ok := reveal.EasingFunc(p.Easing); !ok {
				return fmt.Errorf("preset %q: unknown easing %q", name, p.Easing)
			}
		}
		if p.Keyframes == "" {
			continue
		}
		if _, ok := c.Keyframes[p.Keyframes]; ok {
			continue
		}
		if _, ok := builtin[p.Keyframes]; !ok {
			return fmt.Errorf("preset %q: unknown keyframes %q", name, p.Keyframes)
		}
	}
	return nil
}
