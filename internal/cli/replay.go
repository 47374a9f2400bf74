package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phanxgames/reveal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Script  string
	Catalog string
	Tick    time.Duration
	Settle  time.Duration
	Limit   time.Duration
	Shots   string
}

// ReplayEvent is one lifecycle event observed during replay.
type ReplayEvent struct {
	Time    time.Duration `json:"time"`
	Type    string        `json:"type"`
	Element string        `json:"element"`
	Effect  string        `json:"effect"`
}

// ReplayResult holds the events and final states of a replay.
type ReplayResult struct {
	Events   []ReplayEvent     `json:"events"`
	States   map[string]string `json:"states"`
	Duration time.Duration     `json:"duration"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <page.yaml>",
		Short: "Replay a scroll script against a page",
		Long: `Build a document from a page description, start a reveal engine on it,
run the scroll script one step per tick and print every reveal, reset and
complete event with its virtual time.

Examples:
  reveal replay page.yaml --script scroll.yaml
  reveal replay page.yaml --catalog effects.yaml --format json
  reveal replay page.yaml --script scroll.yaml --shots out/`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &formatter{format: opts.Format, w: cmd.OutOrStdout()}
			return runReplay(f, opts, args[0], cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "scroll script (YAML or JSON)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "effect catalog (YAML)")
	cmd.Flags().DurationVar(&opts.Tick, "tick", 16*time.Millisecond, "virtual frame interval")
	cmd.Flags().DurationVar(&opts.Settle, "settle", time.Second, "time to keep running after the script finishes")
	cmd.Flags().DurationVar(&opts.Limit, "limit", time.Minute, "give up on scripts that run longer than this")
	cmd.Flags().StringVar(&opts.Shots, "shots", "", "write layout captures for script screenshot steps to this directory")

	return cmd
}

// eventLog is the EventSink of a replay.
type eventLog struct {
	labels map[uint32]string
	events []ReplayEvent
}

func (l *eventLog) EmitEvent(ev reveal.Event) {
	l.events = append(l.events, ReplayEvent{
		Time:    ev.Time,
		Type:    ev.Type.String(),
		Element: l.labels[ev.ElementID],
		Effect:  ev.Effect,
	})
}

func runReplay(f *formatter, opts *ReplayOptions, pagePath string, stderr io.Writer) error {
	if opts.Tick <= 0 {
		return f.fail(ExitCommandError, "invalid --tick", fmt.Errorf("%v is not positive", opts.Tick))
	}
	data, err := os.ReadFile(pagePath)
	if err != nil {
		return f.fail(ExitCommandError, "read page", err)
	}
	doc, labels, err := loadPage(data)
	if err != nil {
		return f.fail(ExitFailure, "invalid page", err)
	}

	log := &eventLog{labels: labels}
	engineOpts := []reveal.Option{reveal.WithEventSink(log), reveal.WithLogger(newLogger(opts.Verbose, stderr))}
	if opts.Catalog != "" {
		raw, err := os.ReadFile(opts.Catalog)
		if err != nil {
			return f.fail(ExitCommandError, "read catalog", err)
		}
		c, err := reveal.LoadCatalog(raw)
		if err != nil {
			return f.fail(ExitFailure, "invalid catalog", err)
		}
		engineOpts = append(engineOpts, reveal.WithCatalog(c))
	}

	var script *reveal.ScriptRunner
	if opts.Script != "" {
		raw, err := os.ReadFile(opts.Script)
		if err != nil {
			return f.fail(ExitCommandError, "read script", err)
		}
		if script, err = reveal.LoadScript(raw); err != nil {
			return f.fail(ExitFailure, "invalid script", err)
		}
	}

	e := reveal.Init(doc, reveal.DefaultConfig(), engineOpts...)
	defer e.Destroy()

	if script != nil {
		doc.SetScript(script)
		if opts.Shots != "" {
			doc.ScreenshotDir = opts.Shots
		}
		for !script.Done() {
			if doc.Now() >= opts.Limit {
				return f.fail(ExitFailure, "script did not finish", fmt.Errorf("still running after %v", opts.Limit))
			}
			doc.Update(opts.Tick)
			if opts.Shots == "" {
				continue
			}
			if err := doc.FlushScreenshots(); err != nil {
				return f.fail(ExitCommandError, "write screenshot", err)
			}
		}
	}
	doc.Advance(opts.Settle, opts.Tick)

	res := ReplayResult{
		Events:   log.events,
		States:   make(map[string]string),
		Duration: doc.Now(),
	}
	for _, reg := range e.Registrations() {
		res.States[labels[reg.Element().ID]] = reg.State().String()
	}
	return f.success(res, formatReplay(res))
}

func formatReplay(res ReplayResult) string {
	var b strings.Builder
	for _, ev := range res.Events {
		fmt.Fprintf(&b, "%10v  %-8s  %-16s  %s\n", ev.Time, ev.Type, ev.Element, ev.Effect)
	}
	fmt.Fprintf(&b, "%d events in %v\n", len(res.Events), res.Duration)
	return b.String()
}

// newLogger returns a console logger writing to w, or a no-op logger.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}
