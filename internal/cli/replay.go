package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/perch"
	"github.com/phanxgames/perch/internal/config"
	"github.com/phanxgames/perch/internal/ui"
)

// replayResult is the outcome of one replay.
type replayResult struct {
	Frames    int
	Elapsed   time.Duration
	Snapshots []perch.TraceSnapshot
	Stats     perch.DebugStats
}

func replayCmd() *cobra.Command {
	var (
		tracePath string
		frame     time.Duration
		maxFrames int
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario.toml>",
		Short: "Replay a scripted input trace against the scenario's charts",
		Long: `Replay builds the charts described by a TOML scenario, feeds its
[[steps]] to them one frame at a time on a virtual clock and prints the
hover and tooltip state recorded by every "snapshot" step.

Environment:
  PERCH_DEBUG=true            log hover, gesture and tooltip transitions
  PERCH_DRAG_THRESHOLD=10     and the other PERCH_* tunables override defaults
  PERCH_FRAME=16ms            simulated frame length
  PERCH_MAX_FRAMES=10000      stop replays that never finish

Examples:
  perchtrace replay hover.toml
  perchtrace replay hover.toml --trace drag.json --debug`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("frame") {
				env.Frame = frame
			}
			if cmd.Flags().Changed("max-frames") {
				env.MaxFrames = maxFrames
			}
			if debug {
				env.Debug = true
			}

			sc, err := config.LoadScenario(args[0])
			if err != nil {
				return err
			}
			runner, err := loadRunner(sc, tracePath)
			if err != nil {
				return err
			}
			return printReplay(cmd, sc, env, runner)
		},
	}

	cmd.Flags().StringVar(&tracePath, "trace", "", "JSON trace replacing the scenario's steps")
	cmd.Flags().DurationVar(&frame, "frame", 16*time.Millisecond, "Simulated frame length")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "Frame limit")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log interaction transitions to stderr")
	return cmd
}

// loadRunner returns a runner for the JSON trace at tracePath, or for the
// scenario's own steps when tracePath is empty.
func loadRunner(sc *config.Scenario, tracePath string) (*perch.TraceRunner, error) {
	if tracePath == "" {
		return perch.NewTraceRunner(perch.Trace{Steps: sc.Steps})
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return perch.LoadTrace(data)
}

// replay runs runner against the scenario's charts until it finishes or
// the frame limit is reached.
func replay(sc *config.Scenario, env *config.Env, runner *perch.TraceRunner, logOut io.Writer) (*replayResult, error) {
	rt, _ := sc.Build(env, logOut)
	rt.SetTraceRunner(runner)

	res := &replayResult{}
	for !runner.Done() {
		if res.Frames >= env.MaxFrames {
			return nil, fmt.Errorf("replay: not finished after %d frames", env.MaxFrames)
		}
		rt.Update(env.Frame)
		res.Frames++
		res.Elapsed += env.Frame
	}
	if err := runner.Err(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	res.Snapshots = runner.Snapshots()
	res.Stats = rt.DebugStats()
	return res, nil
}

func printReplay(cmd *cobra.Command, sc *config.Scenario, env *config.Env, runner *perch.TraceRunner) error {
	res, err := replay(sc, env, runner, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	title := "replay"
	if sc.Name != "" {
		title = "replay " + sc.Name
	}
	ui.Banner(out, title)
	if sc.Description != "" {
		fmt.Fprintf(out, "  %s\n\n", ui.Subtle.Sprint(sc.Description))
	}

	rows := make([][]string, 0, len(res.Snapshots))
	for _, s := range res.Snapshots {
		rows = append(rows, snapshotRow(s))
	}
	ui.Table(out, []string{"SNAPSHOT", "POINT", "SERIES", "POINTS", "TOOLTIP", "SELECTION"}, rows)
	if len(rows) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %s %d frames, %v virtual time, %d pending tasks\n",
		ui.StatusIcon(true), res.Frames, res.Elapsed, res.Stats.PendingTasks)
	return nil
}

func snapshotRow(s perch.TraceSnapshot) []string {
	point, series := "-", "-"
	if s.HoverPoint != 0 {
		point = strconv.Itoa(int(s.HoverPoint))
	}
	if s.HoverSeries != 0 {
		series = strconv.Itoa(int(s.HoverSeries))
	}
	tooltip := ui.Subtle.Sprint("hidden")
	if s.TooltipVisible {
		texts := make([]string, 0, len(s.Labels))
		for _, l := range s.Labels {
			texts = append(texts, fmt.Sprintf("%q@%s,%s", strings.ReplaceAll(l.Text, "\n", " | "), ui.Num(l.X), ui.Num(l.Y)))
		}
		tooltip = strings.Join(texts, " ")
	}
	selection := "-"
	if s.HasSelection {
		r := s.Selection
		selection = fmt.Sprintf("%s,%s %sx%s", ui.Num(r.X), ui.Num(r.Y), ui.Num(r.Width), ui.Num(r.Height))
	}
	return []string{s.Label, point, series, strconv.Itoa(len(s.HoverPoints)), tooltip, selection}
}
