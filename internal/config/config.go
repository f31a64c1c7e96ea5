// Package config loads perchtrace scenarios from TOML files and tunable
// overrides from PERCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/phanxgames/perch"
)

// Env holds the PERCH_* environment overrides. Zero values keep the
// library defaults.
type Env struct {
	Debug          bool          `envconfig:"DEBUG"`
	DragThreshold  float64       `envconfig:"DRAG_THRESHOLD"`
	MoveTick       time.Duration `envconfig:"MOVE_TICK"`
	HideDelay      time.Duration `envconfig:"HIDE_DELAY"`
	FadeDuration   time.Duration `envconfig:"FADE_DURATION"`
	ReflowDebounce time.Duration `envconfig:"REFLOW_DEBOUNCE"`
	TouchJitter    float64       `envconfig:"TOUCH_JITTER"`
	PinchMinSpread float64       `envconfig:"PINCH_MIN_SPREAD"`
	// Frame is the simulated frame length of a replay.
	Frame time.Duration `envconfig:"FRAME" default:"16ms"`
	// MaxFrames stops a replay that never finishes.
	MaxFrames int `envconfig:"MAX_FRAMES" default:"10000"`
}

// LoadEnv reads PERCH_* variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("perch", &env); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return &env, nil
}

// Apply overrides the non-zero fields of env onto t.
func (env *Env) Apply(t *perch.Tunables) {
	if env.DragThreshold > 0 {
		t.DragThreshold = env.DragThreshold
	}
	if env.MoveTick > 0 {
		t.MoveTick = env.MoveTick
	}
	if env.HideDelay > 0 {
		t.HideDelay = env.HideDelay
	}
	if env.FadeDuration > 0 {
		t.FadeDuration = env.FadeDuration
	}
	if env.ReflowDebounce > 0 {
		t.ReflowDebounce = env.ReflowDebounce
	}
	if env.TouchJitter > 0 {
		t.TouchJitter = env.TouchJitter
	}
	if env.PinchMinSpread > 0 {
		t.PinchMinSpread = env.PinchMinSpread
	}
}

// Scenario is a perchtrace file: the charts to build and the input trace
// to replay against them.
type Scenario struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Charts      []ChartSpec       `toml:"charts"`
	Steps       []perch.TraceStep `toml:"steps"`
}

// ChartSpec describes one chart of a scenario.
type ChartSpec struct {
	// X and Y place the container on the page.
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Plot is the plot box as [x, y, width, height]; empty means the whole
	// chart.
	Plot     []float64 `toml:"plot"`
	Zoom     string    `toml:"zoom"`
	Pinch    string    `toml:"pinch"`
	PanKey   string    `toml:"pan_key"`
	Panning  bool      `toml:"panning"`
	Inverted bool      `toml:"inverted"`

	Tooltip TooltipSpec  `toml:"tooltip"`
	XAxis   AxisSpec     `toml:"x_axis"`
	YAxis   AxisSpec     `toml:"y_axis"`
	Series  []SeriesSpec `toml:"series"`
}

// TooltipSpec configures a chart's tooltip.
type TooltipSpec struct {
	Disabled      bool   `toml:"disabled"`
	Shared        bool   `toml:"shared"`
	Split         bool   `toml:"split"`
	FollowPointer bool   `toml:"follow_pointer"`
	HideDelay     string `toml:"hide_delay"`
}

// AxisSpec configures one axis. An all-zero range means 0..100.
type AxisSpec struct {
	Min       float64 `toml:"min"`
	Max       float64 `toml:"max"`
	Reversed  bool    `toml:"reversed"`
	Crosshair bool    `toml:"crosshair"`
	Snap      bool    `toml:"snap"`
}

// SeriesSpec is a series and its points as [x, y] pairs.
type SeriesSpec struct {
	Name        string      `toml:"name"`
	Points      [][]float64 `toml:"points"`
	DirectTouch bool        `toml:"direct_touch"`
	// Nearest is "x" (default) or "xy".
	Nearest string `toml:"nearest"`
}

// LoadScenario decodes and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load scenario %s: unknown key %q", path, undecoded[0].String())
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// DecodeScenario decodes and validates a scenario from TOML text.
func DecodeScenario(data string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.Decode(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &sc, nil
}

// ErrNoCharts is returned for scenarios without charts.
var ErrNoCharts = errors.New("scenario has no charts")

// Validate checks the scenario's charts; steps are validated when the
// trace runner is built.
func (sc *Scenario) Validate() error {
	if len(sc.Charts) == 0 {
		return ErrNoCharts
	}
	for i, c := range sc.Charts {
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("chart %d: size %vx%v must be positive", i, c.Width, c.Height)
		}
		if len(c.Plot) != 0 && len(c.Plot) != 4 {
			return fmt.Errorf("chart %d: plot needs 4 values, got %d", i, len(c.Plot))
		}
		if _, err := ParseZoom(c.Zoom); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
		if _, err := ParseZoom(c.Pinch); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
		if c.Tooltip.HideDelay != "" {
			if _, err := time.ParseDuration(c.Tooltip.HideDelay); err != nil {
				return fmt.Errorf("chart %d: hide_delay: %w", i, err)
			}
		}
		for name, a := range map[string]AxisSpec{"x_axis": c.XAxis, "y_axis": c.YAxis} {
			if a.Max < a.Min || (a.Max == a.Min && a.Max != 0) {
				return fmt.Errorf("chart %d: %s max %v must exceed min %v", i, name, a.Max, a.Min)
			}
		}
		for j, s := range c.Series {
			for k, p := range s.Points {
				if len(p) != 2 {
					return fmt.Errorf("chart %d series %q point %d: want [x, y], got %v", i, s.Name, k, p)
				}
			}
			if _, err := ParseNearest(s.Nearest); err != nil {
				return fmt.Errorf("chart %d series %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// ParseZoom converts "", "x", "y" or "xy" into a ZoomType. Unlike
// perch.ParseZoomType it rejects unknown names.
func ParseZoom(s string) (perch.ZoomType, error) {
	switch strings.ToLower(s) {
	case "":
		return perch.ZoomNone, nil
	case "x":
		return perch.ZoomX, nil
	case "y":
		return perch.ZoomY, nil
	case "xy", "yx":
		return perch.ZoomXY, nil
	}
	return perch.ZoomNone, fmt.Errorf("unknown zoom type %q", s)
}

// ParseNearest converts "", "x" or "xy" into a NearestBy.
func ParseNearest(s string) (perch.NearestBy, error) {
	switch strings.ToLower(s) {
	case "", "x":
		return perch.NearestX, nil
	case "xy":
		return perch.NearestXY, nil
	}
	return perch.NearestX, fmt.Errorf("unknown nearest %q", s)
}
