package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/perch"
	"github.com/phanxgames/perch/internal/ui"
)

func placeCmd() *cobra.Command {
	var (
		chartSize string
		boxSize   string
		at        string
		plot      string
		distance  float64
		inverted  bool
		negative  bool
		near      bool
	)

	cmd := &cobra.Command{
		Use:   "place --box WxH --at X,Y",
		Short: "Place a tooltip box next to an anchor point",
		Long: `Place runs the tooltip placement engine for one box. The anchor is in
plot coordinates. The box goes below or above the anchor and is centered
horizontally, swapping dimensions once when it does not fit.

Examples:
  perchtrace place --box 50x30 --at 200,150
  perchtrace place --chart 640x480 --plot 40,20,560,420 --box 120x60 --at 10,10 --inverted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cw, ch, err := parsePair(chartSize, "x")
			if err != nil {
				return fmt.Errorf("--chart: %w", err)
			}
			bw, bh, err := parsePair(boxSize, "x")
			if err != nil {
				return fmt.Errorf("--box: %w", err)
			}
			px, py, err := parsePair(at, ",")
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			box := perch.Rect{Width: cw, Height: ch}
			if plot != "" {
				if box, err = parseRect(plot); err != nil {
					return fmt.Errorf("--plot: %w", err)
				}
			}

			opts := perch.DefaultOptions()
			opts.Inverted = inverted
			opts.Tooltip.Distance = distance
			c := perch.NewChart(nil, perch.ChartConfig{Width: cw, Height: ch, PlotBox: box, Options: &opts})
			defer c.Destroy()

			pt := perch.AnchorPoint{PlotX: px, PlotY: py, Negative: negative}
			if near {
				pt.Side = perch.SideNear
			}
			pos := c.Tooltip().Position(bw, bh, pt)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Num(pos.X), ui.Num(pos.Y))
			return nil
		},
	}

	cmd.Flags().StringVar(&chartSize, "chart", "400x300", "Chart size")
	cmd.Flags().StringVar(&boxSize, "box", "", "Tooltip box size")
	cmd.Flags().StringVar(&at, "at", "", "Anchor in plot coordinates")
	cmd.Flags().StringVar(&plot, "plot", "", "Plot box as x,y,w,h (default: the whole chart)")
	cmd.Flags().Float64Var(&distance, "distance", 16, "Gap between anchor and box")
	cmd.Flags().BoolVar(&inverted, "inverted", false, "Place for an inverted chart")
	cmd.Flags().BoolVar(&negative, "negative", false, "Anchor is a negative point")
	cmd.Flags().BoolVar(&near, "near", false, "Prefer the near side")
	_ = cmd.MarkFlagRequired("box")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func distributeCmd() *cobra.Command {
	var (
		length      float64
		maxDistance float64
	)

	cmd := &cobra.Command{
		Use:   "distribute TARGET:SIZE[:RANK]...",
		Short: "Lay out labels along a line without overlaps",
		Long: `Distribute positions boxes along a line of the given length so none
overlap. Each box centers on its target when it can; boxes that do not fit
are dropped lowest rank first.

Examples:
  perchtrace distribute --length 100 20:10 25:10 30:10
  perchtrace distribute --length 50 --max-distance 5 10:20:1 12:20 40:20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boxes := make([]*perch.Box, 0, len(args))
			for i, arg := range args {
				b, err := parseBox(arg)
				if err != nil {
					return fmt.Errorf("box %d: %w", i, err)
				}
				b.ID = i
				boxes = append(boxes, b)
			}

			rows := make([][]string, 0, len(boxes))
			for _, b := range perch.Distribute(boxes, length, maxDistance) {
				pos := "-"
				if b.Placed {
					pos = ui.Num(b.Pos)
				}
				rows = append(rows, []string{
					strconv.Itoa(b.ID), ui.Num(b.Target), ui.Num(b.Size), strconv.Itoa(b.Rank), pos, ui.StatusIcon(b.Placed),
				})
			}
			ui.Table(cmd.OutOrStdout(), []string{"BOX", "TARGET", "SIZE", "RANK", "POS", "PLACED"}, rows)
			return nil
		},
	}

	cmd.Flags().Float64Var(&length, "length", 0, "Available length")
	cmd.Flags().Float64Var(&maxDistance, "max-distance", 0, "Maximum distance from target (0: unlimited)")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}

func legendCmd() *cobra.Command {
	var (
		items      int
		itemHeight float64
		space      float64
		padding    float64
	)

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Paginate a legend of evenly sized items",
		Long: `Legend splits an overflowing legend into pages and prints the scroll
top of every page and the page of every item.

Example:
  perchtrace legend --items 10 --item-height 20 --space 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if items <= 0 || itemHeight <= 0 {
				return fmt.Errorf("--items and --item-height must be positive")
			}
			list := make([]*perch.LegendItem, items)
			for i := range list {
				list[i] = &perch.LegendItem{Y: float64(i) * itemHeight, Height: itemHeight}
			}
			pager := &perch.LegendPager{Padding: padding}
			height := pager.Layout(list, float64(items)*itemHeight, space)

			out := cmd.OutOrStdout()
			if pager.PageCount() == 0 {
				fmt.Fprintf(out, "  %s fits in %s\n", ui.StatusIcon(true), ui.Num(height))
				return nil
			}
			fmt.Fprintf(out, "  %d pages, clip height %s\n\n", pager.PageCount(), ui.Num(pager.ClipHeight()))
			rows := make([][]string, 0, pager.PageCount())
			for p, top := range pager.Pages() {
				var members []string
				for i, it := range list {
					if it.Page == p {
						members = append(members, strconv.Itoa(i))
					}
				}
				rows = append(rows, []string{strconv.Itoa(p + 1), ui.Num(top), strings.Join(members, " ")})
			}
			ui.Table(out, []string{"PAGE", "TOP", "ITEMS"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&items, "items", 0, "Number of legend items")
	cmd.Flags().Float64Var(&itemHeight, "item-height", 20, "Height of every item")
	cmd.Flags().Float64Var(&space, "space", 0, "Available height")
	cmd.Flags().Float64Var(&padding, "padding", 8, "Legend padding")
	return cmd
}

// parsePair parses "AsepB" into two numbers.
func parsePair(s, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("want A%sB, got %q", sep, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseRect(s string) (perch.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return perch.Rect{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return perch.Rect{}, err
		}
		v[i] = f
	}
	return perch.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func parseBox(s string) (*perch.Box, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("want TARGET:SIZE[:RANK], got %q", s)
	}
	target, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, err
	}
	size, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	b := &perch.Box{Target: target, Size: size}
	if len(parts) == 3 {
		if b.Rank, err = strconv.Atoi(parts[2]); err != nil {
			return nil, err
		}
	}
	return b, nil
}
