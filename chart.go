package perch

import "time"

// ChartID identifies a chart within its runtime. Zero means none.
type ChartID uint32

// ChartConfig holds the collaborators and geometry of a new chart.
type ChartConfig struct {
	// Container receives the chart's raw events. Without one, events must
	// be delivered through the chart's handlers by Inject calls.
	Container *Container
	// Offsets looks up the container's page offset. Defaults to Container.
	Offsets OffsetProvider
	Scene   SceneFacade
	// Renderer defaults to NopRenderer.
	Renderer Renderer
	// Zoomer defaults to AxisZoomer.
	Zoomer Zoomer
	Sink   EventSink
	// Options defaults to DefaultOptions().
	Options *Options

	// Width and Height default to the container's size.
	Width, Height float64
	// PlotBox defaults to the whole chart.
	PlotBox Rect
}

// Chart owns the pointer session, tooltip, series and axes of one chart.
type Chart struct {
	id        ChartID
	rt        *Runtime
	container *Container
	offsets   OffsetProvider
	scene     SceneFacade
	renderer  Renderer
	zoomer    Zoomer
	sink      EventSink
	opts      Options

	width, height float64
	plot          Rect

	series       []*Series
	seriesByID   map[SeriesID]*Series
	points       map[PointID]*Point
	nextSeriesID SeriesID
	nextPointID  PointID
	xAxes, yAxes []Axis

	pointer *Pointer
	tooltip *Tooltip
	obs     observers

	containerHandles []CallbackHandle
	reflowTask       *Task
	destroyed        bool
}

// axisRef is an axis plus the list it belongs to.
type axisRef struct {
	axis Axis
	isX  bool
}

// NewChart creates a chart registered with rt, or with a fresh runtime
// when rt is nil, and binds its container listeners.
func NewChart(rt *Runtime, cfg ChartConfig) *Chart {
	if rt == nil {
		rt = NewRuntime()
	}
	c := &Chart{
		rt:         rt,
		container:  cfg.Container,
		offsets:    cfg.Offsets,
		scene:      cfg.Scene,
		renderer:   cfg.Renderer,
		zoomer:     cfg.Zoomer,
		sink:       cfg.Sink,
		width:      cfg.Width,
		height:     cfg.Height,
		plot:       cfg.PlotBox,
		seriesByID: make(map[SeriesID]*Series),
		points:     make(map[PointID]*Point),
	}
	if cfg.Options != nil {
		c.opts = *cfg.Options
	} else {
		c.opts = DefaultOptions()
	}
	if c.renderer == nil {
		c.renderer = NopRenderer{}
	}
	if c.zoomer == nil {
		c.zoomer = AxisZoomer{}
	}
	if c.container != nil {
		if c.offsets == nil {
			c.offsets = c.container
		}
		if c.width == 0 && c.height == 0 {
			c.width, c.height = c.container.Bounds.Width, c.container.Bounds.Height
		}
	}
	if c.plot == (Rect{}) {
		c.plot = Rect{Width: c.width, Height: c.height}
	}

	c.pointer = newPointer(c)
	c.tooltip = newTooltip(c)
	rt.register(c)
	c.bind()
	return c
}

func (c *Chart) bind() {
	if c.container == nil {
		return
	}
	p := c.pointer
	t := &c.container.Target
	c.containerHandles = []CallbackHandle{
		t.Listen(KindMouseDown, p.onContainerMouseDown),
		t.Listen(KindMouseMove, p.onContainerMouseMove),
		t.Listen(KindClick, p.onContainerClick),
		t.Listen(KindMouseLeave, p.onContainerMouseLeave),
		t.Listen(KindTouchStart, p.onContainerTouchStart),
		t.Listen(KindTouchMove, p.onContainerTouchMove),
	}
}

// ID returns the chart's runtime id.
func (c *Chart) ID() ChartID { return c.id }

// Runtime returns the runtime the chart is registered with.
func (c *Chart) Runtime() *Runtime { return c.rt }

// Pointer returns the chart's pointer session.
func (c *Chart) Pointer() *Pointer { return c.pointer }

// Tooltip returns the chart's tooltip.
func (c *Chart) Tooltip() *Tooltip { return c.tooltip }

// Options returns a copy of the chart options.
func (c *Chart) Options() Options { return c.opts }

// Size returns the chart's width and height.
func (c *Chart) Size() (float64, float64) { return c.width, c.height }

// Container returns the chart's container, nil for injected-only charts.
func (c *Chart) Container() *Container { return c.container }

// PlotBox returns the plot area in chart coordinates.
func (c *Chart) PlotBox() Rect { return c.plot }

// Destroyed reports whether Destroy was called.
func (c *Chart) Destroyed() bool { return c.destroyed }

// --- Series and axes ---

// AddSeries appends a visible, tracked, sticky cartesian series.
func (c *Chart) AddSeries(name string) *Series {
	c.nextSeriesID++
	s := &Series{
		ID:                  c.nextSeriesID,
		Index:               len(c.series),
		Name:                name,
		Visible:             true,
		EnableMouseTracking: true,
		StickyTracking:      true,
		Cartesian:           true,
		chart:               c,
		kdDirty:             true,
	}
	c.series = append(c.series, s)
	c.seriesByID[s.ID] = s
	return s
}

// RemoveSeries destroys s and its points.
func (c *Chart) RemoveSeries(s *Series) {
	if s.Destroyed() || c.seriesByID[s.ID] != s {
		return
	}
	for _, p := range s.points {
		p.destroyed = true
		delete(c.points, p.ID)
	}
	s.points, s.kd = nil, nil
	s.destroyed = true
	delete(c.seriesByID, s.ID)
	for i, o := range c.series {
		if o == s {
			c.series = append(c.series[:i], c.series[i+1:]...)
			break
		}
	}
	for i, o := range c.series {
		o.Index = i
	}
}

// SeriesList returns the chart's series in index order. The returned slice
// MUST NOT be mutated.
func (c *Chart) SeriesList() []*Series {
	return c.series
}

// AddXAxis appends an x axis and returns its index.
func (c *Chart) AddXAxis(a Axis) int {
	c.xAxes = append(c.xAxes, a)
	return len(c.xAxes) - 1
}

// AddYAxis appends a y axis and returns its index.
func (c *Chart) AddYAxis(a Axis) int {
	c.yAxes = append(c.yAxes, a)
	return len(c.yAxes) - 1
}

// XAxis returns the i-th x axis or nil.
func (c *Chart) XAxis(i int) Axis {
	if i < 0 || i >= len(c.xAxes) {
		return nil
	}
	return c.xAxes[i]
}

// YAxis returns the i-th y axis or nil.
func (c *Chart) YAxis(i int) Axis {
	if i < 0 || i >= len(c.yAxes) {
		return nil
	}
	return c.yAxes[i]
}

func (c *Chart) axisRefs() []axisRef {
	out := make([]axisRef, 0, len(c.xAxes)+len(c.yAxes))
	for _, a := range c.xAxes {
		out = append(out, axisRef{axis: a, isX: true})
	}
	for _, a := range c.yAxes {
		out = append(out, axisRef{axis: a})
	}
	return out
}

func (c *Chart) seriesAxis(s *Series, isX bool) Axis {
	if s == nil {
		return nil
	}
	if isX {
		return c.XAxis(s.XAxis)
	}
	return c.YAxis(s.YAxis)
}

func (c *Chart) hasCartesianSeries() bool {
	for _, s := range c.series {
		if s.Cartesian {
			return true
		}
	}
	return false
}

// --- Arena ---

// Point returns the live point with id, or nil.
func (c *Chart) Point(id PointID) *Point {
	if id == 0 {
		return nil
	}
	p := c.points[id]
	if p.Destroyed() {
		return nil
	}
	return p
}

// Series returns the live series with id, or nil.
func (c *Chart) Series(id SeriesID) *Series {
	if id == 0 {
		return nil
	}
	s := c.seriesByID[id]
	if s.Destroyed() {
		return nil
	}
	return s
}

func (c *Chart) resolvePoints(ids []PointID) []*Point {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Point, 0, len(ids))
	for _, id := range ids {
		if p := c.Point(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (c *Chart) registerPoint(p *Point) {
	c.nextPointID++
	p.ID = c.nextPointID
	c.points[p.ID] = p
}

func (c *Chart) unregisterPoint(p *Point) {
	delete(c.points, p.ID)
}

func (c *Chart) setPointState(p *Point, state State) {
	if p.Destroyed() {
		return
	}
	if s := c.seriesByID[p.series]; s != nil {
		s.setPointState(p, state)
	}
}

// selectPoint toggles p's selection. Without accumulate, every other
// selected point is deselected.
func (c *Chart) selectPoint(p *Point, accumulate bool) {
	selected := !p.Selected
	if !accumulate {
		for _, q := range c.points {
			if q != p && q.Selected {
				q.Selected = false
				c.setPointState(q, StateNormal)
			}
		}
	}
	p.Selected = selected
	if selected {
		c.setPointState(p, StateSelect)
	} else if p.ID == c.pointer.hoverPoint {
		c.setPointState(p, StateHover)
	} else {
		c.setPointState(p, StateNormal)
	}
}

// SelectedPoints returns the selected points in series order.
func (c *Chart) SelectedPoints() []*Point {
	var out []*Point
	for _, s := range c.series {
		for _, p := range s.points {
			if p.Selected {
				out = append(out, p)
			}
		}
	}
	return out
}

// IsInsidePlot reports whether (x, y), relative to the plot box, lies
// within it.
func (c *Chart) IsInsidePlot(x, y float64) bool {
	return x >= 0 && x <= c.plot.Width && y >= 0 && y <= c.plot.Height
}

// --- Lifecycle ---

// Reflow resizes the chart to w by h. Rapid calls coalesce into one resize
// after the reflow debounce; the plot keeps its margins.
func (c *Chart) Reflow(w, h float64) {
	if c.destroyed {
		return
	}
	c.reflowTask.Cancel()
	c.reflowTask = c.rt.sched.After(c.opts.Tunables.ReflowDebounce, func() {
		c.reflowTask = nil
		c.resize(w, h)
	})
}

func (c *Chart) resize(w, h float64) {
	c.plot.Width = max(c.plot.Width+w-c.width, 0)
	c.plot.Height = max(c.plot.Height+h-c.height, 0)
	c.width, c.height = w, h
	for _, ax := range c.axisRefs() {
		if a, ok := ax.axis.(interface{ SetPlot(Rect) }); ok {
			a.SetPlot(c.plot)
		}
	}
	for _, s := range c.series {
		s.Invalidate()
	}
	c.pointer.InvalidateOffset()
	c.rt.debugf("chart %d: reflow to %.0fx%.0f", c.id, w, h)
	c.pointer.Reset(true, 0)
}

// Destroy unbinds every listener, cancels pending timers and detaches the
// chart from its runtime. Calling it again is a no-op.
func (c *Chart) Destroy() {
	if c.destroyed {
		return
	}
	for _, h := range c.containerHandles {
		h.Remove()
	}
	c.containerHandles = nil
	c.reflowTask.Cancel()
	c.reflowTask = nil
	c.tooltip.Destroy()
	c.pointer.destroy()
	c.destroyed = true
	for _, ax := range c.axisRefs() {
		if a, ok := ax.axis.(interface{ Destroy() }); ok {
			a.Destroy()
		}
	}
	for _, s := range c.series {
		s.destroyed = true
		for _, p := range s.points {
			p.destroyed = true
		}
	}
	c.rt.unregister(c)
	c.series, c.xAxes, c.yAxes = nil, nil, nil
	c.seriesByID = map[SeriesID]*Series{}
	c.points = map[PointID]*Point{}
	c.sink = nil
	c.obs = observers{}
}

// update advances the chart's tweens by dt.
func (c *Chart) update(dt time.Duration) {
	sec := float32(dt.Seconds())
	c.tooltip.Update(sec)
	for _, ax := range c.axisRefs() {
		if a, ok := ax.axis.(interface{ Update(float32) }); ok {
			a.Update(sec)
		}
	}
}
