package perch

import (
	"io"
	"os"
	"time"
)

// Runtime is the registry shared by every chart of one host: the chart
// list, the chart that owns pointer focus, the document event target and
// the scheduler. Not safe for concurrent use.
type Runtime struct {
	charts      []*Chart
	nextChartID ChartID
	hoverChart  ChartID

	document   *Target
	docHandles []CallbackHandle

	sched *Scheduler

	debug  bool
	logOut io.Writer

	injectQueue []syntheticEvent
	traceRunner *TraceRunner
}

// NewRuntime creates a runtime with an empty document target.
func NewRuntime() *Runtime {
	return &Runtime{
		document: NewTarget(),
		sched:    NewScheduler(),
		logOut:   os.Stderr,
	}
}

// Document returns the document-level event target. Hosts dispatch every
// raw event there after the chart container, and mouseup or touchend
// events only there when they happen outside any chart.
func (rt *Runtime) Document() *Target { return rt.document }

// Scheduler returns the runtime's virtual-clock scheduler.
func (rt *Runtime) Scheduler() *Scheduler { return rt.sched }

// Charts returns the registered charts. The returned slice MUST NOT be
// mutated.
func (rt *Runtime) Charts() []*Chart { return rt.charts }

// HoverChart returns the chart that owns pointer focus, or nil.
func (rt *Runtime) HoverChart() *Chart {
	if rt.hoverChart == 0 {
		return nil
	}
	for _, c := range rt.charts {
		if c.id == rt.hoverChart {
			return c
		}
	}
	return nil
}

func (rt *Runtime) setHoverChart(id ChartID) {
	if rt.hoverChart != id {
		rt.debugf("hover chart %d -> %d", rt.hoverChart, id)
	}
	rt.hoverChart = id
}

// register adds c. The first chart binds the document mouseup and touchend
// listeners.
func (rt *Runtime) register(c *Chart) {
	rt.nextChartID++
	c.id = rt.nextChartID
	rt.charts = append(rt.charts, c)
	if len(rt.charts) == 1 {
		rt.docHandles = []CallbackHandle{
			rt.document.Listen(KindMouseUp, rt.onDocumentMouseUp),
			rt.document.Listen(KindTouchEnd, rt.onDocumentTouchEnd),
		}
	}
	rt.debugf("chart %d registered (%d charts)", c.id, len(rt.charts))
}

// unregister removes c. The last chart unbinds the document listeners.
func (rt *Runtime) unregister(c *Chart) {
	for i, o := range rt.charts {
		if o == c {
			copy(rt.charts[i:], rt.charts[i+1:])
			rt.charts[len(rt.charts)-1] = nil
			rt.charts = rt.charts[:len(rt.charts)-1]
			break
		}
	}
	if rt.hoverChart == c.id {
		rt.hoverChart = 0
	}
	if len(rt.charts) == 0 {
		for _, h := range rt.docHandles {
			h.Remove()
		}
		rt.docHandles = nil
	}
	rt.debugf("chart %d unregistered (%d charts)", c.id, len(rt.charts))
}

// DocumentListenerCount returns the number of listeners bound to the
// document for kind.
func (rt *Runtime) DocumentListenerCount(kind EventKind) int {
	return rt.document.ListenerCount(kind)
}

// Update advances the runtime by dt: the trace runner takes one step, one
// injected event is dispatched, scheduled tasks fall due and every chart's
// tweens advance. Hosts call it once per frame.
func (rt *Runtime) Update(dt time.Duration) {
	if rt.traceRunner != nil {
		rt.traceRunner.step(rt)
	}
	rt.processInjected()
	rt.sched.Advance(dt)
	rt.debugCheckBacklog()
	for _, c := range rt.charts {
		c.update(dt)
	}
}

// Dispatch delivers raw to the chart's container and then lets it bubble
// to the document.
func (c *Chart) Dispatch(raw *RawEvent) {
	if c.container != nil && !c.destroyed {
		c.container.Dispatch(raw)
	} else if !c.destroyed {
		c.dispatchDirect(raw)
	}
	c.rt.document.Dispatch(raw)
}

// dispatchDirect feeds container events to the pointer of a chart that has
// no container.
func (c *Chart) dispatchDirect(raw *RawEvent) {
	p := c.pointer
	switch raw.Kind {
	case KindMouseDown:
		p.onContainerMouseDown(raw)
	case KindMouseMove:
		p.onContainerMouseMove(raw)
	case KindClick:
		p.onContainerClick(raw)
	case KindMouseLeave:
		p.onContainerMouseLeave(raw)
	case KindTouchStart:
		p.onContainerTouchStart(raw)
	case KindTouchMove:
		p.onContainerTouchMove(raw)
	}
}
