package perch

import (
	"fmt"
	"io"
	"os"
)

// DebugStats is a snapshot of runtime bookkeeping.
type DebugStats struct {
	Charts            int
	HoverChart        ChartID
	PendingTasks      int
	DocumentListeners int
	QueuedEvents      int
}

// SetDebugMode enables debug logging of hover, gesture and tooltip
// transitions.
func (rt *Runtime) SetDebugMode(enabled bool) {
	rt.debug = enabled
}

// SetLogOutput redirects debug output. A nil writer restores stderr.
func (rt *Runtime) SetLogOutput(w io.Writer) {
	rt.logOut = w
}

// debugf prints a "[perch]" prefixed line when debug mode is on.
func (rt *Runtime) debugf(format string, args ...any) {
	if rt == nil || !rt.debug {
		return
	}
	w := rt.logOut
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "[perch] "+format+"\n", args...)
}

// DebugStats returns the current bookkeeping counts.
func (rt *Runtime) DebugStats() DebugStats {
	n := 0
	for k := EventKind(0); k < kindCount; k++ {
		n += rt.document.ListenerCount(k)
	}
	return DebugStats{
		Charts:            len(rt.charts),
		HoverChart:        rt.hoverChart,
		PendingTasks:      rt.sched.Pending(),
		DocumentListeners: n,
		QueuedEvents:      len(rt.injectQueue),
	}
}

// debugCheckDestroyed panics with a descriptive message when a destroyed
// chart is driven in debug mode. In release mode the call is a no-op.
func debugCheckDestroyed(c *Chart, op string) {
	if c.destroyed && c.rt.debug {
		panic(fmt.Sprintf("perch debug: %s on destroyed chart %d", op, c.id))
	}
}

// debugMaxPendingTasks is the scheduler backlog above which debug mode
// warns.
const debugMaxPendingTasks = 64

func (rt *Runtime) debugCheckBacklog() {
	if n := rt.sched.Pending(); rt.debug && n > debugMaxPendingTasks {
		rt.debugf("warning: %d pending tasks (threshold %d)", n, debugMaxPendingTasks)
	}
}
