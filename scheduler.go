package perch

import "time"

// Task is a deferred callback registered with a Scheduler.
type Task struct {
	id        uint64
	due       time.Duration
	fn        func()
	sched     *Scheduler
	cancelled bool
	done      bool
}

// Cancel prevents the task from running. Safe to call on a nil, finished or
// already cancelled task.
func (t *Task) Cancel() {
	if t == nil || t.done || t.cancelled {
		return
	}
	t.cancelled = true
	if t.sched != nil {
		t.sched.remove(t)
	}
}

// Pending reports whether the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.done && !t.cancelled
}

// Scheduler runs deferred callbacks against a virtual clock. Time only moves
// when Advance is called, so hosts drive it once per frame and tests step it
// deterministically. Not safe for concurrent use; the interaction layer is
// single-threaded.
type Scheduler struct {
	now    time.Duration
	tasks  []*Task
	nextID uint64
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed. A non-positive d runs fn on
// the next Advance call.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &Task{id: s.nextID, due: s.now + d, fn: fn, sched: s}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by dt, running every task that falls due
// in order of due time, then creation order. Tasks scheduled by running
// tasks run in the same call if they fall due before the new time.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.remove(next)
		if next.due > s.now {
			s.now = next.due
		}
		next.done = true
		next.fn()
	}
	s.now = target
}

func (s *Scheduler) nextDue(limit time.Duration) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) remove(t *Task) {
	for i, q := range s.tasks {
		if q == t {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = nil
			s.tasks = s.tasks[:len(s.tasks)-1]
			return
		}
	}
}
