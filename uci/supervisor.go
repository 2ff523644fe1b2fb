package uci

import "errors"

// ErrSearchActive is returned by Supervisor.Start while a previous
// task has not been joined yet. Handle never trips it; hitting this
// error from library code is a programming defect, not a protocol
// condition.
var ErrSearchActive = errors.New("search still run")

// Result is the single outcome a search task reports.
type Result struct {
	BestMove string
	Ponder   string
}

// SearchFunc is the contract a search implementation must satisfy.
// It searches position (a FEN string) under limits, polls control for
// the cancellation token at bounded intervals, and sends exactly one
// Result before returning. Sending is mandatory even when cancelled
// immediately; a silent return leaves a stop command blocked forever.
type SearchFunc func(position string, limits Limits, control <-chan struct{}, results chan<- Result)

// task holds the channel pair of one running search. Channels are
// created fresh per task and never shared between instances.
type task struct {
	control chan struct{}
	results chan Result
	done    chan struct{}
}

// Supervisor owns the lifecycle of at most one running search task.
// It is not safe for concurrent use; the command processor drives it
// from a single goroutine.
type Supervisor struct {
	search SearchFunc
	active *task
}

// NewSupervisor wraps search in a lifecycle manager.
func NewSupervisor(search SearchFunc) *Supervisor {
	return &Supervisor{search: search}
}

// Busy reports whether a task is running and not yet joined.
func (s *Supervisor) Busy() bool {
	return s.active != nil
}

// Start launches the search on its own goroutine with a fresh channel
// pair. The position and limits are copied into the call; the task
// never sees live session state.
func (s *Supervisor) Start(position string, limits Limits) error {
	if s.active != nil {
		return ErrSearchActive
	}
	var t = &task{
		control: make(chan struct{}, 1),
		results: make(chan Result, 1),
		done:    make(chan struct{}),
	}
	s.active = t
	go func() {
		defer close(t.done)
		s.search(position, limits, t.control, t.results)
	}()
	return nil
}

// Cancel delivers the cancellation token to the running task. It
// never blocks: the control channel holds one token, and a second
// Cancel finds it already full and does nothing.
func (s *Supervisor) Cancel() {
	if s.active == nil {
		return
	}
	select {
	case s.active.control <- struct{}{}:
	default:
	}
}

// AwaitResult blocks until the task delivers its result. This is the
// one intentionally blocking call in the core; stop is synchronous by
// protocol definition. A task that violates the SearchFunc contract
// and never sends blocks the caller indefinitely.
func (s *Supervisor) AwaitResult() Result {
	return <-s.active.results
}

// TryTakeResult returns the task's result if it has already been
// delivered, without blocking.
func (s *Supervisor) TryTakeResult() (Result, bool) {
	if s.active == nil {
		return Result{}, false
	}
	select {
	case r := <-s.active.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Join waits for the task goroutine to exit, then drains both
// channels and drops the handle. A stale token or result left behind
// would be misread as the next task's signal, so a task is only ever
// discarded through Join.
func (s *Supervisor) Join() {
	if s.active == nil {
		return
	}
	<-s.active.done
	// The goroutine has exited; nothing writes anymore.
	select {
	case <-s.active.control:
	default:
	}
	select {
	case <-s.active.results:
	default:
	}
	s.active = nil
}

// Abort cancels a running task, waits out its result, discards it and
// joins. Used when a new go supersedes the running search: the old
// result is never reported.
func (s *Supervisor) Abort() {
	if s.active == nil {
		return
	}
	s.Cancel()
	s.AwaitResult()
	s.Join()
}
