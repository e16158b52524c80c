package extract

import (
	"context"
	"errors"
	"sync"
)

// Result is the terminal outcome of one job. Exactly one Result is
// delivered per job, always as the last event.
type Result struct {
	// Counter holds the final frequency map; nil unless the job succeeded.
	Counter *Counter
	// PagesFailed is the number of pages that were skipped as unreadable.
	PagesFailed int
	// Err is nil on success, an ErrorTypeCancelled error when the job was
	// cancelled, and the fatal error otherwise.
	Err error
}

// Succeeded reports whether the job completed with a frequency map.
// An empty map is still a success; success and failure are never conflated.
func (r Result) Succeeded() bool { return r.Err == nil }

// Cancelled reports whether the job ended because it was cancelled.
func (r Result) Cancelled() bool {
	var xerr *Error
	return errors.As(r.Err, &xerr) && xerr.Type == ErrorTypeCancelled
}

// Event is one delivery on a job's event channel: either a progress update
// or the terminal result.
type Event struct {
	// Percent is the completed percentage; meaningful when Result is nil.
	Percent int
	// Result is non-nil exactly once, on the final event before the
	// channel closes.
	Result *Result
}

// Job is one asynchronous run of the extraction pipeline over a fixed page
// range. Start returns immediately; progress and the terminal result arrive
// on Events. A job runs at most once and cannot be restarted — create a new
// Job for each extraction.
type Job struct {
	extractor *Extractor
	doc       Document
	rng       PageRange

	events chan Event

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// NewJob validates the range against the document and prepares a job.
// An invalid range is rejected here, synchronously, before any job exists.
func NewJob(extractor *Extractor, doc Document, rng PageRange) (*Job, error) {
	if err := rng.Validate(doc.PageCount()); err != nil {
		return nil, err
	}
	// Sized so the producer never blocks on a slow consumer: one slot per
	// page plus the terminal result.
	return &Job{
		extractor: extractor,
		doc:       doc,
		rng:       rng,
		events:    make(chan Event, rng.Pages()+1),
	}, nil
}

// Events returns the job's event channel. It delivers zero or more progress
// events in non-decreasing order, then exactly one terminal event carrying
// the Result, and is then closed. The terminal event is the only safe point
// for the caller to read the final counter.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Start launches the extraction on its own goroutine and returns
// immediately. Calling Start again is a no-op.
func (j *Job) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started {
		return
	}
	j.started = true

	ctx, j.cancel = context.WithCancel(ctx)
	go j.run(ctx)
}

// Cancel requests early termination. The running extraction stops at the
// next page boundary and delivers a Cancelled result. Cancelling a job that
// never started or already finished has no effect.
func (j *Job) Cancel() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		j.cancel()
	}
}

func (j *Job) run(ctx context.Context) {
	defer close(j.events)

	counter, failed, err := j.extractor.Run(ctx, j.doc, j.rng, func(percent int) {
		j.events <- Event{Percent: percent}
	})
	if err != nil {
		j.events <- Event{Result: &Result{PagesFailed: failed, Err: err}}
		return
	}
	j.events <- Event{Percent: 100, Result: &Result{Counter: counter, PagesFailed: failed}}
}
