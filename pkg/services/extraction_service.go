package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/document"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/models"
)

var (
	// ErrBusy is returned when an extraction is already in flight.
	// Only one job runs at a time; callers retry after the terminal event.
	ErrBusy = errors.New("an extraction is already running")
	// ErrNotFound is returned for unknown job IDs.
	ErrNotFound = errors.New("extraction not found")
	// ErrNotFinished is returned when a result is requested before the
	// job's terminal event. Final state is only readable once the job is
	// terminal.
	ErrNotFinished = errors.New("extraction has not finished")
	// ErrNoResult is returned when a result is requested from a job that
	// failed or was cancelled.
	ErrNoResult = errors.New("extraction produced no result")
)

// Document is what the service needs from an opened file.
type Document interface {
	extract.Document
	Close() error
}

// DocumentOpener opens a document by path.
type DocumentOpener func(path string) (Document, error)

// ExtractionService owns extraction jobs: it enforces the one-job-at-a-time
// rule, consumes each job's events, and exposes progress and results to the
// API handlers.
type ExtractionService struct {
	extractor *extract.Extractor
	open      DocumentOpener

	mu     sync.Mutex
	jobs   map[uuid.UUID]*jobState
	active bool
}

type jobState struct {
	mu      sync.Mutex
	info    models.Extraction
	job     *extract.Job
	counter *extract.Counter
	failed  int
}

// NewExtractionService creates a service around a shared extractor.
func NewExtractionService(extractor *extract.Extractor) *ExtractionService {
	return &ExtractionService{
		extractor: extractor,
		open: func(path string) (Document, error) {
			return document.Open(path)
		},
		jobs: make(map[uuid.UUID]*jobState),
	}
}

// Start opens the document, validates the range and launches a new job.
// It returns synchronously: ErrBusy while another job runs, a
// document_open error for unreadable files, an invalid_range error for bad
// ranges, and otherwise the running job's initial state.
func (s *ExtractionService) Start(path string, startPage, endPage int) (*models.Extraction, error) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.active = true
	s.mu.Unlock()

	doc, err := s.open(path)
	if err != nil {
		s.release()
		return nil, err
	}

	rng := extract.PageRange{Start: startPage, End: endPage}
	job, err := extract.NewJob(s.extractor, doc, rng)
	if err != nil {
		doc.Close()
		s.release()
		return nil, err
	}

	state := &jobState{
		info: models.Extraction{
			ID:        uuid.New(),
			Path:      path,
			StartPage: startPage,
			EndPage:   endPage,
			PageCount: doc.PageCount(),
			State:     models.StateRunning,
			CreatedAt: time.Now(),
		},
		job: job,
	}

	s.mu.Lock()
	s.jobs[state.info.ID] = state
	s.mu.Unlock()

	job.Start(context.Background())
	go s.consume(state, doc)

	info := state.info
	return &info, nil
}

// consume drains a job's events, keeping the job state current, and frees
// the single-flight slot once the terminal event arrives.
func (s *ExtractionService) consume(state *jobState, doc Document) {
	defer doc.Close()
	defer s.release()

	for ev := range state.job.Events() {
		state.mu.Lock()
		if ev.Result == nil {
			state.info.Progress = ev.Percent
			state.mu.Unlock()
			continue
		}

		res := ev.Result
		switch {
		case res.Succeeded():
			state.info.State = models.StateSucceeded
			state.info.Progress = 100
			state.counter = res.Counter
			state.failed = res.PagesFailed
		case res.Cancelled():
			state.info.State = models.StateCancelled
		default:
			state.info.State = models.StateFailed
			state.info.Error = userMessage(res.Err)
		}
		state.mu.Unlock()
	}
}

func (s *ExtractionService) release() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// Get returns the current view of a job.
func (s *ExtractionService) Get(id uuid.UUID) (*models.Extraction, error) {
	state, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	info := state.info
	return &info, nil
}

// Result returns the ranked outcome of a succeeded job. ErrNotFinished
// before the terminal event, ErrNoResult for failed or cancelled jobs.
func (s *ExtractionService) Result(id uuid.UUID) (*models.ExtractionResult, error) {
	state, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.info.State.Terminal() {
		return nil, ErrNotFinished
	}
	if state.info.State != models.StateSucceeded {
		return nil, ErrNoResult
	}

	return &models.ExtractionResult{
		TotalWords:  state.counter.Total(),
		UniqueWords: state.counter.Unique(),
		PagesFailed: state.failed,
		Words:       state.counter.Ranked(),
	}, nil
}

// Counter exposes the raw counter of a succeeded job (for the report and
// word-cloud endpoints).
func (s *ExtractionService) Counter(id uuid.UUID) (*extract.Counter, error) {
	state, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.info.State.Terminal() {
		return nil, ErrNotFinished
	}
	if state.counter == nil {
		return nil, ErrNoResult
	}
	return state.counter, nil
}

// Cancel requests early termination of a running job. Cancelling a
// terminal job is a no-op.
func (s *ExtractionService) Cancel(id uuid.UUID) error {
	state, err := s.lookup(id)
	if err != nil {
		return err
	}
	state.job.Cancel()
	return nil
}

func (s *ExtractionService) lookup(id uuid.UUID) (*jobState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

func userMessage(err error) string {
	var xerr *extract.Error
	if errors.As(err, &xerr) {
		return xerr.UserMessage()
	}
	return err.Error()
}
