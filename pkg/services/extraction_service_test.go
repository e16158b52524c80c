package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/models"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
)

type fakeEngine struct{}

func (fakeEngine) Tokenize(text string) []nlp.Token {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var tokens []nlp.Token
	for _, w := range words {
		tokens = append(tokens, nlp.Token{
			Text:  w,
			Lemma: strings.ToLower(w),
			Alpha: true,
			ASCII: true,
		})
	}
	return tokens
}

type fakeDoc struct {
	pages  []string
	errs   map[int]error
	onPage func(pageNum int)

	mu     sync.Mutex
	closed bool
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(pageNum int) (string, error) {
	if d.onPage != nil {
		d.onPage(pageNum)
	}
	if err := d.errs[pageNum]; err != nil {
		return "", err
	}
	return d.pages[pageNum-1], nil
}

func (d *fakeDoc) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func (d *fakeDoc) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func newTestService(t *testing.T, doc *fakeDoc, openErr error) *ExtractionService {
	t.Helper()

	extractor := extract.NewExtractor(fakeEngine{},
		lexicon.New("cat", "dog", "run", "sit"),
		lexicon.New("the", "and"))

	s := NewExtractionService(extractor)
	s.open = func(path string) (Document, error) {
		if openErr != nil {
			return nil, openErr
		}
		return doc, nil
	}
	return s
}

// waitTerminal polls until the job reaches a terminal state.
func waitTerminal(t *testing.T, s *ExtractionService, id uuid.UUID) *models.Extraction {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		info, err := s.Get(id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if info.State.Terminal() {
			return info
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("extraction did not reach a terminal state")
	return nil
}

// waitIdle polls until the single-flight slot is released and the document
// is closed; both happen just after the terminal event.
func waitIdle(t *testing.T, s *ExtractionService, doc *fakeDoc) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		active := s.active
		s.mu.Unlock()
		if !active && (doc == nil || doc.Closed()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("service did not become idle")
}

func TestStartAndResult(t *testing.T) {
	doc := &fakeDoc{pages: []string{"the cat sat", "cat dog run"}}
	s := newTestService(t, doc, nil)

	info, err := s.Start("/tmp/sample.pdf", 1, 2)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if info.State != models.StateRunning {
		t.Errorf("initial state = %q, want running", info.State)
	}
	if info.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", info.PageCount)
	}

	final := waitTerminal(t, s, info.ID)
	if final.State != models.StateSucceeded {
		t.Fatalf("state = %q, want succeeded (error: %s)", final.State, final.Error)
	}
	if final.Progress != 100 {
		t.Errorf("Progress = %d, want 100", final.Progress)
	}

	res, err := s.Result(info.ID)
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	// "sat" is not in the vocabulary, "the" is a stop word.
	if res.TotalWords != 4 {
		t.Errorf("TotalWords = %d, want 4", res.TotalWords)
	}
	if res.UniqueWords != 3 {
		t.Errorf("UniqueWords = %d, want 3", res.UniqueWords)
	}
	if res.Words[0].Word != "cat" || res.Words[0].Count != 2 {
		t.Errorf("top word = %+v, want cat:2", res.Words[0])
	}

	waitIdle(t, s, doc)
	if !doc.Closed() {
		t.Error("document was not closed after the job finished")
	}
}

func TestStartRejectsSecondJob(t *testing.T) {
	release := make(chan struct{})
	doc := &fakeDoc{
		pages: []string{"cat", "dog"},
		onPage: func(pageNum int) {
			if pageNum == 1 {
				<-release
			}
		},
	}
	s := newTestService(t, doc, nil)

	info, err := s.Start("/tmp/sample.pdf", 1, 2)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := s.Start("/tmp/other.pdf", 1, 1); !errors.Is(err, ErrBusy) {
		t.Errorf("second Start() error = %v, want ErrBusy", err)
	}

	close(release)
	waitTerminal(t, s, info.ID)
	waitIdle(t, s, doc)

	// The slot frees after the terminal event; a new job is accepted.
	doc2 := &fakeDoc{pages: []string{"cat"}}
	s.open = func(string) (Document, error) { return doc2, nil }
	info2, err := s.Start("/tmp/other.pdf", 1, 1)
	if err != nil {
		t.Fatalf("Start() after completion error = %v", err)
	}
	waitTerminal(t, s, info2.ID)
}

func TestStartOpenFailureReleasesSlot(t *testing.T) {
	openErr := extract.NewDocumentOpenError("/tmp/missing.pdf", errors.New("no such file"))
	s := newTestService(t, nil, openErr)

	_, err := s.Start("/tmp/missing.pdf", 1, 1)
	var xerr *extract.Error
	if !errors.As(err, &xerr) || xerr.Type != extract.ErrorTypeDocumentOpen {
		t.Fatalf("Start() error = %v, want document_open", err)
	}

	// The failed start must not leave the service busy.
	doc := &fakeDoc{pages: []string{"cat"}}
	s.open = func(string) (Document, error) { return doc, nil }
	if _, err := s.Start("/tmp/ok.pdf", 1, 1); err != nil {
		t.Fatalf("Start() after open failure error = %v", err)
	}
}

func TestStartInvalidRange(t *testing.T) {
	doc := &fakeDoc{pages: []string{"cat", "dog"}}
	s := newTestService(t, doc, nil)

	_, err := s.Start("/tmp/sample.pdf", 2, 5)
	var xerr *extract.Error
	if !errors.As(err, &xerr) || xerr.Type != extract.ErrorTypeInvalidRange {
		t.Fatalf("Start() error = %v, want invalid_range", err)
	}
	if !doc.Closed() {
		t.Error("document was not closed after range rejection")
	}
}

func TestResultBeforeFinish(t *testing.T) {
	release := make(chan struct{})
	doc := &fakeDoc{
		pages:  []string{"cat"},
		onPage: func(int) { <-release },
	}
	s := newTestService(t, doc, nil)

	info, err := s.Start("/tmp/sample.pdf", 1, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, err := s.Result(info.ID); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Result() before finish error = %v, want ErrNotFinished", err)
	}

	close(release)
	waitTerminal(t, s, info.ID)
}

func TestResultUnknownID(t *testing.T) {
	s := newTestService(t, &fakeDoc{pages: []string{"cat"}}, nil)
	if _, err := s.Result(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Result() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestFailedJobHasNoResult(t *testing.T) {
	doc := &fakeDoc{
		pages: []string{"cat", "dog"},
		errs:  map[int]error{2: errors.New("broken xref")},
	}
	s := newTestService(t, doc, nil)

	info, err := s.Start("/tmp/sample.pdf", 1, 2)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	final := waitTerminal(t, s, info.ID)
	if final.State != models.StateFailed {
		t.Fatalf("state = %q, want failed", final.State)
	}
	if final.Error == "" {
		t.Error("failed extraction has no error message")
	}

	if _, err := s.Result(info.ID); !errors.Is(err, ErrNoResult) {
		t.Errorf("Result() error = %v, want ErrNoResult", err)
	}
}

func TestCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	doc := &fakeDoc{
		pages: []string{"cat", "dog", "run"},
		onPage: func(pageNum int) {
			if pageNum == 1 {
				close(started)
				<-release
			}
		},
	}
	s := newTestService(t, doc, nil)

	info, err := s.Start("/tmp/sample.pdf", 1, 3)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	<-started
	if err := s.Cancel(info.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	close(release)

	final := waitTerminal(t, s, info.ID)
	if final.State != models.StateCancelled {
		t.Fatalf("state = %q, want cancelled", final.State)
	}
	if _, err := s.Result(info.ID); !errors.Is(err, ErrNoResult) {
		t.Errorf("Result() after cancel error = %v, want ErrNoResult", err)
	}
}
