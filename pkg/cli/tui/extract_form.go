package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/document"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/report"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/wordcloud"
)

// maxVisibleWords caps how many ranked words the results view prints.
const maxVisibleWords = 25

// extractForm is the Bubble Tea model for the interactive extraction flow:
// pick a PDF, pick a page range, watch the job run, review the ranking.
type extractForm struct {
	// Core dependencies
	extractor *extract.Extractor
	cfg       *config.Config

	// Inputs
	pathInput  textinput.Model
	startInput textinput.Model
	endInput   textinput.Model

	// Flow / state
	step         int
	currentField int
	err          error

	// Extraction state
	doc     *document.PDF
	job     *extract.Job
	percent int
	bar     progress.Model
	result  *extract.Result

	// Results state
	reportPath string
	cloudPath  string
	saveErr    error
}

const (
	stepPathInput = iota
	stepRangeInput
	stepExtracting
	stepResults
)

// Messages (scoped to this flow; names are prefixed to avoid collisions)
type extractDocOpenedMsg struct {
	doc *document.PDF
	err error
}

type extractJobStartedMsg struct {
	job *extract.Job
	err error
}

type extractEventMsg struct {
	event extract.Event
	ok    bool
}

type extractReportSavedMsg struct {
	path string
	err  error
}

type extractCloudSavedMsg struct {
	path string
	err  error
}

// NewRootModel constructs the interactive extraction flow.
func NewRootModel(extractor *extract.Extractor, cfg *config.Config) tea.Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/document.pdf"
	pathInput.Focus()
	pathInput.CharLimit = 1024
	pathInput.Width = 60

	startInput := textinput.New()
	startInput.Placeholder = "1"
	startInput.CharLimit = 6
	startInput.Width = 10

	endInput := textinput.New()
	endInput.Placeholder = "1"
	endInput.CharLimit = 6
	endInput.Width = 10

	return &extractForm{
		extractor:  extractor,
		cfg:        cfg,
		pathInput:  pathInput,
		startInput: startInput,
		endInput:   endInput,
		step:       stepPathInput,
		bar:        progress.New(progress.WithDefaultGradient()),
	}
}

func (m *extractForm) Init() tea.Cmd {
	return textinput.Blink
}

func (m *extractForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case extractDocOpenedMsg:
		if msg.err != nil {
			m.err = userFacingError(msg.err)
			m.step = stepResults
			return m, nil
		}
		m.doc = msg.doc
		m.startInput.Focus()
		m.currentField = 0
		m.step = stepRangeInput
		return m, textinput.Blink

	case extractJobStartedMsg:
		if msg.err != nil {
			m.err = userFacingError(msg.err)
			m.step = stepResults
			return m, nil
		}
		m.job = msg.job
		m.percent = 0
		m.step = stepExtracting
		return m, m.waitForEvent()

	case extractEventMsg:
		if !msg.ok {
			// Channel closed without a terminal event; should not happen,
			// treat as done with whatever we have.
			m.step = stepResults
			return m, nil
		}
		if msg.event.Result != nil {
			m.result = msg.event.Result
			m.percent = msg.event.Percent
			if !m.result.Succeeded() && !m.result.Cancelled() {
				m.err = userFacingError(m.result.Err)
			}
			m.closeDoc()
			m.step = stepResults
			return m, nil
		}
		m.percent = msg.event.Percent
		return m, m.waitForEvent()

	case extractReportSavedMsg:
		if msg.err != nil {
			m.saveErr = msg.err
		} else {
			m.reportPath = msg.path
			m.saveErr = nil
		}
		return m, nil

	case extractCloudSavedMsg:
		if msg.err != nil {
			m.saveErr = msg.err
		} else {
			m.cloudPath = msg.path
			m.saveErr = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.step {
		case stepPathInput:
			return m.handlePathKey(msg)
		case stepRangeInput:
			return m.handleRangeKey(msg)
		case stepExtracting:
			switch msg.String() {
			case "ctrl+c", "esc":
				if m.job != nil {
					m.job.Cancel()
				}
				// Keep consuming events; the job sends a cancelled result.
				return m, nil
			}
		case stepResults:
			return m.handleResultsKey(msg)
		}
	}

	return m, nil
}

func (m *extractForm) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		return m, m.openDocument(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *extractForm) handleRangeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeDoc()
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		if m.currentField == 0 {
			m.currentField = 1
			m.startInput.Blur()
			m.endInput.Focus()
		} else {
			m.currentField = 0
			m.endInput.Blur()
			m.startInput.Focus()
		}
		return m, textinput.Blink
	case "enter":
		if m.currentField == 0 {
			m.currentField = 1
			m.startInput.Blur()
			m.endInput.Focus()
			return m, textinput.Blink
		}
		return m, m.startJob()
	}

	var cmd tea.Cmd
	if m.currentField == 0 {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

func (m *extractForm) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.err != nil || m.result == nil || !m.result.Succeeded() {
		// Error and cancelled views exit on any key.
		m.closeDoc()
		return m, tea.Quit
	}

	switch key {
	case "s":
		return m, m.saveReport()
	case "w":
		return m, m.saveCloud()
	}
	if handleQuitKeys(key) || key == "enter" {
		return m, tea.Quit
	}
	return m, nil
}

func (m *extractForm) openDocument(path string) tea.Cmd {
	return func() tea.Msg {
		doc, err := document.Open(path)
		return extractDocOpenedMsg{doc: doc, err: err}
	}
}

func (m *extractForm) startJob() tea.Cmd {
	start, err := strconv.Atoi(strings.TrimSpace(m.startInput.Value()))
	if err != nil {
		return func() tea.Msg {
			return extractJobStartedMsg{err: fmt.Errorf("invalid start page: %q", m.startInput.Value())}
		}
	}
	end, err := strconv.Atoi(strings.TrimSpace(m.endInput.Value()))
	if err != nil {
		return func() tea.Msg {
			return extractJobStartedMsg{err: fmt.Errorf("invalid end page: %q", m.endInput.Value())}
		}
	}

	doc := m.doc
	extractor := m.extractor
	return func() tea.Msg {
		job, err := extract.NewJob(extractor, doc, extract.PageRange{Start: start, End: end})
		if err != nil {
			return extractJobStartedMsg{err: err}
		}
		job.Start(context.Background())
		return extractJobStartedMsg{job: job}
	}
}

func (m *extractForm) waitForEvent() tea.Cmd {
	job := m.job
	return func() tea.Msg {
		ev, ok := <-job.Events()
		return extractEventMsg{event: ev, ok: ok}
	}
}

func (m *extractForm) saveReport() tea.Cmd {
	path := strings.TrimSpace(m.pathInput.Value())
	counter := m.result.Counter
	return func() tea.Msg {
		out, err := report.Save(path, counter)
		return extractReportSavedMsg{path: out, err: err}
	}
}

func (m *extractForm) saveCloud() tea.Cmd {
	pdfPath := strings.TrimSpace(m.pathInput.Value())
	counter := m.result.Counter
	opts := wordcloud.Options{
		FontFile: m.cfg.WordCloud.FontFile,
		Width:    m.cfg.WordCloud.Width,
		Height:   m.cfg.WordCloud.Height,
		MaxWords: m.cfg.WordCloud.MaxWords,
	}
	return func() tea.Msg {
		ext := filepath.Ext(pdfPath)
		out := strings.TrimSuffix(pdfPath, ext) + "_word_cloud.png"
		err := wordcloud.SavePNG(out, counter, opts)
		return extractCloudSavedMsg{path: out, err: err}
	}
}

func (m *extractForm) closeDoc() {
	if m.doc != nil {
		m.doc.Close()
		m.doc = nil
	}
}

func (m *extractForm) View() string {
	switch m.step {
	case stepPathInput:
		return m.viewPathInput()
	case stepRangeInput:
		return m.viewRangeInput()
	case stepExtracting:
		return m.viewExtracting()
	case stepResults:
		return m.viewResults()
	}
	return ""
}

func (m *extractForm) viewPathInput() string {
	var b strings.Builder
	b.WriteString(renderTitle("Extract Word Frequencies"))
	b.WriteString(fieldLabelStyle.Render("PDF file:"))
	b.WriteString("\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Enter to continue • Esc to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *extractForm) viewRangeInput() string {
	var b strings.Builder
	b.WriteString(renderTitle("Select Page Range"))
	b.WriteString(boldStyle.Render(fmt.Sprintf("%s (%d pages)", m.pathInput.Value(), m.doc.PageCount())))
	b.WriteString("\n\n")
	b.WriteString(fieldLabelStyle.Render("Start page:"))
	b.WriteString(m.startInput.View())
	b.WriteString("\n")
	b.WriteString(fieldLabelStyle.Render("End page:"))
	b.WriteString(m.endInput.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("Tab to switch fields • Enter to extract • Esc to quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *extractForm) viewExtracting() string {
	var b strings.Builder
	b.WriteString(renderTitle("Extracting"))
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString(fmt.Sprintf("  %d%%\n\n", m.percent))
	b.WriteString(helpStyle.Render("Press Esc to cancel."))
	b.WriteString("\n")
	return b.String()
}

func (m *extractForm) viewResults() string {
	if m.err != nil {
		return renderErrorView(m.err)
	}
	if m.result == nil {
		return renderLoadingState("Finishing up...")
	}
	if m.result.Cancelled() {
		return "\n" + renderWarning("Extraction cancelled.") + "\n\n" +
			helpStyle.Render("Press any key to exit...") + "\n"
	}

	var b strings.Builder
	b.WriteString(renderTitle("Extraction Complete"))
	b.WriteString(renderSuccess(fmt.Sprintf(
		"total words: %d, unique words: %d",
		m.result.Counter.Total(), m.result.Counter.Unique(),
	)))
	b.WriteString("\n")
	if m.result.PagesFailed > 0 {
		b.WriteString(renderWarning(fmt.Sprintf("%d page(s) could not be read and were skipped", m.result.PagesFailed)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderDivider(30))
	b.WriteString("\n")

	ranked := m.result.Counter.Ranked()
	shown := ranked
	if len(shown) > maxVisibleWords {
		shown = shown[:maxVisibleWords]
	}
	for _, wc := range shown {
		b.WriteString(fmt.Sprintf("%s %s\n",
			wordStyle.Render(fmt.Sprintf("%-20s", wc.Word)),
			countStyle.Render(strconv.Itoa(wc.Count)),
		))
	}
	if len(ranked) > len(shown) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("… and %d more", len(ranked)-len(shown))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.reportPath != "" {
		b.WriteString(renderSuccess("Report saved to "+m.reportPath) + "\n")
	}
	if m.cloudPath != "" {
		b.WriteString(renderSuccess("Word cloud saved to "+m.cloudPath) + "\n")
	}
	if m.saveErr != nil {
		b.WriteString(renderError(m.saveErr.Error()) + "\n")
	}

	b.WriteString(helpStyle.Render("s to save report • w to save word cloud • q to exit"))
	b.WriteString("\n")
	return b.String()
}
