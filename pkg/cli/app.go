package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/cli/logger"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/cli/tui"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/document"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/lexicon"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/nlp"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/report"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/wordcloud"
)

type App struct {
	cfg       *config.Config
	extractor *extract.Extractor
}

func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// getExtractor builds the extractor lazily: the lemma dictionary and the
// vocabulary are only loaded for commands that actually extract.
func (a *App) getExtractor() (*extract.Extractor, error) {
	if a.extractor != nil {
		return a.extractor, nil
	}

	engine, err := nlp.ForName(a.cfg.Lexicon.Normalizer)
	if err != nil {
		return nil, err
	}
	vocab, err := lexicon.Load(a.cfg.Lexicon.VocabularyPath)
	if err != nil {
		logger.LogError(err, "loading vocabulary from %s", a.cfg.Lexicon.VocabularyPath)
		return nil, fmt.Errorf("failed to load vocabulary (set lexicon.vocabulary_path in the config): %w", err)
	}
	logger.Log("loaded %d-word vocabulary, normalizer=%s", vocab.Len(), a.cfg.Lexicon.Normalizer)

	a.extractor = extract.NewExtractor(engine, vocab, lexicon.Stopwords())
	return a.extractor, nil
}

// ShowConfig displays the current configuration
func (a *App) ShowConfig() {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		fmt.Printf("Error marshaling config: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "lexicon.normalizer=stem")
func (a *App) SetConfig(setStr string) error {
	parts := strings.SplitN(setStr, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid format: expected 'section.key=value'")
	}

	keyPath := strings.Split(parts[0], ".")
	value := parts[1]

	if len(keyPath) != 2 {
		return fmt.Errorf("invalid key format: expected 'section.key'")
	}

	section := keyPath[0]
	key := keyPath[1]

	switch section {
	case "lexicon":
		switch key {
		case "vocabulary_path":
			a.cfg.Lexicon.VocabularyPath = value
		case "normalizer":
			if value != "lemma" && value != "stem" {
				return fmt.Errorf("invalid normalizer: %s (expected lemma or stem)", value)
			}
			a.cfg.Lexicon.Normalizer = value
		default:
			return fmt.Errorf("unknown lexicon key: %s", key)
		}
	case "api":
		switch key {
		case "host":
			a.cfg.API.Host = value
		case "port":
			var port int
			if _, err := fmt.Sscanf(value, "%d", &port); err != nil {
				return fmt.Errorf("invalid port value: %s", value)
			}
			a.cfg.API.Port = port
		case "key":
			a.cfg.API.Key = value
		default:
			return fmt.Errorf("unknown api key: %s", key)
		}
	case "wordcloud":
		switch key {
		case "font_file":
			a.cfg.WordCloud.FontFile = value
		default:
			return fmt.Errorf("unknown wordcloud key: %s", key)
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}

	return config.Save(a.cfg)
}

// ExtractOptions controls the one-shot extract command.
type ExtractOptions struct {
	Path       string
	StartPage  int
	EndPage    int
	SaveReport bool
	CloudPath  string // render a word cloud PNG here when non-empty
}

// Extract runs one extraction to completion, printing progress to the
// console and the ranked report to stdout.
func (a *App) Extract(opts ExtractOptions) error {
	extractor, err := a.getExtractor()
	if err != nil {
		return err
	}

	doc, err := document.Open(opts.Path)
	if err != nil {
		return err
	}
	defer doc.Close()
	fmt.Printf("Loaded %s (%d pages)\n", opts.Path, doc.PageCount())

	job, err := extract.NewJob(extractor, doc, extract.PageRange{Start: opts.StartPage, End: opts.EndPage})
	if err != nil {
		return err
	}

	logger.Log("starting extraction: %s pages %d-%d", opts.Path, opts.StartPage, opts.EndPage)
	fmt.Printf("Extracting pages %d-%d...\n", opts.StartPage, opts.EndPage)
	job.Start(context.Background())

	var result *extract.Result
	for ev := range job.Events() {
		if ev.Result != nil {
			result = ev.Result
			break
		}
		fmt.Printf("\r%3d%%", ev.Percent)
	}
	fmt.Println()

	if !result.Succeeded() {
		logger.LogError(result.Err, "extraction of %s failed", opts.Path)
		var xerr *extract.Error
		if errors.As(result.Err, &xerr) {
			return fmt.Errorf("%s", xerr.UserMessage())
		}
		return result.Err
	}
	if result.PagesFailed > 0 {
		fmt.Printf("Warning: %d page(s) could not be read and were skipped\n", result.PagesFailed)
	}

	fmt.Println()
	if err := report.Write(os.Stdout, result.Counter); err != nil {
		return err
	}

	if opts.SaveReport {
		outPath, err := report.Save(opts.Path, result.Counter)
		if err != nil {
			return err
		}
		fmt.Printf("\nReport saved to %s\n", outPath)
	}

	if opts.CloudPath != "" {
		cloudOpts := wordcloud.Options{
			FontFile: a.cfg.WordCloud.FontFile,
			Width:    a.cfg.WordCloud.Width,
			Height:   a.cfg.WordCloud.Height,
			MaxWords: a.cfg.WordCloud.MaxWords,
		}
		if err := wordcloud.SavePNG(opts.CloudPath, result.Counter, cloudOpts); err != nil {
			return err
		}
		fmt.Printf("Word cloud saved to %s\n", opts.CloudPath)
	}

	return nil
}

// Run starts the interactive TUI.
func (a *App) Run() error {
	extractor, err := a.getExtractor()
	if err != nil {
		return err
	}

	logger.Log("starting interactive session")
	model := tui.NewRootModel(extractor, a.cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
