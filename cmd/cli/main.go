package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/cli"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/cli/logger"
	"github.com/stevelee-cq/PDF-Word-extraction/pkg/config"
)

func main() {
	defer logger.CloseLog()

	var (
		extractPath = flag.String("extract", "", "Extract word frequencies from a PDF file")
		startPage   = flag.Int("start", 1, "First page of the range (1-based, inclusive)")
		endPage     = flag.Int("end", 0, "Last page of the range (inclusive; defaults to start)")
		saveReport  = flag.Bool("save", false, "Save the frequency report next to the PDF")
		cloudPath   = flag.String("cloud", "", "Render a word cloud PNG to this path")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := cli.NewApp(cfg)

	// Handle config commands first (don't need a lexicon)
	if *configShow {
		app.ShowConfig()
		return
	}
	if *configSet != "" {
		if err := app.SetConfig(*configSet); err != nil {
			log.Fatalf("failed to set config: %v", err)
		}
		fmt.Println("Configuration updated successfully")
		return
	}

	// One-shot extraction mode
	if *extractPath != "" {
		end := *endPage
		if end == 0 {
			end = *startPage
		}
		opts := cli.ExtractOptions{
			Path:       *extractPath,
			StartPage:  *startPage,
			EndPage:    end,
			SaveReport: *saveReport,
			CloudPath:  *cloudPath,
		}
		if err := app.Extract(opts); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive TUI mode
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
