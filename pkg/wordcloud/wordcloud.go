// Package wordcloud renders a finished extraction's frequency map as a
// word-cloud image.
package wordcloud

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/psykhi/wordclouds"

	"github.com/stevelee-cq/PDF-Word-extraction/pkg/extract"
)

// Options control the rendered image.
type Options struct {
	FontFile string // path to a TTF font, required
	Width    int
	Height   int
	MaxWords int // most frequent words to include
}

// DefaultOptions mirror the dimensions the tool has always rendered with.
func DefaultOptions(fontFile string) Options {
	return Options{
		FontFile: fontFile,
		Width:    800,
		Height:   400,
		MaxWords: 200,
	}
}

var palette = []color.Color{
	color.RGBA{R: 0x3a, G: 0x99, B: 0xd8, A: 0xff},
	color.RGBA{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff},
	color.RGBA{R: 0x44, G: 0x72, B: 0xc4, A: 0xff},
	color.RGBA{R: 0xed, G: 0x7d, B: 0x31, A: 0xff},
	color.RGBA{R: 0x70, G: 0x30, B: 0xa0, A: 0xff},
}

// Render draws the top words of the counter. It fails when there is nothing
// to draw or the font file is unusable; an empty result is a caller-visible
// condition, not a blank image.
func Render(counter *extract.Counter, opts Options) (image.Image, error) {
	if counter == nil || counter.Total() == 0 {
		return nil, fmt.Errorf("no word frequencies to render")
	}
	if opts.FontFile == "" {
		return nil, fmt.Errorf("word cloud font file not configured")
	}
	if _, err := os.Stat(opts.FontFile); err != nil {
		return nil, fmt.Errorf("word cloud font file unavailable: %w", err)
	}

	ranked := counter.Ranked()
	if opts.MaxWords > 0 && len(ranked) > opts.MaxWords {
		ranked = ranked[:opts.MaxWords]
	}
	freq := make(map[string]int, len(ranked))
	for _, wc := range ranked {
		freq[wc.Word] = wc.Count
	}

	cloud := wordclouds.NewWordcloud(freq,
		wordclouds.FontFile(opts.FontFile),
		wordclouds.FontMaxSize(96),
		wordclouds.FontMinSize(12),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(color.White),
	)

	return cloud.Draw(), nil
}

// SavePNG renders the word cloud and writes it to path as a PNG.
func SavePNG(path string, counter *extract.Counter, opts Options) error {
	img, err := Render(counter, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode word cloud: %w", err)
	}
	return nil
}
