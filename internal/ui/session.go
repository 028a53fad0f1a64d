package ui

import (
	"context"
	"image"
	"log"
	"math/rand"
	"time"
	"unicode"
	"unicode/utf8"

	"fyne.io/fyne/v2"

	"github.com/Akaiko1/digit-viewer/internal/config"
	"github.com/Akaiko1/digit-viewer/internal/dataset"
	"github.com/Akaiko1/digit-viewer/internal/renderer"
	"github.com/Akaiko1/digit-viewer/internal/watcher"
)

// Outcome describes what a Step did with a digit.
type Outcome int

const (
	// OutcomeSkipped means the digit was already shown or was not a digit; nothing was redrawn.
	OutcomeSkipped Outcome = iota
	// OutcomeBlank means the digit has no samples and the placeholder was shown.
	OutcomeBlank
	// OutcomeSample means a sample of the digit was shown.
	OutcomeSample
)

// Session drives the display from the input watcher. It remembers the digit currently shown.
type Session struct {
	dataset  *dataset.Dataset
	watcher  watcher.InputWatcher
	display  Display
	renderer renderer.SampleRenderer
	rand     *rand.Rand
	keyWait  time.Duration

	blank *image.Gray
	shown string
}

// NewSession creates a Session showing samples from ds at cfg.DisplaySize.
func NewSession(cfg *config.Config, ds *dataset.Dataset, w watcher.InputWatcher, d Display) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := renderer.NewSampleRenderer(cfg.DisplaySize)

	return &Session{
		dataset:  ds,
		watcher:  w,
		display:  d,
		renderer: r,
		rand:     rand.New(rand.NewSource(seed)),
		keyWait:  cfg.KeyWait,
		blank:    r.Blank(),
	}
}

// Shown returns the digit currently displayed, or "" while the placeholder from Start is up.
func (s *Session) Shown() string {
	return s.shown
}

// Start prints usage and shows the blank placeholder.
func (s *Session) Start() {
	log.Println("Type a digit in the text file to see its handwritten version.")
	log.Println("Press Ctrl+C in the terminal to quit.")
	s.display.Show(s.blank)
}

// Step shows a random sample of digit, or the placeholder if there is none.
func (s *Session) Step(digit string) Outcome {
	if digit == s.shown || !isDigit(digit) {
		return OutcomeSkipped
	}
	s.shown = digit

	samples := s.dataset.Samples(dataset.Label(digit))
	if len(samples) == 0 {
		log.Printf("No handwritten samples found for the digit '%s'.", digit)
		s.display.Show(s.blank)
		return OutcomeBlank
	}

	sample := samples[s.rand.Intn(len(samples))]
	s.display.Show(s.renderer.Render(sample))
	log.Printf("Displaying handwritten sample for digit '%s'.", digit)
	return OutcomeSample
}

// Run shows the placeholder and then updates the display for every new digit until Escape is pressed
// (returns nil) or ctx is done (returns ctx.Err()).
func (s *Session) Run(ctx context.Context) error {
	s.Start()

	for {
		digit, err := s.watcher.Next(ctx)
		if err != nil {
			return err
		}

		if s.Step(digit) == OutcomeSkipped {
			continue
		}

		if s.display.WaitKey(ctx, s.keyWait) == fyne.KeyEscape {
			log.Println("Escape pressed.")
			return nil
		}
	}
}

func isDigit(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && unicode.IsDigit(r)
}
