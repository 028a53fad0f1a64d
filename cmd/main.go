// Package main implements a viewer that shows a random handwritten sample of the last digit
// typed into a text file, using the Fyne framework.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"

	"github.com/Akaiko1/digit-viewer/internal/config"
	"github.com/Akaiko1/digit-viewer/internal/dataset"
	"github.com/Akaiko1/digit-viewer/internal/renderer"
	"github.com/Akaiko1/digit-viewer/internal/ui"
	"github.com/Akaiko1/digit-viewer/internal/watcher"
)

func main() {
	log.Println("Starting Handwritten Digit Viewer...")

	config := config.DefaultConfig()
	config.BindFlags(flag.CommandLine)
	flag.Parse()
	log.Printf("Config: Dataset=%s, Input=%s, Watch=%s, Interval=%s", config.DatasetDir, config.InputFile, config.WatchMode, config.PollInterval)

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return startupError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := dataset.NewLoader(cfg).Load(ctx, cfg.DatasetDir)
	if err != nil {
		return startupError(err)
	}
	log.Print((&renderer.StandardSummaryRenderer{}).RenderSummary(ds))

	w, closeWatcher, err := newWatcher(cfg)
	if err != nil {
		return err
	}
	defer closeWatcher()

	viewer := ui.NewDigitViewerApp(app.New(), cfg, ds, w)
	log.Println("Window created, watching input...")

	err = viewer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("Exiting program.")
		return nil
	}
	return err
}

// newWatcher builds the input watcher selected by cfg.WatchMode.
func newWatcher(cfg *config.Config) (watcher.InputWatcher, func(), error) {
	if cfg.WatchMode == config.WatchNotify {
		w, err := watcher.NewNotifyWatcher(cfg.InputFile, cfg.PollInterval)
		if err != nil {
			return nil, nil, err
		}
		return w, func() { w.Close() }, nil
	}
	return watcher.NewPollWatcher(cfg.InputFile, cfg.PollInterval), func() {}, nil
}

// startupError maps startup failures to the messages users see before exit.
func startupError(err error) error {
	switch {
	case errors.Is(err, config.ErrDatasetMissing):
		return errors.New("Error: Dataset path does not exist!")
	case errors.Is(err, config.ErrInputMissing):
		return errors.New("Error: Input file does not exist! Please create the file first.")
	case errors.Is(err, dataset.ErrEmpty):
		return errors.New("Error: No images found in the dataset.")
	}
	return err
}
