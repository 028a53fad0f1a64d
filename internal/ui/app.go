package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"

	"github.com/Akaiko1/digit-viewer/internal/config"
	"github.com/Akaiko1/digit-viewer/internal/dataset"
	"github.com/Akaiko1/digit-viewer/internal/watcher"
)

// DigitViewerApp represents the window that shows handwritten samples for digits typed into the input file.
type DigitViewerApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config

	// Services
	display *FyneDisplay
	session *Session
}

// NewDigitViewerApp creates the viewer window on fyneApp.
func NewDigitViewerApp(fyneApp fyne.App, cfg *config.Config, ds *dataset.Dataset, w watcher.InputWatcher) *DigitViewerApp {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	window := fyneApp.NewWindow(cfg.WindowTitle)
	window.SetFixedSize(true)

	display := NewFyneDisplay(window, cfg.DisplaySize)

	return &DigitViewerApp{
		app:     fyneApp,
		window:  window,
		config:  cfg,
		display: display,
		session: NewSession(cfg, ds, w, display),
	}
}

// Session returns the session driving the window.
func (app *DigitViewerApp) Session() *Session {
	return app.session
}

// Run shows the window and blocks until Escape is pressed, the window is closed or ctx is done.
// The session runs on its own goroutine; the Fyne event loop keeps the calling one.
func (app *DigitViewerApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic in display loop: %v", r)
				err = fmt.Errorf("display loop panic: %v", r)
			}
			done <- err
			// UI updates must use main thread dispatcher
			fyne.Do(app.app.Quit)
		}()

		err = app.session.Run(ctx)
	}()

	app.window.ShowAndRun()
	cancel()

	return <-done
}
