package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

// Watch modes accepted by Config.WatchMode.
const (
	WatchPoll   = "poll"
	WatchNotify = "notify"
)

var (
	// ErrDatasetMissing is returned by Validate when the dataset root does not exist.
	ErrDatasetMissing = errors.New("dataset path does not exist")
	// ErrInputMissing is returned by Validate when the input text file does not exist.
	ErrInputMissing = errors.New("input file does not exist")
)

// Config defines the dataset location, the watched input file and the display settings.
type Config struct {
	DatasetDir string
	InputFile  string
	ShowHidden bool

	SampleSize  int
	DisplaySize int
	WindowTitle string

	PollInterval time.Duration
	KeyWait      time.Duration
	WatchMode    string

	// Seed for sample selection; 0 seeds from the clock.
	Seed int64
}

// DefaultConfig returns a configuration with sensible defaults: 28px samples shown at 100px, polled once a second.
func DefaultConfig() *Config {
	return &Config{
		DatasetDir:   "dataset",
		InputFile:    "input.txt",
		ShowHidden:   false,
		SampleSize:   28,
		DisplaySize:  100,
		WindowTitle:  "Handwritten Sample",
		PollInterval: time.Second,
		KeyWait:      500 * time.Millisecond,
		WatchMode:    WatchPoll,
	}
}

// BindFlags registers command line flags that override the receiver's fields.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DatasetDir, "dataset", c.DatasetDir, "root directory with one sub-directory per digit")
	fs.StringVar(&c.InputFile, "input", c.InputFile, "text file scanned for the last typed digit")
	fs.BoolVar(&c.ShowHidden, "hidden", c.ShowHidden, "load dot-files and dot-directories from the dataset")
	fs.DurationVar(&c.PollInterval, "interval", c.PollInterval, "delay between reads of the input file")
	fs.DurationVar(&c.KeyWait, "keywait", c.KeyWait, "how long to wait for a key press after each update")
	fs.StringVar(&c.WatchMode, "watch", c.WatchMode, "input watch mode: poll or notify")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed for sample selection (0 = time based)")
}

// Validate checks that the configured paths exist and the settings are usable.
func (c *Config) Validate() error {
	if _, err := os.Stat(c.DatasetDir); err != nil {
		return fmt.Errorf("%w: %s", ErrDatasetMissing, c.DatasetDir)
	}
	if _, err := os.Stat(c.InputFile); err != nil {
		return fmt.Errorf("%w: %s", ErrInputMissing, c.InputFile)
	}
	if c.SampleSize <= 0 || c.DisplaySize <= 0 {
		return fmt.Errorf("image sizes must be positive, got sample=%d display=%d", c.SampleSize, c.DisplaySize)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	switch c.WatchMode {
	case WatchPoll, WatchNotify:
	default:
		return fmt.Errorf("unknown watch mode %q", c.WatchMode)
	}
	return nil
}
