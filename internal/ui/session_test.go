package ui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akaiko1/digit-viewer/internal/config"
	"github.com/Akaiko1/digit-viewer/internal/dataset"
	"github.com/Akaiko1/digit-viewer/internal/renderer"
	"github.com/Akaiko1/digit-viewer/internal/watcher"
)

// scriptedWatcher returns digits in order, then blocks until ctx is done.
type scriptedWatcher struct {
	digits []string
}

func (w *scriptedWatcher) Next(ctx context.Context) (string, error) {
	if len(w.digits) > 0 {
		d := w.digits[0]
		w.digits = w.digits[1:]
		return d, nil
	}
	<-ctx.Done()
	return "", ctx.Err()
}

// recordingDisplay records shown images and answers WaitKey from a script ("" = timeout).
type recordingDisplay struct {
	mu    sync.Mutex
	shown []*image.Gray
	keys  []fyne.KeyName
	waits int
}

func (d *recordingDisplay) Show(img image.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, img.(*image.Gray))
}

func (d *recordingDisplay) WaitKey(_ context.Context, _ time.Duration) fyne.KeyName {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.waits++
	if len(d.keys) == 0 {
		return ""
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *recordingDisplay) images() []*image.Gray {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*image.Gray(nil), d.shown...)
}

func sample(v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 28, 28))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	img.SetGray(14, 14, color.Gray{Y: 255 - v})
	return img
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	cfg.PollInterval = 10 * time.Millisecond
	return cfg
}

func isBlank(img *image.Gray) bool {
	for _, v := range img.Pix {
		if v != 255 {
			return false
		}
	}
	return true
}

func TestStartShowsBlank(t *testing.T) {
	captureLog(t)
	d := &recordingDisplay{}
	s := NewSession(testConfig(), dataset.New(nil), &scriptedWatcher{}, d)

	s.Start()

	shown := d.images()
	require.Len(t, shown, 1)
	assert.Equal(t, image.Rect(0, 0, 100, 100), shown[0].Rect)
	assert.True(t, isBlank(shown[0]))
	assert.Empty(t, s.Shown())
}

func TestStepSkips(t *testing.T) {
	captureLog(t)
	d := &recordingDisplay{}
	ds := dataset.New(map[dataset.Label][]*image.Gray{"1": {sample(0)}})
	s := NewSession(testConfig(), ds, &scriptedWatcher{}, d)

	assert.Equal(t, OutcomeSample, s.Step("1"))
	assert.Equal(t, OutcomeSkipped, s.Step("1"))
	assert.Equal(t, OutcomeSkipped, s.Step(""))
	assert.Equal(t, OutcomeSkipped, s.Step("x"))
	assert.Equal(t, OutcomeSkipped, s.Step("12"))
	assert.Equal(t, "1", s.Shown())
	assert.Len(t, d.images(), 1)
}

func TestStepMissingSamples(t *testing.T) {
	logs := captureLog(t)
	d := &recordingDisplay{}
	ds := dataset.New(map[dataset.Label][]*image.Gray{"7": {}})
	s := NewSession(testConfig(), ds, &scriptedWatcher{}, d)

	assert.Equal(t, OutcomeBlank, s.Step("7"))
	assert.Equal(t, OutcomeBlank, s.Step("4"))

	assert.Contains(t, logs.String(), "No handwritten samples found for the digit '7'.")
	assert.Contains(t, logs.String(), "No handwritten samples found for the digit '4'.")
	for _, img := range d.images() {
		assert.True(t, isBlank(img))
	}
}

func TestStepPicksEverySample(t *testing.T) {
	captureLog(t)
	d := &recordingDisplay{}
	a, b := sample(0), sample(200)
	ds := dataset.New(map[dataset.Label][]*image.Gray{"1": {a}, "2": {a, b}})
	s := NewSession(testConfig(), ds, &scriptedWatcher{}, d)

	r := renderer.NewSampleRenderer(100)
	wantA, wantB := r.Render(a), r.Render(b)

	seen := map[string]int{}
	for i := 0; i < 100; i++ {
		require.Equal(t, OutcomeSample, s.Step("2"))
		got := d.images()[len(d.images())-1]
		switch {
		case bytes.Equal(got.Pix, wantA.Pix):
			seen["a"]++
		case bytes.Equal(got.Pix, wantB.Pix):
			seen["b"]++
		default:
			t.Fatalf("shown image is neither sample")
		}
		require.Equal(t, OutcomeSample, s.Step("1"))
	}
	assert.Positive(t, seen["a"])
	assert.Positive(t, seen["b"])
}

func TestRunRendersSampleOnce(t *testing.T) {
	captureLog(t)
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("x3y"), 0o644))

	imgA := sample(255)
	ds := dataset.New(map[dataset.Label][]*image.Gray{"3": {imgA}})
	cfg := testConfig()
	d := &recordingDisplay{}
	s := NewSession(cfg, ds, watcher.NewPollWatcher(input, cfg.PollInterval), d)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	shown := d.images()
	require.Len(t, shown, 2)
	assert.True(t, isBlank(shown[0]))
	want := renderer.NewSampleRenderer(100).Render(imgA)
	assert.Equal(t, want.Pix, shown[1].Pix)
	assert.Equal(t, "3", s.Shown())
}

func TestRunMissingDigitDoesNotStop(t *testing.T) {
	logs := captureLog(t)
	ds := dataset.New(map[dataset.Label][]*image.Gray{"7": {}})
	d := &recordingDisplay{}
	s := NewSession(testConfig(), ds, &scriptedWatcher{digits: []string{"7"}}, d)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Run(ctx), context.DeadlineExceeded)

	assert.Contains(t, logs.String(), "No handwritten samples found for the digit '7'.")
	shown := d.images()
	require.Len(t, shown, 2)
	assert.True(t, isBlank(shown[1]))
}

func TestRunEscapeStops(t *testing.T) {
	captureLog(t)
	ds := dataset.New(map[dataset.Label][]*image.Gray{"1": {sample(0)}, "2": {sample(0)}, "3": {sample(0)}})
	d := &recordingDisplay{keys: []fyne.KeyName{fyne.KeyA, "", fyne.KeyEscape}}
	w := &scriptedWatcher{digits: []string{"1", "2", "3", "1"}}
	s := NewSession(testConfig(), ds, w, d)

	err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3", s.Shown())
	assert.Equal(t, 3, d.waits)
	assert.Len(t, d.images(), 4)
	assert.Equal(t, []string{"1"}, w.digits)
}

func TestRunSkippedDigitDoesNotWait(t *testing.T) {
	captureLog(t)
	ds := dataset.New(map[dataset.Label][]*image.Gray{"1": {sample(0)}})
	d := &recordingDisplay{keys: []fyne.KeyName{fyne.KeyEscape}}
	w := &scriptedWatcher{digits: []string{"x", "1"}}
	s := NewSession(testConfig(), ds, w, d)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 1, d.waits)
}
