package dataset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/Akaiko1/digit-viewer/internal/config"
)

// ErrEmpty is returned when the dataset root contains no label directories.
var ErrEmpty = errors.New("no images found in the dataset")

// SampleLoader defines the interface for loading a labelled sample dataset.
type SampleLoader interface {
	Load(ctx context.Context, root string) (*Dataset, error)
}

// Loader implements SampleLoader for a directory tree with one sub-directory per label.
type Loader struct {
	config *config.Config
}

// NewLoader creates a new Loader with the given configuration.
func NewLoader(cfg *config.Config) *Loader {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Loader{
		config: cfg,
	}
}

// Load reads every decodable image under root/<label>/ and normalizes it to a square grayscale sample.
// Entries that are not directories at the top level and files that fail to decode are skipped.
func (l *Loader) Load(ctx context.Context, root string) (*Dataset, error) {
	if root == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root %q: %w", root, err)
	}

	ds := &Dataset{
		root:    root,
		samples: make(map[Label][]*image.Gray),
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !l.isLabelDir(entry) {
			continue
		}

		label := Label(entry.Name())
		samples, err := l.loadLabel(ctx, filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		ds.labels = append(ds.labels, label)
		ds.samples[label] = samples
	}

	if len(ds.labels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, root)
	}

	return ds, nil
}

// loadLabel decodes the files of a single label directory, in listing order.
func (l *Loader) loadLabel(ctx context.Context, dir string) ([]*image.Gray, error) {
	samples := []*image.Gray{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("Warning: failed to read directory %q: %v", dir, err)
		return samples, nil // Continue with partial results
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || l.isHidden(entry) {
			continue
		}
		if sample, ok := l.decodeSample(filepath.Join(dir, entry.Name())); ok {
			samples = append(samples, sample)
		}
	}

	return samples, nil
}

// decodeSample opens path as an image and normalizes it. ok is false for anything that does not decode.
func (l *Loader) decodeSample(path string) (*image.Gray, bool) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, false
	}
	return Normalize(img, l.config.SampleSize), true
}

// isLabelDir filters top-level entries down to label directories.
func (l *Loader) isLabelDir(entry os.DirEntry) bool {
	return entry.IsDir() && !l.isHidden(entry)
}

func (l *Loader) isHidden(entry os.DirEntry) bool {
	return !l.config.ShowHidden && strings.HasPrefix(entry.Name(), ".")
}

// Normalize converts img to grayscale and resizes it to size×size with area averaging.
func Normalize(img image.Image, size int) *image.Gray {
	gray := ToGray(img)
	if gray.Rect.Dx() == size && gray.Rect.Dy() == size {
		return gray
	}
	return ToGray(imaging.Resize(gray, size, size, imaging.Box))
}
