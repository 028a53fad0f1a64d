package dataset

import (
	"image"
	"sort"

	"golang.org/x/image/draw"
)

// Label names a class of samples; it is the name of the sub-directory they were loaded from.
type Label string

// Dataset maps each label to its samples in directory listing order. It is not modified after construction.
type Dataset struct {
	root    string
	labels  []Label
	samples map[Label][]*image.Gray
}

// New builds a Dataset from already normalized samples. Labels are ordered by name.
func New(samples map[Label][]*image.Gray) *Dataset {
	ds := &Dataset{samples: make(map[Label][]*image.Gray, len(samples))}
	for label, list := range samples {
		ds.labels = append(ds.labels, label)
		ds.samples[label] = append([]*image.Gray(nil), list...)
	}
	sort.Slice(ds.labels, func(i, j int) bool { return ds.labels[i] < ds.labels[j] })
	return ds
}

// Root returns the directory the dataset was loaded from, if any.
func (d *Dataset) Root() string {
	return d.root
}

// Labels returns the labels in load order.
func (d *Dataset) Labels() []Label {
	return append([]Label(nil), d.labels...)
}

// Samples returns the samples for label. The slice must not be modified.
func (d *Dataset) Samples(label Label) []*image.Gray {
	return d.samples[label]
}

// Has reports whether label has at least one sample.
func (d *Dataset) Has(label Label) bool {
	return len(d.samples[label]) > 0
}

// Len returns the number of labels, including labels without samples.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// Count returns the total number of samples across all labels.
func (d *Dataset) Count() int {
	n := 0
	for _, list := range d.samples {
		n += len(list)
	}
	return n
}

// ToGray converts img to a single-channel image with its origin at (0, 0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
	return gray
}
