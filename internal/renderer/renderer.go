package renderer

import (
	"fmt"
	"strings"

	"github.com/Akaiko1/digit-viewer/internal/dataset"
)

const (
	// Icons
	folderIcon = "📁"
	emptyIcon  = "∅"

	// Tree drawing characters
	treeBranch     = "├──"
	treeLastBranch = "└──"
)

// SummaryRenderer defines the interface for describing a loaded dataset as text.
type SummaryRenderer interface {
	RenderSummary(ds *dataset.Dataset) string
}

// StandardSummaryRenderer lists every label with its sample count as a one-level tree.
type StandardSummaryRenderer struct{}

// RenderSummary renders the dataset as a formatted string.
func (r *StandardSummaryRenderer) RenderSummary(ds *dataset.Dataset) string {
	if ds == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Dataset: %s (%d labels, %d samples)\n", ds.Root(), ds.Len(), ds.Count()))

	labels := ds.Labels()
	for i, label := range labels {
		connector := treeBranch
		if i == len(labels)-1 {
			connector = treeLastBranch
		}
		r.renderLabel(&builder, connector, label, len(ds.Samples(label)))
	}

	return builder.String()
}

// renderLabel writes a single label line.
func (r *StandardSummaryRenderer) renderLabel(builder *strings.Builder, connector string, label dataset.Label, count int) {
	icon := folderIcon
	if count == 0 {
		icon = emptyIcon
	}
	noun := "samples"
	if count == 1 {
		noun = "sample"
	}
	builder.WriteString(fmt.Sprintf("%s %s %s/ %d %s\n", connector, icon, label, count, noun))
}
