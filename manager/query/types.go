package query

import (
	"github.com/dot5enko/column-limits/distribution"
	"github.com/dot5enko/column-limits/manager/filters"
	"github.com/dot5enko/column-limits/manager/meta"
	"github.com/dot5enko/column-limits/schema"
)

type State uint8

const (
	StateNoDimension State = iota
	StateNoData
	StateDegenerateRange
	StateReady
)

func (s State) String() string {
	switch s {
	case StateNoDimension:
		return "No dimension selected"
	case StateNoData:
		return "No data after filtering"
	case StateDegenerateRange:
		return "Range too narrow to bin"
	case StateReady:
		return "Ready"
	default:
		return ""
	}
}

type (
	DatasetRef struct {
		ID    schema.DatasetID
		Label string
	}

	Request struct {
		Dimension schema.DimensionID

		// Color splits every dataset into one series per integer value of
		// this dimension
		Color    schema.DimensionID
		HasColor bool

		Resolution    int
		Normalization distribution.Normalization
	}

	Entry struct {
		Dataset schema.DatasetID
		Label   string
		Series  []distribution.Series

		VisibleRows int
	}

	Result struct {
		State     State
		Dimension schema.DimensionID
		Label     string

		Range   schema.BoundsFloat
		Entries []Entry
		Colors  []int64

		// Normalizer is zero when every series scales by its own max bin
		Normalizer uint64
	}

	Input struct {
		Registry *meta.Registry
		Filters  *filters.Store
		Datasets []DatasetRef
	}
)

// Shapes lays every series of the result out as outlines, one slot per entry.
func (r Result) Shapes() [][]distribution.Shape {

	out := make([][]distribution.Shape, len(r.Entries))

	for slot, entry := range r.Entries {
		shapes := make([]distribution.Shape, len(entry.Series))
		for i, s := range entry.Series {
			shapes[i] = distribution.Outline(s.Histogram, slot, len(r.Entries), r.Normalizer)
		}
		out[slot] = shapes
	}

	return out
}

func (r Result) EntryLabels() []string {
	labels := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		labels[i] = e.Label
	}
	return labels
}
