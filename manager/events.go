package manager

import "github.com/dot5enko/column-limits/schema"

// Event is the closed set of things that can happen in a frame. Every
// handler switches over all of them and panics on anything else.
type Event interface {
	isEvent()
}

type (
	// Loaded carries a decoded dataset back from the loader.
	Loaded struct {
		Dataset schema.DatasetID
		Data    schema.Dataset
	}

	LoadFailed struct {
		Dataset schema.DatasetID
		Message string
	}

	BoundChanged struct {
		Dimension schema.DimensionID
		Bound     schema.Bound
	}

	LabelChanged struct {
		Dimension schema.DimensionID
		Label     string
	}

	DatasetRemoved struct {
		Dataset schema.DatasetID
	}

	DatasetRenamed struct {
		Dataset schema.DatasetID
		Label   string
	}

	DatasetShown struct {
		Dataset schema.DatasetID
		Shown   bool
	}

	DatasetMoved struct {
		Dataset schema.DatasetID
		Index   int
	}

	PlotSelected struct {
		Dimension schema.DimensionID
	}

	// FilteringChanged is emitted when at least one row flipped visibility.
	FilteringChanged struct {
		Dimension schema.DimensionID
	}

	DimensionAdded struct {
		Dimension schema.DimensionID
	}

	// DimensionUpdated is emitted after a dimension's bound or label changed.
	DimensionUpdated struct {
		Dimension schema.DimensionID
	}

	DimensionRemoved struct {
		Dimension schema.DimensionID
	}
)

func (Loaded) isEvent()           {}
func (LoadFailed) isEvent()       {}
func (BoundChanged) isEvent()     {}
func (LabelChanged) isEvent()     {}
func (DatasetRemoved) isEvent()   {}
func (DatasetRenamed) isEvent()   {}
func (DatasetShown) isEvent()     {}
func (DatasetMoved) isEvent()     {}
func (PlotSelected) isEvent()     {}
func (FilteringChanged) isEvent() {}
func (DimensionAdded) isEvent()   {}
func (DimensionUpdated) isEvent() {}
func (DimensionRemoved) isEvent() {}
