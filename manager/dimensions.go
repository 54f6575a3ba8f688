package manager

import (
	"fmt"
	"strings"

	"github.com/dot5enko/column-limits/manager/meta"
	"github.com/dot5enko/column-limits/schema"
)

// EditBound takes the text of both bound fields. Text that does not parse
// leaves the current bound in place, flags the dimension and returns the
// parse error.
func (m *Manager) EditBound(id schema.DimensionID, lower, upper string) error {

	dim, ok := m.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}

	bound, err := schema.ParseBound(lower, upper)
	if err != nil {
		dim.ParseIssue = true
		m.redraw.Dimensions = true
		return fmt.Errorf("dimension %q: %w", dim.Label, err)
	}

	dim.ParseIssue = false
	m.router.Push(BoundChanged{Dimension: id, Bound: bound})

	return nil
}

func (m *Manager) SetBound(id schema.DimensionID, bound schema.Bound) error {

	if _, ok := m.registry.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}

	if err := bound.Validate(); err != nil {
		return err
	}

	m.router.Push(BoundChanged{Dimension: id, Bound: bound})
	return nil
}

// ResetBound goes back to the bound the dimension was first declared with.
func (m *Manager) ResetBound(id schema.DimensionID) error {

	dim, ok := m.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}

	m.router.Push(BoundChanged{Dimension: id, Bound: dim.OriginalBound})
	return nil
}

func (m *Manager) Rename(id schema.DimensionID, label string) error {

	if _, ok := m.registry.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("dimension %s: empty label", id)
	}

	m.router.Push(LabelChanged{Dimension: id, Label: label})
	return nil
}

// Plot selects the dimension distribution views show.
func (m *Manager) Plot(id schema.DimensionID) error {

	if _, ok := m.registry.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}

	m.router.Push(PlotSelected{Dimension: id})
	return nil
}

func (m *Manager) Plotted() (schema.DimensionID, bool) {
	return m.plotted, m.hasPlotted
}

// Dimension returns a copy of the dimension's current state.
func (m *Manager) Dimension(id schema.DimensionID) (meta.Dimension, bool) {
	dim, ok := m.registry.Get(id)
	if !ok {
		return meta.Dimension{}, false
	}
	return *dim, true
}

// FindDimension resolves a label as currently shown, falling back to the
// original label.
func (m *Manager) FindDimension(label string) (meta.Dimension, bool) {
	dim, ok := m.registry.FindByLabel(label)
	if !ok {
		return meta.Dimension{}, false
	}
	return *dim, true
}

// Dimensions lists every dimension including trivial ones.
func (m *Manager) Dimensions() []meta.Dimension {
	return copyDimensions(m.registry.Dimensions())
}

// VisibleDimensions lists the dimensions offered in pickers.
func (m *Manager) VisibleDimensions() []meta.Dimension {
	return copyDimensions(m.registry.Visible())
}

func (m *Manager) Describe(id schema.DimensionID) string {
	dim, ok := m.registry.Get(id)
	if !ok {
		return ""
	}
	return dim.Describe()
}

func copyDimensions(dims []*meta.Dimension) []meta.Dimension {
	out := make([]meta.Dimension, len(dims))
	for i, d := range dims {
		out[i] = *d
	}
	return out
}

func (m *Manager) onBoundChanged(e BoundChanged) []Event {

	dim, ok := m.registry.Get(e.Dimension)
	if !ok {
		m.log.Warn("bound change for dropped dimension", "dimension_id", e.Dimension)
		return nil
	}

	if err := e.Bound.Validate(); err != nil {
		dim.ParseIssue = true
		m.redraw.Dimensions = true
		m.log.Warn("rejected bound", "dimension", dim.Label, "error", err)
		return nil
	}

	m.registry.SetBound(dim.ID, e.Bound)
	changed := m.filters.UpdateBound(dim.ID, e.Bound)

	m.redraw.Dimensions = true
	out := []Event{DimensionUpdated{Dimension: dim.ID}}

	if changed {
		m.redraw.Distribution = true
		out = append(out, FilteringChanged{Dimension: dim.ID})
	}

	if m.hasPlotted && m.plotted == dim.ID {
		m.redraw.Distribution = true
	}

	m.log.Info("bound applied", "dimension", dim.Label, "bound", e.Bound.String(), "rows_changed", changed)

	return out
}

func (m *Manager) onLabelChanged(e LabelChanged) []Event {

	if !m.registry.Rename(e.Dimension, e.Label) {
		return nil
	}

	m.redraw.Dimensions = true
	if m.hasPlotted && m.plotted == e.Dimension {
		m.redraw.Distribution = true
	}

	return []Event{DimensionUpdated{Dimension: e.Dimension}}
}

func (m *Manager) onPlotSelected(e PlotSelected) {

	if _, ok := m.registry.Get(e.Dimension); !ok {
		return
	}

	if m.hasPlotted && m.plotted == e.Dimension {
		return
	}

	m.plotted = e.Dimension
	m.hasPlotted = true
	m.redraw.Distribution = true
	m.redraw.Dimensions = true
}
