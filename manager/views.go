package manager

import (
	"fmt"

	"github.com/dot5enko/column-limits/distribution"
	"github.com/dot5enko/column-limits/layout"
	"github.com/dot5enko/column-limits/manager/query"
	"github.com/dot5enko/column-limits/schema"
	"golang.org/x/image/font"
)

// DistributionView shows the plotted dimension of every shown dataset. It
// recomputes lazily: events only mark it stale, Result does the work.
type DistributionView struct {
	m *Manager

	color    schema.DimensionID
	hasColor bool

	resolution    int
	normalization distribution.Normalization

	stale      bool
	result     query.Result
	recomputes int
}

func (m *Manager) NewDistributionView() *DistributionView {

	v := &DistributionView{
		m:          m,
		resolution: m.config.Resolution,
		stale:      true,
	}
	m.views = append(m.views, v)

	return v
}

// Close detaches the view from the manager.
func (v *DistributionView) Close() {
	for i, other := range v.m.views {
		if other == v {
			v.m.views = append(v.m.views[:i], v.m.views[i+1:]...)
			return
		}
	}
}

func (v *DistributionView) ColorBy(id schema.DimensionID) error {
	if _, ok := v.m.registry.Get(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDimension, id)
	}
	v.color, v.hasColor = id, true
	v.stale = true
	return nil
}

func (v *DistributionView) ClearColor() {
	if v.hasColor {
		v.hasColor = false
		v.stale = true
	}
}

func (v *DistributionView) SetResolution(bins int) {
	if bins < 1 {
		bins = distribution.DefaultResolution
	}
	if bins != v.resolution {
		v.resolution = bins
		v.stale = true
	}
}

func (v *DistributionView) SetNormalization(n distribution.Normalization) {
	if n != v.normalization {
		v.normalization = n
		v.stale = true
	}
}

func (v *DistributionView) Stale() bool {
	return v.stale
}

func (v *DistributionView) Recomputes() int {
	return v.recomputes
}

func (v *DistributionView) notify(ev Event) {

	switch e := ev.(type) {
	case Loaded, DatasetRemoved, DatasetRenamed, DatasetShown, DatasetMoved,
		FilteringChanged, PlotSelected:
		v.stale = true
	case DimensionUpdated:
		if e.Dimension == v.result.Dimension || (v.hasColor && e.Dimension == v.color) {
			v.stale = true
		}
	case DimensionRemoved:
		if v.hasColor && e.Dimension == v.color {
			v.hasColor = false
		}
		v.stale = true
	case DimensionAdded:
		if v.result.State == query.StateNoDimension {
			v.stale = true
		}
	case LoadFailed, BoundChanged, LabelChanged:
		// their effects arrive as follow-up events
	default:
		panic(fmt.Sprintf("view got unhandled event %T", ev))
	}
}

// Result returns the current distribution, recomputing it if anything it
// depends on changed since the last call.
func (v *DistributionView) Result() query.Result {

	if !v.stale {
		return v.result
	}

	v.stale = false
	v.recomputes++

	if !v.m.hasPlotted {
		v.result = query.Result{State: query.StateNoDimension}
		return v.result
	}

	v.result = v.m.planner.Plan(v.m.planInput(), query.Request{
		Dimension:     v.m.plotted,
		Color:         v.color,
		HasColor:      v.hasColor,
		Resolution:    v.resolution,
		Normalization: v.normalization,
	})

	values, _ := v.m.planner.ScratchStats()
	v.m.log.Debug("distribution recomputed",
		"dimension_id", v.result.Dimension,
		"state", v.result.State.String(),
		"entries", len(v.result.Entries),
		"scratch_gets", values.Gets,
		"scratch_reused", values.Reused,
	)

	return v.result
}

// Labels places the entry labels of the current result under a plot of the
// given width. ok is false when they do not fit and should not be drawn.
func (v *DistributionView) Labels(face font.Face, width, leftMargin float64) ([]layout.Placement, bool) {
	return layout.PlaceLabels(face, v.Result().EntryLabels(), width, leftMargin)
}

func (m *Manager) planInput() query.Input {

	refs := make([]query.DatasetRef, 0, len(m.order))
	for _, id := range m.order {
		ds := m.datasets[id]
		if ds.State != DatasetLoaded || !ds.Shown {
			continue
		}
		refs = append(refs, query.DatasetRef{ID: id, Label: ds.Label})
	}

	return query.Input{
		Registry: m.registry,
		Filters:  m.filters,
		Datasets: refs,
	}
}
