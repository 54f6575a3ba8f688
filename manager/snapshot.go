package manager

import (
	"context"
	"time"

	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/manager/meta"
	"github.com/dot5enko/column-limits/schema"
	"github.com/dot5enko/column-limits/session"
)

// Snapshot captures what a later run needs to rebuild this one. Datasets
// loaded from memory have no path and are left out.
func (m *Manager) Snapshot() session.Snapshot {

	snap := session.Snapshot{
		ID:      m.sessionID,
		SavedAt: time.Now(),
	}

	for _, dim := range m.registry.Dimensions() {
		snap.Dimensions = append(snap.Dimensions, session.DimensionState{
			OriginalLabel: dim.OriginalLabel,
			Label:         dim.Label,
			Bound:         dim.Bound,
		})
	}

	for _, id := range m.order {
		ds := m.datasets[id]
		if ds.Source.Path == "" || ds.Source.Bytes != nil {
			continue
		}
		snap.Datasets = append(snap.Datasets, session.DatasetState{
			Label: ds.Label,
			Path:  ds.Source.Path,
			Shown: ds.Shown,
		})
	}

	if m.hasPlotted {
		if dim, ok := m.registry.Get(m.plotted); ok {
			snap.Plotted = dim.OriginalLabel
		}
	}

	return snap
}

// Restore replays a snapshot: dimension choices are applied to existing
// dimensions and remembered for future ones, and every saved source is
// requested again. It returns the ids of the new loads.
func (m *Manager) Restore(ctx context.Context, snap session.Snapshot) []schema.DatasetID {

	m.sessionID = snap.ID

	for _, d := range snap.Dimensions {

		if err := d.Bound.Validate(); err != nil {
			m.log.Warn("skipping saved dimension", "dimension", d.OriginalLabel, "error", err)
			continue
		}

		existing, ok := m.registry.SetOverride(d.OriginalLabel, meta.Override{Label: d.Label, Bound: d.Bound})
		if !ok {
			continue
		}

		m.router.Push(BoundChanged{Dimension: existing.ID, Bound: d.Bound})
		if d.Label != "" {
			m.router.Push(LabelChanged{Dimension: existing.ID, Label: d.Label})
		}
	}

	if snap.Plotted != "" {
		if dim, ok := m.registry.Lookup(snap.Plotted); ok {
			m.router.Push(PlotSelected{Dimension: dim.ID})
		} else {
			m.pendingPlot = snap.Plotted
		}
	}

	ids := make([]schema.DatasetID, 0, len(snap.Datasets))

	for _, d := range snap.Datasets {
		id := m.RequestLoad(ctx, executor.Source{Path: d.Path, Label: d.Label})
		m.datasets[id].Shown = d.Shown
		ids = append(ids, id)
	}

	m.log.Info("session restored", "session", snap.ID, "dimensions", len(snap.Dimensions), "datasets", len(ids))

	return ids
}
