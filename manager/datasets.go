package manager

import (
	"context"
	"fmt"
	"slices"

	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/schema"
)

type DatasetState uint8

const (
	DatasetLoading DatasetState = iota
	DatasetLoaded
	DatasetFailed
)

func (s DatasetState) String() string {
	switch s {
	case DatasetLoading:
		return "loading"
	case DatasetLoaded:
		return "loaded"
	case DatasetFailed:
		return "failed"
	default:
		return ""
	}
}

type Dataset struct {
	ID      schema.DatasetID
	Label   string
	Header  string
	Source  executor.Source
	State   DatasetState
	Message string
	Shown   bool
	Rows    int

	// Dimensions follows column order.
	Dimensions []schema.DimensionID
}

// RequestLoad registers a dataset in the loading state and starts decoding
// src in the background. The result arrives through a later Frame.
func (m *Manager) RequestLoad(ctx context.Context, src executor.Source) schema.DatasetID {

	id := m.datasetKeys.Next()

	m.datasets[id] = &Dataset{
		ID:     id,
		Label:  src.Name(),
		Source: src,
		State:  DatasetLoading,
		Shown:  true,
	}
	m.order = append(m.order, id)
	m.redraw.Datasets = true

	m.loader.Start(ctx, id, src)

	return id
}

func (m *Manager) RemoveDataset(id schema.DatasetID) error {
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}
	m.router.Push(DatasetRemoved{Dataset: id})
	return nil
}

func (m *Manager) RenameDataset(id schema.DatasetID, label string) error {
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}
	m.router.Push(DatasetRenamed{Dataset: id, Label: label})
	return nil
}

func (m *Manager) ShowDataset(id schema.DatasetID, shown bool) error {
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}
	m.router.Push(DatasetShown{Dataset: id, Shown: shown})
	return nil
}

func (m *Manager) MoveDataset(id schema.DatasetID, index int) error {
	if _, ok := m.datasets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, id)
	}
	m.router.Push(DatasetMoved{Dataset: id, Index: index})
	return nil
}

// Datasets lists every dataset in display order.
func (m *Manager) Datasets() []Dataset {
	result := make([]Dataset, 0, len(m.order))
	for _, id := range m.order {
		ds := *m.datasets[id]
		ds.Dimensions = slices.Clone(ds.Dimensions)
		result = append(result, ds)
	}
	return result
}

func (m *Manager) Dataset(id schema.DatasetID) (Dataset, bool) {
	ds, ok := m.datasets[id]
	if !ok {
		return Dataset{}, false
	}
	return *ds, true
}

func (m *Manager) FindDataset(label string) (Dataset, bool) {
	for _, id := range m.order {
		if ds := m.datasets[id]; ds.Label == label {
			return *ds, true
		}
	}
	return Dataset{}, false
}

// VisibleRows counts the rows of a dataset no bound excludes.
func (m *Manager) VisibleRows(id schema.DatasetID) int {
	return int(m.filters.VisibleRows(id).GetCardinality())
}

// Counter returns a copy of a dataset's exclusion counter.
func (m *Manager) Counter(id schema.DatasetID) ([]uint32, bool) {
	return m.filters.Counter(id)
}

func (m *Manager) onLoaded(e Loaded) []Event {

	ds, ok := m.datasets[e.Dataset]
	if !ok {
		m.log.Debug("dropping load of removed dataset", "dataset_id", e.Dataset)
		return nil
	}

	if ds.State != DatasetLoading {
		panic(fmt.Sprintf("dataset %s loaded while %s", e.Dataset, ds.State))
	}

	if err := e.Data.Validate(); err != nil {
		return []Event{LoadFailed{Dataset: e.Dataset, Message: err.Error()}}
	}

	var out []Event
	plotting := false

	regs := m.registry.Register(e.Data.Specs)
	m.filters.AddDataset(e.Dataset, e.Data.Rows())

	ds.Dimensions = make([]schema.DimensionID, len(regs))

	for i, reg := range regs {

		dim, ok := m.registry.Get(reg.ID)
		if !ok {
			panic(fmt.Sprintf("registered %s vanished", reg.ID))
		}

		excluded := m.filters.Attach(e.Dataset, reg.ID, e.Data.Columns[i], dim.Bound)
		ds.Dimensions[i] = reg.ID

		if reg.IsNew {
			out = append(out, DimensionAdded{Dimension: reg.ID})
		}

		if m.pendingPlot != "" && dim.OriginalLabel == m.pendingPlot {
			m.pendingPlot = ""
			plotting = true
			out = append(out, PlotSelected{Dimension: reg.ID})
		}

		m.log.Debug("dimension attached", "dataset_id", e.Dataset, "dimension", dim.Label, "excluded", excluded)
	}

	ds.State = DatasetLoaded
	ds.Rows = e.Data.Rows()
	ds.Header = e.Data.Header
	if ds.Source.Label == "" && e.Data.Label != "" {
		ds.Label = e.Data.Label
	}

	if !m.hasPlotted && !plotting && m.pendingPlot == "" {
		if visible := m.registry.Visible(); len(visible) > 0 {
			out = append(out, PlotSelected{Dimension: visible[0].ID})
		}
	}

	m.redraw.all()

	return out
}

func (m *Manager) onLoadFailed(e LoadFailed) {

	ds, ok := m.datasets[e.Dataset]
	if !ok {
		return
	}

	ds.State = DatasetFailed
	ds.Message = e.Message
	m.redraw.Datasets = true

	m.diagnose("dataset %s failed: %s", ds.Label, e.Message)
}

func (m *Manager) onDatasetRemoved(e DatasetRemoved) []Event {

	_, ok := m.datasets[e.Dataset]
	if !ok {
		return nil
	}

	delete(m.datasets, e.Dataset)
	m.order = slices.DeleteFunc(m.order, func(id schema.DatasetID) bool { return id == e.Dataset })
	m.redraw.all()

	if !m.filters.Has(e.Dataset) {
		return nil
	}

	m.filters.RemoveDataset(e.Dataset)

	var out []Event
	plottedGone := false

	for _, dim := range m.registry.Prune(m.filters.References) {
		out = append(out, DimensionRemoved{Dimension: dim})
		if m.hasPlotted && dim == m.plotted {
			plottedGone = true
		}
	}

	if plottedGone {
		m.hasPlotted = false
		if visible := m.registry.Visible(); len(visible) > 0 {
			out = append(out, PlotSelected{Dimension: visible[0].ID})
		}
	}

	return out
}

func (m *Manager) onDatasetRenamed(e DatasetRenamed) {
	if ds, ok := m.datasets[e.Dataset]; ok {
		ds.Label = e.Label
		m.redraw.Datasets = true
		m.redraw.Distribution = true
	}
}

func (m *Manager) onDatasetShown(e DatasetShown) {
	if ds, ok := m.datasets[e.Dataset]; ok && ds.Shown != e.Shown {
		ds.Shown = e.Shown
		m.redraw.Datasets = true
		m.redraw.Distribution = true
	}
}

func (m *Manager) onDatasetMoved(e DatasetMoved) {

	from := slices.Index(m.order, e.Dataset)
	if from < 0 {
		return
	}

	to := max(0, min(e.Index, len(m.order)-1))
	if from == to {
		return
	}

	m.order = slices.Delete(m.order, from, from+1)
	m.order = slices.Insert(m.order, to, e.Dataset)

	m.redraw.Datasets = true
	m.redraw.Distribution = true
}
