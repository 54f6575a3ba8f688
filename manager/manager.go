package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/manager/filters"
	"github.com/dot5enko/column-limits/manager/meta"
	"github.com/dot5enko/column-limits/manager/query"
	"github.com/dot5enko/column-limits/schema"
	"github.com/fatih/color"
	"github.com/google/uuid"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrUnknownDataset   = errors.New("unknown dataset")
)

// Redraw tells the caller which parts of the screen went stale in a frame.
type Redraw struct {
	Datasets     bool
	Dimensions   bool
	Distribution bool
}

func (r Redraw) Any() bool {
	return r.Datasets || r.Dimensions || r.Distribution
}

func (r *Redraw) all() {
	r.Datasets = true
	r.Dimensions = true
	r.Distribution = true
}

// Manager owns every piece of engine state. It is driven by Frame and is not
// safe for concurrent use; only dataset decoding happens off the frame loop.
type Manager struct {
	config Config
	log    *slog.Logger

	registry *meta.Registry
	filters  *filters.Store
	loader   *executor.Loader
	planner  *query.Planner
	router   *Router

	datasets    map[schema.DatasetID]*Dataset
	order       []schema.DatasetID
	datasetKeys schema.KeyGenerator[schema.DatasetID]

	plotted     schema.DimensionID
	hasPlotted  bool
	pendingPlot string

	views  []*DistributionView
	redraw Redraw

	sessionID uuid.UUID
}

func New(config Config) *Manager {

	config = config.withDefaults()

	sessionID, err := uuid.NewV7()
	if err != nil {
		sessionID = uuid.New()
	}

	return &Manager{
		config:   config,
		log:      config.Logger,
		registry: meta.NewRegistry(config.UniqueValueLimit),
		filters:  filters.NewStore(config.Logger),
		loader: executor.NewLoader(config.Decoder, executor.Config{
			MaxParallel:      config.MaxParallelLoads,
			Logger:           config.Logger,
			ColorDiagnostics: config.ColorDiagnostics,
		}),
		planner:   query.NewPlanner(config.PlannerSlots),
		router:    NewRouter(config.MaxEventIterations),
		datasets:  map[schema.DatasetID]*Dataset{},
		sessionID: sessionID,
	}
}

// Frame collects finished loads, drains every pending event and reports
// what needs redrawing.
func (m *Manager) Frame() Redraw {

	for _, res := range m.loader.Poll() {
		if res.Err != nil {
			m.router.Push(LoadFailed{Dataset: res.Ticket.Dataset, Message: res.Err.Error()})
		} else {
			m.router.Push(Loaded{Dataset: res.Ticket.Dataset, Data: res.Data})
		}
	}

	handled := m.router.Drain(m.handle)
	if handled > 0 {
		m.log.Debug("frame drained", "events", handled)
	}

	r := m.redraw
	m.redraw = Redraw{}

	return r
}

// Push queues events for the next frame.
func (m *Manager) Push(events ...Event) {
	m.router.Push(events...)
}

// WaitLoads blocks until every load started so far has finished. The results
// are picked up by the next Frame.
func (m *Manager) WaitLoads(ctx context.Context) error {
	return m.loader.Wait(ctx)
}

func (m *Manager) PendingLoads() int {
	return m.loader.Pending()
}

func (m *Manager) handle(ev Event) []Event {

	var out []Event

	switch e := ev.(type) {
	case Loaded:
		out = m.onLoaded(e)
	case LoadFailed:
		m.onLoadFailed(e)
	case BoundChanged:
		out = m.onBoundChanged(e)
	case LabelChanged:
		out = m.onLabelChanged(e)
	case DatasetRemoved:
		out = m.onDatasetRemoved(e)
	case DatasetRenamed:
		m.onDatasetRenamed(e)
	case DatasetShown:
		m.onDatasetShown(e)
	case DatasetMoved:
		m.onDatasetMoved(e)
	case PlotSelected:
		m.onPlotSelected(e)
	case FilteringChanged, DimensionAdded, DimensionUpdated, DimensionRemoved:
		// only views care
	default:
		panic(fmt.Sprintf("unhandled event %T", ev))
	}

	for _, v := range m.views {
		v.notify(ev)
	}

	return out
}

// Verify checks the counter invariant of every loaded dataset and that every
// attached dimension is still registered.
func (m *Manager) Verify() error {

	for _, id := range m.filters.Datasets() {

		if err := m.filters.Verify(id); err != nil {
			return err
		}

		ds, ok := m.datasets[id]
		if !ok {
			return fmt.Errorf("filter store tracks %s which the manager does not know: %w", id, ErrUnknownDataset)
		}

		for _, dim := range ds.Dimensions {
			if _, ok := m.registry.Get(dim); !ok {
				return fmt.Errorf("%s references %s: %w", id, dim, ErrUnknownDimension)
			}
		}
	}

	return nil
}

func (m *Manager) diagnose(format string, args ...any) {
	if m.config.ColorDiagnostics {
		color.Yellow(format, args...)
	}
}
