package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dot5enko/column-limits/schema"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

type Ticket struct {
	ID      uuid.UUID
	Dataset schema.DatasetID
	Source  Source
	Started time.Time
}

type Result struct {
	Ticket Ticket
	Data   schema.Dataset
	Err    error
	Took   time.Duration
	Shared bool
}

type Config struct {
	MaxParallel      int64
	Logger           *slog.Logger
	ColorDiagnostics bool
}

type unit struct {
	ticket Ticket
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Loader decodes datasets off the frame loop. Each Start spawns one unit of
// work; Poll collects the finished ones without blocking. Start and Poll must
// be called from the same goroutine. Units cannot be cancelled; a caller that
// no longer wants a result drops it when it arrives.
type Loader struct {
	decoder Decoder
	sem     *semaphore.Weighted
	group   singleflight.Group

	inflight []*unit

	log              *slog.Logger
	colorDiagnostics bool
}

func NewLoader(decoder Decoder, cfg Config) *Loader {

	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = 1
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Loader{
		decoder:          decoder,
		sem:              semaphore.NewWeighted(cfg.MaxParallel),
		log:              cfg.Logger,
		colorDiagnostics: cfg.ColorDiagnostics,
	}
}

func (l *Loader) Start(ctx context.Context, dataset schema.DatasetID, src Source) Ticket {

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	ticket := Ticket{
		ID:      id,
		Dataset: dataset,
		Source:  src,
		Started: time.Now(),
	}

	uctx, cancel := context.WithCancel(ctx)
	u := &unit{
		ticket: ticket,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	u.result.Ticket = ticket

	l.inflight = append(l.inflight, u)

	l.log.Info("load started", "ticket", id, "dataset_id", dataset, "source", src.Name())

	go l.run(uctx, u)

	return ticket
}

func (l *Loader) run(ctx context.Context, u *unit) {

	defer close(u.done)
	defer func() {
		if r := recover(); r != nil {
			u.result.Err = fmt.Errorf("decoder panicked: %v", r)
		}
	}()

	if l.decoder == nil {
		u.result.Err = ErrNoDecoder
		return
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		u.result.Err = err
		return
	}
	defer l.sem.Release(1)

	started := time.Now()
	src := u.ticket.Source

	if key := src.Key(); key != "" {
		// the flight serves every unit with this key, not just the one that started it
		shared := context.WithoutCancel(ctx)
		v, err, wasShared := l.group.Do(key, func() (any, error) {
			return l.decoder.Decode(shared, src)
		})
		u.result.Err = err
		u.result.Shared = wasShared
		if ds, ok := v.(schema.Dataset); ok {
			u.result.Data = ds
		}
	} else {
		u.result.Data, u.result.Err = l.decoder.Decode(ctx, src)
	}

	u.result.Took = time.Since(started)
}

// Poll returns every unit that has finished since the last call.
func (l *Loader) Poll() []Result {

	var finished []Result
	pending := l.inflight[:0]

	for _, u := range l.inflight {
		select {
		case <-u.done:
			u.cancel()
			finished = append(finished, u.result)
			l.report(u.result)
		default:
			pending = append(pending, u)
		}
	}

	for i := len(pending); i < len(l.inflight); i++ {
		l.inflight[i] = nil
	}
	l.inflight = pending

	return finished
}

func (l *Loader) report(res Result) {

	if res.Err != nil {
		l.log.Warn("load failed", "ticket", res.Ticket.ID, "dataset_id", res.Ticket.Dataset, "error", res.Err)
		if l.colorDiagnostics {
			color.Red("load of %s failed: %s", res.Ticket.Source.Name(), res.Err.Error())
		}
		return
	}

	l.log.Info("load finished",
		"ticket", res.Ticket.ID,
		"dataset_id", res.Ticket.Dataset,
		"rows", res.Data.Rows(),
		"took", res.Took,
		"shared", res.Shared,
	)
	if l.colorDiagnostics {
		color.Green(" +++ loaded %s: %d rows, %d columns in %.2fms", res.Ticket.Source.Name(), res.Data.Rows(), len(res.Data.Columns), res.Took.Seconds()*1000)
	}
}

func (l *Loader) Pending() int {
	return len(l.inflight)
}

// Wait blocks until every unit started so far has finished.
func (l *Loader) Wait(ctx context.Context) error {
	for _, u := range l.inflight {
		select {
		case <-u.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
