package filters

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/column-limits/bits"
	"github.com/dot5enko/column-limits/ops"
	"github.com/dot5enko/column-limits/schema"
)

type pairKey struct {
	dataset   schema.DatasetID
	dimension schema.DimensionID
}

type attached struct {
	column schema.Column
	bound  schema.Bound
	vector *bits.Bitset
}

type datasetFilters struct {
	rows    int
	counter []uint32
	dims    []schema.DimensionID
}

// Store owns the exclusion vectors of every (dataset, dimension) pair and the
// per-row counters derived from them. For every row the counter equals the
// number of attached vectors that exclude it.
type Store struct {
	pairs       map[pairKey]*attached
	datasets    map[schema.DatasetID]*datasetFilters
	byDimension map[schema.DimensionID][]schema.DatasetID

	log *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		pairs:       map[pairKey]*attached{},
		datasets:    map[schema.DatasetID]*datasetFilters{},
		byDimension: map[schema.DimensionID][]schema.DatasetID{},
		log:         logger,
	}
}

// AddDataset starts tracking a dataset with every row visible.
func (s *Store) AddDataset(id schema.DatasetID, rows int) {

	if _, exists := s.datasets[id]; exists {
		panic(fmt.Sprintf("dataset %s already tracked by filter store", id))
	}

	s.datasets[id] = &datasetFilters{
		rows:    rows,
		counter: make([]uint32, rows),
	}
}

// Attach computes the exclusion vector for column under bound and adds it to
// the dataset's counter.
func (s *Store) Attach(dataset schema.DatasetID, dim schema.DimensionID, column schema.Column, bound schema.Bound) int {

	df, ok := s.datasets[dataset]
	if !ok {
		panic(fmt.Sprintf("attach to unknown dataset %s", dataset))
	}

	key := pairKey{dataset: dataset, dimension: dim}
	if _, dup := s.pairs[key]; dup {
		panic(fmt.Sprintf("dimension %s attached twice to dataset %s", dim, dataset))
	}

	if column.Len() != df.rows {
		panic(fmt.Sprintf("column of %d rows attached to dataset %s of %d rows", column.Len(), dataset, df.rows))
	}

	vec := bits.NewBitset(df.rows)
	excluded := ops.MarkColumnOutside(column, bound, vec)
	ops.AddVector(vec, df.counter)

	s.pairs[key] = &attached{column: column, bound: bound, vector: vec}
	df.dims = append(df.dims, dim)
	s.byDimension[dim] = append(s.byDimension[dim], dataset)

	return excluded
}

// UpdateBound recomputes the vectors of dim in every dataset having it and
// applies only the rows whose bit flipped. Reports whether any row changed.
func (s *Store) UpdateBound(dim schema.DimensionID, bound schema.Bound) bool {

	changedTotal := 0

	for _, dataset := range s.byDimension[dim] {

		pair := s.pairs[pairKey{dataset: dataset, dimension: dim}]
		df := s.datasets[dataset]

		next := bits.NewBitset(df.rows)
		ops.MarkColumnOutside(pair.column, bound, next)

		changed := ops.ApplyTransitions(pair.vector, next, df.counter)
		pair.vector = next
		pair.bound = bound
		changedTotal += changed

		if changed > 0 && s.log.Enabled(context.Background(), slog.LevelDebug) {
			s.log.Debug("filter vector updated",
				"dataset_id", dataset,
				"dimension_id", dim,
				"changed_rows", changed,
				"excluded", next.Count(),
			)
		}
	}

	return changedTotal > 0
}

// RemoveDataset drops the dataset and its vectors, returning the dimensions
// it referenced.
func (s *Store) RemoveDataset(id schema.DatasetID) []schema.DimensionID {

	df, ok := s.datasets[id]
	if !ok {
		return nil
	}

	for _, dim := range df.dims {
		delete(s.pairs, pairKey{dataset: id, dimension: dim})

		remaining := slices.DeleteFunc(s.byDimension[dim], func(d schema.DatasetID) bool { return d == id })
		if len(remaining) == 0 {
			delete(s.byDimension, dim)
		} else {
			s.byDimension[dim] = remaining
		}
	}

	delete(s.datasets, id)

	return df.dims
}

// References reports whether any dataset still has dim attached.
func (s *Store) References(dim schema.DimensionID) bool {
	return len(s.byDimension[dim]) > 0
}

func (s *Store) Has(id schema.DatasetID) bool {
	_, ok := s.datasets[id]
	return ok
}

// Counter returns a copy of the dataset's exclusion counter.
func (s *Store) Counter(id schema.DatasetID) ([]uint32, bool) {
	df, ok := s.datasets[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(df.counter), true
}

func (s *Store) Column(dataset schema.DatasetID, dim schema.DimensionID) (schema.Column, bool) {
	pair, ok := s.pairs[pairKey{dataset: dataset, dimension: dim}]
	if !ok {
		return schema.Column{}, false
	}
	return pair.column, true
}

// VisibleRows returns the rows of a dataset no attached vector excludes.
func (s *Store) VisibleRows(id schema.DatasetID) *roaring.Bitmap {

	df, ok := s.datasets[id]
	if !ok {
		return roaring.New()
	}

	hidden := s.hidden(id, df)
	if hidden == nil || !hidden.Any() {
		rb := roaring.New()
		rb.AddRange(0, uint64(df.rows))
		return rb
	}

	indices := make([]uint32, hidden.Count())
	hidden.ToIndices(indices)

	return roaring.Flip(roaring.BitmapOf(indices...), 0, uint64(df.rows))
}

// hidden ORs every vector of the dataset together, nil when none is attached.
func (s *Store) hidden(id schema.DatasetID, df *datasetFilters) *bits.Bitset {

	var union *bits.Bitset

	for _, dim := range df.dims {
		vec := s.pairs[pairKey{dataset: id, dimension: dim}].vector
		if union == nil {
			union = vec
			continue
		}
		union = bits.MergeOR(union, vec)
	}

	return union
}

// Verify checks every vector of a dataset against its column and bound, then
// recomputes the counter from the vectors and compares it with the stored one.
func (s *Store) Verify(id schema.DatasetID) error {

	df, ok := s.datasets[id]
	if !ok {
		return fmt.Errorf("dataset %s not tracked", id)
	}

	expected := make([]uint32, df.rows)

	for _, dim := range df.dims {

		pair := s.pairs[pairKey{dataset: id, dimension: dim}]

		fresh := bits.NewBitset(df.rows)
		ops.MarkColumnOutside(pair.column, pair.bound, fresh)

		if !fresh.Equal(pair.vector) {
			for row := range df.rows {
				if fresh.Get(row) != pair.vector.Get(row) {
					return fmt.Errorf("vector of %s in dataset %s is stale at row %d under %s", dim, id, row, pair.bound)
				}
			}
		}

		ops.AddVector(pair.vector, expected)
	}

	zeros := 0
	for row := range expected {
		if expected[row] != df.counter[row] {
			return fmt.Errorf("counter mismatch in dataset %s at row %d: stored %d, vectors say %d\n%s",
				id, row, df.counter[row], expected[row], spew.Sdump(df.dims))
		}
		if expected[row] == 0 {
			zeros++
		}
	}

	if visible := s.VisibleRows(id).GetCardinality(); visible != uint64(zeros) {
		return fmt.Errorf("dataset %s has %d rows with a zero counter but %d visible rows", id, zeros, visible)
	}

	return nil
}

// Datasets lists every tracked dataset.
func (s *Store) Datasets() []schema.DatasetID {
	ids := make([]schema.DatasetID, 0, len(s.datasets))
	for id := range s.datasets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
