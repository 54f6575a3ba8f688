package query

import (
	"github.com/dot5enko/column-limits/distribution"
	"github.com/dot5enko/column-limits/manager/cache"
	"github.com/dot5enko/column-limits/schema"
)

// Planner turns the current filter state into a distribution result. It
// keeps scratch buffers between calls and is not safe for concurrent use.
type Planner struct {
	values *cache.SlicePool[float64]
	colors *cache.SlicePool[int64]
}

func NewPlanner(slots int) *Planner {
	return &Planner{
		values: cache.NewSlicePool[float64](slots),
		colors: cache.NewSlicePool[int64](slots),
	}
}

// ScratchStats reports how often the value and color buffers were reused.
func (p *Planner) ScratchStats() (values, colors cache.PoolStats) {
	return p.values.Stats(), p.colors.Stats()
}

type collected struct {
	ref DatasetRef

	values   []float64
	valuesID uint16

	colors     []int64
	colorsID   uint16
	colorRange schema.Bounds[int64]
	colored    bool
}

func (p *Planner) release(c *collected) {
	p.values.Return(c.valuesID, c.values)
	if c.colored {
		p.colors.Return(c.colorsID, c.colors)
	}
}

func (p *Planner) Plan(in Input, req Request) Result {

	dim, ok := in.Registry.Get(req.Dimension)
	if !ok {
		return Result{State: StateNoDimension}
	}

	result := Result{
		State:     StateNoData,
		Dimension: dim.ID,
		Label:     dim.Label,
	}

	resolution := req.Resolution
	if resolution < 1 {
		resolution = distribution.DefaultResolution
	}

	var all []*collected
	defer func() {
		for _, c := range all {
			p.release(c)
		}
	}()

	var dataRange schema.BoundsFloat
	haveRange := false

	for _, ref := range in.Datasets {

		col, ok := in.Filters.Column(ref.ID, dim.ID)
		if !ok {
			continue
		}

		visible := in.Filters.VisibleRows(ref.ID)
		rows := int(visible.GetCardinality())

		c := &collected{ref: ref}
		c.values, c.valuesID = p.values.Get(rows)

		var colorInts []int64
		if req.HasColor && req.Color != dim.ID {
			if colorCol, ok := in.Filters.Column(ref.ID, req.Color); ok {
				if ints, isInt := colorCol.Ints(); isInt {
					if r, nonEmpty := schema.GetMaxMinBounds(ints); nonEmpty {
						colorInts = ints
						c.colorRange = r
						c.colored = true
						c.colors, c.colorsID = p.colors.Get(rows)
					}
				}
			}
		}

		it := visible.Iterator()
		for it.HasNext() {
			row := int(it.Next())
			c.values = append(c.values, col.At(row))
			if c.colored {
				c.colors = append(c.colors, colorInts[row])
			}
		}

		all = append(all, c)

		if lo, hi, ok := distribution.Range(c.values); ok {
			r := schema.BoundsFloat{Min: lo, Max: hi}
			if !haveRange {
				dataRange = r
				haveRange = true
			} else {
				dataRange.Morph(r)
			}
		}
	}

	if !haveRange {
		return result
	}

	if dim.Bound.Lower.Set {
		dataRange.Min = dim.Bound.Lower.Value
	}
	if dim.Bound.Upper.Set {
		dataRange.Max = dim.Bound.Upper.Value
	}

	result.Range = dataRange

	if dataRange.Degenerate() {
		result.State = StateDegenerateRange
		return result
	}

	perEntry := make([][]distribution.Series, 0, len(all))

	for _, c := range all {

		var groups []distribution.Group
		if c.colored {
			groups = distribution.Partition(c.values, c.colors, c.colorRange.Min, c.colorRange.Max)
		} else {
			groups = []distribution.Group{{Values: c.values}}
		}

		series := distribution.BinGroups(groups, resolution, dataRange.Min, dataRange.Max)
		if len(series) == 0 {
			continue
		}

		result.Entries = append(result.Entries, Entry{
			Dataset:     c.ref.ID,
			Label:       c.ref.Label,
			Series:      series,
			VisibleRows: len(c.values),
		})
		perEntry = append(perEntry, series)
	}

	if len(result.Entries) == 0 {
		return result
	}

	result.State = StateReady
	result.Normalizer = distribution.Normalizer(req.Normalization, perEntry)
	result.Colors = distribution.Colors(perEntry)

	return result
}
