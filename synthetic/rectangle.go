// Package synthetic builds evenly spaced datasets for demos and tests.
package synthetic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/schema"
)

var ErrBadSource = errors.New("not a synthetic source")

// Scheme prefixes source paths handled by Decoder.
const Scheme = "rect:"

type Spec struct {
	Label string
	Min   float64
	Max   float64
}

// Rectangle makes a dataset of rows rows. It always has integer "column"
// and "row" dimensions counting up from the top-left corner, followed by one
// dimension per spec whose values step evenly from Min to Max.
func Rectangle(label string, rows int, topLeftColumn, topLeftRow int64, specs []Spec, uniqueLimit int) (schema.Dataset, error) {

	columnValues := make([]int64, rows)
	rowValues := make([]int64, rows)
	for i := 0; i < rows; i++ {
		columnValues[i] = topLeftColumn + int64(i)
		rowValues[i] = topLeftRow + int64(i)
	}

	ds := schema.Dataset{
		Label:   label,
		Columns: []schema.Column{schema.IntColumn(columnValues), schema.IntColumn(rowValues)},
	}
	labels := []string{"column", "row"}

	for _, spec := range specs {

		for _, existing := range labels {
			if existing == spec.Label {
				return schema.Dataset{}, fmt.Errorf("label %q occurs multiple times: %w", spec.Label, schema.ErrDuplicateLabel)
			}
		}
		labels = append(labels, spec.Label)

		values := make([]float64, rows)
		delta := spec.Max - spec.Min
		for i := range values {
			if rows < 2 {
				values[i] = spec.Min
				continue
			}
			values[i] = spec.Min + float64(i)*delta/float64(rows-1)
		}

		ds.Columns = append(ds.Columns, schema.ColumnFromFloats(values))
	}

	ds.Header = strings.Join(labels, ",")
	ds.Specs = schema.InferSpecs(labels, ds.Columns, uniqueLimit)

	return ds, nil
}

// Simple is the two-dimension rectangle used throughout the tests.
func Simple(rows int) schema.Dataset {
	ds, err := Rectangle("simple", rows, 0, 0, []Spec{{Label: "d1", Min: 0, Max: 1}, {Label: "d2", Min: 1, Max: 10}}, 256)
	if err != nil {
		panic(err)
	}
	return ds
}

// WithGroups appends an integer "group" dimension cycling through groups
// values.
func WithGroups(ds schema.Dataset, groups int, uniqueLimit int) schema.Dataset {

	values := make([]int64, ds.Rows())
	for i := range values {
		values[i] = int64(i % groups)
	}

	col := schema.IntColumn(values)
	ds.Columns = append(ds.Columns, col)
	ds.Specs = append(ds.Specs, schema.DimensionSpec{Label: "group", Kind: col.Kind(uniqueLimit)})
	ds.Header += ",group"

	return ds
}

// ParseSource reads "rect:<rows>" or "rect:<rows>:<groups>".
func ParseSource(path string) (rows, groups int, err error) {

	if !strings.HasPrefix(path, Scheme) {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSource, path)
	}

	parts := strings.Split(strings.TrimPrefix(path, Scheme), ":")
	if len(parts) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadSource, path)
	}

	if rows, err = strconv.Atoi(parts[0]); err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("%w: bad row count in %q", ErrBadSource, path)
	}

	if len(parts) == 2 {
		if groups, err = strconv.Atoi(parts[1]); err != nil || groups < 1 {
			return 0, 0, fmt.Errorf("%w: bad group count in %q", ErrBadSource, path)
		}
	}

	return rows, groups, nil
}

// Decoder generates datasets for rect: sources and hands anything else to
// fallback, which may be nil.
func Decoder(uniqueLimit int, fallback executor.Decoder) executor.Decoder {
	return executor.DecoderFunc(func(ctx context.Context, src executor.Source) (schema.Dataset, error) {

		if !strings.HasPrefix(src.Path, Scheme) {
			if fallback == nil {
				return schema.Dataset{}, fmt.Errorf("%w: %q", ErrBadSource, src.Path)
			}
			return fallback.Decode(ctx, src)
		}

		rows, groups, err := ParseSource(src.Path)
		if err != nil {
			return schema.Dataset{}, err
		}

		ds, err := Rectangle(src.Name(), rows, 0, 0, []Spec{
			{Label: "d1", Min: 0, Max: 1},
			{Label: "d2", Min: 1, Max: 10},
		}, uniqueLimit)
		if err != nil {
			return schema.Dataset{}, err
		}

		if groups > 0 {
			ds = WithGroups(ds, groups, uniqueLimit)
		}

		return ds, ctx.Err()
	})
}
