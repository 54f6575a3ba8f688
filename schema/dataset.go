package schema

import (
	"errors"
	"fmt"
)

var (
	ErrColumnCount    = errors.New("column count does not match dimension count")
	ErrRaggedColumns  = errors.New("columns have different lengths")
	ErrDuplicateLabel = errors.New("dimension label repeats within dataset")
	ErrEmptyLabel     = errors.New("dimension label is empty")
)

// DimensionSpec is what a dataset declares about one of its columns.
type DimensionSpec struct {
	Label       string
	Bound       Bound
	Description string
	Kind        NumericKind
}

// Dataset is a decoded file: a label, an optional header text and a set of
// equally long columns, one per dimension spec.
type Dataset struct {
	Label   string
	Header  string
	Columns []Column
	Specs   []DimensionSpec
}

func (d Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return d.Columns[0].Len()
}

func (d Dataset) Validate() error {

	if len(d.Columns) != len(d.Specs) {
		return fmt.Errorf("%w: %d columns, %d specs", ErrColumnCount, len(d.Columns), len(d.Specs))
	}

	rows := d.Rows()
	seen := make(map[string]struct{}, len(d.Specs))

	for i, spec := range d.Specs {

		if d.Columns[i].Len() != rows {
			return fmt.Errorf("%w: %q has %d rows, expected %d", ErrRaggedColumns, spec.Label, d.Columns[i].Len(), rows)
		}

		if spec.Label == "" {
			return fmt.Errorf("%w: column %d", ErrEmptyLabel, i)
		}

		if _, dup := seen[spec.Label]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, spec.Label)
		}
		seen[spec.Label] = struct{}{}

		if err := spec.Bound.Validate(); err != nil {
			return fmt.Errorf("dimension %q: %w", spec.Label, err)
		}
	}

	return nil
}

// InferSpecs builds specs for columns that came without any, one per label.
func InferSpecs(labels []string, columns []Column, uniqueLimit int) []DimensionSpec {

	specs := make([]DimensionSpec, len(columns))
	for i, col := range columns {
		specs[i] = DimensionSpec{
			Label: labels[i],
			Kind:  col.Kind(uniqueLimit),
		}
	}

	return specs
}
