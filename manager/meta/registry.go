package meta

import (
	"fmt"
	"strings"

	"github.com/dot5enko/column-limits/schema"
)

// Dimension is the canonical, cross-dataset record for one original label.
type Dimension struct {
	ID            schema.DimensionID
	OriginalLabel string
	Label         string

	Bound         schema.Bound
	OriginalBound schema.Bound

	Description string
	Kind        schema.NumericKind

	// ParseIssue is set while the last text entered for the bound did not parse.
	ParseIssue bool
}

func (d *Dimension) Trivial() bool {
	return d.Kind.Trivial()
}

func (d *Dimension) Describe() string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s %s", d.Label, d.Kind, d.Bound)
	if d.Label != d.OriginalLabel {
		fmt.Fprintf(&sb, " (was %q)", d.OriginalLabel)
	}
	if d.Description != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Description)
	}

	return sb.String()
}

type Registration struct {
	ID    schema.DimensionID
	IsNew bool
}

// Override is a user choice that outlives the dimension it was made on,
// applied when a dimension with the same original label registers.
type Override struct {
	Label string
	Bound schema.Bound
}

// Registry dedups dimensions by their original label. It is owned by the
// manager and only touched from the frame loop.
type Registry struct {
	dimensions map[schema.DimensionID]*Dimension
	byLabel    map[string]schema.DimensionID
	order      []schema.DimensionID

	overrides map[string]Override

	keys        schema.KeyGenerator[schema.DimensionID]
	uniqueLimit int
}

func NewRegistry(uniqueLimit int) *Registry {
	return &Registry{
		dimensions:  map[schema.DimensionID]*Dimension{},
		byLabel:     map[string]schema.DimensionID{},
		overrides:   map[string]Override{},
		uniqueLimit: uniqueLimit,
	}
}

// Register maps each spec to a dimension, creating the ones not seen before.
// An existing dimension keeps its bound and label, only its kind is merged.
func (r *Registry) Register(specs []schema.DimensionSpec) []Registration {

	result := make([]Registration, len(specs))

	for i, spec := range specs {

		if id, ok := r.byLabel[spec.Label]; ok {
			dim := r.dimensions[id]
			dim.Kind = dim.Kind.Merge(spec.Kind, r.uniqueLimit)
			result[i] = Registration{ID: id}
			continue
		}

		id := r.keys.Next()
		dim := &Dimension{
			ID:            id,
			OriginalLabel: spec.Label,
			Label:         spec.Label,
			Bound:         spec.Bound,
			OriginalBound: spec.Bound,
			Description:   spec.Description,
			Kind:          spec.Kind,
		}

		if o, ok := r.overrides[spec.Label]; ok {
			if o.Label != "" {
				dim.Label = o.Label
			}
			dim.Bound = o.Bound
		}

		r.dimensions[id] = dim
		r.byLabel[spec.Label] = id
		r.order = append(r.order, id)

		result[i] = Registration{ID: id, IsNew: true}
	}

	return result
}

func (r *Registry) Get(id schema.DimensionID) (*Dimension, bool) {
	dim, ok := r.dimensions[id]
	return dim, ok
}

func (r *Registry) Lookup(originalLabel string) (*Dimension, bool) {
	id, ok := r.byLabel[originalLabel]
	if !ok {
		return nil, false
	}
	return r.dimensions[id], true
}

// FindByLabel resolves the label currently shown to the user.
func (r *Registry) FindByLabel(label string) (*Dimension, bool) {
	for _, id := range r.order {
		if dim := r.dimensions[id]; dim.Label == label {
			return dim, true
		}
	}
	return r.Lookup(label)
}

// Dimensions lists every live dimension in registration order.
func (r *Registry) Dimensions() []*Dimension {
	result := make([]*Dimension, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.dimensions[id])
	}
	return result
}

// Visible lists the dimensions worth showing: everything except trivial kinds.
func (r *Registry) Visible() []*Dimension {
	result := make([]*Dimension, 0, len(r.order))
	for _, id := range r.order {
		if dim := r.dimensions[id]; !dim.Trivial() {
			result = append(result, dim)
		}
	}
	return result
}

func (r *Registry) Len() int {
	return len(r.order)
}

// SetBound stores a bound that has already been validated.
func (r *Registry) SetBound(id schema.DimensionID, bound schema.Bound) bool {
	dim, ok := r.dimensions[id]
	if !ok {
		return false
	}
	dim.Bound = bound
	dim.ParseIssue = false
	return true
}

func (r *Registry) Rename(id schema.DimensionID, label string) bool {
	dim, ok := r.dimensions[id]
	if !ok || dim.Label == label {
		return false
	}
	dim.Label = label
	return true
}

// SetOverride records a label and bound for an original label, applied to
// any dimension registering with it from now on. A dimension that already
// exists is returned untouched; the caller routes the change through the
// usual bound and label updates.
func (r *Registry) SetOverride(originalLabel string, o Override) (*Dimension, bool) {
	r.overrides[originalLabel] = o
	return r.Lookup(originalLabel)
}

// Prune removes every dimension no dataset references any more and returns
// their ids. Ids are never reused.
func (r *Registry) Prune(referenced func(schema.DimensionID) bool) []schema.DimensionID {

	var removed []schema.DimensionID
	kept := r.order[:0]

	for _, id := range r.order {
		if referenced(id) {
			kept = append(kept, id)
			continue
		}

		dim := r.dimensions[id]
		delete(r.byLabel, dim.OriginalLabel)
		delete(r.dimensions, id)
		removed = append(removed, id)
	}

	r.order = kept

	return removed
}
