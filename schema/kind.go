package schema

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dot5enko/column-limits/lists"
)

type KindTag uint8

const (
	FloatKind KindTag = iota
	IntKind
)

func (k KindTag) String() string {
	switch k {
	case FloatKind:
		return "Float"
	case IntKind:
		return "Int"
	default:
		return ""
	}
}

// NumericKind describes the values a dimension has been seen to take.
//
// For IntKind, Distinct keeps the sorted set of observed values as long as it
// stays within the unique-value limit. Once the limit is crossed Distinct is
// dropped for good and only Min/Max are tracked.
type NumericKind struct {
	Tag      KindTag
	Distinct []int64
	Min      int64
	Max      int64
	Known    bool
}

func Float() NumericKind {
	return NumericKind{Tag: FloatKind}
}

func IntKindOf(values []int64, limit int) NumericKind {

	kind := NumericKind{Tag: IntKind, Known: true}

	bounds, ok := GetMaxMinBounds(values)
	if ok {
		kind.Min, kind.Max = bounds.Min, bounds.Max
	}

	distinct := slices.Clone(values)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	if len(distinct) > limit {
		kind.Known = false
		return kind
	}

	kind.Distinct = distinct
	return kind
}

// Merge combines two observations of the same dimension. Float absorbs Int.
func (k NumericKind) Merge(other NumericKind, limit int) NumericKind {

	if k.Tag == FloatKind || other.Tag == FloatKind {
		return Float()
	}

	merged := NumericKind{Tag: IntKind}

	switch {
	case k.empty():
		merged.Min, merged.Max = other.Min, other.Max
	case other.empty():
		merged.Min, merged.Max = k.Min, k.Max
	default:
		r := Bounds[int64]{Min: k.Min, Max: k.Max}
		r.Morph(Bounds[int64]{Min: other.Min, Max: other.Max})
		merged.Min, merged.Max = r.Min, r.Max
	}

	if !k.Known || !other.Known {
		return merged
	}

	union := lists.Union(k.Distinct, other.Distinct)
	if len(union) > limit {
		return merged
	}

	merged.Known = true
	merged.Distinct = union
	return merged
}

// Trivial kinds have fewer than two distinct values and are hidden from users.
func (k NumericKind) Trivial() bool {
	return k.Tag == IntKind && k.Known && len(k.Distinct) < 2
}

func (k NumericKind) empty() bool {
	return k.Known && len(k.Distinct) == 0
}

func (k NumericKind) String() string {

	if k.Tag == FloatKind {
		return "Float"
	}

	var sb strings.Builder
	sb.WriteString("Int[")
	sb.WriteString(strconv.FormatInt(k.Min, 10))
	sb.WriteString("..")
	sb.WriteString(strconv.FormatInt(k.Max, 10))
	sb.WriteString("]")

	if k.Known {
		sb.WriteString(" distinct=")
		sb.WriteString(strconv.Itoa(len(k.Distinct)))
	}

	return sb.String()
}
