package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidBound = errors.New("bound is not a finite number")

// Edge is one side of a bound. An unset edge does not constrain anything.
type Edge struct {
	Value float64
	Set   bool
}

func Unset() Edge {
	return Edge{}
}

func At(v float64) Edge {
	return Edge{Value: v, Set: true}
}

func (e Edge) Valid() bool {
	return !e.Set || finite(e.Value)
}

func (e Edge) String() string {
	if !e.Set {
		return ""
	}
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

// ParseEdge turns user text into an edge. Blank text or a lone "-" clears
// the edge.
func ParseEdge(text string) (Edge, error) {

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "-" {
		return Unset(), nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Edge{}, fmt.Errorf("%w: %q", ErrInvalidBound, text)
	}

	if !finite(v) {
		return Edge{}, fmt.Errorf("%w: %q", ErrInvalidBound, text)
	}

	return At(v), nil
}

// Bound is an inclusive [Lower, Upper] constraint on a dimension.
type Bound struct {
	Lower Edge
	Upper Edge
}

func Unbounded() Bound {
	return Bound{}
}

func Between(lower, upper float64) Bound {
	return Bound{Lower: At(lower), Upper: At(upper)}
}

func ParseBound(lower, upper string) (Bound, error) {

	l, err := ParseEdge(lower)
	if err != nil {
		return Bound{}, fmt.Errorf("lower: %w", err)
	}

	u, err := ParseEdge(upper)
	if err != nil {
		return Bound{}, fmt.Errorf("upper: %w", err)
	}

	return Bound{Lower: l, Upper: u}, nil
}

func (b Bound) Validate() error {
	if !b.Lower.Valid() {
		return fmt.Errorf("lower %v: %w", b.Lower.Value, ErrInvalidBound)
	}
	if !b.Upper.Valid() {
		return fmt.Errorf("upper %v: %w", b.Upper.Value, ErrInvalidBound)
	}
	return nil
}

// Outside reports whether v is excluded. Non-finite values are always excluded,
// the edges themselves are inside.
func (b Bound) Outside(v float64) bool {
	if !finite(v) {
		return true
	}
	if b.Lower.Set && v < b.Lower.Value {
		return true
	}
	if b.Upper.Set && v > b.Upper.Value {
		return true
	}
	return false
}

func (b Bound) IsUnbounded() bool {
	return !b.Lower.Set && !b.Upper.Set
}

func (b Bound) String() string {
	lower, upper := "-inf", "+inf"
	if b.Lower.Set {
		lower = b.Lower.String()
	}
	if b.Upper.Set {
		upper = b.Upper.String()
	}
	return "[" + lower + ", " + upper + "]"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
