package main

import (
	"math/rand"
	"testing"

	"github.com/dot5enko/column-limits/schema"
)

func BenchmarkMinMaxRand(b *testing.B) {

	size := 40000

	input := make([]uint64, size)

	for i := 0; i < size; i++ {
		val := uint64(rand.Int63n(50000))
		input[i] = val
	}

	var result schema.Bounds[uint64]

	for b.Loop() {
		result, _ = schema.GetMaxMinBounds(input)
	}

	b.Logf("min : %d, max : %d", result.Min, result.Max)
}

func TestMinMaxFloat(t *testing.T) {

	minVal := -10.0
	maxVal := 7000.0

	input := []float64{minVal, maxVal, 1, 2, 3, 4, 5, 6, 0.0, 1000}

	result, ok := schema.GetMaxMinBounds(input[:])

	if !ok {
		t.Fatalf("expected bounds for non-empty input")
	}

	if result.Max != maxVal {
		t.Errorf("Expected %.2f but got %.2f", maxVal, result.Max)
	}

	if result.Min != minVal {
		t.Errorf("Expected %.2f but got %.2f", minVal, result.Min)
	}
}

func TestMinMaxEmpty(t *testing.T) {
	if _, ok := schema.GetMaxMinBounds([]int64{}); ok {
		t.Errorf("empty input must not produce bounds")
	}
}

func TestBoundsMorph(t *testing.T) {

	acc := schema.BoundsFloat{Min: 1, Max: 2}

	if !acc.Morph(schema.BoundsFloat{Min: 0, Max: 1.5}) {
		t.Errorf("expected morph to widen the lower side")
	}

	if acc.Morph(schema.BoundsFloat{Min: 0.5, Max: 1}) {
		t.Errorf("range inside must not change anything")
	}

	if acc.Min != 0 || acc.Max != 2 {
		t.Errorf("unexpected bounds %+v", acc)
	}
}
