package distribution

type Point struct {
	X float64
	Y float64
}

// Shape is a series drawn in unit space: x grows to the right across slots,
// y grows downward from the top of the range.
type Shape struct {
	Polygons [][]Point
	Mean     Point
	HasMean  bool
}

const barFill = 0.95

// Outline turns a histogram into one closed polygon per run of non-empty
// bins, placed in slot of slots equal columns and scaled by normalizer. A
// zero normalizer scales by the histogram's own max bin.
func Outline(h Histogram, slot, slots int, normalizer uint64) Shape {

	if normalizer == 0 {
		normalizer = h.MaxBin
	}

	var shape Shape

	if normalizer == 0 || slots < 1 || len(h.Bins) == 0 {
		return shape
	}

	n := float64(slots)
	binsTwice := float64(2 * len(h.Bins))
	center := float64(2*slot+1) / (2 * n)
	halfHeight := 1 / binsTwice

	for _, run := range h.Runs() {

		left := make([]Point, 0, 2*len(run))
		right := make([]Point, 0, 2*len(run))

		for _, bin := range run {

			ratio := float64(bin.Count) / float64(normalizer)
			y := 1 - float64(2*bin.Index+1)/binsTwice
			halfWidth := ratio / n / 2 * barFill

			left = append(left,
				Point{X: center - halfWidth, Y: y - halfHeight},
				Point{X: center - halfWidth, Y: y + halfHeight},
			)
			right = append(right,
				Point{X: center + halfWidth, Y: y - halfHeight},
				Point{X: center + halfWidth, Y: y + halfHeight},
			)
		}

		polygon := left
		for i := len(right) - 1; i >= 0; i-- {
			polygon = append(polygon, right[i])
		}

		shape.Polygons = append(shape.Polygons, polygon)
	}

	if h.HasMean() {
		shape.Mean = Point{X: center, Y: 1 - h.MeanHeight}
		shape.HasMean = true
	}

	return shape
}
