package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is used when the caller has no font of its own.
var DefaultFace font.Face = basicfont.Face7x13

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Measure returns the box text takes when drawn with face.
func Measure(face font.Face, text string) Box {
	if face == nil {
		face = DefaultFace
	}
	return Box{
		Width:  toFloat(font.MeasureString(face, text)),
		Height: toFloat(face.Metrics().Height),
	}
}

func MeasureAll(face font.Face, labels []string) []Box {
	boxes := make([]Box, len(labels))
	for i, l := range labels {
		boxes[i] = Measure(face, l)
	}
	return boxes
}

// PlaceLabels measures and places labels in one go.
func PlaceLabels(face font.Face, labels []string, width, leftMargin float64) ([]Placement, bool) {
	return Place(MeasureAll(face, labels), width, leftMargin)
}
