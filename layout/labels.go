// Package layout places categorical axis labels below a plot.
package layout

type Box struct {
	Width  float64
	Height float64
}

type Placement struct {
	Left   float64
	Top    float64
	Height float64
	Row    int
}

type row struct {
	rightEdge float64
	height    float64
	used      bool
}

// Place lays boxes out left to right, each centered on its equal-width slot
// across width and pushed into the first row that still has room for it.
// Rows start at -leftMargin so a label may hang into the margin. It fails
// when a label does not fit even on a fresh row; callers should then skip
// the labels altogether.
//
// A row's top is the sum of the heights of the rows above it, taken after
// every label has been placed.
func Place(boxes []Box, width, leftMargin float64) ([]Placement, bool) {

	var rows []row
	placements := make([]Placement, 0, len(boxes))
	slotHalf := width / (2 * float64(len(boxes)))

	for i, box := range boxes {

		natural := slotHalf*float64(2*i+1) - box.Width/2

		for r := 0; ; r++ {

			if r == len(rows) {
				rows = append(rows, row{rightEdge: -leftMargin})
			}

			current := &rows[r]

			if width-current.rightEdge < box.Width {
				if !current.used {
					// fresh row, nothing else to try
					return nil, false
				}
				continue
			}

			left := natural
			if left+box.Width >= width {
				left = width - box.Width
			}
			if left <= current.rightEdge {
				left = current.rightEdge
			}

			if right := left + box.Width; right > current.rightEdge {
				current.rightEdge = right
			}
			if box.Height > current.height {
				current.height = box.Height
			}
			current.used = true

			placements = append(placements, Placement{Left: left, Height: box.Height, Row: r})
			break
		}
	}

	tops := make([]float64, len(rows))
	for r := 1; r < len(rows); r++ {
		tops[r] = tops[r-1] + rows[r-1].height
	}

	for i := range placements {
		placements[i].Top = tops[placements[i].Row]
	}

	return placements, true
}

// Extent is the total height taken by a placement.
func Extent(placements []Placement) float64 {
	var bottom float64
	for _, p := range placements {
		if b := p.Top + p.Height; b > bottom {
			bottom = b
		}
	}
	return bottom
}
