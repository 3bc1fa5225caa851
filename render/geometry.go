package render

import "prismplane/model"

// Point is a canvas coordinate.
type Point struct {
	X, Y int
}

// Quad is a closed four-point outline.
type Quad [4]Point

func (q Quad) xs() []int {
	return []int{q[0].X, q[1].X, q[2].X, q[3].X}
}

func (q Quad) ys() []int {
	return []int{q[0].Y, q[1].Y, q[2].Y, q[3].Y}
}

// FaceSet holds the three visible faces of the prism.
type FaceSet struct {
	Top   Quad
	Side  Quad
	Front Quad
}

// Faces projects the geometry into its top, right side and front outlines.
// The top and side faces are parallelograms skewed by the depth offset.
func Faces(g model.Geometry) FaceSet {
	x, y, w, h := g.X, g.Y, g.Width, g.Height
	dx, dy := g.DepthX, g.DepthY

	return FaceSet{
		Top: Quad{
			{x, y}, {x + w, y}, {x + w + dx, y + dy}, {x + dx, y + dy},
		},
		Side: Quad{
			{x + w, y}, {x + w, y + h}, {x + w + dx, y + h + dy}, {x + w + dx, y + dy},
		},
		Front: Quad{
			{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h},
		},
	}
}

// AccentLines returns the y positions of the two accent stripes, at 28% and
// 72% of the front face height.
func AccentLines(g model.Geometry) [2]int {
	return [2]int{
		g.Y + g.Height*28/100,
		g.Y + g.Height*72/100,
	}
}

// Terminal is the placement of one terminal tab.
type Terminal struct {
	// X, Y is the top-left corner of the body.
	X, Y int
	// CenterX, CenterY is the body midpoint.
	CenterX, CenterY int
	// EdgeX is the x of the edge facing away from the cell.
	EdgeX int
}

// Terminals returns the left and right terminal placements. Both are centred
// vertically on the front face and sit just outside its left and right edges.
func Terminals(g model.Geometry) [2]Terminal {
	ty := g.Y + (g.Height-g.TerminalHeight)/2
	cy := ty + g.TerminalHeight/2

	leftX := g.X - g.TerminalLength
	rightX := g.X + g.Width

	return [2]Terminal{
		{X: leftX, Y: ty, CenterX: leftX + g.TerminalLength/2, CenterY: cy, EdgeX: leftX},
		{X: rightX, Y: ty, CenterX: rightX + g.TerminalLength/2, CenterY: cy, EdgeX: rightX + g.TerminalLength},
	}
}

// LabelOrigin is the anchor of the first label line: horizontally centred on
// the front face, 55% of the way down.
func LabelOrigin(g model.Geometry) (int, int) {
	return g.X + g.Width/2, g.Y + g.Height*55/100
}
