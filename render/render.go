// Package render draws prismatic cell variants as self-contained SVG documents.
package render

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"

	"prismplane/model"
)

// Canvas size of every generated document.
const (
	CanvasWidth  = 1400
	CanvasHeight = 700
)

const fontFamily = "Arial, Helvetica, sans-serif"

// Build renders one variant. It is a pure function of its arguments: equal
// inputs produce byte-identical output.
func Build(key string, palette model.Palette, geo model.Geometry, labels model.Labels) string {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	canvas.Startview(CanvasWidth, CanvasHeight, 0, 0, CanvasWidth, CanvasHeight)
	canvas.Rect(0, 0, CanvasWidth, CanvasHeight, fill(palette.Background))

	drawBody(canvas, palette, geo)
	drawTerminals(canvas, palette, geo)
	drawLabels(canvas, key, palette, geo, labels)

	canvas.End()
	return buf.String()
}

// Render looks key up in the catalog and builds its document.
func Render(cat *model.Catalog, key string) (string, error) {
	v, err := cat.Registry.Lookup(key)
	if err != nil {
		return "", err
	}
	return Build(v.Key, v.Palette, cat.Geometry, cat.Labels), nil
}

// drawBody paints the top, side and front faces in back-to-front order, then
// the accent lines over the front face.
func drawBody(canvas *svg.SVG, p model.Palette, g model.Geometry) {
	f := Faces(g)

	canvas.Group(attr("stroke", p.Stroke), `stroke-width="2"`, `stroke-linejoin="round"`, `stroke-linecap="round"`)
	canvas.Polygon(f.Top.xs(), f.Top.ys(), fill(p.Top))
	canvas.Polygon(f.Side.xs(), f.Side.ys(), fill(p.Side))
	canvas.Polygon(f.Front.xs(), f.Front.ys(), fill(p.Front))
	for _, y := range AccentLines(g) {
		canvas.Line(g.X, y, g.X+g.Width, y, attr("stroke", p.Accent), `stroke-width="3"`)
	}
	canvas.Gend()
}

func drawTerminals(canvas *svg.SVG, p model.Palette, g model.Geometry) {
	canvas.Group(attr("stroke", p.Stroke), `stroke-width="2"`)
	for _, t := range Terminals(g) {
		switch g.Terminal {
		case model.TerminalEllipse:
			canvas.Rect(t.X, t.Y, g.TerminalLength, g.TerminalHeight, fill(p.Terminal))
			rx, ry := g.TerminalRadiusX, g.TerminalRadiusY
			canvas.Ellipse(t.EdgeX, t.CenterY, rx, ry, fill(p.Terminal), attr("stroke", p.Stroke))
			canvas.Ellipse(t.EdgeX, t.CenterY, rx*45/100, ry*45/100, fill(p.TerminalRing), attr("stroke", p.Stroke))
		default:
			r := g.TerminalCornerRadius
			canvas.Roundrect(t.X, t.Y, g.TerminalLength, g.TerminalHeight, r, r, fill(p.Terminal))
			canvas.Circle(t.CenterX, t.CenterY, g.TerminalHoleRadius, fill(p.Terminal), attr("stroke", p.Stroke))
			canvas.Circle(t.CenterX, t.CenterY, g.TerminalHoleRing, fill(p.TerminalRing), attr("stroke", p.Stroke))
		}
	}
	canvas.Gend()
}

func drawLabels(canvas *svg.SVG, key string, p model.Palette, g model.Geometry, l model.Labels) {
	x, y := LabelOrigin(g)

	canvas.Group(attr("font-family", fontFamily), `text-anchor="middle"`)
	canvas.Text(x, y, Title(key, l), `font-size="36"`, fill(p.Label), `font-weight="700"`)
	canvas.Text(x, y+40, l.Dimensions, `font-size="22"`, fill(p.Label))
	canvas.Text(x, y+72, l.Placement, `font-size="18"`, fill(p.Label))
	canvas.Gend()
}

// Title is the first label line, e.g. "CATL PRISMATIC CELL".
func Title(key string, l model.Labels) string {
	if l.Suffix == "" {
		return strings.ToUpper(key)
	}
	return strings.ToUpper(key) + " " + l.Suffix
}

func fill(color string) string {
	return attr("fill", color)
}

func attr(name, value string) string {
	return fmt.Sprintf("%s=%q", name, value)
}
