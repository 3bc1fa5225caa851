// Package preview rasterises the cell silhouette to PNG. It reuses the vector
// layout from package render so the raster and SVG outputs stay aligned; text
// is drawn with a fixed bitmap face and does not scale.
package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.trai.ch/zerr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"prismplane/model"
	"prismplane/render"
)

// kappa places cubic control points so four Béziers approximate an ellipse.
const kappa = 0.5522847498

// MaxScale is the largest accepted Scale; larger values are clamped.
const MaxScale = 4

// Options controls the raster size.
type Options struct {
	// Scale multiplies the canvas size; zero means 1.
	Scale float64
}

type colors struct {
	background, front, top, side, stroke, terminal, ring, label, accent color.Color
}

func parseColors(p model.Palette) (colors, error) {
	var c colors
	targets := []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", p.Background, &c.background},
		{"front", p.Front, &c.front},
		{"top", p.Top, &c.top},
		{"side", p.Side, &c.side},
		{"stroke", p.Stroke, &c.stroke},
		{"terminal", p.Terminal, &c.terminal},
		{"terminal_ring", p.TerminalRing, &c.ring},
		{"label", p.Label, &c.label},
		{"accent", p.Accent, &c.accent},
	}
	for _, t := range targets {
		col, err := colorful.Hex(t.hex)
		if err != nil {
			return colors{}, zerr.With(zerr.With(zerr.Wrap(model.ErrInvalidColor, "preview palette"), "field", t.name), "value", t.hex)
		}
		*t.dst = col.Clamped()
	}
	return c, nil
}

type painter struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float32
}

func (p *painter) pt(x, y int) (float32, float32) {
	return float32(x) * p.scale, float32(y) * p.scale
}

func (p *painter) fill(c color.Color) {
	p.z.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
}

func (p *painter) quad(q render.Quad, c color.Color) {
	x, y := p.pt(q[0].X, q[0].Y)
	p.z.MoveTo(x, y)
	for _, v := range q[1:] {
		x, y = p.pt(v.X, v.Y)
		p.z.LineTo(x, y)
	}
	p.z.ClosePath()
	p.fill(c)
}

func (p *painter) rect(x, y, w, h int, c color.Color) {
	p.quad(render.Quad{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
	}, c)
}

func (p *painter) roundRect(x, y, w, h, r int, c color.Color) {
	r = min(r, w/2, h/2)
	if r <= 0 {
		p.rect(x, y, w, h, c)
		return
	}
	x0, y0 := p.pt(x, y)
	x1, y1 := p.pt(x+w, y+h)
	rr := float32(r) * p.scale

	p.z.MoveTo(x0+rr, y0)
	p.z.LineTo(x1-rr, y0)
	p.z.QuadTo(x1, y0, x1, y0+rr)
	p.z.LineTo(x1, y1-rr)
	p.z.QuadTo(x1, y1, x1-rr, y1)
	p.z.LineTo(x0+rr, y1)
	p.z.QuadTo(x0, y1, x0, y1-rr)
	p.z.LineTo(x0, y0+rr)
	p.z.QuadTo(x0, y0, x0+rr, y0)
	p.z.ClosePath()
	p.fill(c)
}

func (p *painter) ellipse(cx, cy, rx, ry int, c color.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x, y := p.pt(cx, cy)
	a := float32(rx) * p.scale
	b := float32(ry) * p.scale
	ka, kb := a*kappa, b*kappa

	p.z.MoveTo(x+a, y)
	p.z.CubeTo(x+a, y+kb, x+ka, y+b, x, y+b)
	p.z.CubeTo(x-ka, y+b, x-a, y+kb, x-a, y)
	p.z.CubeTo(x-a, y-kb, x-ka, y-b, x, y-b)
	p.z.CubeTo(x+ka, y-b, x+a, y-kb, x+a, y)
	p.z.ClosePath()
	p.fill(c)
}

func (p *painter) text(cx, baseline int, s string, c color.Color) {
	face := basicfont.Face7x13
	x, y := p.pt(cx, baseline)
	width := font.MeasureString(face, s).Ceil()
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(x)-width/2, int(y)),
	}
	d.DrawString(s)
}

// Render rasterises one variant. Faces, terminals and accent lines follow the
// same layout as the SVG document; strokes are omitted.
func Render(key string, palette model.Palette, geo model.Geometry, labels model.Labels, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	scale = min(scale, MaxScale)
	c, err := parseColors(palette)
	if err != nil {
		return nil, err
	}

	w := int(math.Round(render.CanvasWidth * scale))
	h := int(math.Round(render.CanvasHeight * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)

	p := &painter{img: img, z: vector.NewRasterizer(w, h), scale: float32(scale)}

	faces := render.Faces(geo)
	p.quad(faces.Top, c.top)
	p.quad(faces.Side, c.side)
	p.quad(faces.Front, c.front)
	for _, y := range render.AccentLines(geo) {
		p.rect(geo.X, y-1, geo.Width, 3, c.accent)
	}

	for _, t := range render.Terminals(geo) {
		switch geo.Terminal {
		case model.TerminalEllipse:
			p.rect(t.X, t.Y, geo.TerminalLength, geo.TerminalHeight, c.terminal)
			p.ellipse(t.EdgeX, t.CenterY, geo.TerminalRadiusX, geo.TerminalRadiusY, c.stroke)
			p.ellipse(t.EdgeX, t.CenterY, geo.TerminalRadiusX-1, geo.TerminalRadiusY-1, c.terminal)
			p.ellipse(t.EdgeX, t.CenterY, geo.TerminalRadiusX*45/100, geo.TerminalRadiusY*45/100, c.ring)
		default:
			p.roundRect(t.X, t.Y, geo.TerminalLength, geo.TerminalHeight, geo.TerminalCornerRadius, c.terminal)
			p.ellipse(t.CenterX, t.CenterY, geo.TerminalHoleRadius, geo.TerminalHoleRadius, c.stroke)
			p.ellipse(t.CenterX, t.CenterY, geo.TerminalHoleRadius-1, geo.TerminalHoleRadius-1, c.terminal)
			p.ellipse(t.CenterX, t.CenterY, geo.TerminalHoleRing, geo.TerminalHoleRing, c.ring)
		}
	}

	x, y := render.LabelOrigin(geo)
	p.text(x, y, render.Title(key, labels), c.label)
	p.text(x, y+40, labels.Dimensions, c.label)
	p.text(x, y+72, labels.Placement, c.label)

	return img, nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return zerr.Wrap(err, "encode png")
	}
	return nil
}

// PNG renders a variant and returns the encoded bytes.
func PNG(key string, palette model.Palette, geo model.Geometry, labels model.Labels, opts Options) ([]byte, error) {
	img, err := Render(key, palette, geo, labels, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
