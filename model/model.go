package model

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.trai.ch/zerr"
)

// Palette is the set of colours used to paint one cell variant.
type Palette struct {
	Background   string `json:"background" yaml:"background"`
	Front        string `json:"front" yaml:"front"`
	Top          string `json:"top" yaml:"top"`
	Side         string `json:"side" yaml:"side"`
	Stroke       string `json:"stroke" yaml:"stroke"`
	Terminal     string `json:"terminal" yaml:"terminal"`
	TerminalRing string `json:"terminal_ring" yaml:"terminal_ring"`
	Label        string `json:"label" yaml:"label"`
	Accent       string `json:"accent" yaml:"accent"`
}

// Validate checks that every field is an opaque #rrggbb colour.
func (p Palette) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"background", p.Background},
		{"front", p.Front},
		{"top", p.Top},
		{"side", p.Side},
		{"stroke", p.Stroke},
		{"terminal", p.Terminal},
		{"terminal_ring", p.TerminalRing},
		{"label", p.Label},
		{"accent", p.Accent},
	}
	for _, f := range fields {
		// colorful.Hex also accepts the short #rgb form; palettes stay in the long form.
		if _, err := colorful.Hex(f.value); err != nil || len(f.value) != 7 {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidColor, "palette"), "field", f.name), "value", f.value)
		}
	}
	return nil
}

// TerminalStyle selects how the terminals on each end of the cell are decorated.
type TerminalStyle string

const (
	// TerminalRounded draws a rounded body with a concentric bolt hole.
	TerminalRounded TerminalStyle = "rounded"
	// TerminalEllipse draws a plain body with concentric ellipses on its outer edge.
	TerminalEllipse TerminalStyle = "ellipse"
)

// ParseTerminalStyle maps a case-insensitive name to a TerminalStyle.
// An empty name selects the rounded style.
func ParseTerminalStyle(s string) (TerminalStyle, error) {
	switch TerminalStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", TerminalRounded:
		return TerminalRounded, nil
	case TerminalEllipse:
		return TerminalEllipse, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownTerminalStyle, "parse terminal style"), "style", s)
	}
}

// Geometry describes the projected silhouette shared by every variant.
// DepthX/DepthY skew the top and side faces to fake the third dimension.
type Geometry struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
	DepthX int `json:"depth_x" yaml:"depth_x"`
	DepthY int `json:"depth_y" yaml:"depth_y"`

	TerminalLength int           `json:"terminal_length" yaml:"terminal_length"`
	TerminalHeight int           `json:"terminal_height" yaml:"terminal_height"`
	Terminal       TerminalStyle `json:"terminal" yaml:"-"`

	// rounded style
	TerminalCornerRadius int `json:"terminal_corner_radius" yaml:"terminal_corner_radius"`
	TerminalHoleRadius   int `json:"terminal_hole_radius" yaml:"terminal_hole_radius"`
	TerminalHoleRing     int `json:"terminal_hole_ring" yaml:"terminal_hole_ring"`

	// ellipse style
	TerminalRadiusX int `json:"terminal_radius_x" yaml:"terminal_radius_x"`
	TerminalRadiusY int `json:"terminal_radius_y" yaml:"terminal_radius_y"`
}

// Validate checks the positive width and height invariant. A terminal taller
// than the face is allowed; it renders outside the face but is still a valid document.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidGeometry, "width and height must be positive"), "width", g.Width), "height", g.Height)
	}
	return nil
}

// Labels are the three text lines printed on the front face.
type Labels struct {
	Suffix     string `json:"suffix" yaml:"suffix"`
	Dimensions string `json:"dimensions" yaml:"dimensions"`
	Placement  string `json:"placement" yaml:"placement"`
}

// Variant is a named palette with the text shown next to its render.
type Variant struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Palette     Palette `json:"palette"`
}

// Registry is an ordered, read-only set of variants.
type Registry struct {
	variants []Variant
	index    map[string]int
}

// NewRegistry builds a registry preserving the given order. Later duplicates
// of a key are ignored so that every key maps to exactly one palette.
func NewRegistry(variants ...Variant) *Registry {
	r := &Registry{index: make(map[string]int, len(variants))}
	for _, v := range variants {
		if _, dup := r.index[v.Key]; dup {
			continue
		}
		r.index[v.Key] = len(r.variants)
		r.variants = append(r.variants, v)
	}
	return r
}

// Lookup returns the variant for key.
func (r *Registry) Lookup(key string) (Variant, error) {
	if r != nil {
		if i, ok := r.index[key]; ok {
			return r.variants[i], nil
		}
	}
	return Variant{}, zerr.With(zerr.Wrap(ErrVariantNotFound, "lookup variant"), "key", key)
}

// Variants returns a copy of the variants in registry order.
func (r *Registry) Variants() []Variant {
	if r == nil {
		return nil
	}
	out := make([]Variant, len(r.variants))
	copy(out, r.variants)
	return out
}

// Keys returns the variant keys in registry order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.variants))
	for _, v := range r.variants {
		keys = append(keys, v.Key)
	}
	return keys
}

// Len returns the number of variants.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.variants)
}

// Catalog bundles everything the renderers need. It is built once at startup
// and shared by pointer; nothing mutates it afterwards.
type Catalog struct {
	Geometry Geometry
	Labels   Labels
	Registry *Registry
}

// Validate checks the geometry and every registered palette.
func (c *Catalog) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	for _, v := range c.Registry.Variants() {
		if err := v.Palette.Validate(); err != nil {
			return zerr.With(err, "variant", v.Key)
		}
	}
	return nil
}
