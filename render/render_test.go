package render_test

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismplane/model"
	"prismplane/render"
)

// svgStats is what the tests can observe from a parsed document.
type svgStats struct {
	width, height int
	counts        map[string]int
	texts         []string
}

func parseSVG(t *testing.T, doc string) svgStats {
	t.Helper()

	stats := svgStats{counts: make(map[string]int)}
	dec := xml.NewDecoder(strings.NewReader(doc))
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		switch el := tok.(type) {
		case xml.StartElement:
			stats.counts[el.Name.Local]++
			if el.Name.Local == "svg" {
				for _, a := range el.Attr {
					switch a.Name.Local {
					case "width":
						stats.width, err = strconv.Atoi(a.Value)
						require.NoError(t, err)
					case "height":
						stats.height, err = strconv.Atoi(a.Value)
						require.NoError(t, err)
					}
				}
			}
			inText = el.Name.Local == "text"
		case xml.CharData:
			if inText {
				stats.texts = append(stats.texts, string(el))
			}
		case xml.EndElement:
			inText = false
		}
	}
	return stats
}

func TestBuild_StructureForEveryVariant(t *testing.T) {
	cat := model.DefaultCatalog()

	for _, v := range cat.Registry.Variants() {
		t.Run(v.Key, func(t *testing.T) {
			doc := render.Build(v.Key, v.Palette, cat.Geometry, cat.Labels)
			require.NotEmpty(t, doc)

			s := parseSVG(t, doc)
			assert.Equal(t, 1, s.counts["svg"])
			assert.Equal(t, render.CanvasWidth, s.width)
			assert.Equal(t, render.CanvasHeight, s.height)
			assert.Equal(t, 3, s.counts["polygon"], "faces")
			assert.Equal(t, 2, s.counts["line"], "accent lines")
			assert.Equal(t, 3, s.counts["rect"], "background plus two terminal bodies")
			assert.Equal(t, 4, s.counts["circle"], "terminal decorations")
			assert.Equal(t, 0, s.counts["ellipse"])
			assert.Equal(t, 3, s.counts["text"])
		})
	}
}

func TestBuild_EllipseTerminals(t *testing.T) {
	cat := model.DefaultCatalog()
	geo := cat.Geometry
	geo.Terminal = model.TerminalEllipse
	v, err := cat.Registry.Lookup("byd")
	require.NoError(t, err)

	doc := render.Build(v.Key, v.Palette, geo, cat.Labels)
	s := parseSVG(t, doc)

	assert.Equal(t, 4, s.counts["ellipse"])
	assert.Equal(t, 0, s.counts["circle"])
	assert.Equal(t, 3, s.counts["rect"])
	assert.NotContains(t, doc, `rx="10"`, "ellipse bodies have sharp corners")
}

func TestBuild_Deterministic(t *testing.T) {
	cat := model.DefaultCatalog()

	for _, key := range cat.Registry.Keys() {
		first, err := render.Render(cat, key)
		require.NoError(t, err)
		second, err := render.Render(cat, key)
		require.NoError(t, err)
		assert.Equal(t, first, second, key)
	}
}

func TestBuild_CATLColorsAndLabel(t *testing.T) {
	cat := model.DefaultCatalog()

	doc, err := render.Render(cat, "catl")
	require.NoError(t, err)

	assert.Contains(t, doc, "#f6f7f9")
	assert.Contains(t, doc, "#ff7a18")
	assert.Contains(t, doc, "CATL PRISMATIC CELL")

	s := parseSVG(t, doc)
	assert.Equal(t, []string{
		"CATL PRISMATIC CELL",
		"500mm x 100mm x 20mm",
		"Terminals on left/right sides",
	}, s.texts)
}

func TestBuild_CanvasIgnoresGeometry(t *testing.T) {
	cat := model.DefaultCatalog()
	geo := cat.Geometry
	geo.Width = 3000
	geo.Height = 40
	geo.TerminalHeight = 400

	doc := render.Build("sdi", cat.Registry.Variants()[2].Palette, geo, cat.Labels)
	s := parseSVG(t, doc)

	assert.Equal(t, render.CanvasWidth, s.width)
	assert.Equal(t, render.CanvasHeight, s.height)
	assert.Equal(t, 3, s.counts["polygon"])
}

func TestBuild_EscapesLabelText(t *testing.T) {
	cat := model.DefaultCatalog()
	labels := cat.Labels
	labels.Placement = "Left & right <tabs>"

	doc := render.Build("catl", cat.Registry.Variants()[0].Palette, cat.Geometry, labels)
	s := parseSVG(t, doc)

	assert.Equal(t, "Left & right <tabs>", s.texts[2])
}

func TestRender_UnknownVariant(t *testing.T) {
	_, err := render.Render(model.DefaultCatalog(), "lg")
	require.ErrorIs(t, err, model.ErrVariantNotFound)
}

func TestFaces(t *testing.T) {
	f := render.Faces(model.DefaultGeometry())

	assert.Equal(t, render.Quad{{200, 300}, {1300, 300}, {1344, 272}, {244, 272}}, f.Top)
	assert.Equal(t, render.Quad{{1300, 300}, {1300, 520}, {1344, 492}, {1344, 272}}, f.Side)
	assert.Equal(t, render.Quad{{200, 300}, {1300, 300}, {1300, 520}, {200, 520}}, f.Front)
}

func TestTerminalsAndAccents(t *testing.T) {
	g := model.DefaultGeometry()

	terms := render.Terminals(g)
	assert.Equal(t, render.Terminal{X: 172, Y: 370, CenterX: 186, CenterY: 410, EdgeX: 172}, terms[0])
	assert.Equal(t, render.Terminal{X: 1300, Y: 370, CenterX: 1314, CenterY: 410, EdgeX: 1328}, terms[1])

	assert.Equal(t, [2]int{361, 458}, render.AccentLines(g))

	x, y := render.LabelOrigin(g)
	assert.Equal(t, 750, x)
	assert.Equal(t, 421, y)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "BYD PRISMATIC CELL", render.Title("byd", model.DefaultLabels()))
	assert.Equal(t, "BYD", render.Title("byd", model.Labels{}))
}
