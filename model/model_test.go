package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismplane/model"
)

func TestRegistry_LookupAndOrder(t *testing.T) {
	reg := model.NewRegistry(model.DefaultVariants()...)

	assert.Equal(t, []string{"catl", "byd", "sdi"}, reg.Keys())
	assert.Equal(t, 3, reg.Len())

	v, err := reg.Lookup("byd")
	require.NoError(t, err)
	assert.Equal(t, "BYD inspired", v.Title)
	assert.Equal(t, "#1270ff", v.Palette.Accent)
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := model.NewRegistry(model.DefaultVariants()...)

	_, err := reg.Lookup("tesla")
	require.ErrorIs(t, err, model.ErrVariantNotFound)
}

func TestRegistry_Empty(t *testing.T) {
	reg := model.NewRegistry()

	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Keys())
	assert.Empty(t, reg.Variants())

	var nilReg *model.Registry
	_, err := nilReg.Lookup("catl")
	require.ErrorIs(t, err, model.ErrVariantNotFound)
}

func TestRegistry_DuplicateKeysKeepFirst(t *testing.T) {
	first := model.Variant{Key: "catl", Title: "first"}
	second := model.Variant{Key: "catl", Title: "second"}

	reg := model.NewRegistry(first, second)

	require.Equal(t, 1, reg.Len())
	v, err := reg.Lookup("catl")
	require.NoError(t, err)
	assert.Equal(t, "first", v.Title)
}

func TestRegistry_VariantsIsACopy(t *testing.T) {
	reg := model.NewRegistry(model.DefaultVariants()...)

	vs := reg.Variants()
	vs[0].Title = "changed"

	v, err := reg.Lookup("catl")
	require.NoError(t, err)
	assert.Equal(t, "CATL inspired", v.Title)
}

func TestPalette_Validate(t *testing.T) {
	for _, v := range model.DefaultVariants() {
		assert.NoError(t, v.Palette.Validate(), v.Key)
	}

	p := model.DefaultVariants()[0].Palette
	p.Accent = "orange"
	require.ErrorIs(t, p.Validate(), model.ErrInvalidColor)

	p = model.DefaultVariants()[0].Palette
	p.Label = "#fff"
	require.ErrorIs(t, p.Validate(), model.ErrInvalidColor)
}

func TestParseTerminalStyle(t *testing.T) {
	tests := []struct {
		in   string
		want model.TerminalStyle
	}{
		{"", model.TerminalRounded},
		{"rounded", model.TerminalRounded},
		{" Ellipse ", model.TerminalEllipse},
	}
	for _, tt := range tests {
		got, err := model.ParseTerminalStyle(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := model.ParseTerminalStyle("hexagon")
	require.ErrorIs(t, err, model.ErrUnknownTerminalStyle)
}

func TestGeometry_Validate(t *testing.T) {
	g := model.DefaultGeometry()
	require.NoError(t, g.Validate())

	g.Width = 0
	require.ErrorIs(t, g.Validate(), model.ErrInvalidGeometry)

	g = model.DefaultGeometry()
	g.TerminalHeight = g.Height + 50
	assert.NoError(t, g.Validate(), "oversized terminals are not rejected")
}

func TestDefaultCatalog(t *testing.T) {
	cat := model.DefaultCatalog()

	assert.Equal(t, 1100, cat.Geometry.Width)
	assert.Equal(t, "500mm x 100mm x 20mm", cat.Labels.Dimensions)
	assert.Equal(t, 3, cat.Registry.Len())
}

func TestCatalog_Validate(t *testing.T) {
	cat := model.DefaultCatalog()
	require.NoError(t, cat.Validate())

	bad := cat.Registry.Variants()
	bad[1].Palette.Accent = "orange"
	cat.Registry = model.NewRegistry(bad...)
	require.ErrorIs(t, cat.Validate(), model.ErrInvalidColor)

	cat = model.DefaultCatalog()
	cat.Geometry.Height = -1
	require.ErrorIs(t, cat.Validate(), model.ErrInvalidGeometry)
}
