package model

// DefaultGeometry is the canonical cell silhouette.
func DefaultGeometry() Geometry {
	return Geometry{
		X:                    200,
		Y:                    300,
		Width:                1100,
		Height:               220,
		DepthX:               44,
		DepthY:               -28,
		TerminalLength:       28,
		TerminalHeight:       80,
		Terminal:             TerminalRounded,
		TerminalCornerRadius: 10,
		TerminalHoleRadius:   11,
		TerminalHoleRing:     5,
		TerminalRadiusX:      14,
		TerminalRadiusY:      30,
	}
}

// DefaultLabels are the fixed marketing texts printed on every cell.
func DefaultLabels() Labels {
	return Labels{
		Suffix:     "PRISMATIC CELL",
		Dimensions: "500mm x 100mm x 20mm",
		Placement:  "Terminals on left/right sides",
	}
}

// DefaultVariants returns the shipped variants in display order.
func DefaultVariants() []Variant {
	return []Variant{
		{
			Key:         "catl",
			Title:       "CATL inspired",
			Description: "Dark housing with orange accent lines.",
			Palette: Palette{
				Background:   "#f6f7f9",
				Front:        "#2d3136",
				Top:          "#3a4046",
				Side:         "#24282c",
				Stroke:       "#1b1f22",
				Terminal:     "#cfd3d8",
				TerminalRing: "#8a9098",
				Label:        "#f4f5f7",
				Accent:       "#ff7a18",
			},
		},
		{
			Key:         "byd",
			Title:       "BYD inspired",
			Description: "Cool blue palette with crisp highlights.",
			Palette: Palette{
				Background:   "#f1f6ff",
				Front:        "#e2ecff",
				Top:          "#f3f7ff",
				Side:         "#cddbf2",
				Stroke:       "#9fb4d6",
				Terminal:     "#c6ccd6",
				TerminalRing: "#7f8aa0",
				Label:        "#1d2a44",
				Accent:       "#1270ff",
			},
		},
		{
			Key:         "sdi",
			Title:       "SDI inspired",
			Description: "Neutral industrial tones with balanced contrast.",
			Palette: Palette{
				Background:   "#f7f8fb",
				Front:        "#d9dee6",
				Top:          "#edf0f5",
				Side:         "#c1c9d4",
				Stroke:       "#8a95a5",
				Terminal:     "#d4d7dd",
				TerminalRing: "#7d8796",
				Label:        "#1f2a38",
				Accent:       "#6b7788",
			},
		},
	}
}

// DefaultCatalog assembles the shipped geometry, labels and variants.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Geometry: DefaultGeometry(),
		Labels:   DefaultLabels(),
		Registry: NewRegistry(DefaultVariants()...),
	}
}
