package theme

// Metadata is parsed from the comment block that introduces a colour scheme.
type Metadata struct {
	Template string
	Scheme   string
	Accent   string
	Display  string
}

// Stylesheet is one CSS template: shared base rules plus its colour schemes.
type Stylesheet struct {
	Name    string
	BaseCSS string
	Schemes map[string]Scheme
	// order keeps the schemes in file order; the first one is the default.
	order []string
}

// Scheme is a named set of CSS custom properties.
type Scheme struct {
	Name    string
	Accent  string
	Display string
	CSS     string
}
