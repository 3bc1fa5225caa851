package theme

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"prismplane/model"
)

// DefaultTemplate is the stylesheet served when none is requested.
const DefaultTemplate = "gallery"

// Manager holds the parsed stylesheets of the gallery page.
type Manager struct {
	sheets map[string]*Stylesheet
	names  []string
}

// NewManager loads every *.css file in dir of fsys.
func NewManager(fsys fs.FS, dir string) (*Manager, error) {
	m := &Manager{sheets: make(map[string]*Stylesheet)}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "read templates directory"), "dir", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("[theme] skipping %s: %v", entry.Name(), err)
			continue
		}

		name, schemes, baseCSS := ParseStylesheet(string(content))
		if len(schemes) == 0 {
			log.Printf("[theme] no schemes found in %s", entry.Name())
			continue
		}
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".css")
		}

		sheet := &Stylesheet{
			Name:    name,
			BaseCSS: baseCSS,
			Schemes: make(map[string]Scheme, len(schemes)),
		}
		for _, s := range schemes {
			sheet.Schemes[s.Name] = s
			sheet.order = append(sheet.order, s.Name)
		}
		m.sheets[name] = sheet
		m.names = append(m.names, name)
	}

	sort.Slice(m.names, func(i, j int) bool {
		if m.names[i] == DefaultTemplate || m.names[j] == DefaultTemplate {
			return m.names[i] == DefaultTemplate
		}
		return m.names[i] < m.names[j]
	})

	log.Printf("[theme] loaded %d stylesheets", len(m.sheets))
	return m, nil
}

// Stylesheet returns a stylesheet by name, or nil if not found.
func (m *Manager) Stylesheet(name string) *Stylesheet {
	return m.sheets[name]
}

// ListTemplates returns the stylesheet names, default first.
func (m *Manager) ListTemplates() []string {
	return m.names
}

// Schemes returns the schemes of a stylesheet in file order.
func (m *Manager) Schemes(name string) []Scheme {
	sheet, ok := m.sheets[name]
	if !ok {
		return nil
	}
	out := make([]Scheme, 0, len(sheet.order))
	for _, n := range sheet.order {
		out = append(out, sheet.Schemes[n])
	}
	return out
}

// DefaultScheme returns the first scheme of a stylesheet.
func (m *Manager) DefaultScheme(name string) string {
	sheet, ok := m.sheets[name]
	if !ok || len(sheet.order) == 0 {
		return ""
	}
	return sheet.order[0]
}

// CSS returns the scheme rules followed by the base rules. An unknown scheme
// falls back to the stylesheet's first scheme.
func (m *Manager) CSS(name, scheme string) string {
	sheet, ok := m.sheets[name]
	if !ok {
		return ""
	}
	s, ok := sheet.Schemes[scheme]
	if !ok {
		s = sheet.Schemes[sheet.order[0]]
	}
	return s.CSS + "\n" + sheet.BaseCSS
}

// VariantCSS exposes each palette as custom properties on its gallery card,
// so card chrome picks up the cell's accent and background.
func VariantCSS(variants []model.Variant) string {
	var b strings.Builder
	for _, v := range variants {
		fmt.Fprintf(&b, "[data-variant=%q]{--variant-accent:%s;--variant-background:%s;--variant-stroke:%s}\n",
			v.Key, v.Palette.Accent, v.Palette.Background, v.Palette.Stroke)
	}
	return b.String()
}
