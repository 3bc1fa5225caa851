// Package gallery lays the generated assets out in an HTML page.
package gallery

import (
	"encoding/base64"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"prismplane/model"
	"prismplane/storage"
)

// Card is one variant as shown on the page.
type Card struct {
	Key         string
	Title       string
	Description string
	// Path is the resolved asset file path.
	Path    string
	DataURI template.URL
	Digest  string
}

// Page is the data handed to the page template.
type Page struct {
	Title      string
	Scheme     string
	Badges     []string
	Cards      []Card
	Labels     model.Labels
	AssetsDir  string
	AppVersion string
	Year       int
}

// MissingAssetsError names every asset file that has not been generated.
// It matches model.ErrMissingAssets with errors.Is.
type MissingAssetsError struct {
	Files []string
}

func (e *MissingAssetsError) Error() string {
	return "Missing SVG assets: " + strings.Join(e.Files, ", ")
}

func (e *MissingAssetsError) Is(target error) bool {
	return target == model.ErrMissingAssets
}

// Gallery reads assets from a store and renders the page template.
type Gallery struct {
	catalog *model.Catalog
	store   *storage.Store
	tmpl    *template.Template

	// Scheme is the colour scheme applied to the page.
	Scheme     string
	AppVersion string
}

// New parses the page template at name inside fsys.
func New(catalog *model.Catalog, store *storage.Store, fsys fs.FS, name string) (*Gallery, error) {
	tmpl, err := template.ParseFS(fsys, name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "parse page template"), "template", name)
	}
	return &Gallery{
		catalog: catalog,
		store:   store,
		tmpl:    tmpl,
		Scheme:  "light",
	}, nil
}

// DataURI encodes an SVG document for use as an inline image source.
func DataURI(svg []byte) template.URL {
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
}

// EnsureAssets fails with ErrMissingAssets naming every absent file when any
// variant has not been generated yet.
func (g *Gallery) EnsureAssets() error {
	missing, err := g.store.Missing(g.catalog.Registry.Keys(), storage.ExtSVG)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &MissingAssetsError{Files: missing}
	}
	return nil
}

// Cards checks that every asset exists and then loads them in registry order.
func (g *Gallery) Cards() ([]Card, error) {
	if err := g.EnsureAssets(); err != nil {
		return nil, err
	}

	variants := g.catalog.Registry.Variants()
	cards := make([]Card, 0, len(variants))
	for _, v := range variants {
		data, err := g.store.ReadAsset(v.Key, storage.ExtSVG)
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{
			Key:         v.Key,
			Title:       v.Title,
			Description: v.Description,
			Path:        g.store.AssetPath(v.Key, storage.ExtSVG),
			DataURI:     DataURI(data),
			Digest:      storage.Digest(data),
		})
	}
	return cards, nil
}

// Render writes the full page. Nothing is written if an asset is missing.
func (g *Gallery) Render(w io.Writer) error {
	cards, err := g.Cards()
	if err != nil {
		return err
	}

	badges := make([]string, 0, len(cards))
	for _, c := range cards {
		badges = append(badges, strings.ToUpper(c.Key))
	}

	page := Page{
		Title:      "Prismatic Battery Cell Renders",
		Scheme:     g.Scheme,
		Badges:     badges,
		Cards:      cards,
		Labels:     g.catalog.Labels,
		AssetsDir:  filepath.Base(g.store.Dir()),
		AppVersion: g.AppVersion,
		Year:       time.Now().Year(),
	}
	if err := g.tmpl.Execute(w, page); err != nil {
		return zerr.Wrap(err, "execute page template")
	}
	return nil
}

// ServeHTTP serves the page at "/".
func (g *Gallery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf strings.Builder
	if err := g.Render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, buf.String())
}
