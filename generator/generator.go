// Package generator regenerates the asset files for every registered variant.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"prismplane/model"
	"prismplane/preview"
	"prismplane/render"
	"prismplane/storage"
)

// AssetWriter persists generated documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type AssetWriter interface {
	// EnsureDirs creates the output directory; it must be idempotent.
	EnsureDirs() error

	// WriteAsset overwrites the asset for key and returns the path written.
	WriteAsset(key, ext string, data []byte) (string, error)
}

// Options tunes a generation run.
type Options struct {
	// PNG also writes a raster preview next to each SVG.
	PNG          bool
	PreviewScale float64
	// Workers bounds concurrent variants; zero means one per variant.
	Workers int
	// RelativeTo, when set, shortens printed paths relative to this directory.
	RelativeTo string
}

// Result describes the files written for one variant.
type Result struct {
	Key    string   `json:"key"`
	Paths  []string `json:"paths"`
	Digest string   `json:"digest"`
}

// Generator renders the catalog and hands the documents to an AssetWriter.
type Generator struct {
	catalog *model.Catalog
	writer  AssetWriter
	opts    Options
}

// New creates a Generator.
func New(catalog *model.Catalog, writer AssetWriter, opts Options) *Generator {
	return &Generator{catalog: catalog, writer: writer, opts: opts}
}

type outcome struct {
	result Result
	err    error
}

// Run writes every variant and prints one "Wrote <path>" line per file to out,
// in registry order. The output directory is created once up front and a
// failure there aborts the run before any variant is written. A failing
// variant does not stop its siblings; all variant errors are joined.
func (g *Generator) Run(ctx context.Context, out io.Writer) ([]Result, error) {
	variants := g.catalog.Registry.Variants()
	if len(variants) == 0 {
		return nil, nil
	}

	if err := g.writer.EnsureDirs(); err != nil {
		return nil, err
	}

	outcomes := make([]outcome, len(variants))
	var eg errgroup.Group
	if g.opts.Workers > 0 {
		eg.SetLimit(g.opts.Workers)
	}
	for i, v := range variants {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].result, outcomes[i].err = g.generate(v)
			return nil
		})
	}
	_ = eg.Wait()

	var (
		results []Result
		errs    []error
	)
	for _, o := range outcomes {
		for _, p := range o.result.Paths {
			fmt.Fprintf(out, "Wrote %s\n", g.display(p))
		}
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		results = append(results, o.result)
	}

	log.Printf("[generator] wrote %d of %d variants", len(results), len(variants))
	return results, errors.Join(errs...)
}

func (g *Generator) generate(v model.Variant) (Result, error) {
	res := Result{Key: v.Key}

	doc := []byte(render.Build(v.Key, v.Palette, g.catalog.Geometry, g.catalog.Labels))
	path, err := g.writer.WriteAsset(v.Key, storage.ExtSVG, doc)
	if err != nil {
		return res, zerr.With(zerr.Wrap(err, "write svg"), "variant", v.Key)
	}
	res.Paths = append(res.Paths, path)
	res.Digest = storage.Digest(doc)

	if !g.opts.PNG {
		return res, nil
	}

	img, err := preview.PNG(v.Key, v.Palette, g.catalog.Geometry, g.catalog.Labels, preview.Options{Scale: g.opts.PreviewScale})
	if err != nil {
		return res, zerr.With(zerr.Wrap(err, "render preview"), "variant", v.Key)
	}
	path, err = g.writer.WriteAsset(v.Key, storage.ExtPNG, img)
	if err != nil {
		return res, zerr.With(zerr.Wrap(err, "write png"), "variant", v.Key)
	}
	res.Paths = append(res.Paths, path)
	return res, nil
}

func (g *Generator) display(path string) string {
	if g.opts.RelativeTo == "" {
		return path
	}
	rel, err := filepath.Rel(g.opts.RelativeTo, path)
	if err != nil {
		return path
	}
	return rel
}
