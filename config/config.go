// Package config loads and saves prismplane.yaml.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"prismplane/model"
	"prismplane/preview"
	"prismplane/storage"
)

// FileName is the configuration file looked up in the data directory.
const FileName = "prismplane.yaml"

// ErrInvalidPreviewScale is returned when preview_scale is negative or too large.
var ErrInvalidPreviewScale = zerr.New("invalid preview scale")

type Config struct {
	DataDir       string       `yaml:"data_dir"`
	AssetsDir     string       `yaml:"assets_dir"`
	ListenAddr    string       `yaml:"listen_addr"`
	TerminalStyle string       `yaml:"terminal_style"`
	Preview       bool         `yaml:"preview"`
	PreviewScale  float64      `yaml:"preview_scale,omitempty"`
	Labels        model.Labels `yaml:"labels"`

	Geometry model.Geometry `yaml:"geometry"`
	// Palettes replaces the palette of registered variants by key.
	Palettes map[string]model.Palette `yaml:"palettes,omitempty"`
}

func Default() Config {
	return Config{
		DataDir:       ".",
		AssetsDir:     storage.DefaultDir,
		ListenAddr:    ":8080",
		TerminalStyle: string(model.TerminalRounded),
		Preview:       false,
		Labels:        model.DefaultLabels(),
		Geometry:      model.DefaultGeometry(),
	}
}

// Load reads dataDir/prismplane.yaml. A missing file yields Default().
func Load(dataDir string) (Config, error) {
	cfgPath := filepath.Join(dataDir, FileName)

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.DataDir = dataDir
			return cfg, nil
		}
		return Config{}, zerr.With(zerr.Wrap(err, "read config"), "path", cfgPath)
	}

	// Geometry keys left out of the file keep their default values.
	cfg := Config{Geometry: model.DefaultGeometry()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, zerr.With(zerr.Wrap(err, "parse config"), "path", cfgPath)
	}

	def := Default()
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = def.AssetsDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.TerminalStyle == "" {
		cfg.TerminalStyle = def.TerminalStyle
	}
	if cfg.Labels.Suffix == "" {
		cfg.Labels.Suffix = def.Labels.Suffix
	}
	if cfg.Labels.Dimensions == "" {
		cfg.Labels.Dimensions = def.Labels.Dimensions
	}
	if cfg.Labels.Placement == "" {
		cfg.Labels.Placement = def.Labels.Placement
	}

	if _, err := model.ParseTerminalStyle(cfg.TerminalStyle); err != nil {
		return Config{}, err
	}
	if cfg.PreviewScale < 0 || cfg.PreviewScale > preview.MaxScale {
		return Config{}, zerr.With(zerr.Wrap(ErrInvalidPreviewScale, "load config"), "preview_scale", cfg.PreviewScale)
	}

	return cfg, nil
}

// Save writes cfg to cfg.DataDir/prismplane.yaml via a temp file and rename.
func Save(cfg Config) error {
	cfgPath := filepath.Join(cfg.DataDir, FileName)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "create data dir"), "path", cfg.DataDir)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return zerr.Wrap(err, "marshal config")
	}

	tmp := cfgPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "write config"), "path", tmp)
	}

	if err := os.Rename(tmp, cfgPath); err != nil {
		os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, "rename config"), "path", cfgPath)
	}
	return nil
}

// AssetsPath resolves the asset directory against the data directory.
func (c Config) AssetsPath() string {
	if filepath.IsAbs(c.AssetsDir) {
		return c.AssetsDir
	}
	return filepath.Join(c.DataDir, c.AssetsDir)
}

// Catalog builds the immutable render catalog for this configuration and
// validates its geometry and palettes.
func (c Config) Catalog() (*model.Catalog, error) {
	style, err := model.ParseTerminalStyle(c.TerminalStyle)
	if err != nil {
		return nil, err
	}
	cat := model.DefaultCatalog()
	cat.Geometry = c.Geometry
	cat.Geometry.Terminal = style
	cat.Labels = c.Labels

	if len(c.Palettes) > 0 {
		for key := range c.Palettes {
			if _, err := cat.Registry.Lookup(key); err != nil {
				return nil, err
			}
		}
		variants := cat.Registry.Variants()
		for i, v := range variants {
			if p, ok := c.Palettes[v.Key]; ok {
				variants[i].Palette = p
			}
		}
		cat.Registry = model.NewRegistry(variants...)
	}

	if err := cat.Validate(); err != nil {
		return nil, zerr.Wrap(err, "invalid catalog")
	}
	return cat, nil
}
