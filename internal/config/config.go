package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gridcal/internal/model"
)

// ThemeConfig holds the style-layer inputs as hex strings so config files
// stay hand-editable. Parsing happens in the render package.
type ThemeConfig struct {
	Background string            `yaml:"background" json:"background"`
	Panel      string            `yaml:"panel" json:"panel"`
	Text       string            `yaml:"text" json:"text"`
	CardColors map[string]string `yaml:"card_colors" json:"card_colors"`

	// CardBlur is the backdrop blur radius in logical px.
	CardBlur float64 `yaml:"card_blur" json:"card_blur"`

	// Wallpaper is an optional image drawn behind the grid.
	Wallpaper string `yaml:"wallpaper" json:"wallpaper"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the preview server.
	Listen string `yaml:"listen" json:"listen"`

	// SchedulePath is the JSON schedule produced by the editor layer.
	SchedulePath string `yaml:"schedule" json:"schedule"`

	// OutputDir receives exported images.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Title is the heading rendered on the surface.
	Title string `yaml:"title" json:"title"`

	// FontPath points at a TTF file; empty means probe system fonts.
	FontPath string `yaml:"font" json:"font"`

	// Days is the number of day columns (5 = weekdays, 7 = full week).
	Days int `yaml:"days" json:"days"`

	// AspectSlider selects the export shape: 0 landscape, 1 portrait.
	AspectSlider float64 `yaml:"aspect_slider" json:"aspect_slider"`

	// PixelRatio is the export density multiplier.
	PixelRatio float64 `yaml:"pixel_ratio" json:"pixel_ratio"`

	FontScale float64            `yaml:"font_scale" json:"font_scale"`
	Compact   bool               `yaml:"compact" json:"compact"`
	Show      model.FieldToggles `yaml:"show" json:"show"`

	Theme ThemeConfig `yaml:"theme" json:"theme"`

	// RefreshCron re-runs the export in serve mode, e.g. "*/15 * * * *".
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		SchedulePath: "schedule.json",
		OutputDir:    "out",
		Title:        "Weekly Schedule",
		Days:         5,
		AspectSlider: 0.5,
		PixelRatio:   3,
		FontScale:    1.0,
		Show:         model.DefaultFieldToggles(),
		Theme: ThemeConfig{
			CardBlur: 16,
		},
		RefreshCron: "*/15 * * * *",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.SchedulePath == "" {
		c.SchedulePath = "schedule.json"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.Days < 1 || c.Days > 7 {
		c.Days = 5
	}
	if c.AspectSlider < 0 {
		c.AspectSlider = 0
	}
	if c.AspectSlider > 1 {
		c.AspectSlider = 1
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = 3
	}
	if c.FontScale <= 0 {
		c.FontScale = 1.0
	}
	if c.Theme.CardBlur < 0 {
		c.Theme.CardBlur = 0
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
}

// Layout derives the solver/estimator input from the config.
func (c *Config) Layout() model.LayoutConfig {
	l := model.DefaultLayoutConfig()
	l.FontScale = c.FontScale
	l.Compact = c.Compact
	l.Show = c.Show
	l.AspectSlider = c.AspectSlider
	return l
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (creating
// the parent directory) and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".gridcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
