package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gompdf/folio/internal/pagination"
	"github.com/gompdf/folio/internal/style"
	"github.com/gompdf/folio/pkg/api"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid config")

// Config is the contents of a folio configuration file
type Config struct {
	Page       PageConfig       `yaml:"page"`
	Text       TextConfig       `yaml:"text"`
	Navigation NavigationConfig `yaml:"navigation"`
	Log        LogConfig        `yaml:"log"`
	// ResourcePaths are searched for images and stylesheets not found
	// next to the document
	ResourcePaths []string `yaml:"resource_paths"`
}

// PageConfig holds page geometry. Size names a standard size (A4, Letter,
// ...) and is overridden by a non-zero Width and Height.
type PageConfig struct {
	Size      string        `yaml:"size"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Margins   MarginsConfig `yaml:"margins"`
	TwoColumn bool          `yaml:"two_column"`
	ColumnGap float64       `yaml:"column_gap"`
}

// MarginsConfig holds page margins in points
type MarginsConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// TextConfig holds the base text style and how text is measured
type TextConfig struct {
	FontFamily      string  `yaml:"font_family"`
	FontSize        float64 `yaml:"font_size"`
	LineSpacing     int     `yaml:"line_spacing"` // percent of the font height
	Alignment       string  `yaml:"alignment"`
	FirstLineIndent float64 `yaml:"first_line_indent"`
	// Hyphenation is a pointer so that an explicit false survives defaults
	Hyphenation  *bool   `yaml:"hyphenation"`
	Language     string  `yaml:"language"`
	PatternsFile string  `yaml:"patterns_file"`
	Metrics      string  `yaml:"metrics"` // pdf, face or basic
	DPI          float64 `yaml:"dpi"`
	Stylesheet   string  `yaml:"stylesheet"`
}

// NavigationConfig holds how pages turn
type NavigationConfig struct {
	ScrollingMode   string `yaml:"scrolling_mode"`
	Overlap         int    `yaml:"overlap"`
	CursorCacheSize int    `yaml:"cursor_cache_size"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config matching the reader defaults
func DefaultConfig() Config {
	defaults := api.DefaultOptions()
	hyphenation := defaults.Hyphenation
	return Config{
		Page: PageConfig{
			Size: "A4",
			Margins: MarginsConfig{
				Top:    defaults.MarginTop,
				Right:  defaults.MarginRight,
				Bottom: defaults.MarginBottom,
				Left:   defaults.MarginLeft,
			},
			ColumnGap: defaults.ColumnGap,
		},
		Text: TextConfig{
			FontFamily:      defaults.FontFamily,
			FontSize:        defaults.FontSize,
			LineSpacing:     defaults.LineSpacePercent,
			Alignment:       defaults.Alignment,
			FirstLineIndent: defaults.FirstLineIndent,
			Hyphenation:     &hyphenation,
			Language:        defaults.Language,
			Metrics:         string(defaults.Metrics),
			DPI:             defaults.DPI,
		},
		Navigation: NavigationConfig{
			ScrollingMode: defaults.ScrollingMode,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path.
// If path is empty or doesn't exist, returns defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Page.Size == "" && c.Page.Width == 0 && c.Page.Height == 0 {
		c.Page.Size = defaults.Page.Size
	}
	if c.Text.FontFamily == "" {
		c.Text.FontFamily = defaults.Text.FontFamily
	}
	if c.Text.FontSize == 0 {
		c.Text.FontSize = defaults.Text.FontSize
	}
	if c.Text.LineSpacing == 0 {
		c.Text.LineSpacing = defaults.Text.LineSpacing
	}
	if c.Text.Alignment == "" {
		c.Text.Alignment = defaults.Text.Alignment
	}
	if c.Text.Hyphenation == nil {
		c.Text.Hyphenation = defaults.Text.Hyphenation
	}
	if c.Text.Language == "" {
		c.Text.Language = defaults.Text.Language
	}
	if c.Text.Metrics == "" {
		c.Text.Metrics = defaults.Text.Metrics
	}
	if c.Text.DPI == 0 {
		c.Text.DPI = defaults.Text.DPI
	}
	if c.Navigation.ScrollingMode == "" {
		c.Navigation.ScrollingMode = defaults.Navigation.ScrollingMode
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// pageSize resolves the configured page size in points
func (c *Config) pageSize() (float64, float64, error) {
	if c.Page.Width > 0 && c.Page.Height > 0 {
		return c.Page.Width, c.Page.Height, nil
	}
	size, ok := pagination.LookupPageSize(c.Page.Size)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown page.size %q", ErrInvalid, c.Page.Size)
	}
	return size.Width, size.Height, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	width, height, err := c.pageSize()
	if err != nil {
		return err
	}
	m := c.Page.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: page.margins cannot be negative", ErrInvalid)
	}
	if m.Left+m.Right >= width || m.Top+m.Bottom >= height {
		return fmt.Errorf("%w: page.margins leave no room for text", ErrInvalid)
	}
	if c.Page.ColumnGap < 0 {
		return fmt.Errorf("%w: page.column_gap cannot be negative", ErrInvalid)
	}

	if c.Text.FontSize <= 0 {
		return fmt.Errorf("%w: text.font_size must be positive", ErrInvalid)
	}
	if c.Text.LineSpacing <= 0 {
		return fmt.Errorf("%w: text.line_spacing must be positive", ErrInvalid)
	}
	if _, ok := style.ParseAlignment(strings.ToLower(c.Text.Alignment)); !ok {
		return fmt.Errorf("%w: unknown text.alignment %q", ErrInvalid, c.Text.Alignment)
	}
	switch api.MetricsKind(c.Text.Metrics) {
	case api.MetricsPDF, api.MetricsFace, api.MetricsBasic:
	default:
		return fmt.Errorf("%w: unknown text.metrics %q", ErrInvalid, c.Text.Metrics)
	}

	if _, err := pagination.ParseScrollingMode(c.Navigation.ScrollingMode); err != nil {
		return fmt.Errorf("%w: navigation.scrolling_mode: %w", ErrInvalid, err)
	}
	if c.Navigation.Overlap < 0 {
		return fmt.Errorf("%w: navigation.overlap cannot be negative", ErrInvalid)
	}
	if c.Navigation.CursorCacheSize < 0 {
		return fmt.Errorf("%w: navigation.cursor_cache_size cannot be negative", ErrInvalid)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

// Options converts the configuration to reader options
func (c *Config) Options() []api.Option {
	width, height, err := c.pageSize()
	if err != nil {
		width, height = api.PageSizeA4Width, api.PageSizeA4Height
	}
	m := c.Page.Margins
	opts := []api.Option{
		api.WithPageSize(width, height),
		api.WithMargins(m.Top, m.Right, m.Bottom, m.Left),
		api.WithFont(c.Text.FontFamily, c.Text.FontSize),
		api.WithLineSpacing(c.Text.LineSpacing),
		api.WithAlignment(c.Text.Alignment),
		api.WithFirstLineIndent(c.Text.FirstLineIndent),
		api.WithHyphenation(c.Text.Hyphenation == nil || *c.Text.Hyphenation),
		api.WithMetrics(api.MetricsKind(c.Text.Metrics)),
		api.WithDPI(c.Text.DPI),
		api.WithScrolling(c.Navigation.ScrollingMode, c.Navigation.Overlap),
		api.WithCursorCacheSize(c.Navigation.CursorCacheSize),
	}
	if c.Page.TwoColumn {
		opts = append(opts, api.WithTwoColumns(c.Page.ColumnGap))
	}
	if c.Text.PatternsFile != "" {
		opts = append(opts, api.WithPatternFile(c.Text.Language, c.Text.PatternsFile))
	} else {
		opts = append(opts, api.WithHyphenationPatterns(c.Text.Language, nil))
	}
	if c.Text.Stylesheet != "" {
		opts = append(opts, api.WithStylesheet(c.Text.Stylesheet))
	}
	for _, p := range c.ResourcePaths {
		opts = append(opts, api.WithResourcePath(p))
	}
	return opts
}
