package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gompdf/folio/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "A4", cfg.Page.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NotNil(t, cfg.Text.Hyphenation)
	assert.True(t, *cfg.Text.Hyphenation)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Text.FontSize)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
page:
  width: 300
  height: 400
  margins: {top: 10, right: 10, bottom: 10, left: 10}
  two_column: true
  column_gap: 12
text:
  font_family: monospace
  hyphenation: false
  metrics: basic
navigation:
  scrolling_mode: keep_lines
  overlap: 2
log:
  level: debug
resource_paths: [img]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Page.Width)
	assert.True(t, cfg.Page.TwoColumn)
	assert.Equal(t, "monospace", cfg.Text.FontFamily)
	assert.Equal(t, 12.0, cfg.Text.FontSize, "unset values keep their defaults")
	assert.False(t, *cfg.Text.Hyphenation)
	assert.Equal(t, "keep_lines", cfg.Navigation.ScrollingMode)
	assert.Equal(t, "debug", cfg.Log.Level)

	options := api.DefaultOptions()
	for _, opt := range cfg.Options() {
		opt(&options)
	}
	assert.Equal(t, 300.0, options.PageWidth)
	assert.Equal(t, 400.0, options.PageHeight)
	assert.Equal(t, 10.0, options.MarginLeft)
	assert.True(t, options.TwoColumn)
	assert.Equal(t, 12.0, options.ColumnGap)
	assert.False(t, options.Hyphenation)
	assert.Equal(t, api.MetricsBasic, options.Metrics)
	assert.Equal(t, "keep_lines", options.ScrollingMode)
	assert.Equal(t, 2, options.Overlap)
	assert.Equal(t, []string{"img"}, options.ResourcePaths)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "page: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"page size", func(c *Config) { c.Page.Size = "postcard" }},
		{"negative margin", func(c *Config) { c.Page.Margins.Top = -1 }},
		{"margins too wide", func(c *Config) { c.Page.Margins.Left = 600 }},
		{"column gap", func(c *Config) { c.Page.ColumnGap = -4 }},
		{"font size", func(c *Config) { c.Text.FontSize = 0 }},
		{"alignment", func(c *Config) { c.Text.Alignment = "diagonal" }},
		{"metrics", func(c *Config) { c.Text.Metrics = "ruler" }},
		{"scrolling mode", func(c *Config) { c.Navigation.ScrollingMode = "sideways" }},
		{"overlap", func(c *Config) { c.Navigation.Overlap = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}
