package main

import (
	"fmt"

	"github.com/gompdf/folio/internal/config"
	"github.com/gompdf/folio/internal/logging"
	"github.com/gompdf/folio/pkg/api"
)

// Flags holds the global flags and what the Before hook derives from them
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// open opens an HTML file with the configured reader options
func (f *Flags) open(path string, extra ...api.Option) (*api.Reader, error) {
	opts := append(f.Config.Options(), api.WithLogger(logging.Component("reader")))
	r, err := api.OpenFile(path, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return r, nil
}
