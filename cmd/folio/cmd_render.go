package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gompdf/folio/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type RenderCmd struct {
	flags *Flags

	// flags
	output string
	title  string
	author string
	debug  bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render every page of a document to PDF",
		UsageText: "folio render <file> [-o out.pdf]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output PDF path (defaults to the input with a .pdf extension)",
				Destination: &cmd.output,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "document title (defaults to the HTML title)",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "author",
				Usage:       "document author",
				Destination: &cmd.author,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "outline every element area",
				Destination: &cmd.debug,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("missing input file")
	}
	output := cmd.output
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
	}

	opts := []api.Option{api.WithDebug(cmd.debug), api.WithAuthor(cmd.author)}
	if cmd.title != "" {
		opts = append(opts, api.WithTitle(cmd.title))
	}
	r, err := cmd.flags.open(path, opts...)
	if err != nil {
		return err
	}
	if err := r.RenderPDFFile(output); err != nil {
		return err
	}
	log.Info().Str("input", path).Str("output", output).Msg("rendered")
	return nil
}
