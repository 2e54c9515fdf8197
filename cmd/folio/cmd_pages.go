package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

type PagesCmd struct {
	flags *Flags
}

// NewPagesCmd creates a new pages command
func NewPagesCmd(flags *Flags) *PagesCmd {
	return &PagesCmd{flags: flags}
}

// Register adds the pages command to the application
func (cmd *PagesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pages",
		Usage:     "Print the boundaries of every page",
		UsageText: "folio pages <file>",
		Description: `Paginates an HTML document and prints one JSON object per page with its
number, start and end positions and line count.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *PagesCmd) run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("missing input file")
	}
	r, err := cmd.flags.open(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, page := range r.Pages() {
		if err := enc.Encode(page); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
	}
	return nil
}
