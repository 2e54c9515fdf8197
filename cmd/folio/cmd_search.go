package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

type SearchCmd struct {
	flags *Flags

	// flags
	matchCase  bool
	jsonOutput bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Find text and the pages it appears on",
		UsageText: "folio search <file> <text> [--match-case] [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "match-case",
				Usage:       "compare letter case",
				Destination: &cmd.matchCase,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 2 {
		return errors.New("usage: folio search <file> <text>")
	}
	path, text := c.Args().Get(0), c.Args().Get(1)

	r, err := cmd.flags.open(path)
	if err != nil {
		return err
	}
	matches := r.Search(text, !cmd.matchCase)
	if len(matches) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No matches found\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		for _, m := range matches {
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("write match: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tPARAGRAPH\tOFFSET\tTEXT")
	for _, m := range matches {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", m.Page, m.Paragraph, m.Offset, m.Text)
	}
	return w.Flush()
}
