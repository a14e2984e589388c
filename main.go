package main

import (
	"fmt"
	"os"

	"github.com/jdhollis/logtally/internal/count"
	"github.com/jdhollis/logtally/internal/runs"
	"github.com/jdhollis/logtally/internal/ui"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "logtally",
		Usage: "count field-value frequencies across line-delimited JSON logs",
		Commands: []*cli.Command{
			{
				Name:   "count",
				Usage:  "count key frequencies in an input file",
				Action: count.CountAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file (.gz/.zst supported), or '-' for stdin"},
					&cli.StringFlag{Name: "field", Aliases: []string{"f"}, Usage: "record field to count"},
					&cli.StringFlag{Name: "extract", Value: "field", Usage: "extractor: field, raw or lang"},
					&cli.StringFlag{Name: "policy", Value: "skip", Usage: "malformed-line policy: skip or abort"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "extraction workers (default: CPUs, capped at 8)"},
					&cli.IntFlag{Name: "top", Aliases: []string{"t"}, Value: 25, Usage: "number of top keys to report"},
					&cli.StringFlag{Name: "format", Value: "table", Usage: "output format: table or yaml"},
					&cli.StringFlag{Name: "config", Usage: "yaml config file (default: logtally.yaml if present)"},
					&cli.StringFlag{Name: "db", Usage: "run-history database path (default: next to the binary)"},
					&cli.StringFlag{Name: "cache-ttl", Usage: "replay cached reports younger than this (e.g. 1h)"},
					&cli.BoolFlag{Name: "no-save", Usage: "do not record this run in the history database"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
				},
			},
			{
				Name:  "runs",
				Usage: "inspect saved count runs",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list recent runs",
						Action: runs.ListAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum runs to list"},
							&cli.StringFlag{Name: "format", Value: "table", Usage: "output format: table or yaml"},
							&cli.StringFlag{Name: "db", Usage: "run-history database path"},
						},
					},
					{
						Name:   "show",
						Usage:  "show one run and its stored top keys",
						Action: runs.ShowAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "run", Required: true, Usage: "run ID"},
							&cli.StringFlag{Name: "format", Value: "table", Usage: "output format: table or yaml"},
							&cli.StringFlag{Name: "db", Usage: "run-history database path"},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorColor(err.Error()))
		os.Exit(1)
	}
}
