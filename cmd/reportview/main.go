package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/reportview/internal/config"
	"github.com/urfave/cli/v2"
)

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII report text renders on
	// terminals with an unknown charset.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	config.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "reportview",
		Usage:     "view, print or export a markdown report",
		ArgsUsage: "REPORT|-",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"REPORTVIEW_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "title shown in the header and used for export file names",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "print the rendered report to stdout instead of opening the viewer",
			},
			&cli.BoolFlag{
				Name:  "source",
				Usage: "start in (or print) the raw markdown",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "write the report to `DIR` and exit",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "wrap width for --plain, 0 disables wrapping",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.ShowAppHelp(c)
			}
			return run(c.Context, runOptions{
				Path:       c.Args().First(),
				ConfigPath: c.String("config"),
				Title:      c.String("title"),
				Plain:      c.Bool("plain"),
				Source:     c.Bool("source"),
				ExportDir:  c.String("export"),
				Width:      c.Int("width"),
			}, c.App.Writer)
		},
	}
}
