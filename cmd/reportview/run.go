package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/reportview/internal/config"
	"github.com/kk-code-lab/reportview/internal/export"
	"github.com/kk-code-lab/reportview/internal/logging"
	"github.com/kk-code-lab/reportview/internal/preview"
	"github.com/kk-code-lab/reportview/internal/report"
	"github.com/kk-code-lab/reportview/internal/ui/viewer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type runOptions struct {
	Path       string
	ConfigPath string
	Title      string
	Plain      bool
	Source     bool
	ExportDir  string
	Width      int
}

func (o runOptions) interactive() bool {
	return !o.Plain && o.ExportDir == ""
}

func run(ctx context.Context, opts runOptions, stdout io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		File:     cfg.Log.File,
		Quiet:    opts.interactive(),
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog()
	}()

	load := func() (*report.Report, error) {
		rep, err := loadReport(opts.Path)
		if err != nil {
			return nil, err
		}
		if opts.Title != "" {
			rep.Title = opts.Title
		}
		return rep, nil
	}
	rep, err := load()
	if err != nil {
		return err
	}
	logger.Debug("loaded report",
		zap.String("name", rep.Name),
		zap.String("title", rep.Title),
		zap.Int("bytes", len(rep.Text)))

	previewOpts := preview.Options{
		TabWidth:     cfg.Viewer.TabWidth,
		FormatTables: cfg.Viewer.FormatTables,
	}
	source := opts.Source || cfg.Viewer.StartMode == config.ModeSource

	switch {
	case opts.ExportDir != "":
		path, err := export.New(opts.ExportDir, cfg.Export.Overwrite, logger).Export(ctx, rep.Title, rep.Text)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, path)
		return err
	case opts.Plain:
		return printReport(stdout, rep, previewOpts, source, opts.Width)
	}

	var reload viewer.Loader
	if opts.Path != "-" {
		reload = load
	}
	mode := viewer.ModePreview
	if source {
		mode = viewer.ModeSource
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initialize terminal")
	}
	v := viewer.New(screen, rep, viewer.Options{
		Preview:   previewOpts,
		Mode:      mode,
		Wrap:      cfg.Viewer.Wrap,
		Exporter:  export.New(cfg.Export.Dir, cfg.Export.Overwrite, logger),
		Clipboard: export.DetectClipboard(),
		Reload:    reload,
		Logger:    logger,
	})
	return v.Run(ctx)
}

func loadReport(path string) (*report.Report, error) {
	if path == "-" {
		return report.Read(os.Stdin, path)
	}
	return report.Load(path)
}

// printReport writes the report without a terminal UI. Source mode writes the
// text unchanged.
func printReport(w io.Writer, rep *report.Report, opts preview.Options, source bool, width int) error {
	if source {
		_, err := io.WriteString(w, rep.Text)
		return err
	}
	page := preview.Render(rep.Document(), opts)
	lines := page.Lines
	if width > 0 {
		lines, _ = preview.WrapAll(lines, width)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line.Text()); err != nil {
			return err
		}
	}
	return nil
}
