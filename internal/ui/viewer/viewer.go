package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/reportview/internal/export"
	"github.com/kk-code-lab/reportview/internal/preview"
	"github.com/kk-code-lab/reportview/internal/report"
	"go.uber.org/zap"
)

// Loader produces a fresh copy of the shown report.
type Loader func() (*report.Report, error)

// Options configures a Viewer. Zero values are usable: no reload, no export,
// no clipboard.
type Options struct {
	Preview   preview.Options
	Mode      Mode
	Wrap      bool
	Exporter  *export.Exporter
	Clipboard *export.Clipboard
	Reload    Loader
	Logger    *zap.Logger
}

type reloadResult struct {
	generation int
	report     *report.Report
	err        error
}

// Viewer shows one report on a tcell screen until the user quits.
type Viewer struct {
	screen    tcell.Screen
	state     *State
	theme     ColorTheme
	exporter  *export.Exporter
	clipboard *export.Clipboard
	reload    Loader
	logger    *zap.Logger

	generation int
	reloadCh   chan reloadResult
	done       chan struct{}
	shouldQuit bool
}

// New wraps an initialized screen. The caller owns screen initialization; Run
// finalizes it on return.
func New(screen tcell.Screen, rep *report.Report, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	state := NewState(rep, opts.Preview)
	state.Mode = opts.Mode
	state.Wrap = opts.Wrap
	return &Viewer{
		screen:    screen,
		state:     state,
		theme:     DefaultTheme(),
		exporter:  opts.Exporter,
		clipboard: opts.Clipboard,
		reload:    opts.Reload,
		logger:    logger,
		reloadCh:  make(chan reloadResult),
		done:      make(chan struct{}),
	}
}

// State exposes the view state, mainly for tests.
func (v *Viewer) State() *State { return v.state }

// Run draws and processes events until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	defer v.screen.Fini()

	eventCh := make(chan tcell.Event)
	defer close(v.done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-v.done:
				return
			}
		}
	}()

	v.draw()
	for !v.shouldQuit {
		redraw := false
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventCh:
			redraw = v.handleEvent(ctx, ev)
		case res := <-v.reloadCh:
			redraw = v.finishReload(res)
		}
		if redraw && !v.shouldQuit {
			v.draw()
		}
	}
	return nil
}

func (v *Viewer) handleEvent(ctx context.Context, ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		v.screen.Sync()
	}
	action := actionForEvent(ev, v.state.Prompting)
	if action == nil {
		return false
	}
	return v.dispatch(ctx, action)
}

// dispatch runs side-effect actions and hands the rest to the state.
func (v *Viewer) dispatch(ctx context.Context, action Action) bool {
	switch action.(type) {
	case QuitAction:
		v.shouldQuit = true
		return false
	case ExportAction:
		v.exportReport(ctx)
		return true
	case CopyAction:
		v.copyReport(ctx)
		return true
	case ReloadAction:
		v.startReload()
		return true
	}
	w, h := v.screen.Size()
	cw, ch := contentArea(w, h)
	return v.state.Apply(action, cw, ch)
}

func (v *Viewer) exportReport(ctx context.Context) {
	if v.exporter == nil {
		v.state.Message = "export disabled"
		return
	}
	rep := v.state.Report
	path, err := v.exporter.Export(ctx, rep.Title, rep.Text)
	if err != nil {
		v.logger.Warn("export failed", zap.Error(err))
		v.state.Message = "export failed: " + err.Error()
		return
	}
	v.state.Message = "exported " + path
}

func (v *Viewer) copyReport(ctx context.Context) {
	if !v.clipboard.Available() {
		v.state.Message = "clipboard unavailable"
		return
	}
	if err := v.clipboard.Copy(ctx, v.state.Report.Text); err != nil {
		v.logger.Warn("copy failed", zap.Error(err))
		v.state.Message = "copy failed: " + err.Error()
		return
	}
	v.state.Message = "copied to clipboard"
}

// startReload loads the report in the background. Only the newest request is
// applied. Older results are dropped when they arrive.
func (v *Viewer) startReload() {
	if v.reload == nil {
		v.state.Message = "reload unavailable"
		return
	}
	v.generation++
	gen := v.generation
	load := v.reload
	v.state.Message = "reloading…"
	go func() {
		rep, err := load()
		select {
		case v.reloadCh <- reloadResult{generation: gen, report: rep, err: err}:
		case <-v.done:
		}
	}()
}

func (v *Viewer) finishReload(res reloadResult) bool {
	if res.generation != v.generation {
		return false
	}
	if res.err != nil {
		v.logger.Warn("reload failed", zap.Error(res.err))
		v.state.Message = "reload failed: " + res.err.Error()
		return true
	}
	v.state.SetReport(res.report)
	v.state.Message = "reloaded"
	v.logger.Debug("reloaded report",
		zap.String("title", res.report.Title),
		zap.Int("blocks", v.state.Doc.Len()))
	return true
}
