package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/snapmark/internal/appstate"
	"github.com/example/snapmark/internal/editor"
)

var runAppFn = func(app *appstate.App) { app.Run() }

// annotateCmd opens the interactive editor on a capture, file or clipboard image.
type annotateCmd struct {
	source     sourceFlags
	output     string
	saveDir    string
	shadow     bool
	borderless bool
	zoom       int
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	cfg := r.settings()
	a.source.register(fs, true)
	fs.StringVar(&a.output, "output", "", "file Ctrl+S writes to (default: timestamped file in -save-dir)")
	fs.StringVar(&a.saveDir, "save-dir", cfg.SaveDir, "directory for timestamped saves")
	fs.BoolVar(&a.shadow, "shadow", false, "add a drop shadow to copied and saved images")
	fs.BoolVar(&a.borderless, "borderless", !cfg.View.TitleBar, "pad the view for a window without a title bar")
	fs.IntVar(&a.zoom, "zoom", cfg.View.Zoom, "initial zoom in percent")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: a}
	}
	if err := a.source.validate(); err != nil {
		return nil, err
	}
	if a.zoom <= 0 {
		return nil, fmt.Errorf("zoom must be positive")
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, err := a.source.load()
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}
	settings, err := a.root.settings().Settings()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.root.notifyCapture(a.source.describe(), img)

	// Ctrl+N always grabs the screen, even when editing a file.
	fresh := a.source
	fresh.file = ""
	fresh.fromClipboard = false

	app := appstate.New(img, settings,
		appstate.WithTheme(a.root.uiTheme()),
		appstate.WithTitle(fmt.Sprintf("snapmark - %s", a.source.describe())),
		appstate.WithOutput(a.output),
		appstate.WithSaveDir(a.saveDir),
		appstate.WithShadow(a.shadow),
		appstate.WithNotifier(a.root.alerts()),
		appstate.WithRecapture(func() (*image.RGBA, error) { return fresh.load() }),
		appstate.WithEditorOptions(
			editor.WithBorderless(a.borderless),
			editor.WithDebug(a.root.debugging()),
		),
	)
	if a.zoom != 100 {
		app.Editor().SetZoomPercent(a.zoom)
	}
	runAppFn(app)
	return nil
}
