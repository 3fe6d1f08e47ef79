package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	debug         bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	if r == nil || r.program == "" {
		return "snapmark"
	}
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:       program,
		notifier:      r.notifier,
		config:        r.config,
		captureAlerts: r.captureAlerts,
		saveAlerts:    r.saveAlerts,
		copyAlerts:    r.copyAlerts,
		debug:         r.debug,
		themeName:     r.themeName,
		activeTheme:   r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs, err := notify.LoadPreferences()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: notification preferences: %v\n", err)
		prefs = notify.DefaultPreferences()
	}
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("snapmark", flag.ExitOnError),
		program:  "snapmark",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.debug, "debug", false, "log skipped blur renders and discarded history")

	// The config loader has already applied SNAPMARK_THEME, so an empty flag
	// falls back to environment and then the config file.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme picks the theme named on the command line or in the config.
// Config [theme.NAME] sections win over files and embedded themes.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]
	sub := r.subcommand(cmdName)

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, sub)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, sub)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, sub)
	case "transform":
		cmd, err = parseTransformCmd(subArgs, sub)
	case "list":
		cmd, err = parseListCmd(subArgs, sub)
	case "config":
		cmd, err = parseConfigCmd(subArgs, sub)
	case "version":
		cmd = &versionCmd{r: sub}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifyCapture(detail string, img image.Image) {
	if r == nil {
		return
	}
	r.notifier.Capture(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) settings() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) uiTheme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) alerts() *notify.Notifier {
	if r == nil {
		return nil
	}
	return r.notifier
}

func (r *root) debugging() bool {
	return r != nil && r.debug
}
