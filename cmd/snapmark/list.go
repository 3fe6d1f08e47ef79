package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/example/snapmark/internal/appstate"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/persist"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
)

var listTopics = []string{"colors", "widths", "modes", "fonts", "formats", "keys", "themes", "monitors"}

// listCmd prints the choices accepted by the other commands.
type listCmd struct {
	topic string
	*root
	fs *flag.FlagSet
}

func (l *listCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	l := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 || !slices.Contains(listTopics, fs.Arg(0)) {
		return nil, &UsageError{of: l}
	}
	l.topic = fs.Arg(0)
	return l, nil
}

func (l *listCmd) Run() error {
	return l.write(stdoutWriter)
}

func (l *listCmd) write(w io.Writer) error {
	settings, err := l.root.settings().Settings()
	if err != nil {
		settings = editor.DefaultSettings()
	}
	switch l.topic {
	case "colors":
		fmt.Fprintln(w, "available palette colors (* marks the default color):")
		for idx, entry := range editor.Palette {
			marker := " "
			if entry.Color == settings.Color {
				marker = "*"
			}
			c := entry.Color
			hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
			block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
			fmt.Fprintf(w, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
		}
	case "widths":
		fmt.Fprintln(w, "available stroke widths (* marks the default width):")
		for _, width := range editor.Widths {
			fmt.Fprintf(w, "%s %3dpx\n", mark(width == settings.Width), width)
		}
	case "modes":
		for _, m := range editor.Modes() {
			fmt.Fprintf(w, "%s %s\n", mark(m == settings.Mode), m)
		}
	case "fonts":
		for _, f := range render.Families() {
			fmt.Fprintf(w, "%s %s\n", mark(f == settings.Font.Family), f)
		}
	case "formats":
		for _, f := range persist.Formats() {
			fmt.Fprintln(w, f)
		}
	case "keys":
		for _, b := range appstate.Bindings {
			fmt.Fprintf(w, "%-14s %s\n", b.Label, b.Action)
		}
	case "themes":
		names, err := themeNames()
		if err != nil {
			return err
		}
		for name := range l.root.settings().Themes {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
	case "monitors":
		monitors, err := listMonitorsFn()
		if err != nil {
			return fmt.Errorf("list monitors: %w", err)
		}
		if len(monitors) == 0 {
			fmt.Fprintln(w, "no monitors available")
			return nil
		}
		fmt.Fprintln(w, "available monitors (* marks the primary monitor):")
		for _, mon := range monitors {
			r := mon.Rect
			fmt.Fprintf(w, "%s %d: %-10s %d,%d,%d,%d\n", mark(mon.Primary), mon.Index, mon.Name, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		}
	}
	return nil
}

func mark(on bool) string {
	if on {
		return "*"
	}
	return " "
}

func themeNames() ([]string, error) {
	entries, err := fs.ReadDir(theme.EmbeddedThemes, "defaults")
	if err != nil {
		return nil, fmt.Errorf("embedded themes: %w", err)
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".theme"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
