package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/effect"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Draw holds the initial pen.
type Draw struct {
	Color       string
	Width       int
	Mode        string
	Highlighter bool
	Font        string
	TextSize    float64
}

// View holds the initial presentation of the editor window.
type View struct {
	Zoom     int // percent
	TitleBar bool
}

// Blur configures blur patches.
type Blur struct {
	Radius   int
	MinDelta float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Draw    Draw
	View    View
	Blur    Blur
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	d := editor.DefaultSettings()
	return &Config{
		Draw: Draw{
			Color:    "red",
			Width:    d.Width,
			Mode:     d.Mode.String(),
			Font:     d.Font.Family,
			TextSize: d.Font.Size,
		},
		View:   View{Zoom: 100, TitleBar: true},
		Blur:   Blur{Radius: d.Blur.Radius, MinDelta: d.BlurMinDelta},
		Themes: make(map[string]*theme.Theme),
	}
}

// Settings converts the draw and blur sections to editor settings.
func (c *Config) Settings() (editor.Settings, error) {
	s := editor.DefaultSettings()
	col, err := ParseColor(c.Draw.Color)
	if err != nil {
		return s, fmt.Errorf("draw.color: %w", err)
	}
	s.Color = color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}
	mode, err := editor.ParseMode(c.Draw.Mode)
	if err != nil {
		return s, fmt.Errorf("draw.mode: %w", err)
	}
	s.Mode = mode
	if c.Draw.Width > 0 {
		s.Width = c.Draw.Width
	}
	s.Highlighter = c.Draw.Highlighter
	s.Font = render.Font{Family: c.Draw.Font, Size: c.Draw.TextSize}
	if _, err := render.Face(s.Font); err != nil {
		return s, fmt.Errorf("draw.font: %w", err)
	}
	if c.Blur.Radius >= 0 {
		s.Blur = effect.Filter{Kind: effect.KindBlur, Radius: c.Blur.Radius}
	}
	if c.Blur.MinDelta >= 0 {
		s.BlurMinDelta = c.Blur.MinDelta
	}
	return s, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[draw]\n")
	fmt.Fprintf(&sb, "color = %s\n", c.Draw.Color)
	fmt.Fprintf(&sb, "width = %d\n", c.Draw.Width)
	fmt.Fprintf(&sb, "mode = %s\n", c.Draw.Mode)
	fmt.Fprintf(&sb, "highlighter = %v\n", c.Draw.Highlighter)
	fmt.Fprintf(&sb, "font = %s\n", c.Draw.Font)
	fmt.Fprintf(&sb, "text_size = %g\n", c.Draw.TextSize)
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "zoom = %d\n", c.View.Zoom)
	fmt.Fprintf(&sb, "title_bar = %v\n", c.View.TitleBar)
	sb.WriteString("\n")

	sb.WriteString("[blur]\n")
	fmt.Fprintf(&sb, "radius = %d\n", c.Blur.Radius)
	fmt.Fprintf(&sb, "min_delta = %g\n", c.Blur.MinDelta)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
		sb.WriteString("\n")
	}

	return sb.String()
}
