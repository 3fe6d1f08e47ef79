package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
)

// drawCmd applies one shape to an image through the editor, as if it had been
// drawn with the pointer.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.NRGBA
	outlineSpec   string
	outline       *color.NRGBA
	width         int
	highlighter   bool
	textSize      float64
	fontFamily    string
	blurRadius    int
	shadow        bool
	mode          editor.Mode
	points        []geom.Point
	text          string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

// flagPrompter answers the editor's text prompt with the command line text.
type flagPrompter struct {
	req editor.TextRequest
}

func (p flagPrompter) PromptText(color.NRGBA) (editor.TextRequest, bool) {
	return p.req, p.req.Text != ""
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	cfg := r.settings()
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", cfg.Draw.Color, "stroke or fill color name or hex value")
	fs.StringVar(&d.outlineSpec, "outline", "", "outline color for text")
	fs.IntVar(&d.width, "width", cfg.Draw.Width, "stroke width in pixels")
	fs.BoolVar(&d.highlighter, "highlighter", cfg.Draw.Highlighter, "draw with a translucent pen")
	fs.Float64Var(&d.textSize, "text-size", cfg.Draw.TextSize, "text size in points")
	fs.StringVar(&d.fontFamily, "font", cfg.Draw.Font, "font family: "+strings.Join(render.Families(), ", "))
	fs.IntVar(&d.blurRadius, "blur-radius", cfg.Blur.Radius, "blur radius in pixels")
	fs.BoolVar(&d.shadow, "shadow", false, "add a drop shadow to the result")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.mode, err = editor.ParseMode(positionals[0])
	if err != nil {
		return nil, fmt.Errorf("unsupported shape %q", positionals[0])
	}
	shape := d.mode.String()
	remaining := positionals[1:]
	switch d.mode {
	case editor.ModeFreehand:
		if len(remaining) < 4 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("freehand requires at least two x y pairs")
		}
		d.points, err = expectPoints(remaining, len(remaining), shape)
	case editor.ModeText:
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.points, err = expectPoints(remaining[:2], 2, shape)
		if err != nil {
			return nil, err
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	default:
		d.points, err = expectPoints(remaining, 4, shape)
	}
	if err != nil {
		return nil, err
	}
	col, err := config.ParseColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	d.color = color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}
	if d.outlineSpec != "" {
		o, err := config.ParseColor(d.outlineSpec)
		if err != nil {
			return nil, fmt.Errorf("outline: %w", err)
		}
		d.outline = &color.NRGBA{R: o.R, G: o.G, B: o.B, A: 255}
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file != "" {
				d.output = d.file
			} else {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	if d.width < 1 {
		d.width = 1
	}
	if d.textSize <= 0 {
		d.textSize = render.DefaultFont.Size
	}
	if d.blurRadius < 0 {
		return nil, fmt.Errorf("blur-radius cannot be negative")
	}
	if _, err := render.Face(d.font()); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *drawCmd) font() render.Font {
	return render.Font{Family: d.fontFamily, Size: d.textSize}
}

func (d *drawCmd) Run() error {
	src := sourceFlags{file: d.file, fromClipboard: d.fromClipboard}
	if d.fromClipboard {
		src.file = ""
	}
	img, err := src.load()
	if err != nil {
		return err
	}
	settings, err := d.root.settings().Settings()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	settings.Mode = d.mode
	settings.Color = d.color
	settings.Width = d.width
	settings.Highlighter = d.highlighter
	settings.Font = d.font()
	settings.Blur.Radius = d.blurRadius

	ed := editor.New(img,
		editor.WithSettings(settings),
		editor.WithPrompter(flagPrompter{req: editor.TextRequest{
			Text:    d.text,
			Font:    d.font(),
			Color:   d.color,
			Outline: d.outline,
		}}),
		editor.WithDebug(d.root.debugging()),
	)
	if err := d.applyShape(ed); err != nil {
		return err
	}
	out := ed.Output(true)
	if d.shadow {
		out, _ = render.ApplyShadow(out, render.DefaultShadowOptions())
	}
	if err := saveAndReport(d.root, d.output, out); err != nil {
		return err
	}
	if d.toClipboard {
		if err := writeClipboardFn(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

// applyShape replays the shape as a pointer gesture.
func (d *drawCmd) applyShape(ed *editor.Editor) error {
	if d.mode == editor.ModeText {
		if !ed.PromptText(d.points[0]) {
			return fmt.Errorf("text content cannot be empty")
		}
		return nil
	}
	ed.Press(d.points[0])
	for _, p := range d.points[1:] {
		ed.Drag(p)
	}
	ed.Release(d.points[len(d.points)-1])
	if ed.HistoryLen() == 0 {
		return fmt.Errorf("%s produced nothing to draw", d.mode)
	}
	return nil
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func expectPoints(args []string, n int, shape string) ([]geom.Point, error) {
	vals, err := expectInts(args, n, shape)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Point, 0, n/2)
	for i := 0; i+1 < len(vals); i += 2 {
		pts = append(pts, geom.Pt(float64(vals[i]), float64(vals[i+1])))
	}
	return pts, nil
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"outline":        {},
	"width":          {},
	"highlighter":    {},
	"text-size":      {},
	"font":           {},
	"blur-radius":    {},
	"shadow":         {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"highlighter":    {},
	"shadow":         {},
}

// splitDrawArgs separates flags from positionals so flags may follow the
// shape and negative coordinates are not mistaken for flags.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
