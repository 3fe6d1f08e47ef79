package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"slices"
	"path/filepath"
	"time"

	"github.com/example/snapmark/internal/persist"
	"github.com/example/snapmark/internal/render"
)

var (
	stdoutWriter  io.Writer = os.Stdout
	now           = time.Now
	saveImageFn   = persist.Save
	encodeImageFn = persist.Encode
)

// captureCmd grabs the screen without opening the editor.
type captureCmd struct {
	source      sourceFlags
	output      string
	saveDir     string
	stdout      bool
	format      string
	toClipboard bool
	shadow      bool
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.source.register(fs, false)
	fs.StringVar(&c.output, "output", "", "write the capture to this file (default: timestamped file in -save-dir)")
	fs.StringVar(&c.saveDir, "save-dir", r.settings().SaveDir, "directory for timestamped captures")
	fs.BoolVar(&c.stdout, "stdout", false, "write the image to stdout")
	fs.StringVar(&c.format, "format", string(persist.FormatPNG), "image format for -stdout")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the capture to the clipboard (alias)")
	fs.BoolVar(&c.shadow, "shadow", false, "apply a drop shadow to the captured image")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if err := c.source.validate(); err != nil {
		return nil, err
	}
	if c.stdout && (c.toClipboard || c.output != "") {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard or -output")
	}
	if !slices.Contains(persist.Formats(), persist.Format(c.format)) {
		return nil, fmt.Errorf("format %q: %w", c.format, persist.ErrUnsupportedFormat)
	}
	return c, nil
}

func (c *captureCmd) Run() error {
	img, err := c.source.load()
	if err != nil {
		return err
	}
	c.root.notifyCapture(c.source.describe(), img)
	var out image.Image = img
	if c.shadow {
		out, _ = render.ApplyShadow(img, render.DefaultShadowOptions())
	}
	switch {
	case c.stdout:
		return encodeImageFn(stdoutWriter, out, persist.Format(c.format))
	case c.toClipboard:
		if err := writeClipboardFn(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", c.source.describe())
		c.root.notifyCopy(c.source.describe())
		if c.output == "" {
			return nil
		}
	}
	path := c.output
	if path == "" {
		path = persist.OutputPath(c.saveDir, persist.DefaultName(now(), persist.FormatPNG))
	}
	return saveAndReport(c.root, path, out)
}

// saveAndReport writes img to path and announces it on stderr and as a
// notification.
func saveAndReport(r *root, path string, img image.Image) error {
	if err := saveImageFn(path, img); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	r.notifySave(saved)
	return nil
}
