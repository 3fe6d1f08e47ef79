package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/snapmark/internal/editor"
)

// transformCmd rotates and mirrors an image file.
type transformCmd struct {
	file   string
	output string
	rotate int
	mirror string
	*root
	fs *flag.FlagSet
}

func (t *transformCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseTransformCmd(args []string, r *root) (*transformCmd, error) {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	t := &transformCmd{root: r, fs: fs}
	fs.Usage = usageFunc(t)
	fs.StringVar(&t.file, "file", "", "input image file")
	fs.StringVar(&t.output, "output", "", "output file path (defaults to input file)")
	fs.IntVar(&t.rotate, "rotate", 0, "clockwise rotation in degrees, a multiple of 90")
	fs.StringVar(&t.mirror, "mirror", "", "mirror axes: h, v or hv")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || t.file == "" {
		return nil, &UsageError{of: t}
	}
	if t.rotate%90 != 0 {
		return nil, fmt.Errorf("rotate must be a multiple of 90, got %d", t.rotate)
	}
	t.mirror = strings.ToLower(strings.TrimSpace(t.mirror))
	if strings.Trim(t.mirror, "hv") != "" {
		return nil, fmt.Errorf("mirror must be h, v or hv, got %q", t.mirror)
	}
	if t.rotate == 0 && t.mirror == "" {
		fmt.Fprintln(os.Stderr, "warning: no -rotate or -mirror given, the image is copied unchanged")
	}
	if t.output == "" {
		t.output = t.file
	}
	return t, nil
}

func (t *transformCmd) Run() error {
	img, err := openImageFn(t.file)
	if err != nil {
		return fmt.Errorf("open %s: %w", t.file, err)
	}
	ed := editor.New(img, editor.WithDebug(t.root.debugging()))
	ed.Mirror(strings.Contains(t.mirror, "h"), strings.Contains(t.mirror, "v"))
	steps := (t.rotate / 90) % 4
	for i := 0; i < abs(steps); i++ {
		if steps > 0 {
			ed.Rotate(90)
		} else {
			ed.Rotate(-90)
		}
	}
	return saveAndReport(t.root, t.output, ed.Output(true))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
