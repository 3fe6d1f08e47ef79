package editor

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/example/snapmark/internal/effect"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
)

// Mode is the shape drawn by the next gesture.
type Mode int

const (
	ModeFreehand Mode = iota
	ModeLine
	ModeArrow
	ModeFilledArrow
	ModeRect
	ModeFilledRect
	ModeBlur
	ModeText
)

var modeNames = []string{"freehand", "line", "arrow", "filled-arrow", "rect", "filled-rect", "blur", "text"}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Modes lists every drawing mode in menu order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	i := slices.Index(modeNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, fmt.Errorf("unknown draw mode %q", s)
	}
	return Mode(i), nil
}

// NamedColor is a palette entry.
type NamedColor struct {
	Name  string
	Color color.NRGBA
}

// Palette is the set of preset pen colours.
var Palette = []NamedColor{
	{"black", color.NRGBA{0, 0, 0, 255}},
	{"red", color.NRGBA{255, 0, 0, 255}},
	{"green", color.NRGBA{0, 255, 0, 255}},
	{"blue", color.NRGBA{0, 0, 255, 255}},
	{"yellow", color.NRGBA{255, 255, 0, 255}},
	{"white", color.NRGBA{255, 255, 255, 255}},
}

// Widths are the preset pen widths in pixels.
var Widths = []int{1, 2, 4, 8, 16, 24, 32}

// ZoomPresets are the zoom levels offered by the view menu, in percent.
var ZoomPresets = []int{50, 75, 100, 150, 200, 500}

// ZoomStep is the change in percent applied by one wheel notch.
const ZoomStep = 10

// FilledRectPen is the outline width of filled rectangles.
const FilledRectPen = 2

// DefaultBlurMinDelta is the pointer travel in pixels below which a blur
// patch is not re-rendered during a drag.
const DefaultBlurMinDelta = 4

// Settings is the pen state applied to new items.
type Settings struct {
	Color        color.NRGBA
	Width        int
	Highlighter  bool
	Mode         Mode
	Font         render.Font
	Blur         effect.Filter
	BlurMinDelta float64
}

// DefaultSettings returns a 4 pixel red freehand pen.
func DefaultSettings() Settings {
	return Settings{
		Color:        Palette[1].Color,
		Width:        4,
		Mode:         ModeFreehand,
		Font:         render.DefaultFont,
		Blur:         effect.DefaultBlur,
		BlurMinDelta: DefaultBlurMinDelta,
	}
}

// Style returns the pen and brush for an item drawn in mode m.
func (s Settings) Style(m Mode) scene.Style {
	c := s.Color
	c.A = 255
	st := scene.Style{Stroke: c, Width: max(s.Width, 1), Fill: c}
	if m == ModeFilledRect {
		st.Width = FilledRectPen
	}
	if s.Highlighter {
		st = st.Highlight()
	}
	return st
}
