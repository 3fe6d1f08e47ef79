package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font selects a face for text annotations.
type Font struct {
	Family string
	Size   float64
}

// DefaultFont is used when no font has been chosen.
var DefaultFont = Font{Family: "sans", Size: 16}

var fontData = map[string][]byte{
	"sans":        goregular.TTF,
	"sans-bold":   gobold.TTF,
	"sans-italic": goitalic.TTF,
	"mono":        gomono.TTF,
}

var (
	parsedFonts sync.Map // map[string]*opentype.Font
	faceCache   sync.Map // map[Font]font.Face
)

// Families lists the font families available for text.
func Families() []string {
	out := make([]string, 0, len(fontData))
	for name := range fontData {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Face returns a cached face for f.
func Face(f Font) (font.Face, error) {
	if f.Size <= 0 {
		f.Size = DefaultFont.Size
	}
	if f.Family == "" {
		f.Family = DefaultFont.Family
	}
	f.Family = strings.ToLower(f.Family)
	if face, ok := faceCache.Load(f); ok {
		return face.(font.Face), nil
	}
	data, ok := fontData[f.Family]
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", f.Family)
	}
	var parsed *opentype.Font
	if v, ok := parsedFonts.Load(f.Family); ok {
		parsed = v.(*opentype.Font)
	} else {
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", f.Family, err)
		}
		parsedFonts.Store(f.Family, parsed)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: f.Size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %s %.1f: %w", f.Family, f.Size, err)
	}
	faceCache.Store(f, face)
	return face, nil
}

// MeasureText returns the size of text laid out one line per newline.
func MeasureText(text string, f Font) (image.Point, error) {
	face, err := Face(f)
	if err != nil {
		return image.Point{}, err
	}
	m := face.Metrics()
	lineH := m.Ascent.Ceil() + m.Descent.Ceil()
	lines := strings.Split(text, "\n")
	w := 0
	for _, line := range lines {
		w = max(w, font.MeasureString(face, line).Ceil())
	}
	return image.Pt(w, lineH*len(lines)), nil
}

// DrawText renders text with its top left corner at at. When outline is not
// nil each glyph is ringed with a one pixel outline.
func DrawText(dst *image.RGBA, at image.Point, text string, f Font, fill color.Color, outline color.Color) error {
	face, err := Face(f)
	if err != nil {
		return err
	}
	m := face.Metrics()
	lineH := m.Ascent.Ceil() + m.Descent.Ceil()
	draw := func(off image.Point, col color.Color) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
		for i, line := range strings.Split(text, "\n") {
			d.Dot = fixed.P(at.X+off.X, at.Y+off.Y+m.Ascent.Ceil()+i*lineH)
			d.DrawString(line)
		}
	}
	if outline != nil {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					draw(image.Pt(dx, dy), outline)
				}
			}
		}
	}
	draw(image.Point{}, fill)
	return nil
}
