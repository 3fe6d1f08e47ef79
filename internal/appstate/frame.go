package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/theme"
)

const (
	statusHeight = 20
	checkerSize  = 8
)

// paintState is an immutable copy of what one frame shows.
type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA // scene as presented
	origin        image.Point // window position of canvas
	selection     image.Rectangle
	status        string
	message       string
	messageUntil  time.Time

	entryActive bool
	entryText   string
	entryAt     image.Point
	entryFont   render.Font
	entryColor  color.NRGBA
}

// canvasOrigin places a canvas of size sz inside a window, centred when it
// fits and then shifted by pan.
func canvasOrigin(win, sz, pan image.Point) image.Point {
	avail := image.Pt(win.X, win.Y-statusHeight)
	o := image.Point{}
	if sz.X < avail.X {
		o.X = (avail.X - sz.X) / 2
	}
	if sz.Y < avail.Y {
		o.Y = (avail.Y - sz.Y) / 2
	}
	return o.Add(pan)
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick), u, image.Point{}, draw.Over)
}

// composeFrame paints st into dst. It returns early when ctx is cancelled.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) {
	th := st.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if st.canvas != nil {
		r := st.canvas.Bounds().Sub(st.canvas.Bounds().Min).Add(st.origin)
		drawCheckerboard(dst, r, checkerSize, th.CheckerLight, th.CheckerDark)
		if ctx.Err() != nil {
			return
		}
		draw.Draw(dst, r, st.canvas, st.canvas.Bounds().Min, draw.Over)
	}
	if !st.selection.Empty() {
		drawRect(dst, st.selection.Inset(-2), th.Selection, 1)
	}
	if ctx.Err() != nil {
		return
	}

	if st.entryActive {
		c := st.entryColor
		c.A = 255
		if err := render.DrawText(dst, st.entryAt, st.entryText+"|", st.entryFont, c, nil); err != nil {
			log.Printf("text entry: %v", err)
		}
	}

	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Over)
	text := st.status
	if st.message != "" && time.Now().Before(st.messageUntil) {
		text = st.message
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(th.StatusText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(bar.Min.X+6, bar.Max.Y-5),
	}
	d.DrawString(text)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	composeFrame(ctx, b.RGBA(), st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
