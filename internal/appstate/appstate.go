// Package appstate runs the interactive annotation window on top of an
// editor.Editor.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/persist"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/theme"
	"github.com/example/snapmark/internal/transform"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const (
	messageDuration = 2 * time.Second
	wheelPan        = 40
	minWindow       = 320
)

var (
	clipboardWrite = clipboard.WriteImage
	clipboardRead  = clipboard.ReadImage
	saveImage      = persist.Save
	now            = time.Now
)

// App holds the window state around one editor.
type App struct {
	ed        *editor.Editor
	entry     *textEntry
	theme     *theme.Theme
	title     string
	output    string
	saveDir   string
	shadow    bool
	notifier  *notify.Notifier
	recapture func() (*image.RGBA, error)
	onClose   func()
	edOpts    []editor.Option

	keys     keymap
	viewport transform.Viewport
	updateCh chan struct{}

	win          image.Point
	canvasSize   image.Point
	pan          image.Point
	message      string
	messageUntil time.Time

	drawing       bool
	pressHadDraft bool
	panning       bool
	panStart      image.Point
	panFrom       image.Point
}

// Option modifies an App during creation.
type Option func(*App)

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithOutput fixes the file Ctrl+S writes to.
func WithOutput(path string) Option { return func(a *App) { a.output = path } }

// WithSaveDir sets the directory for timestamped saves.
func WithSaveDir(dir string) Option { return func(a *App) { a.saveDir = dir } }

// WithShadow adds a drop shadow to copied and saved images.
func WithShadow(on bool) Option { return func(a *App) { a.shadow = on } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithRecapture sets the function Ctrl+N uses to grab a new image.
func WithRecapture(fn func() (*image.RGBA, error)) Option {
	return func(a *App) { a.recapture = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// WithEditorOptions passes extra options to the editor.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *App) { a.edOpts = append(a.edOpts, opts...) }
}

// New creates the window state for img.
func New(img image.Image, settings editor.Settings, opts ...Option) *App {
	a := &App{
		entry:    &textEntry{},
		theme:    theme.Default(),
		title:    "snapmark",
		keys:     newKeymap(Bindings),
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	base := []editor.Option{
		editor.WithSettings(settings),
		editor.WithPrompter(a.entry),
		editor.WithViewportObserver(a.onViewport),
	}
	a.ed = editor.New(img, append(base, a.edOpts...)...)
	a.viewport = a.ed.Viewport()
	a.canvasSize = a.viewport.Size
	a.win = a.initialWindow()
	return a
}

// Editor returns the underlying editor.
func (a *App) Editor() *editor.Editor { return a.ed }

func (a *App) initialWindow() image.Point {
	return image.Pt(max(a.viewport.Size.X, minWindow), max(a.viewport.Size.Y+statusHeight, minWindow))
}

func (a *App) onViewport(v transform.Viewport) {
	log.Printf("viewport %dx%d at %d%%", v.Size.X, v.Size.Y, int(math.Round(v.Zoom*100)))
	a.viewport = v
	a.canvasSize = v.Size
	a.requestPaint()
}

func (a *App) requestPaint() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) flash(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
	a.messageUntil = now().Add(messageDuration)
	log.Print(a.message)
}

func (a *App) origin() image.Point {
	return canvasOrigin(a.win, a.canvasSize, a.pan)
}

func (a *App) toScene(x, y float32) geom.Point {
	p := image.Pt(int(math.Round(float64(x))), int(math.Round(float64(y))))
	return a.ed.ToScene(p.Sub(a.origin()))
}

// exportImage renders what copy and save write.
func (a *App) exportImage() *image.RGBA {
	out := a.ed.Output(true)
	if a.shadow {
		out, _ = render.ApplyShadow(out, render.DefaultShadowOptions())
	}
	return out
}

func (a *App) savePath() string {
	if a.output != "" {
		return a.output
	}
	return persist.OutputPath(a.saveDir, persist.DefaultName(now(), persist.FormatPNG))
}

func (a *App) load(img *image.RGBA, what string) {
	a.entry.active = false
	a.ed.Load(img)
	a.pan = image.Point{}
	a.notifier.Capture(what, img)
}

// perform runs a keyboard action. It reports whether the window should
// close.
func (a *App) perform(act Action) (quit bool) {
	switch act {
	case ActionQuit:
		return true
	case ActionUndo:
		a.ed.Undo()
	case ActionRedo:
		a.ed.Redo()
	case ActionCopy:
		if err := clipboardWrite(a.exportImage()); err != nil {
			a.flash("copy: %v", err)
			return false
		}
		a.notifier.Copy("")
		a.flash("image copied to clipboard")
	case ActionPaste:
		img, err := clipboardRead()
		if errors.Is(err, clipboard.ErrNoImage) {
			a.flash("clipboard has no image")
			return false
		}
		if err != nil {
			a.flash("paste: %v", err)
			return false
		}
		a.load(img, "clipboard image")
	case ActionSave:
		path := a.savePath()
		if err := saveImage(path, a.exportImage()); err != nil {
			a.flash("save: %v", err)
			return false
		}
		a.notifier.Save(path)
		a.flash("saved %s", path)
	case ActionRecapture:
		if a.recapture == nil {
			a.flash("recapture is not available")
			return false
		}
		img, err := a.recapture()
		if err != nil {
			a.flash("capture: %v", err)
			return false
		}
		a.load(img, fmt.Sprintf("%dx%d region", img.Bounds().Dx(), img.Bounds().Dy()))
	case ActionZoom50:
		a.ed.SetZoomPercent(50)
	case ActionZoom100:
		a.ed.SetZoomPercent(100)
	case ActionZoom200:
		a.ed.SetZoomPercent(200)
	case ActionZoomIn:
		a.ed.ZoomBy(1)
	case ActionZoomOut:
		a.ed.ZoomBy(-1)
	case ActionRotateLeft:
		a.ed.Rotate(-90)
	case ActionRotateRight:
		a.ed.Rotate(90)
	case ActionMirrorH:
		a.ed.Mirror(true, false)
	case ActionMirrorV:
		a.ed.Mirror(false, true)
	case ActionHighlighter:
		a.ed.SetHighlighter(!a.ed.Settings().Highlighter)
	case ActionWiderPen:
		a.ed.SetWidth(stepWidth(a.ed.Settings().Width, 1))
	case ActionNarrowerPen:
		a.ed.SetWidth(stepWidth(a.ed.Settings().Width, -1))
	case ActionNextColor:
		a.ed.SetColor(stepColor(a.ed.Settings().Color, 1))
	case ActionPrevColor:
		a.ed.SetColor(stepColor(a.ed.Settings().Color, -1))
	default:
		if m, ok := modeActions[act]; ok {
			a.ed.SetMode(m)
		}
	}
	return false
}

var modeActions = map[Action]editor.Mode{
	ActionFreehand:    editor.ModeFreehand,
	ActionLine:        editor.ModeLine,
	ActionArrow:       editor.ModeArrow,
	ActionFilledArrow: editor.ModeFilledArrow,
	ActionRect:        editor.ModeRect,
	ActionFilledRect:  editor.ModeFilledRect,
	ActionBlur:        editor.ModeBlur,
	ActionText:        editor.ModeText,
}

// stepWidth moves to the neighbouring preset width.
func stepWidth(cur, dir int) int {
	if dir > 0 {
		for _, w := range editor.Widths {
			if w > cur {
				return w
			}
		}
		return editor.Widths[len(editor.Widths)-1]
	}
	for i := len(editor.Widths) - 1; i >= 0; i-- {
		if editor.Widths[i] < cur {
			return editor.Widths[i]
		}
	}
	return editor.Widths[0]
}

// stepColor moves through the palette, starting from the first entry when
// cur is not a preset.
func stepColor(cur color.NRGBA, dir int) color.NRGBA {
	cur.A = 255
	n := len(editor.Palette)
	i := slices.IndexFunc(editor.Palette, func(c editor.NamedColor) bool { return c.Color == cur })
	if i < 0 {
		return editor.Palette[0].Color
	}
	return editor.Palette[((i+dir)%n+n)%n].Color
}

func colorName(c color.NRGBA) string {
	c.A = 255
	for _, p := range editor.Palette {
		if p.Color == c {
			return p.Name
		}
	}
	return theme.Hex(color.RGBA{c.R, c.G, c.B, 255})
}

// handleKey processes a key press. It reports whether the window should
// close.
func (a *App) handleKey(e key.Event) (quit bool) {
	if a.entry.active {
		if a.entry.handle(e) {
			a.ed.PromptText(a.entry.at)
		}
		return false
	}
	if e.Code == key.CodeEscape {
		return true
	}
	act, ok := a.keys.lookup(e)
	if !ok {
		return false
	}
	return a.perform(act)
}

// handleMouse processes pointer input and reports whether a repaint is
// needed.
func (a *App) handleMouse(e mouse.Event) bool {
	win := image.Pt(int(e.X), int(e.Y))
	switch {
	case e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown:
		steps := 1
		if e.Button == mouse.ButtonWheelDown {
			steps = -1
		}
		if e.Modifiers&key.ModControl != 0 {
			a.ed.ZoomBy(steps)
		} else {
			a.pan.Y += steps * wheelPan
		}
		return true
	case e.Button == mouse.ButtonMiddle && e.Direction == mouse.DirPress:
		a.panning, a.panStart, a.panFrom = true, win, a.pan
		return false
	case e.Button == mouse.ButtonMiddle && e.Direction == mouse.DirRelease:
		a.panning = false
		return false
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if a.entry.active {
			a.entry.done, a.entry.active = true, false
			a.ed.PromptText(a.entry.at)
			return true
		}
		a.pressHadDraft = a.ed.Session().Draft() != nil
		a.drawing = true
		a.ed.Press(a.toScene(e.X, e.Y))
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !a.drawing {
			return false
		}
		a.drawing = false
		p := a.toScene(e.X, e.Y)
		a.ed.Release(p)
		if a.ed.Settings().Mode == editor.ModeText && !a.pressHadDraft && a.ed.Session().Draft() == nil {
			a.entry.start(p, a.ed.Settings().Font)
		}
		return true
	case e.Direction == mouse.DirNone:
		if a.panning {
			a.pan = a.panFrom.Add(win.Sub(a.panStart))
			return true
		}
		if a.drawing {
			a.ed.Drag(a.toScene(e.X, e.Y))
			return true
		}
	}
	return false
}

func (a *App) status() string {
	s := a.ed.Settings()
	hl := ""
	if s.Highlighter {
		hl = " highlighter"
	}
	return fmt.Sprintf("%s  %s  %dpx%s  %d%%  edits %d", s.Mode, colorName(s.Color), s.Width, hl, a.ed.ZoomPercent(), a.ed.HistoryLen())
}

// paintState snapshots the editor for the painter goroutine.
func (a *App) paintState() paintState {
	canvas := a.ed.Display()
	a.canvasSize = canvas.Bounds().Size()
	origin := a.origin()
	view := a.ed.Composer().Display()
	st := paintState{
		width:        a.win.X,
		height:       a.win.Y,
		theme:        a.theme,
		canvas:       canvas,
		origin:       origin,
		status:       a.status(),
		message:      a.message,
		messageUntil: a.messageUntil,
	}
	if d := a.ed.Session().Draft(); d != nil {
		if _, ok := d.Shape.(*scene.Text); ok {
			st.selection = toWindow(view, d.Bounds(), origin)
		}
	}
	if a.entry.active {
		st.entryActive = true
		st.entryText = a.entry.pending()
		st.entryAt = view.TransformPoint(a.entry.at).Image().Add(origin)
		f := a.entry.font
		f.Size *= a.ed.Composer().Zoom()
		st.entryFont = f
		st.entryColor = a.ed.Settings().Color
	}
	return st
}

func toWindow(view transform.Matrix, r image.Rectangle, origin image.Point) image.Rectangle {
	g := view.TransformRect(geom.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())})
	return g.Image().Add(origin)
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *App) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.win.X, Height: a.win.Y, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	if a.onClose != nil {
		defer a.onClose()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.win = image.Pt(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.paintState()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress && e.Direction != key.DirNone {
				continue
			}
			if a.handleKey(e) {
				return
			}
			w.Send(paint.Event{})
		}
	}
}
