// Package editor ties the scene, its undo history and the view transform to
// pointer gestures and menu actions.
package editor

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/history"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/transform"
	xdraw "golang.org/x/image/draw"
)

// Prompter asks the user for text to place. It returns ok=false when the
// prompt was cancelled.
type Prompter interface {
	PromptText(initial color.NRGBA) (req TextRequest, ok bool)
}

// Editor is one annotation session over a captured image. All methods must be
// called from the same goroutine.
type Editor struct {
	store    *scene.Store
	history  history.Stack
	composer *transform.Composer
	session  *Session
	settings Settings
	prompter Prompter
	debug    bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithSettings replaces the default pen settings.
func WithSettings(s Settings) Option {
	return func(e *Editor) { e.settings = s }
}

// WithViewportObserver registers fn to receive every viewport change.
func WithViewportObserver(fn func(transform.Viewport)) Option {
	return func(e *Editor) { e.composer.OnChange(fn) }
}

// WithBorderless pads the viewport for windows without a title bar.
func WithBorderless(b bool) Option {
	return func(e *Editor) { e.composer.SetBorderless(b) }
}

// WithPrompter sets the text prompt used by PromptText.
func WithPrompter(p Prompter) Option {
	return func(e *Editor) { e.prompter = p }
}

// WithDebug logs skipped blur renders and discarded history.
func WithDebug(b bool) Option {
	return func(e *Editor) { e.debug = b }
}

// New returns an editor over img.
func New(img image.Image, opts ...Option) *Editor {
	e := &Editor{
		store:    scene.NewStore(img),
		settings: DefaultSettings(),
	}
	e.composer = transform.NewComposer(e.store.Size())
	e.session = newSession(&e.settings, e.store, e.commit, e.debugf)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) debugf(format string, args ...any) {
	if e.debug {
		log.Printf(format, args...)
	}
}

func (e *Editor) commit(it *scene.Item) {
	e.debugf("commit %T %s", it.Shape, it.ID)
	e.history.Push(&addItem{store: e.store, item: it})
}

// Load replaces the scene with img and forgets the draft, history and view
// transforms.
func (e *Editor) Load(img image.Image) {
	e.session.Reset()
	e.history.Clear()
	e.store.Reset(img)
	e.composer.Reset(e.store.Size())
}

// Store returns the committed scene.
func (e *Editor) Store() *scene.Store { return e.store }

// Composer returns the view transform.
func (e *Editor) Composer() *transform.Composer { return e.composer }

// Session returns the gesture state machine.
func (e *Editor) Session() *Session { return e.session }

// Press starts a gesture at p in scene coordinates.
func (e *Editor) Press(p geom.Point) { e.session.Press(p) }

// Drag moves the active gesture to p.
func (e *Editor) Drag(p geom.Point) { e.session.Drag(p) }

// Release ends the active gesture at p.
func (e *Editor) Release(p geom.Point) { e.session.Release(p) }

// PlaceText puts a movable text draft at p.
func (e *Editor) PlaceText(p geom.Point, req TextRequest) {
	if req.Text == "" {
		return
	}
	if req.Font.Size <= 0 {
		req.Font = e.settings.Font
	}
	e.session.PlaceText(p, req)
}

// PromptText asks the prompter for text and places it at p. It reports
// whether text was placed.
func (e *Editor) PromptText(p geom.Point) bool {
	if e.prompter == nil {
		return false
	}
	req, ok := e.prompter.PromptText(e.settings.Color)
	if !ok || req.Text == "" {
		return false
	}
	e.PlaceText(p, req)
	return true
}

// Undo reverts the last edit. It reports whether anything changed.
func (e *Editor) Undo() bool {
	e.session.Flush()
	return e.history.Undo()
}

// Redo reapplies the next edit. It reports whether anything changed.
func (e *Editor) Redo() bool {
	return e.history.Redo()
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() || e.session.Draft() != nil }

// CanRedo reports whether Redo would change anything.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// HistoryLen returns the number of recorded edits.
func (e *Editor) HistoryLen() int { return e.history.Len() }

// SetZoom sets the zoom factor. Zoom is not recorded in the undo history.
func (e *Editor) SetZoom(f float64) { e.composer.SetZoom(f) }

// SetZoomPercent sets the zoom to pct percent.
func (e *Editor) SetZoomPercent(pct int) { e.SetZoom(float64(pct) / 100) }

// ZoomPercent returns the zoom in whole percent.
func (e *Editor) ZoomPercent() int { return int(math.Round(e.composer.Zoom() * 100)) }

// ZoomBy changes the zoom by steps wheel notches.
func (e *Editor) ZoomBy(steps int) {
	e.SetZoomPercent(e.ZoomPercent() + steps*ZoomStep)
}

// Rotate turns the view by degrees as an undoable edit. The angle is rounded
// to the nearest quarter turn, so the viewport stays axis aligned. It reports
// whether anything changed.
func (e *Editor) Rotate(degrees float64) bool {
	quarters := math.Mod(math.Round(degrees/90), 4)
	if quarters == 0 || math.IsNaN(quarters) {
		return false
	}
	e.history.Push(&transformChange{composer: e.composer, change: e.composer.RotateBy(quarters * 90)})
	return true
}

// Mirror flips the view as an undoable edit.
func (e *Editor) Mirror(horizontal, vertical bool) {
	if !horizontal && !vertical {
		return
	}
	e.history.Push(&transformChange{composer: e.composer, change: e.composer.Mirror(horizontal, vertical)})
}

// Viewport returns the presented size of the scene.
func (e *Editor) Viewport() transform.Viewport { return e.composer.Viewport() }

// Output renders the scene and any draft still on screen. When oriented is
// true the mirror and rotation are applied. Zoom never applies to output.
func (e *Editor) Output(oriented bool) *image.RGBA {
	img := e.store.Render(e.session.Draft())
	if !oriented {
		return img
	}
	m := e.composer.Oriented()
	size := m.TransformRect(geom.Rect{W: float64(img.Bounds().Dx()), H: float64(img.Bounds().Dy())})
	return render.Warp(img, m.Aff3(), image.Pt(int(math.Round(size.W)), int(math.Round(size.H))), xdraw.NearestNeighbor)
}

// Display renders the scene as presented, with zoom, mirror and rotation.
func (e *Editor) Display() *image.RGBA {
	img := e.store.Render(e.session.Draft())
	m := e.composer.Display()
	size := m.TransformRect(geom.Rect{W: float64(img.Bounds().Dx()), H: float64(img.Bounds().Dy())})
	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if e.composer.Zoom() < 1 {
		interp = xdraw.ApproxBiLinear
	}
	return render.Warp(img, m.Aff3(), image.Pt(int(math.Round(size.W)), int(math.Round(size.H))), interp)
}

// ToScene maps a point in the presented view back to scene coordinates.
func (e *Editor) ToScene(p image.Point) geom.Point {
	return e.composer.Display().Invert().TransformPoint(geom.FromImage(p))
}

// Settings returns the current pen settings.
func (e *Editor) Settings() Settings { return e.settings }

// SetMode selects the shape drawn by the next gesture.
func (e *Editor) SetMode(m Mode) { e.settings.Mode = m }

// SetColor sets the pen colour. Alpha is ignored.
func (e *Editor) SetColor(c color.NRGBA) { e.settings.Color = c }

// SetWidth sets the pen width in pixels.
func (e *Editor) SetWidth(w int) { e.settings.Width = max(w, 1) }

// SetHighlighter toggles translucent pens.
func (e *Editor) SetHighlighter(on bool) { e.settings.Highlighter = on }

// SetFont sets the default text font.
func (e *Editor) SetFont(f render.Font) { e.settings.Font = f }
