package editor

import (
	"image"
	"image/color"
	"math"

	"github.com/example/snapmark/internal/effect"
	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
	"github.com/example/snapmark/internal/scene"
)

type gesture int

const (
	gestureIdle gesture = iota
	gesturePressed
	gestureDrafting
	gestureMovingText
)

// TextRequest is the result of the text prompt.
type TextRequest struct {
	Text    string
	Font    render.Font
	Color   color.NRGBA
	Outline *color.NRGBA
}

// Session turns pointer gestures into a draft item and commits it when the
// gesture ends. Only one draft exists at a time.
type Session struct {
	state gesture
	mode  Mode
	start geom.Point
	last  geom.Point
	draft *scene.Item

	// blur throttling
	rendered geom.Point
	renders  int

	grab     geom.Point
	settings *Settings
	scene    effect.Snapshotter
	commit   func(*scene.Item)
	debugf   func(string, ...any)
}

func newSession(settings *Settings, src effect.Snapshotter, commit func(*scene.Item), debugf func(string, ...any)) *Session {
	return &Session{settings: settings, scene: src, commit: commit, debugf: debugf}
}

// Draft returns the uncommitted item, or nil.
func (s *Session) Draft() *scene.Item { return s.draft }

// BlurRenders returns how many times the blur patch has been rendered in
// this session.
func (s *Session) BlurRenders() int { return s.renders }

// Press starts a gesture at p. A pending draft is committed first unless p
// grabs a text draft, which then follows the pointer. The tool mode is
// latched here and holds until Release.
func (s *Session) Press(p geom.Point) {
	if s.draft != nil {
		if _, ok := s.draft.Shape.(*scene.Text); ok {
			if s.draft.Contains(p) {
				s.grab = p.Sub(s.draft.Shape.(*scene.Text).Anchor)
				s.state = gestureMovingText
				return
			}
			s.flush()
			s.state = gestureIdle
			return
		}
		s.flush()
	}
	s.state = gesturePressed
	s.mode = s.settings.Mode
	s.start, s.last = p, p
}

// Drag updates the draft for a pointer move to p.
func (s *Session) Drag(p geom.Point) {
	switch s.state {
	case gestureMovingText:
		s.draft.Shape.(*scene.Text).Anchor = p.Sub(s.grab)
		return
	case gestureIdle:
		return
	}
	mode := s.mode
	if mode == ModeText {
		return
	}
	s.state = gestureDrafting
	style := s.settings.Style(mode)
	switch mode {
	case ModeFreehand:
		if s.draft == nil {
			s.draft = scene.NewItem(&scene.Freehand{Points: []geom.Point{s.start}}, style)
		}
		fh := s.draft.Shape.(*scene.Freehand)
		fh.Points = append(fh.Points, p)
	case ModeLine:
		p2 := geom.SnapAxis(s.start, p)
		s.setDraft(&scene.Line{P1: s.start, P2: p2, Snapped: p2 != p}, style)
	case ModeArrow, ModeFilledArrow:
		head := scene.HeadChevron
		if mode == ModeFilledArrow {
			head = scene.HeadFilled
		}
		s.setDraft(&scene.Arrow{P1: s.start, P2: p, Head: head}, style)
	case ModeRect, ModeFilledRect:
		s.setDraft(&scene.Rect{Rect: geom.RectFromCorners(s.start, p), Filled: mode == ModeFilledRect}, style)
	case ModeBlur:
		s.last = p
		if s.draft != nil && p.Dist(s.rendered) < s.settings.BlurMinDelta {
			s.debugf("blur: skipped render at %v", p)
			return
		}
		s.renderBlur(p, style)
		return
	}
	s.last = p
}

// Release ends the gesture and commits the draft. A release away from the
// last move counts as a final move. A text draft stays until a press lands
// outside it.
func (s *Session) Release(p geom.Point) {
	switch s.state {
	case gestureMovingText:
		s.draft.Shape.(*scene.Text).Anchor = p.Sub(s.grab)
		s.state = gestureIdle
		return
	case gestureDrafting:
		if p != s.last {
			s.Drag(p)
		}
		if s.draft == nil {
			break
		}
		if _, ok := s.draft.Shape.(*scene.BlurPatch); ok && s.rendered != s.last {
			s.renderBlur(s.last, s.draft.Style)
		}
		s.flush()
	}
	s.state = gestureIdle
}

// PlaceText creates a text draft with its top left corner at p. Any other
// draft is committed first.
func (s *Session) PlaceText(p geom.Point, req TextRequest) {
	if s.draft != nil {
		s.flush()
	}
	c := req.Color
	c.A = 255
	style := scene.Style{Stroke: c, Width: 1, Fill: c}
	if s.settings.Highlighter {
		style = style.Highlight()
	}
	var outline *color.NRGBA
	if req.Outline != nil {
		o := *req.Outline
		outline = &o
	}
	s.draft = scene.NewItem(&scene.Text{Anchor: p, Text: req.Text, Font: req.Font, Outline: outline}, style)
	s.state = gestureIdle
}

// Flush commits the pending draft, if any.
func (s *Session) Flush() {
	if s.draft != nil {
		s.flush()
	}
	s.state = gestureIdle
}

// Reset drops the draft without committing it.
func (s *Session) Reset() {
	if s.draft != nil {
		s.draft.Discard()
	}
	s.draft = nil
	s.state = gestureIdle
}

func (s *Session) flush() {
	it := s.draft
	s.draft = nil
	s.commit(it)
}

func (s *Session) setDraft(shape scene.Shape, style scene.Style) {
	if s.draft == nil {
		s.draft = scene.NewItem(shape, style)
		return
	}
	s.draft.Shape = shape
}

// renderBlur rebuilds the blur draft for the rectangle from the gesture start
// to p, clamped to non-negative coordinates.
func (s *Session) renderBlur(p geom.Point, style scene.Style) {
	s.rendered = p
	r := geom.RectFromCorners(clampPoint(s.start), clampPoint(p)).Image()
	patch := &scene.BlurPatch{Bounds: r}
	if r.Dx() == 0 || r.Dy() == 0 {
		patch.Patch = image.NewRGBA(image.Rectangle{})
	} else {
		patch.Patch = effect.RenderFiltered(s.scene, s.settings.Blur, r)
		patch.Bounds = image.Rectangle{Min: r.Min, Max: r.Min.Add(patch.Patch.Bounds().Size())}
		s.renders++
	}
	if s.draft != nil {
		s.draft.Discard()
	}
	s.setDraft(patch, style)
}

func clampPoint(p geom.Point) geom.Point {
	return geom.Pt(math.Max(p.X, 0), math.Max(p.Y, 0))
}
