package appstate

import (
	"image/color"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/geom"
	"github.com/example/snapmark/internal/render"
)

// textEntry is the inline text prompt. Keys are collected while it is
// active; on Enter the editor asks it for the result through PromptText.
type textEntry struct {
	active bool
	at     geom.Point
	text   strings.Builder
	font   render.Font
	done   bool
}

var _ editor.Prompter = (*textEntry)(nil)

func (t *textEntry) start(at geom.Point, f render.Font) {
	t.active = true
	t.done = false
	t.at = at
	t.font = f
	t.text.Reset()
}

// handle consumes a key press and reports whether the entry finished,
// either accepted (Enter) or cancelled (Escape).
func (t *textEntry) handle(e key.Event) (finished bool) {
	switch e.Code {
	case key.CodeReturnEnter:
		if e.Modifiers&key.ModShift != 0 {
			t.text.WriteByte('\n')
			return false
		}
		t.done = true
		t.active = false
		return true
	case key.CodeEscape:
		t.done = false
		t.active = false
		return true
	case key.CodeDeleteBackspace:
		s := []rune(t.text.String())
		if len(s) > 0 {
			t.text.Reset()
			t.text.WriteString(string(s[:len(s)-1]))
		}
		return false
	}
	if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
		t.text.WriteRune(e.Rune)
	}
	return false
}

// PromptText implements editor.Prompter with whatever was typed.
func (t *textEntry) PromptText(initial color.NRGBA) (editor.TextRequest, bool) {
	if !t.done || t.text.Len() == 0 {
		return editor.TextRequest{}, false
	}
	req := editor.TextRequest{Text: t.text.String(), Font: t.font, Color: initial}
	t.done = false
	t.text.Reset()
	return req, true
}

// pending returns the text typed so far.
func (t *textEntry) pending() string { return t.text.String() }
