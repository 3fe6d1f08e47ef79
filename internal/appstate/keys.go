package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action names a command reachable from the keyboard.
type Action string

const (
	ActionUndo        Action = "undo"
	ActionRedo        Action = "redo"
	ActionCopy        Action = "copy"
	ActionPaste       Action = "paste"
	ActionSave        Action = "save"
	ActionRecapture   Action = "recapture"
	ActionQuit        Action = "quit"
	ActionZoom50      Action = "zoom-50"
	ActionZoom100     Action = "zoom-100"
	ActionZoom200     Action = "zoom-200"
	ActionZoomIn      Action = "zoom-in"
	ActionZoomOut     Action = "zoom-out"
	ActionRotateLeft  Action = "rotate-left"
	ActionRotateRight Action = "rotate-right"
	ActionMirrorH     Action = "mirror-horizontal"
	ActionMirrorV     Action = "mirror-vertical"
	ActionHighlighter Action = "highlighter"
	ActionWiderPen    Action = "wider"
	ActionNarrowerPen Action = "narrower"
	ActionNextColor   Action = "next-color"
	ActionPrevColor   Action = "previous-color"

	ActionFreehand    Action = "mode-freehand"
	ActionLine        Action = "mode-line"
	ActionArrow       Action = "mode-arrow"
	ActionFilledArrow Action = "mode-filled-arrow"
	ActionRect        Action = "mode-rect"
	ActionFilledRect  Action = "mode-filled-rect"
	ActionBlur        Action = "mode-blur"
	ActionText        Action = "mode-text"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Control shortcuts match the lower-case rune plus modifiers; plain keys
// match the rune as typed, so 'A' and 'a' differ.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Binding pairs a shortcut with its action and the label shown in help.
type Binding struct {
	Key    KeyShortcut
	Action Action
	Label  string
}

// Bindings is the default keyboard map.
var Bindings = []Binding{
	{KeyShortcut{Rune: 'z', Modifiers: key.ModControl}, ActionUndo, "Ctrl+Z"},
	{KeyShortcut{Rune: 'z', Modifiers: key.ModControl | key.ModShift}, ActionRedo, "Ctrl+Shift+Z"},
	{KeyShortcut{Rune: 'y', Modifiers: key.ModControl}, ActionRedo, "Ctrl+Y"},
	{KeyShortcut{Rune: 'c', Modifiers: key.ModControl}, ActionCopy, "Ctrl+C"},
	{KeyShortcut{Rune: 'v', Modifiers: key.ModControl}, ActionPaste, "Ctrl+V"},
	{KeyShortcut{Rune: 's', Modifiers: key.ModControl}, ActionSave, "Ctrl+S"},
	{KeyShortcut{Rune: 'n', Modifiers: key.ModControl}, ActionRecapture, "Ctrl+N"},
	{KeyShortcut{Rune: 'q', Modifiers: key.ModControl}, ActionQuit, "Ctrl+Q"},
	{KeyShortcut{Rune: 'q'}, ActionQuit, "Q"},
	{KeyShortcut{Rune: '1'}, ActionZoom100, "1"},
	{KeyShortcut{Rune: '2'}, ActionZoom200, "2"},
	{KeyShortcut{Rune: '5'}, ActionZoom50, "5"},
	{KeyShortcut{Rune: '+'}, ActionZoomIn, "+"},
	{KeyShortcut{Rune: '='}, ActionZoomIn, "="},
	{KeyShortcut{Rune: '-'}, ActionZoomOut, "-"},
	{KeyShortcut{Rune: ','}, ActionRotateLeft, ","},
	{KeyShortcut{Rune: '.'}, ActionRotateRight, "."},
	{KeyShortcut{Rune: 'm'}, ActionMirrorH, "M"},
	{KeyShortcut{Rune: 'M'}, ActionMirrorV, "Shift+M"},
	{KeyShortcut{Rune: 'h'}, ActionHighlighter, "H"},
	{KeyShortcut{Rune: ']'}, ActionWiderPen, "]"},
	{KeyShortcut{Rune: '['}, ActionNarrowerPen, "["},
	{KeyShortcut{Rune: 'c'}, ActionNextColor, "C"},
	{KeyShortcut{Rune: 'C'}, ActionPrevColor, "Shift+C"},
	{KeyShortcut{Rune: 'p'}, ActionFreehand, "P"},
	{KeyShortcut{Rune: 'l'}, ActionLine, "L"},
	{KeyShortcut{Rune: 'a'}, ActionArrow, "A"},
	{KeyShortcut{Rune: 'A'}, ActionFilledArrow, "Shift+A"},
	{KeyShortcut{Rune: 'r'}, ActionRect, "R"},
	{KeyShortcut{Rune: 'R'}, ActionFilledRect, "Shift+R"},
	{KeyShortcut{Rune: 'b'}, ActionBlur, "B"},
	{KeyShortcut{Rune: 't'}, ActionText, "T"},
}

// keymap indexes Bindings.
type keymap map[KeyShortcut]Action

func newKeymap(bindings []Binding) keymap {
	m := make(keymap, len(bindings))
	for _, b := range bindings {
		m[b.Key] = b.Action
	}
	return m
}

// lookup resolves a key press.
func (m keymap) lookup(e key.Event) (Action, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	var ks KeyShortcut
	switch {
	case mods&key.ModControl != 0:
		ks = KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
	case e.Rune > 0:
		ks = KeyShortcut{Rune: e.Rune}
	default:
		ks = KeyShortcut{Rune: -1, Code: e.Code}
	}
	a, ok := m[ks]
	return a, ok
}
