// Package notify raises desktop notifications for capture, save and copy.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/snapmark/internal/persist"
	"github.com/example/snapmark/internal/platform"
)

// AppName identifies the sender to the notification service.
const AppName = "snapmark"

// Event identifies a notification trigger.
type Event string

const (
	EventCapture Event = "capture"
	EventSave    Event = "save"
	EventCopy    Event = "copy"
)

// Preferences holds the title and per-event body templates. Each template
// takes a single %s for the event detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "snapmark",
		Templates: map[Event]string{
			EventCapture: "Captured %s",
			EventSave:    "Saved %s",
			EventCopy:    "Copied %s to clipboard",
		},
	}
}

type envPreferences struct {
	Title       string
	CaptureText string `split_words:"true"`
	SaveText    string `split_words:"true"`
	CopyText    string `split_words:"true"`
}

// LoadPreferences applies SNAPMARK_NOTIFY_* overrides to the defaults.
func LoadPreferences() (Preferences, error) {
	prefs := DefaultPreferences()
	var env envPreferences
	if err := envconfig.Process("SNAPMARK_NOTIFY", &env); err != nil {
		return prefs, fmt.Errorf("notification environment: %w", err)
	}
	if v := strings.TrimSpace(env.Title); v != "" {
		prefs.Title = v
	}
	for event, v := range map[Event]string{EventCapture: env.CaptureText, EventSave: env.SaveText, EventCopy: env.CopyText} {
		if v = strings.TrimSpace(v); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs, nil
}

var send = func(title, body string, opts platform.Options) error {
	return platform.Notify(AppName, title, body, opts)
}

// Notifier sends notifications for the events enabled on it. A nil
// Notifier is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: templates},
		enabled: make(map[Event]bool),
	}
}

// Enable toggles an event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Capture announces a new capture with img as the icon when supported.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, detail, opts)
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if f, err := persist.FormatFor(abs); err == nil && f != persist.FormatPDF {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "snapmark-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	err = persist.Encode(f, img, persist.FormatPNG)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
