package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/snapmark/internal/theme"
	"golang.org/x/image/colornames"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.Trim(line, "[]"))
			currentTheme = nil

			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "draw":
			err = setDrawField(&cfg.Draw, key, value)
		case currentSection == "view":
			err = setViewField(&cfg.View, key, value)
		case currentSection == "blur":
			err = setBlurField(&cfg.Blur, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts "key = value" and "Key: value" lines.
func splitKeyValue(line string) (string, string, bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok := strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(key), value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setDrawField(d *Draw, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "color":
		if _, err = ParseColor(value); err == nil {
			d.Color = value
		}
	case "width":
		d.Width, err = parseInt(key, value)
	case "mode":
		d.Mode = value
	case "highlighter":
		d.Highlighter, err = parseBool(key, value)
	case "font":
		d.Font = value
	case "text_size":
		d.TextSize, err = parseFloat(key, value)
	}
	return err
}

func setViewField(v *View, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "zoom":
		v.Zoom, err = parseInt(key, strings.TrimSuffix(value, "%"))
	case "title_bar":
		v.TitleBar, err = parseBool(key, value)
	}
	return err
}

func setBlurField(b *Blur, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "radius":
		b.Radius, err = parseInt(key, value)
	case "min_delta":
		b.MinDelta, err = parseFloat(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}

// ParseColor accepts an SVG colour name or a #RRGGBB / #RRGGBBAA value.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		return theme.ParseHex(spec)
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}
