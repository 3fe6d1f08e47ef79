package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. SNAPMARK_COLOR.
const EnvPrefix = "SNAPMARK"

// envOverrides lists the settings that can be changed from the environment.
// Names are derived from the field names so only prefixed variables are
// read. Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	Theme        string
	SaveDir      string `split_words:"true"`
	Color        string
	Width        *int
	Mode         string
	Highlighter  *bool
	Font         string
	TextSize     *float64 `split_words:"true"`
	Zoom         *int
	TitleBar     *bool    `split_words:"true"`
	BlurRadius   *int     `split_words:"true"`
	BlurMinDelta *float64 `split_words:"true"`
}

// ApplyEnv overrides fields from SNAPMARK_* environment variables.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if env.Color != "" {
		if _, err := ParseColor(env.Color); err != nil {
			return fmt.Errorf("environment %s_COLOR: %w", EnvPrefix, err)
		}
		c.Draw.Color = env.Color
	}
	setString(&c.Theme, env.Theme)
	setString(&c.SaveDir, env.SaveDir)
	setString(&c.Draw.Mode, env.Mode)
	setString(&c.Draw.Font, env.Font)
	setPtr(&c.Draw.Width, env.Width)
	setPtr(&c.Draw.Highlighter, env.Highlighter)
	setPtr(&c.Draw.TextSize, env.TextSize)
	setPtr(&c.View.Zoom, env.Zoom)
	setPtr(&c.View.TitleBar, env.TitleBar)
	setPtr(&c.Blur.Radius, env.BlurRadius)
	setPtr(&c.Blur.MinDelta, env.BlurMinDelta)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
