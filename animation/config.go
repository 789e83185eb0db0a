// Package animation implements the declarative property-animation component:
// a tween over a named entity property, driven by the world's frame clock
// and triggered by entity events.
package animation

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is one animation declaration. It is rebuilt wholesale on every
// configuration update; instances never mutate it.
type Config struct {
	// Property is the dotted path being animated. Empty disables the
	// instance entirely.
	Property string
	// From and To are the declared endpoints in their string form. An empty
	// From samples the current value when the animation begins.
	From string
	To   string
	// Dur and Delay are milliseconds.
	Dur   float64
	Delay float64
	// Dir is "normal", "reverse" or "alternate".
	Dir    string
	Easing string
	// Elasticity shapes the elastic easing family (1..1000).
	Elasticity float64
	// Loop is the number of extra cycles; -1 repeats forever.
	Loop     int
	Autoplay bool
	// Type is an explicit value-type hint; "color" selects the color route.
	Type string
	// RawProperty forces direct dotted-path access even without a reserved
	// prefix.
	RawProperty bool

	StartEvents  []string
	PauseEvents  []string
	ResumeEvents []string
}

const (
	defaultDur        = 1000
	defaultEasing     = "easeInQuad"
	loopForever       = -1
	directionNormal   = "normal"
	routeTypeColor    = "color"
	defaultElasticity = 400
)

// rawConfig carries the yaml forms that need normalizing before they become
// a Config: loose scalar endpoints, bool-or-int loop, optional autoplay.
type rawConfig struct {
	Property      string   `yaml:"property"`
	From          any      `yaml:"from"`
	To            any      `yaml:"to"`
	Dur           float64  `yaml:"dur"`
	Delay         float64  `yaml:"delay"`
	Dir           string   `yaml:"dir"`
	Easing        string   `yaml:"easing"`
	Elasticity    float64  `yaml:"elasticity"`
	Loop          any      `yaml:"loop"`
	Autoplay      *bool    `yaml:"autoplay"`
	Type          string   `yaml:"type"`
	IsRawProperty bool     `yaml:"isRawProperty"`
	StartEvents   []string `yaml:"startEvents"`
	PauseEvents   []string `yaml:"pauseEvents"`
	ResumeEvents  []string `yaml:"resumeEvents"`
}

// ParseConfig normalizes a declarative attribute map into a Config,
// applying the documented defaults.
func ParseConfig(raw map[string]any) (Config, error) {
	var rc rawConfig
	// Round-trip through yaml so attribute maps and spec files share one
	// decode path.
	encoded, err := yaml.Marshal(raw)
	if err != nil {
		return Config{}, fmt.Errorf("animation: encode config: %w", err)
	}
	if err := yaml.Unmarshal(encoded, &rc); err != nil {
		return Config{}, fmt.Errorf("animation: decode config: %w", err)
	}

	cfg := Config{
		Property:     rc.Property,
		From:         scalarText(rc.From),
		To:           scalarText(rc.To),
		Dur:          rc.Dur,
		Delay:        rc.Delay,
		Dir:          rc.Dir,
		Easing:       rc.Easing,
		Elasticity:   rc.Elasticity,
		Autoplay:     true,
		Type:         rc.Type,
		RawProperty:  rc.IsRawProperty,
		StartEvents:  rc.StartEvents,
		PauseEvents:  rc.PauseEvents,
		ResumeEvents: rc.ResumeEvents,
	}
	if cfg.Dur <= 0 {
		cfg.Dur = defaultDur
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.Dir == "" {
		cfg.Dir = directionNormal
	}
	if cfg.Easing == "" {
		cfg.Easing = defaultEasing
	}
	if cfg.Elasticity <= 0 {
		cfg.Elasticity = defaultElasticity
	}
	if rc.Autoplay != nil {
		cfg.Autoplay = *rc.Autoplay
	}
	loop, err := parseLoop(rc.Loop)
	if err != nil {
		return Config{}, err
	}
	cfg.Loop = loop
	return cfg, nil
}

// parseLoop accepts booleans (true = forever), integers (extra cycles), and
// their literal string forms.
func parseLoop(v any) (int, error) {
	switch l := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if l {
			return loopForever, nil
		}
		return 0, nil
	case int:
		return normalizeLoopCount(l), nil
	case int64:
		return normalizeLoopCount(int(l)), nil
	case float64:
		return normalizeLoopCount(int(l)), nil
	case string:
		switch l {
		case "true":
			return loopForever, nil
		case "false", "":
			return 0, nil
		}
		n, err := strconv.Atoi(l)
		if err != nil {
			return 0, fmt.Errorf("animation: bad loop value %q: %w", l, err)
		}
		return normalizeLoopCount(n), nil
	}
	return 0, fmt.Errorf("animation: bad loop value of type %T", v)
}

func normalizeLoopCount(n int) int {
	if n < 0 {
		return loopForever
	}
	return n
}

// scalarText renders a loose yaml scalar into the string form the property
// adapter sniffs.
func scalarText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
