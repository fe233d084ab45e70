// Package config loads the YAML configuration of a plumber game: window,
// logging, key bindings, animations and the initial sprite set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phanxgames/plumber"
	"github.com/phanxgames/plumber/sprites"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root of a configuration file.
type Config struct {
	Window     Window               `yaml:"window"`
	Log        Log                  `yaml:"log"`
	Bindings   []Binding            `yaml:"bindings"`
	Animations map[string]Animation `yaml:"animations,omitempty"`
	Sprites    []Sprite             `yaml:"sprites,omitempty"`
	TestScript string               `yaml:"test_script,omitempty"` // path to a JSON test script
}

// Window configures the game window and loop.
type Window struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
	TPS     int    `yaml:"tps"`
	Blend   string `yaml:"blend,omitempty"` // normal (default), add, multiply or none
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`  // debug, info, warn, error
	Format      string `yaml:"format"` // console or json
	Development bool   `yaml:"development"`
}

// LogConfig converts to the logger settings understood by plumber.NewLogger.
func (l Log) LogConfig() plumber.LogConfig {
	return plumber.LogConfig{Level: l.Level, Format: l.Format, Development: l.Development}
}

// Binding maps a key name to an action.
type Binding struct {
	Key     string `yaml:"key"`
	Action  string `yaml:"action"`
	Trigger string `yaml:"trigger,omitempty"` // pressed (default), held or released
}

// Animation lists atlas region names played in order.
type Animation struct {
	Frames  []string `yaml:"frames"`
	DelayMS int      `yaml:"delay_ms"`
}

// Delay returns the per-frame delay.
func (a Animation) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// Sprite describes one sprite created at startup.
type Sprite struct {
	Name      string  `yaml:"name"`
	Kind      string  `yaml:"kind"`                // see sprites.Kind.String
	Region    string  `yaml:"region,omitempty"`    // static and moving kinds
	Animation string  `yaml:"animation,omitempty"` // animated kinds
	Text      string  `yaml:"text,omitempty"`      // text kind
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	VX        float64 `yaml:"vx,omitempty"`
	VY        float64 `yaml:"vy,omitempty"`
	Depth     float32 `yaml:"depth,omitempty"`
}

var triggers = map[string]bool{"": true, "pressed": true, "held": true, "released": true}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{
			Title:   "plumber",
			Width:   800,
			Height:  600,
			ShowFPS: false,
			TPS:     60,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Bindings: []Binding{
			{Key: "W", Action: "MoveUp", Trigger: "held"},
			{Key: "A", Action: "MoveLeft", Trigger: "held"},
			{Key: "S", Action: "MoveDown", Trigger: "held"},
			{Key: "D", Action: "MoveRight", Trigger: "held"},
			{Key: "Space", Action: "Jump", Trigger: "pressed"},
			{Key: "Digit0", Action: "Quit", Trigger: "pressed"},
			{Key: "Digit1", Action: "DisplaySingleFrameSprite", Trigger: "pressed"},
			{Key: "Digit2", Action: "DisplayAnimatedSpriteFixedPosition", Trigger: "pressed"},
			{Key: "Digit3", Action: "DisplaySingleFrameSpriteMoveUpDown", Trigger: "pressed"},
			{Key: "Digit4", Action: "DisplayAnimatedSpriteMoveLeftRight", Trigger: "pressed"},
		},
	}
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys are
// rejected. Sections absent from data keep their default values; a bindings
// list replaces the default one entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}

// Validate returns the first problem found.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return fmt.Errorf("window.tps must be >= 0, got %d", c.Window.TPS)
	}
	if _, err := plumber.ParseBlendMode(c.Window.Blend); err != nil {
		return fmt.Errorf("window.blend: %w", err)
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	for i, b := range c.Bindings {
		if _, err := plumber.ParseKey(b.Key); err != nil {
			return fmt.Errorf("bindings[%d]: %w", i, err)
		}
		if b.Action == "" {
			return fmt.Errorf("bindings[%d]: action cannot be empty", i)
		}
		if !triggers[b.Trigger] {
			return fmt.Errorf("bindings[%d]: trigger must be pressed, held or released, got %q", i, b.Trigger)
		}
	}

	for name, a := range c.Animations {
		if len(a.Frames) == 0 {
			return fmt.Errorf("animations.%s: frames cannot be empty", name)
		}
		if a.DelayMS < 0 {
			return fmt.Errorf("animations.%s: delay_ms must be >= 0, got %d", name, a.DelayMS)
		}
	}

	seen := make(map[string]bool, len(c.Sprites))
	for i, s := range c.Sprites {
		if s.Name == "" {
			return fmt.Errorf("sprites[%d]: name cannot be empty", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("sprites[%d]: duplicate name %q", i, s.Name)
		}
		seen[s.Name] = true

		kind, err := sprites.ParseKind(s.Kind)
		if err != nil {
			return fmt.Errorf("sprites.%s: %w", s.Name, err)
		}
		switch kind {
		case sprites.KindStatic, sprites.KindMoving:
			if s.Region == "" {
				return fmt.Errorf("sprites.%s: %s sprite needs a region", s.Name, kind)
			}
		case sprites.KindAnimated, sprites.KindMovingAnimated:
			if _, ok := c.Animations[s.Animation]; !ok {
				return fmt.Errorf("sprites.%s: unknown animation %q", s.Name, s.Animation)
			}
		}
	}
	return nil
}
