// Package config loads viewer and scene options from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/content"
	"holoscene/internal/utils"
)

type WindowOptions struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	FPS    int    `yaml:"fps" json:"fps"`
	Title  string `yaml:"title" json:"title"`
}

type Options struct {
	AutoRotate                   bool    `yaml:"autoRotate" json:"autoRotate"`
	EnableGestures               bool    `yaml:"enableGestures" json:"enableGestures"`
	Theme                        string  `yaml:"theme" json:"theme"`
	InitialPower                 float64 `yaml:"initialPower" json:"initialPower"`
	GestureSensitivity           float64 `yaml:"gestureSensitivity" json:"gestureSensitivity"`
	AmbientSpeed                 float64 `yaml:"ambientSpeed" json:"ambientSpeed"`
	ParallaxFactor               float64 `yaml:"parallaxFactor" json:"parallaxFactor"`
	EntranceDuration             float64 `yaml:"entranceDuration" json:"entranceDuration"`
	EntranceStagger              float64 `yaml:"entranceStagger" json:"entranceStagger"`
	PowerRampDuration            float64 `yaml:"powerRampDuration" json:"powerRampDuration"`
	ResetViewOnEnvironmentChange bool    `yaml:"resetViewOnEnvironmentChange" json:"resetViewOnEnvironmentChange"`
	Seed                         int64   `yaml:"seed" json:"seed"`

	LogLevel    string        `yaml:"logLevel" json:"logLevel"`
	Environment string        `yaml:"environment" json:"environment"`
	Window      WindowOptions `yaml:"window" json:"window"`
}

func Default() Options {
	return Options{
		AutoRotate:         true,
		EnableGestures:     true,
		Theme:              string(content.ThemeNeon),
		InitialPower:       0.8,
		GestureSensitivity: 0.5,
		AmbientSpeed:       12,
		ParallaxFactor:     engine2D.DefaultParallaxFactor,
		EntranceDuration:   0.8,
		EntranceStagger:    0.08,
		PowerRampDuration:  1.5,
		LogLevel:           "warn",
		Window: WindowOptions{
			Width:  1280,
			Height: 720,
			FPS:    60,
			Title:  "holoscene",
		},
	}
}

// Load reads a YAML config file. Fields the file leaves out keep their
// defaults.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	opts, err := Parse(data)
	if err != nil {
		return Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	utils.Info("Loaded config from %s", path)
	return opts, nil
}

func Parse(data []byte) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate reports every out-of-range field at once.
func (o Options) Validate() error {
	var problems []error
	if _, err := content.ParseTheme(o.Theme); err != nil {
		problems = append(problems, err)
	}
	if o.InitialPower < 0 || o.InitialPower > 1 {
		problems = append(problems, fmt.Errorf("initialPower %v is outside [0,1]", o.InitialPower))
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"gestureSensitivity", o.GestureSensitivity},
		{"parallaxFactor", o.ParallaxFactor},
		{"entranceDuration", o.EntranceDuration},
		{"entranceStagger", o.EntranceStagger},
		{"powerRampDuration", o.PowerRampDuration},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			problems = append(problems, fmt.Errorf("%s must not be negative, got %v", f.name, f.value))
		}
	}
	if o.LogLevel != "" {
		if _, err := utils.ParseLevel(o.LogLevel); err != nil {
			problems = append(problems, err)
		}
	}
	if o.Window.Width < 0 || o.Window.Height < 0 || o.Window.FPS < 0 {
		problems = append(problems, fmt.Errorf("window size and fps must not be negative"))
	}
	return errors.Join(problems...)
}

// Scene converts the options into engine options. A zero seed draws from
// the clock.
func (o Options) Scene() engine2D.SceneOptions {
	theme, err := content.ParseTheme(o.Theme)
	if err != nil {
		theme = content.ThemeNeon
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := engine2D.DefaultSceneOptions()
	opts.AutoRotate = o.AutoRotate
	opts.EnableGestures = o.EnableGestures
	opts.Theme = theme
	opts.InitialPower = o.InitialPower
	opts.GestureSensitivity = o.GestureSensitivity
	opts.AmbientSpeed = o.AmbientSpeed
	opts.ParallaxFactor = o.ParallaxFactor
	opts.EntranceDuration = o.EntranceDuration
	opts.EntranceStagger = o.EntranceStagger
	opts.PowerRampDuration = o.PowerRampDuration
	opts.ResetViewOnEnvironmentChange = o.ResetViewOnEnvironmentChange
	opts.Rand = rand.New(rand.NewSource(seed))
	return opts
}
