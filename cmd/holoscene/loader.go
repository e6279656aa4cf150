package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"holoscene/internal/convert"
	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

func loadEnvironment(name, packPath string) (scene.Environment, error) {
	if packPath != "" {
		pack, err := convert.OpenPack(packPath)
		if err != nil {
			return scene.Environment{}, err
		}
		if name == "" {
			names := pack.Names()
			if len(names) == 0 {
				return scene.Environment{}, fmt.Errorf("pack %s is empty", packPath)
			}
			name = names[0]
			utils.Info("No -env given, using first pack entry %s", name)
		}
		return pack.Environment(name)
	}

	if name == "" {
		utils.Info("No environment given, using the built-in classroom")
		return defaultEnvironment(), nil
	}
	path := utils.ResolveEnvironmentPath(name)
	if path == "" {
		return scene.Environment{}, fmt.Errorf("environment %q not found in %v", name, utils.DataDirs())
	}
	utils.Debug("Loading environment from %s", path)
	return convert.LoadEnvironment(path)
}

// loadContent reads a list of scene objects. The file may hold a bare list
// or an object with an "objects" key.
func loadContent(path string) ([]scene.Object, error) {
	if path == "" {
		return defaultContent(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Objects []scene.Object `json:"objects" yaml:"objects"`
	}
	var list []scene.Object
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &list); err != nil {
			err = yaml.Unmarshal(data, &wrapped)
			list = wrapped.Objects
		}
	default:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			err = json.Unmarshal(trimmed, &wrapped)
			list = wrapped.Objects
		} else {
			err = json.Unmarshal(trimmed, &list)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding content %s: %w", path, err)
	}
	return list, nil
}

func floatPtr(v float64) *float64 { return &v }

func defaultEnvironment() scene.Environment {
	return scene.Environment{
		ID:             "classroom",
		Name:           "Holo Classroom",
		Type:           scene.EnvClassroom,
		ImmersionLevel: 0.5,
		Lighting:       scene.Lighting{AmbientColor: "0.08 0.1 0.2", Intensity: 0.8},
		Objects: []scene.Object{{
			ID:       "board",
			Type:     scene.ContentDocument,
			Title:    "Today's Lesson",
			Position: &scene.Vec3{X: 0, Y: 180, Z: -2},
			Scale:    floatPtr(1.2),
			Payload:  map[string]interface{}{"pages": 3, "author": "Holo Academy"},
		}},
	}
}

func defaultContent() []scene.Object {
	return []scene.Object{
		{
			ID:          "intro",
			Type:        scene.ContentText,
			Title:       "Welcome",
			Position:    &scene.Vec3{X: -220, Y: 0, Z: 0},
			Scale:       floatPtr(1),
			Interactive: true,
			Payload:     map[string]interface{}{"text": "Drag to look around. Press + and - to change the power level."},
		},
		{
			ID:          "growth",
			Type:        scene.ContentChart,
			Title:       "Growth",
			Position:    &scene.Vec3{X: 40, Y: -20, Z: 1},
			Scale:       floatPtr(1),
			Interactive: true,
			Payload:     map[string]interface{}{"values": []interface{}{2, 5, 3, 8, 6}, "labels": []interface{}{"M", "T", "W", "T", "F"}},
		},
		{
			ID:          "energy",
			Type:        scene.ContentFormula,
			Title:       "Energy",
			Position:    &scene.Vec3{X: 260, Y: 40, Z: 0},
			Scale:       floatPtr(0.9),
			Interactive: true,
			Payload:     map[string]interface{}{"expression": "E = mc²"},
		},
		{
			ID:       "atom",
			Type:     scene.ContentHologram,
			Title:    "Atom",
			Position: &scene.Vec3{X: 0, Y: -200, Z: 2},
			Scale:    floatPtr(0.8),
		},
	}
}
