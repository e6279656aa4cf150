package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDirs lists the directories searched for config files and environment
// descriptors, most specific first.
func DataDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "holoscene"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "holoscene"))
	}
	return append(dirs, "/usr/share/holoscene")
}

// FindConfigFile returns customPath if it exists, otherwise the first
// holoscene.yaml found in DataDirs. It returns "" when there is none.
func FindConfigFile(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			Info("Using config file: %s", customPath)
			return customPath
		}
		Warn("Config file NOT FOUND: %s", customPath)
	}
	for _, dir := range DataDirs() {
		for _, name := range []string{"holoscene.yaml", "holoscene.yml"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				Info("Discovered config file at: %s", p)
				return p
			}
		}
	}
	Debug("No config file found, using defaults")
	return ""
}

// ResolveEnvironmentPath finds an environment descriptor. name may be a path
// or a bare name looked up under environments/ in each DataDirs entry, with
// .json, .yaml or .yml appended.
func ResolveEnvironmentPath(name string) string {
	if name == "" {
		return ""
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}

	extensions := []string{""}
	if filepath.Ext(name) == "" {
		extensions = []string{".json", ".yaml", ".yml"}
	}
	clean := strings.TrimPrefix(name, "environments/")
	for _, dir := range DataDirs() {
		for _, ext := range extensions {
			p := filepath.Join(dir, "environments", clean+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}
