package offline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest lists the assets pre-cached at install time and the scope
// the controller intercepts. The version tag names the cache bucket;
// bump it on every deployed revision to evict the previous bucket.
type Manifest struct {
	Version  string   `yaml:"version"`
	Scope    string   `yaml:"scope"`
	Fallback string   `yaml:"fallback"`
	Core     []string `yaml:"core"`
	Locales  []string `yaml:"locales"`
}

// All returns core assets followed by locale files.
func (m Manifest) All() []string {
	out := make([]string, 0, len(m.Core)+len(m.Locales))
	out = append(out, m.Core...)
	out = append(out, m.Locales...)
	return out
}

// LoadManifest reads a YAML manifest file.
func LoadManifest(path string) (Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version == "" {
		return Manifest{}, fmt.Errorf("manifest: version is required")
	}
	return m, nil
}

// DefaultManifest mirrors the shipped asset list: the core app files
// plus one locale pack per supported language.
func DefaultManifest() Manifest {
	langs := []string{"ko", "en", "ja", "zh", "es", "pt", "id", "tr", "de", "fr", "hi", "ru"}
	locales := make([]string, 0, len(langs))
	for _, l := range langs {
		locales = append(locales, "/todo-list/js/locales/"+l+".json")
	}
	return Manifest{
		Version:  "todo-list-v1",
		Scope:    "/todo-list/",
		Fallback: "/todo-list/index.html",
		Core: []string{
			"/todo-list/index.html",
			"/todo-list/css/style.css",
			"/todo-list/js/app.js",
			"/todo-list/js/i18n.js",
			"/todo-list/manifest.json",
			"/todo-list/icon-192.svg",
			"/todo-list/icon-512.svg",
		},
		Locales: locales,
	}
}
