package offline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	data := `version: app-v3
scope: /app/
fallback: /app/index.html
core:
  - /app/index.html
  - /app/app.js
locales:
  - /app/locales/en.json
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Version != "app-v3" || m.Scope != "/app/" {
		t.Fatalf("manifest = %+v", m)
	}
	if len(m.All()) != 3 {
		t.Fatalf("All() = %v", m.All())
	}
	// Core assets come first: the core-only install retry depends on
	// that ordering.
	if m.All()[0] != "/app/index.html" || m.All()[2] != "/app/locales/en.json" {
		t.Fatalf("All() order = %v", m.All())
	}
}

func TestLoadManifestRequiresVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	os.WriteFile(path, []byte("scope: /app/\n"), 0o644)

	if _, err := LoadManifest(path); err == nil {
		t.Fatal("versionless manifest must be rejected")
	}
}

func TestDefaultManifestCoversEveryLanguage(t *testing.T) {
	m := DefaultManifest()
	if m.Version == "" || m.Scope == "" || m.Fallback == "" {
		t.Fatalf("incomplete default manifest: %+v", m)
	}
	if len(m.Locales) != 12 {
		t.Fatalf("locales = %d, want 12", len(m.Locales))
	}
}
