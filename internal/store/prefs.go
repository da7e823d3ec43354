package store

import (
	"context"
	"errors"

	"taskdeck/internal/kv"
)

// Preference keys share the task store's kv backend.
const (
	KeyTheme    = "theme"
	KeyLanguage = "selectedLanguage"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Prefs reads and writes the small user preferences (theme, language)
// living next to the collection in the same kv store.
type Prefs struct {
	kv kv.Store
}

func NewPrefs(kvs kv.Store) *Prefs { return &Prefs{kv: kvs} }

// Theme returns the saved theme, defaulting to dark.
func (p *Prefs) Theme(ctx context.Context) string {
	return p.get(ctx, KeyTheme, ThemeDark)
}

func (p *Prefs) SetTheme(ctx context.Context, theme string) error {
	return p.kv.Set(ctx, KeyTheme, []byte(theme))
}

// Language returns the saved language code, or fallback when unset.
func (p *Prefs) Language(ctx context.Context, fallback string) string {
	return p.get(ctx, KeyLanguage, fallback)
}

func (p *Prefs) SetLanguage(ctx context.Context, lang string) error {
	return p.kv.Set(ctx, KeyLanguage, []byte(lang))
}

func (p *Prefs) get(ctx context.Context, key, fallback string) string {
	b, err := p.kv.Get(ctx, key)
	if err != nil || len(b) == 0 {
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			// Preference reads never block startup; fall back quietly.
			return fallback
		}
		return fallback
	}
	return string(b)
}
