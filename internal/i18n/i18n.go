// Package i18n loads the embedded locale packs and resolves dotted
// translation keys, falling back to English and finally to the key
// itself. A Translator is safe for concurrent readers.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported language codes, in the order the app advertises them.
var Supported = []string{"ko", "en", "ja", "zh", "es", "pt", "id", "tr", "de", "fr", "hi", "ru"}

const fallbackLang = "en"

func IsSupported(code string) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

// Translator resolves keys against the active language pack.
type Translator struct {
	mu    sync.RWMutex
	lang  string
	packs map[string]map[string]any
	subs  []chan string

	ready     chan struct{}
	readyOnce sync.Once
}

// New prepares a translator for lang (unsupported codes fall back to
// English). Call Init before first use; Ready is closed once the
// packs are loaded.
func New(lang string) *Translator {
	if !IsSupported(lang) {
		lang = fallbackLang
	}
	return &Translator{
		lang:  lang,
		packs: make(map[string]map[string]any),
		ready: make(chan struct{}),
	}
}

// Init loads the active pack plus the English fallback and signals
// readiness. A missing or broken pack downgrades to English rather
// than failing startup.
func (tr *Translator) Init() error {
	defer tr.readyOnce.Do(func() { close(tr.ready) })

	if err := tr.load(fallbackLang); err != nil {
		return err
	}
	if tr.lang != fallbackLang {
		if err := tr.load(tr.lang); err != nil {
			tr.mu.Lock()
			tr.lang = fallbackLang
			tr.mu.Unlock()
		}
	}
	return nil
}

// Ready is closed when Init has finished.
func (tr *Translator) Ready() <-chan struct{} { return tr.ready }

// WaitReady blocks until Init finishes or the context expires.
func (tr *Translator) WaitReady(done <-chan struct{}, timeout time.Duration) error {
	select {
	case <-tr.ready:
		return nil
	case <-done:
		return fmt.Errorf("i18n: wait canceled")
	case <-time.After(timeout):
		return fmt.Errorf("i18n: not ready after %s", timeout)
	}
}

func (tr *Translator) load(lang string) error {
	b, err := localeFS.ReadFile("locales/" + lang + ".json")
	if err != nil {
		return fmt.Errorf("locale %s: %w", lang, err)
	}
	var pack map[string]any
	if err := json.Unmarshal(b, &pack); err != nil {
		return fmt.Errorf("locale %s: %w", lang, err)
	}
	tr.mu.Lock()
	tr.packs[lang] = pack
	tr.mu.Unlock()
	return nil
}

// Language returns the active language code.
func (tr *Translator) Language() string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.lang
}

// SetLanguage switches the active pack and notifies subscribers.
func (tr *Translator) SetLanguage(lang string) error {
	if !IsSupported(lang) {
		return fmt.Errorf("i18n: unsupported language %q", lang)
	}
	if err := tr.load(lang); err != nil {
		return err
	}
	tr.mu.Lock()
	tr.lang = lang
	subs := make([]chan string, len(tr.subs))
	copy(subs, tr.subs)
	tr.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- lang:
		default: // slow subscriber; drop rather than block the UI
		}
	}
	return nil
}

// Changes returns a channel receiving the new code on each switch.
func (tr *Translator) Changes() <-chan string {
	ch := make(chan string, 1)
	tr.mu.Lock()
	tr.subs = append(tr.subs, ch)
	tr.mu.Unlock()
	return ch
}

// T resolves a dotted key ("priority.high"). Missing keys resolve to
// the key itself so broken translations stay visible, not fatal.
func (tr *Translator) T(key string) string {
	tr.mu.RLock()
	lang := tr.lang
	tr.mu.RUnlock()

	if v, ok := tr.lookup(lang, key); ok {
		return v
	}
	if v, ok := tr.lookup(fallbackLang, key); ok {
		return v
	}
	return key
}

func (tr *Translator) lookup(lang, key string) (string, bool) {
	tr.mu.RLock()
	pack, ok := tr.packs[lang]
	tr.mu.RUnlock()
	if !ok {
		return "", false
	}
	var cur any = map[string]any(pack)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[part]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// LanguageName is the human-readable name of a supported code.
func LanguageName(code string) string {
	names := map[string]string{
		"ko": "한국어", "en": "English", "ja": "日本語", "zh": "中文",
		"es": "Español", "pt": "Português", "id": "Bahasa Indonesia",
		"tr": "Türkçe", "de": "Deutsch", "fr": "Français",
		"hi": "हिन्दी", "ru": "Русский",
	}
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
