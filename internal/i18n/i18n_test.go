package i18n

import (
	"testing"
	"time"
)

func newReady(t *testing.T, lang string) *Translator {
	t.Helper()
	tr := New(lang)
	if err := tr.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return tr
}

func TestResolvesDottedKeys(t *testing.T) {
	tr := newReady(t, "en")
	if got := tr.T("priority.high"); got != "High" {
		t.Fatalf("priority.high = %q", got)
	}
	if got := tr.T("filter.completed"); got != "Completed" {
		t.Fatalf("filter.completed = %q", got)
	}
}

func TestMissingKeyResolvesToItself(t *testing.T) {
	tr := newReady(t, "en")
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key = %q, want the key itself", got)
	}
	// Partial path into a leaf string is also a miss.
	if got := tr.T("priority.high.extra"); got != "priority.high.extra" {
		t.Fatalf("over-deep key = %q", got)
	}
}

func TestUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	tr := newReady(t, "xx")
	if tr.Language() != "en" {
		t.Fatalf("language = %q, want en", tr.Language())
	}
}

func TestEveryLocalePackLoads(t *testing.T) {
	for _, lang := range Supported {
		tr := New(lang)
		if err := tr.Init(); err != nil {
			t.Errorf("%s: %v", lang, err)
			continue
		}
		if tr.Language() != lang {
			t.Errorf("%s: downgraded to %s", lang, tr.Language())
		}
		// Every pack carries the celebration string.
		if got := tr.T("celebration.message"); got == "celebration.message" {
			t.Errorf("%s: celebration.message untranslated", lang)
		}
	}
}

func TestSetLanguageSwitchesAndNotifies(t *testing.T) {
	tr := newReady(t, "en")
	ch := tr.Changes()

	if err := tr.SetLanguage("ko"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if tr.Language() != "ko" {
		t.Fatalf("language = %q, want ko", tr.Language())
	}
	select {
	case lang := <-ch:
		if lang != "ko" {
			t.Fatalf("notified %q, want ko", lang)
		}
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}

	if err := tr.SetLanguage("xx"); err == nil {
		t.Fatal("unsupported language must error")
	}
	if tr.Language() != "ko" {
		t.Fatal("failed switch must not change the active language")
	}
}

func TestActiveLanguageFallsBackPerKey(t *testing.T) {
	// Korean pack is loaded; a key present only in English still
	// resolves through the fallback chain.
	tr := newReady(t, "ko")
	if got := tr.T("app.title"); got == "app.title" {
		t.Fatalf("app.title unresolved in ko")
	}
}

func TestWaitReady(t *testing.T) {
	tr := New("en")
	done := make(chan struct{})

	if err := tr.WaitReady(done, 10*time.Millisecond); err == nil {
		t.Fatal("WaitReady must time out before Init")
	}
	go tr.Init()
	if err := tr.WaitReady(done, time.Second); err != nil {
		t.Fatalf("WaitReady after Init: %v", err)
	}
}

func TestFormatDatePerLocale(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		lang, want string
	}{
		{"en", "Mar 5, 2024"},
		{"ko", "2024년 3월 5일"},
		{"ja", "2024年3月5日"},
		{"de", "5. März 2024"},
		{"fr", "5 mars 2024"},
		{"ru", "5 март 2024 г."},
	}
	for _, tc := range cases {
		tr := newReady(t, tc.lang)
		if got := tr.FormatDate(date); got != tc.want {
			t.Errorf("%s: %q, want %q", tc.lang, got, tc.want)
		}
	}
}

func TestParseAndFormatDate(t *testing.T) {
	tr := newReady(t, "en")
	if got := tr.ParseAndFormatDate("2024-12-25"); got != "Dec 25, 2024" {
		t.Fatalf("formatted = %q", got)
	}
	if got := tr.ParseAndFormatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("malformed input must come back unchanged, got %q", got)
	}
}

func TestLanguageName(t *testing.T) {
	if LanguageName("ko") != "한국어" {
		t.Fatal("ko name wrong")
	}
	if LanguageName("zz") != "zz" {
		t.Fatal("unknown code must echo")
	}
}
