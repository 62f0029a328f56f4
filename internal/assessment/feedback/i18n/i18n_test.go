package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/louisbranch/praxis/internal/assessment/feedback"
)

func newTestLocalizer(t *testing.T) *Localizer {
	t.Helper()
	l, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func TestNewLoadsEmbeddedCatalogs(t *testing.T) {
	l := newTestLocalizer(t)
	locales := l.Locales()
	if len(locales) < 2 {
		t.Fatalf("Locales() = %v, want at least en-US and pt-BR", locales)
	}
	if locales[0] != BaseLocale {
		t.Errorf("Locales()[0] = %s, want base locale first", locales[0])
	}
}

func TestResolve(t *testing.T) {
	l := newTestLocalizer(t)

	tests := []struct {
		requested string
		want      string
	}{
		{"en-US", "en-US"},
		{"en", "en-US"},
		{"en-GB", "en-US"},
		{"pt-BR", "pt-BR"},
		{"pt", "pt-BR"},
		{"", BaseLocale},
		{"not-a-locale!", BaseLocale},
		{"ja-JP", BaseLocale},
	}
	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			if got := l.Resolve(tt.requested); got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.requested, got, tt.want)
			}
		})
	}
}

func TestLocalize(t *testing.T) {
	l := newTestLocalizer(t)
	explanation := feedback.Explanation{
		Category:   feedback.CategoryTimeout,
		Summary:    "Execution timed out",
		Detail:     "The program did not finish within its time budget.",
		Suggestion: "Make sure every loop terminates.",
	}

	localized := l.Localize(explanation, "pt-BR")
	if localized.Summary != "Tempo de execução esgotado" {
		t.Errorf("Summary = %q, want the pt-BR translation", localized.Summary)
	}
	if localized.Detail != explanation.Detail {
		t.Errorf("Detail = %q, want untouched", localized.Detail)
	}

	fallback := l.Localize(explanation, "ja-JP")
	if fallback.Summary != "Execution timed out" {
		t.Errorf("Summary = %q, want the en-US fallback", fallback.Summary)
	}
}

func TestLoadFromFSValidation(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			"missing base locale",
			map[string]string{
				"locales/pt-BR/feedback.yaml": "locale: \"pt-BR\"\nmessages:\n  \"k\": \"v\"\n",
			},
		},
		{
			"locale path mismatch",
			map[string]string{
				"locales/en-US/feedback.yaml": "locale: \"pt-BR\"\nmessages:\n  \"k\": \"v\"\n",
			},
		},
		{
			"no messages",
			map[string]string{
				"locales/en-US/feedback.yaml": "locale: \"en-US\"\nmessages:\n",
			},
		},
		{
			"no catalogs",
			map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for path, content := range tt.files {
				fsys[path] = &fstest.MapFile{Data: []byte(content)}
			}
			if _, err := LoadFromFS(fsys); err == nil {
				t.Error("LoadFromFS() should reject the catalog set")
			}
		})
	}
}
