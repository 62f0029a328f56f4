// Package i18n localizes feedback summaries and suggestions.
//
// Catalogs are embedded per locale; en-US is the canonical source locale
// and the fallback for any key a locale does not translate. Requested
// locales are resolved with x/text language matching, so "pt" and "pt-BR"
// both reach the Portuguese catalog.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/louisbranch/praxis/internal/assessment/feedback"
)

// BaseLocale is the canonical source locale.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

// Localizer resolves feedback messages for a requested locale.
type Localizer struct {
	locales  []string
	messages map[string]map[string]string
	matcher  language.Matcher
}

// New loads the embedded catalogs.
func New() (*Localizer, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalogs from a filesystem laid out as
// locales/<locale>/feedback.yaml.
func LoadFromFS(catalogFS fs.FS) (*Localizer, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	l := &Localizer{messages: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		locale, messages, err := parseCatalog(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if locale != filepath.Base(filepath.Dir(path)) {
			return nil, fmt.Errorf("catalog %s: locale %q must match path locale", path, locale)
		}
		if _, exists := l.messages[locale]; exists {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", path, locale)
		}
		l.messages[locale] = messages
		l.locales = append(l.locales, locale)
	}

	if _, ok := l.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// Base locale first so it wins ambiguous matches.
	tags := make([]language.Tag, 0, len(l.locales))
	ordered := []string{BaseLocale}
	for _, locale := range l.locales {
		if locale != BaseLocale {
			ordered = append(ordered, locale)
		}
	}
	l.locales = ordered
	for _, locale := range l.locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags = append(tags, tag)
	}
	l.matcher = language.NewMatcher(tags)
	return l, nil
}

// Locales returns the available locales, base locale first.
func (l *Localizer) Locales() []string {
	return append([]string{}, l.locales...)
}

// Resolve maps a requested locale to the best available catalog locale.
// Unparseable or unmatched requests resolve to the base locale.
func (l *Localizer) Resolve(requested string) string {
	tag, err := language.Parse(strings.TrimSpace(requested))
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := l.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return l.locales[index]
}

// Message returns one message with base-locale fallback.
func (l *Localizer) Message(locale, key string) (string, bool) {
	resolved := l.Resolve(locale)
	if value, ok := l.messages[resolved][key]; ok {
		return value, true
	}
	value, ok := l.messages[BaseLocale][key]
	return value, ok
}

// Localize rewrites an explanation's summary and suggestion for a locale.
// Untranslated entries keep their built-in English text.
func (l *Localizer) Localize(explanation feedback.Explanation, locale string) feedback.Explanation {
	if summary, ok := l.Message(locale, "feedback.summary."+explanation.Category.String()); ok {
		explanation.Summary = summary
	}
	if suggestion, ok := l.Message(locale, "feedback.suggestion."+explanation.Category.String()); ok {
		explanation.Suggestion = suggestion
	}
	return explanation
}

func parseCatalog(data string) (string, map[string]string, error) {
	locale := ""
	messages := map[string]string{}
	inMessages := false

	for _, rawLine := range strings.Split(data, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "locale:"):
			value, err := strconv.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "locale:")))
			if err != nil {
				return "", nil, fmt.Errorf("parse locale: %w", err)
			}
			locale = value
		case line == "messages:":
			inMessages = true
		default:
			if !inMessages {
				return "", nil, fmt.Errorf("unexpected line %q", line)
			}
			key, value, err := parseEntry(line)
			if err != nil {
				return "", nil, fmt.Errorf("parse entry %q: %w", line, err)
			}
			if _, exists := messages[key]; exists {
				return "", nil, fmt.Errorf("duplicate key %q", key)
			}
			messages[key] = value
		}
	}

	if locale == "" {
		return "", nil, fmt.Errorf("missing locale")
	}
	if len(messages) == 0 {
		return "", nil, fmt.Errorf("missing messages")
	}
	return locale, messages, nil
}

func parseEntry(line string) (string, string, error) {
	separator := strings.Index(line, "\": ")
	if separator == -1 {
		return "", "", fmt.Errorf("missing separator")
	}
	key, err := strconv.Unquote(line[:separator+1])
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	value, err := strconv.Unquote(strings.TrimSpace(line[separator+2:]))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}
