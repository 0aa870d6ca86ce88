// Package i18n translates user facing status text.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Auto means detect the locale from the environment
const Auto = "auto"

// Locales lists the supported locale codes in display order
var Locales = []string{"en", "ko", "ja", "zh-CN"}

var (
	supported = []language.Tag{
		language.English,
		language.Korean,
		language.Japanese,
		language.SimplifiedChinese,
	}
	matcher = language.NewMatcher(supported)
	cat     = buildCatalog()
)

// Translator formats messages for one locale
type Translator struct {
	tag     language.Tag
	locale  string
	printer *message.Printer
}

// New returns a translator for locale. Unknown locales fall back to English.
func New(locale string) *Translator {
	idx := matchIndex(locale)
	return &Translator{
		tag:     supported[idx],
		locale:  Locales[idx],
		printer: message.NewPrinter(supported[idx], message.Catalog(cat)),
	}
}

// Locale returns the matched locale code, e.g. zh-CN
func (t *Translator) Locale() string {
	return t.locale
}

// T formats the message stored under key
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Resolve turns a configured language ("auto" or a code) into a locale code
func Resolve(configured string, lookup func(string) (string, bool)) string {
	if configured == "" || strings.EqualFold(configured, Auto) {
		return Detect(lookup)
	}
	return Locales[matchIndex(configured)]
}

// Detect reads LC_ALL, LC_MESSAGES and LANG in that order. Empty, C and
// POSIX values count as unset.
func Detect(lookup func(string) (string, bool)) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value, ok := lookup(key)
		if !ok || normalize(value) == "" {
			continue
		}
		return Locales[matchIndex(value)]
	}
	return "en"
}

func matchIndex(locale string) int {
	normalized := normalize(locale)
	if normalized == "" {
		return 0
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return 0
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return 0
	}
	return idx
}

// normalize strips POSIX locale decorations: ko_KR.UTF-8@euro -> ko-KR
func normalize(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for i, tag := range supported {
		for key, texts := range messages {
			text := texts[i]
			if text == "" {
				text = texts[0]
			}
			if err := b.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
	return b
}
