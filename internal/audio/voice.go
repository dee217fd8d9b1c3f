package audio

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/liliang-cn/agribot/internal/i18n"
)

// Voice is an on-device synthesis voice reported by the client
type Voice struct {
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	Default bool   `json:"default,omitempty"`
}

// preferredEngine marks the voices we favour when several share a locale
const preferredEngine = "Google"

// SelectVoice picks the closest voice for a language code: exact locale
// from the preferred engine, exact locale, same base language, then the
// platform default. It returns false when no voice qualifies.
func SelectVoice(voices []Voice, lang string) (Voice, bool) {
	locale := i18n.Locale(lang)

	for _, v := range voices {
		if sameLocale(v.Lang, locale) && strings.Contains(v.Name, preferredEngine) {
			return v, true
		}
	}
	for _, v := range voices {
		if sameLocale(v.Lang, locale) {
			return v, true
		}
	}

	want := baseOf(lang)
	if want != "" {
		for _, v := range voices {
			if baseOf(v.Lang) == want {
				return v, true
			}
		}
	}

	for _, v := range voices {
		if v.Default {
			return v, true
		}
	}
	return Voice{}, false
}

func sameLocale(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ta, err := language.Parse(a)
	if err != nil {
		return false
	}
	tb, err := language.Parse(b)
	if err != nil {
		return false
	}
	return ta == tb
}

func baseOf(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, conf := t.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
