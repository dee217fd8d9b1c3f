// Package knowledge is the offline answer table used when the assistant
// cannot be reached.
package knowledge

import (
	"strings"

	"github.com/liliang-cn/agribot/internal/i18n"
)

// Entry is one canned answer with its trigger keywords
type Entry struct {
	Topic     string            `json:"topic"`
	Keywords  []string          `json:"keywords"`
	Responses map[string]string `json:"responses"`
}

// Response returns the answer for lang, or the English answer if absent
func (e Entry) Response(lang string) string {
	if r, ok := e.Responses[lang]; ok && r != "" {
		return r
	}
	return e.Responses[i18n.DefaultLanguage]
}

// Matches reports whether any keyword is a substring of the lowercased query
func (e Entry) Matches(lowered string) bool {
	for _, k := range e.Keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Base is an ordered, immutable offline answer table
type Base struct {
	entries []Entry
	catalog i18n.Catalog
}

// New creates a base over entries, scanned in the given order
func New(entries []Entry, catalog i18n.Catalog) *Base {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Base{entries: cp, catalog: catalog}
}

// Default returns the built-in farming table
func Default() *Base {
	return New(entries, i18n.Default)
}

// Entries returns a copy of the table in scan order
func (b *Base) Entries() []Entry {
	cp := make([]Entry, len(b.entries))
	copy(cp, b.entries)
	return cp
}

// Len returns the number of entries
func (b *Base) Len() int {
	return len(b.entries)
}

// Match returns the first entry whose keywords occur in text
func (b *Base) Match(text string) (Entry, bool) {
	lowered := strings.ToLower(text)
	for _, e := range b.entries {
		if e.Matches(lowered) {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup answers text in lang from the table, or with the offline
// fallback notice when nothing matches.
func (b *Base) Lookup(text, lang string) string {
	if e, ok := b.Match(text); ok {
		return e.Response(lang)
	}
	return b.catalog.Lookup(i18n.KeyOfflineFallback, lang)
}
