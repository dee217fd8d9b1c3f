package knowledge

import (
	"strings"
	"testing"

	"github.com/liliang-cn/agribot/internal/i18n"
)

func entryByTopic(t *testing.T, b *Base, topic string) Entry {
	t.Helper()
	for _, e := range b.Entries() {
		if e.Topic == topic {
			return e
		}
	}
	t.Fatalf("no entry for topic %q", topic)
	return Entry{}
}

func TestLookupKeywordMatch(t *testing.T) {
	b := Default()

	tests := []struct {
		query string
		lang  string
		topic string
	}{
		{"How do I grow PADDY?", "en", "rice"},
		{"kisan scheme details", "hi", "schemes"},
		{"Will there be rain tomorrow", "mr", "weather"},
		{"what is the mandi bhav", "gu", "market"},
		{"give me a task list", "es", "calendar"},
		{"support number please", "ta", "contacts"},
	}

	for _, tt := range tests {
		e := entryByTopic(t, b, tt.topic)
		if got := b.Lookup(tt.query, tt.lang); got != e.Responses[tt.lang] {
			t.Errorf("Lookup(%q, %q) = %q, want %s entry", tt.query, tt.lang, got, tt.topic)
		}
	}
}

func TestLookupEnglishFallbackForUnknownLanguage(t *testing.T) {
	b := Default()
	rice := entryByTopic(t, b, "rice")

	if got := b.Lookup("rice", "fr"); got != rice.Responses["en"] {
		t.Errorf("expected English rice answer, got %q", got)
	}
}

func TestLookupEnglishFallbackForMissingTranslation(t *testing.T) {
	b := New([]Entry{{
		Topic:     "maize",
		Keywords:  []string{"maize"},
		Responses: map[string]string{"en": "Maize answer", "hi": "मक्का"},
	}}, i18n.Default)

	if got := b.Lookup("maize", "ta"); got != "Maize answer" {
		t.Errorf("got %q", got)
	}
	if got := b.Lookup("maize", "hi"); got != "मक्का" {
		t.Errorf("got %q", got)
	}
}

func TestLookupNoMatch(t *testing.T) {
	b := Default()

	if got := b.Lookup("tell me a joke", "hi"); got != i18n.Default[i18n.KeyOfflineFallback]["hi"] {
		t.Errorf("expected Hindi fallback, got %q", got)
	}
	if got := b.Lookup("tell me a joke", "xx"); got != i18n.Default[i18n.KeyOfflineFallback]["en"] {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestLookupTableOrderPrecedence(t *testing.T) {
	b := Default()
	wheat := entryByTopic(t, b, "wheat")

	// "wheat" and "price" both match; wheat precedes market in the table
	got := b.Lookup("What about wheat prices", "en")
	if got != wheat.Responses["en"] {
		t.Fatalf("expected wheat answer, got %q", got)
	}
	if !strings.HasPrefix(got, "Wheat Farming") {
		t.Errorf("unexpected wheat text %q", got)
	}
}

func TestLookupIsPure(t *testing.T) {
	b := Default()
	first := b.Lookup("market rate", "te")
	for i := 0; i < 5; i++ {
		if got := b.Lookup("market rate", "te"); got != first {
			t.Fatalf("lookup not deterministic: %q vs %q", got, first)
		}
	}
}

func TestEveryEntryHasAllLanguages(t *testing.T) {
	for _, e := range Default().Entries() {
		for _, l := range i18n.Languages {
			if e.Responses[l.Code] == "" {
				t.Errorf("entry %s missing %s", e.Topic, l.Code)
			}
		}
		for _, k := range e.Keywords {
			if k != strings.ToLower(k) {
				t.Errorf("entry %s keyword %q is not lowercase", e.Topic, k)
			}
		}
	}
}
