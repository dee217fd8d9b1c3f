package i18n

import "testing"

func TestLookupFallbackChain(t *testing.T) {
	c := Catalog{
		"k":       {"en": "hello", "hi": "नमस्ते"},
		"only_hi": {"hi": "केवल"},
	}

	tests := []struct {
		key, lang, want string
	}{
		{"k", "hi", "नमस्ते"},
		{"k", "ta", "hello"},
		{"k", "", "hello"},
		{"only_hi", "es", "only_hi"},
		{"missing", "en", "missing"},
	}

	for _, tt := range tests {
		if got := c.Lookup(tt.key, tt.lang); got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.key, tt.lang, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	got := F(KeyConsultAccepted, "hi", "Dr. X")
	if got != "Dr. X has accepted your request!" {
		t.Errorf("unexpected notification text: %q", got)
	}
}

func TestEveryKeyHasEnglish(t *testing.T) {
	for key, tr := range Default {
		if tr[DefaultLanguage] == "" {
			t.Errorf("key %q has no English text", key)
		}
	}
}

func TestLocale(t *testing.T) {
	if got := Locale("ta"); got != "ta-IN" {
		t.Errorf("Locale(ta) = %q", got)
	}
	if got := Locale("xx"); got != "en-US" {
		t.Errorf("Locale(xx) = %q, want en-US", got)
	}
	if !Supported("gu") || Supported("fr") {
		t.Error("Supported reports wrong membership")
	}
}
