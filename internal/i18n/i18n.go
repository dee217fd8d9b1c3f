// Package i18n holds the strings the service itself emits, keyed by
// message key and language code.
//
// Lookups fall back from the requested language to English and then to
// the key itself, so a missing translation never produces an empty string.
package i18n

import "fmt"

// DefaultLanguage is the mandatory fallback language
const DefaultLanguage = "en"

// Message keys
const (
	KeyOfflineVoice     = "offline.voice"
	KeyOfflineImage     = "offline.image"
	KeyOfflineFallback  = "offline.fallback"
	KeyAssistantEmpty   = "assistant.empty"
	KeyAssistantError   = "assistant.error"
	KeyMarketOffline    = "market.offline"
	KeyMarketError      = "market.error"
	KeyMarketSummary    = "market.summary"
	KeyMarketPrompt     = "market.user_prompt"
	KeyVoiceLabel       = "chat.voice_label"
	KeyGreeting         = "greeting"
	KeyConsultAccepted  = "consultation.accepted"
	KeyConsultSent      = "consultation.sent"
	KeyConsultSentSub   = "consultation.sent_sub"
	KeyDefaultLocation  = "location.default"
	KeyCameraPromptNote = "feature.camera_note"
)

// Language is a supported conversation language
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// Languages lists the supported languages in display order
var Languages = []Language{
	{Code: "en", Name: "English", Locale: "en-US"},
	{Code: "hi", Name: "Hindi (हिंदी)", Locale: "hi-IN"},
	{Code: "mr", Name: "Marathi (मराठी)", Locale: "mr-IN"},
	{Code: "gu", Name: "Gujarati (ગુજરાતી)", Locale: "gu-IN"},
	{Code: "ta", Name: "Tamil (தமிழ்)", Locale: "ta-IN"},
	{Code: "te", Name: "Telugu (తెలుగు)", Locale: "te-IN"},
	{Code: "es", Name: "Español", Locale: "es-ES"},
}

// Supported reports whether code is one of the supported languages
func Supported(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Locale returns the speech locale for a language code, en-US if unknown
func Locale(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Locale
		}
	}
	return "en-US"
}

// Catalog maps message keys to per-language strings
type Catalog map[string]map[string]string

// Lookup resolves key for lang: requested language, then English, then the key
func (c Catalog) Lookup(key, lang string) string {
	tr, ok := c[key]
	if !ok {
		return key
	}
	if s, ok := tr[lang]; ok && s != "" {
		return s
	}
	if s, ok := tr[DefaultLanguage]; ok && s != "" {
		return s
	}
	return key
}

// Format resolves key for lang and formats it with args
func (c Catalog) Format(key, lang string, args ...any) string {
	return fmt.Sprintf(c.Lookup(key, lang), args...)
}

// T resolves key for lang in the default catalog
func T(key, lang string) string {
	return Default.Lookup(key, lang)
}

// F formats key for lang in the default catalog
func F(key, lang string, args ...any) string {
	return Default.Format(key, lang, args...)
}
