// Package i18n resolves request locales and translates message keys.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

// Locale identifies a supported response language.
type Locale string

const (
	// LocaleEN is the default locale.
	LocaleEN Locale = "en"
	// LocaleRU is the Russian locale.
	LocaleRU Locale = "ru"
)

// CookieName carries an explicit locale preference set by the frontend.
const CookieName = "locale"

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
})

// FromRequest derives the locale from the locale cookie, falling back to the
// Accept-Language header. Unknown languages resolve to English.
func FromRequest(r *http.Request) Locale {
	candidates := make([]string, 0, 2)
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		candidates = append(candidates, cookie.Value)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		candidates = append(candidates, accept)
	}
	if len(candidates) == 0 {
		return LocaleEN
	}

	tag, _ := language.MatchStrings(matcher, candidates...)
	base, _ := tag.Base()
	if base.String() == "ru" {
		return LocaleRU
	}
	return LocaleEN
}

// Translator resolves message keys to localized strings.
type Translator interface {
	T(key string) string
}

// Bundle holds the message catalogs for all supported locales.
type Bundle struct {
	catalogs map[Locale]map[string]string
}

// NewBundle constructs a Bundle from the built-in catalogs.
func NewBundle() *Bundle {
	return &Bundle{
		catalogs: map[Locale]map[string]string{
			LocaleEN: messagesEN,
			LocaleRU: messagesRU,
		},
	}
}

// Locale returns a Translator for the given locale. Missing keys fall back to
// English, then to the key itself so a mistyped id stays visible in responses.
func (b *Bundle) Locale(loc Locale) Translator {
	messages, ok := b.catalogs[loc]
	if !ok {
		messages = b.catalogs[LocaleEN]
	}
	return translator{messages: messages, fallback: b.catalogs[LocaleEN]}
}

type translator struct {
	messages map[string]string
	fallback map[string]string
}

func (t translator) T(key string) string {
	if msg, ok := t.messages[key]; ok {
		return msg
	}
	if msg, ok := t.fallback[key]; ok {
		return msg
	}
	return key
}
