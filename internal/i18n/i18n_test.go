package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	t.Run("defaults to english", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		require.Equal(t, LocaleEN, FromRequest(r))
	})

	t.Run("accept language header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")
		require.Equal(t, LocaleRU, FromRequest(r))
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Accept-Language", "ru")
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "en"})
		require.Equal(t, LocaleEN, FromRequest(r))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Accept-Language", "fr-FR")
		require.Equal(t, LocaleEN, FromRequest(r))
	})
}

func TestBundleFallback(t *testing.T) {
	bundle := NewBundle()

	ru := bundle.Locale(LocaleRU)
	require.Equal(t, messagesRU["api.serverError"], ru.T("api.serverError"))

	// Unknown locale falls back to English wholesale.
	unknown := bundle.Locale(Locale("de"))
	require.Equal(t, messagesEN["api.serverError"], unknown.T("api.serverError"))

	// Unknown key stays visible.
	require.Equal(t, "api.noSuchKey", unknown.T("api.noSuchKey"))
}
