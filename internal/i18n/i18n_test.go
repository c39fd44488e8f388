//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{"english", ErrKeyMaterialNotFound, "en", "Material not found in catalog"},
		{"portuguese", ErrKeySessionNotFound, "pt", "Sessão de formulação não encontrada ou expirada"},
		{"dutch", ErrKeyGuideNotFound, "nl", "Geen richtlijn voor dit dranktype en deze smaak"},
		{"korean", ErrKeyMaterialNotFound, "ko", "원료 DB에 없는 원료입니다"},
		{"empty locale", ErrKeyEntryChanged, "", "The entry changed while the estimate was running"},
		{"unsupported locale", ErrKeyEntryChanged, "fr", "The entry changed while the estimate was running"},
		{"unknown key", "error.mixing_tank_full", "pt", "error.mixing_tank_full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestTranslator_FallsBackPerKey(t *testing.T) {
	translator := &Translator{messages: map[string]map[string]string{
		"en": {"error.timeout": "Request timed out", "error.conflict": "Conflict"},
		"nl": {"error.conflict": "Conflict (nl)"},
	}}

	assert.Equal(t, "Conflict (nl)", translator.Translate("error.conflict", "nl"))
	assert.Equal(t, "Request timed out", translator.Translate("error.timeout", "nl"))
}

func TestNegotiate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", DefaultLocale},
		{"bare tag", "nl", "nl"},
		{"region dropped", "pt-BR", "pt"},
		{"upper case", "KO", "ko"},
		{"first supported in order", "fr-FR,ko;q=0.9,pt;q=0.8", "ko"},
		{"q-values beat order", "en;q=0.3,pt;q=0.9", "pt"},
		{"zero weight is refused", "pt;q=0,nl;q=0.5", "nl"},
		{"wildcard ignored", "*,nl;q=0.2", "nl"},
		{"nothing supported", "fr,de;q=0.9", DefaultLocale},
		{"malformed q keeps weight one", "nl;q=high,pt;q=0.9", "nl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header, translator))
		})
	}
}

func TestGetLocale_ReadsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "ko-KR,ko;q=0.9,en;q=0.5")

	assert.Equal(t, "ko", GetLocale(c))
}

func TestDefaultMessages_EveryLocaleCoversEveryKey(t *testing.T) {
	messages := getDefaultMessages()
	for locale, msgs := range messages {
		t.Run(locale, func(t *testing.T) {
			for key := range messages[DefaultLocale] {
				assert.NotEmpty(t, msgs[key], key)
			}
		})
	}
}
