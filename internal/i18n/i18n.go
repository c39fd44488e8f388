// Package i18n translates user-facing error messages. The locale comes from
// the Accept-Language header; English is the fallback for unknown locales and
// for keys a locale does not translate.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator holds messages keyed by locale, then by message key.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale picks the most preferred supported language from the
// Accept-Language header, honouring q-values. Region subtags are dropped, so
// "pt-BR" selects "pt".
func GetLocale(c *gin.Context) string {
	return Negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
}

type languageRange struct {
	tag string
	q   float64
}

// Negotiate resolves an Accept-Language value against t's locales.
func Negotiate(header string, t *Translator) string {
	if header == "" {
		return DefaultLocale
	}

	var ranges []languageRange
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.ToLower(strings.TrimSpace(fields[0]))
		if i := strings.IndexByte(tag, '-'); i > 0 {
			tag = tag[:i]
		}
		if tag == "" || tag == "*" {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			if v, ok := strings.CutPrefix(strings.TrimSpace(param), "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		if q > 0 {
			ranges = append(ranges, languageRange{tag: tag, q: q})
		}
	}

	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })
	for _, r := range ranges {
		if t.Supports(r.tag) {
			return r.tag
		}
	}
	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":            "Invalid request",
			"error.invalid_request_body":       "Invalid request body",
			"error.internal_error":             "An unexpected error occurred",
			"error.unauthorized":               "Unauthorized",
			"error.api_key_required":           "API key is required",
			"error.invalid_api_key":            "Invalid API key",
			"error.forbidden":                  "Forbidden",
			"error.not_found":                  "Not found",
			"error.rate_limit_exceeded":        "Too many requests, please try again later",
			"error.conflict":                   "Conflict",
			"error.invalid_token":              "Invalid or expired token",
			"error.token_required":             "Authentication token is required",
			"error.timeout":                    "Request timed out",
			"error.service_unavailable":        "Service temporarily unavailable",
			"error.session_not_found":          "Formulation session not found or expired",
			"error.validation.slot":            "slot: must be a material slot",
			"error.validation.percentage":      "percentage: must be between 0 and 100",
			"error.validation.attribute":       "attributes: value outside its physical range",
			"error.validation.options":         "Invalid formulation options",
			"error.validation.entry_name":      "name: required when a percentage is set",
			"error.material_not_found":         "Material not found in catalog",
			"error.material_not_inferable":     "No attributes could be inferred from the name",
			"error.guide_not_found":            "No guide for this beverage type and flavor",
			"error.entry_changed":              "The entry changed while the estimate was running",
			"error.estimator_unavailable":      "Estimation service is unavailable",
			"error.estimate_rejected":          "The estimate was rejected",
			"error.catalog_reload_unavailable": "Catalog has no reload source",
			"error.catalog_reload_failed":      "Catalog reload failed, the previous catalog is still served",
			"error.idempotency_mismatch":       "Idempotency key was already used with a different request",
			"error.idempotency_in_flight":      "The original request is still in progress",
		},
		"pt": {
			"error.invalid_request":            "Requisição inválida",
			"error.invalid_request_body":       "Corpo da requisição inválido",
			"error.internal_error":             "Ocorreu um erro inesperado",
			"error.unauthorized":               "Não autorizado",
			"error.api_key_required":           "Chave de API é obrigatória",
			"error.invalid_api_key":            "Chave de API inválida",
			"error.forbidden":                  "Proibido",
			"error.not_found":                  "Não encontrado",
			"error.rate_limit_exceeded":        "Muitas requisições, tente novamente mais tarde",
			"error.conflict":                   "Conflito",
			"error.invalid_token":              "Token inválido ou expirado",
			"error.token_required":             "Token de autenticação é obrigatório",
			"error.timeout":                    "Tempo de requisição esgotado",
			"error.service_unavailable":        "Serviço temporariamente indisponível",
			"error.session_not_found":          "Sessão de formulação não encontrada ou expirada",
			"error.validation.slot":            "slot: deve ser uma posição de matéria-prima",
			"error.validation.percentage":      "percentage: deve estar entre 0 e 100",
			"error.validation.attribute":       "attributes: valor fora da faixa física",
			"error.validation.options":         "Opções de formulação inválidas",
			"error.validation.entry_name":      "name: obrigatório quando há percentual",
			"error.material_not_found":         "Matéria-prima não encontrada no catálogo",
			"error.material_not_inferable":     "Não foi possível inferir atributos pelo nome",
			"error.guide_not_found":            "Nenhum guia para este tipo de bebida e sabor",
			"error.entry_changed":              "A entrada mudou durante a estimativa",
			"error.estimator_unavailable":      "Serviço de estimativa indisponível",
			"error.estimate_rejected":          "A estimativa foi rejeitada",
			"error.catalog_reload_unavailable": "O catálogo não tem fonte para recarga",
			"error.catalog_reload_failed":      "Falha ao recarregar o catálogo, o anterior continua ativo",
			"error.idempotency_mismatch":       "Chave de idempotência reutilizada com outra requisição",
			"error.idempotency_in_flight":      "A requisição original ainda está em andamento",
		},
		"nl": {
			"error.invalid_request":            "Ongeldig verzoek",
			"error.invalid_request_body":       "Ongeldige aanvraag body",
			"error.internal_error":             "Er is een onverwachte fout opgetreden",
			"error.unauthorized":               "Niet geautoriseerd",
			"error.api_key_required":           "API-sleutel is vereist",
			"error.invalid_api_key":            "Ongeldige API-sleutel",
			"error.forbidden":                  "Verboden",
			"error.not_found":                  "Niet gevonden",
			"error.rate_limit_exceeded":        "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":                   "Conflict",
			"error.invalid_token":              "Ongeldig of verlopen token",
			"error.token_required":             "Authenticatietoken is vereist",
			"error.timeout":                    "Verzoek verlopen",
			"error.service_unavailable":        "Dienst tijdelijk niet beschikbaar",
			"error.session_not_found":          "Formuleringssessie niet gevonden of verlopen",
			"error.validation.slot":            "slot: moet een grondstofpositie zijn",
			"error.validation.percentage":      "percentage: moet tussen 0 en 100 liggen",
			"error.validation.attribute":       "attributes: waarde buiten het fysieke bereik",
			"error.validation.options":         "Ongeldige formuleringsopties",
			"error.validation.entry_name":      "name: verplicht wanneer een percentage is opgegeven",
			"error.material_not_found":         "Grondstof niet gevonden in catalogus",
			"error.material_not_inferable":     "Geen eigenschappen af te leiden uit de naam",
			"error.guide_not_found":            "Geen richtlijn voor dit dranktype en deze smaak",
			"error.entry_changed":              "De regel is gewijzigd tijdens de schatting",
			"error.estimator_unavailable":      "Schattingsdienst is niet beschikbaar",
			"error.estimate_rejected":          "De schatting is afgewezen",
			"error.catalog_reload_unavailable": "Catalogus heeft geen herlaadbron",
			"error.catalog_reload_failed":      "Herladen van catalogus mislukt, de vorige blijft actief",
			"error.idempotency_mismatch":       "Idempotentiesleutel hergebruikt met een ander verzoek",
			"error.idempotency_in_flight":      "Het oorspronkelijke verzoek wordt nog verwerkt",
		},
		"ko": {
			"error.invalid_request":            "잘못된 요청입니다",
			"error.invalid_request_body":       "요청 본문이 올바르지 않습니다",
			"error.internal_error":             "예기치 않은 오류가 발생했습니다",
			"error.unauthorized":               "인증되지 않았습니다",
			"error.api_key_required":           "API 키가 필요합니다",
			"error.invalid_api_key":            "유효하지 않은 API 키입니다",
			"error.forbidden":                  "권한이 없습니다",
			"error.not_found":                  "찾을 수 없습니다",
			"error.rate_limit_exceeded":        "요청이 너무 많습니다. 잠시 후 다시 시도하세요",
			"error.conflict":                   "충돌이 발생했습니다",
			"error.invalid_token":              "유효하지 않거나 만료된 토큰입니다",
			"error.token_required":             "인증 토큰이 필요합니다",
			"error.timeout":                    "요청 시간이 초과되었습니다",
			"error.service_unavailable":        "서비스를 일시적으로 사용할 수 없습니다",
			"error.session_not_found":          "배합 세션을 찾을 수 없거나 만료되었습니다",
			"error.validation.slot":            "slot: 원료 슬롯 번호여야 합니다",
			"error.validation.percentage":      "percentage: 0에서 100 사이여야 합니다",
			"error.validation.attribute":       "attributes: 물리적 범위를 벗어난 값입니다",
			"error.validation.options":         "배합 옵션이 올바르지 않습니다",
			"error.validation.entry_name":      "name: 배합비가 있으면 원료명이 필요합니다",
			"error.material_not_found":         "원료 DB에 없는 원료입니다",
			"error.material_not_inferable":     "원료명으로 속성을 추정할 수 없습니다",
			"error.guide_not_found":            "해당 음료 유형과 맛의 가이드가 없습니다",
			"error.entry_changed":              "추정 중에 원료가 변경되었습니다",
			"error.estimator_unavailable":      "추정 서비스를 사용할 수 없습니다",
			"error.estimate_rejected":          "추정 결과가 거부되었습니다",
			"error.catalog_reload_unavailable": "원료 DB를 다시 불러올 소스가 없습니다",
			"error.catalog_reload_failed":      "원료 DB를 다시 불러오지 못했습니다. 이전 DB를 계속 사용합니다",
			"error.idempotency_mismatch":       "다른 요청에 멱등성 키가 재사용되었습니다",
			"error.idempotency_in_flight":      "원래 요청이 아직 처리 중입니다",
		},
	}
}
