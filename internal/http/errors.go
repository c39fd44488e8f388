package http

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/blend-service/internal/circuitbreaker"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/gateway"
	"github.com/guttosm/blend-service/internal/i18n"
	"github.com/guttosm/blend-service/internal/service"
)

// errorMapping pairs a sentinel error with its HTTP status and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// errorMappings is checked in order; wrapped sentinels come before the
// sentinels they wrap.
var errorMappings = []errorMapping{
	{service.ErrSessionNotFound, http.StatusNotFound, i18n.ErrKeySessionNotFound},
	{service.ErrInvalidSlot, http.StatusBadRequest, i18n.ErrKeyInvalidSlot},
	{service.ErrInvalidOptions, http.StatusBadRequest, i18n.ErrKeyInvalidOptions},
	{service.ErrEmptyEntryName, http.StatusBadRequest, i18n.ErrKeyEmptyEntryName},
	{engine.ErrInvalidPercentage, http.StatusBadRequest, i18n.ErrKeyInvalidPercentage},
	{engine.ErrInvalidAttribute, http.StatusBadRequest, i18n.ErrKeyInvalidAttribute},
	{service.ErrMaterialNotFound, http.StatusNotFound, i18n.ErrKeyMaterialNotFound},
	{service.ErrNotInferable, http.StatusUnprocessableEntity, i18n.ErrKeyNotInferable},
	{service.ErrGuideNotFound, http.StatusNotFound, i18n.ErrKeyGuideNotFound},
	{service.ErrEntryChanged, http.StatusConflict, i18n.ErrKeyEntryChanged},
	{service.ErrReloadUnavailable, http.StatusConflict, i18n.ErrKeyCatalogReloadUnavailable},
	{service.ErrEstimatorUnavailable, http.StatusServiceUnavailable, i18n.ErrKeyEstimatorUnavailable},
	{gateway.ErrSuspicious, http.StatusUnprocessableEntity, i18n.ErrKeyEstimateRejected},
	{gateway.ErrIncomplete, http.StatusUnprocessableEntity, i18n.ErrKeyEstimateRejected},
	{gateway.ErrMalformed, http.StatusUnprocessableEntity, i18n.ErrKeyEstimateRejected},
	{engine.ErrGatewayFailure, http.StatusBadGateway, i18n.ErrKeyEstimatorUnavailable},
	{circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
}

// respondError writes the error envelope for a service or binding error.
func respondError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err, validationDetails(validationErrs))
		return
	}
	var dtoErr *dto.ValidationError
	if errors.As(err, &dtoErr) {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err, map[string]string{dtoErr.Field: dtoErr.Message})
		return
	}

	status, key := http.StatusInternalServerError, i18n.ErrKeyInternalError
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status, key = m.status, m.key
			break
		}
	}
	builder.ErrorWithDetails(status, key, err, errorDetails(err))
}

// respondBindError answers a body that could not be decoded or validated.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var dtoErr *dto.ValidationError
	if errors.As(err, &validationErrs) || errors.As(err, &dtoErr) {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// errorDetails extracts the slot, material and suggestions carried by err.
func errorDetails(err error) map[string]string {
	details := make(map[string]string)

	var notFound *service.MaterialNotFoundError
	if errors.As(err, &notFound) {
		details["name"] = notFound.Name
		if len(notFound.Suggestions) > 0 {
			details["suggestions"] = strings.Join(notFound.Suggestions, "; ")
		}
	}

	var entryErr *engine.EntryError
	if errors.As(err, &entryErr) {
		details["code"] = engine.Code(entryErr)
		if entryErr.Slot > 0 {
			details["slot"] = strconv.Itoa(entryErr.Slot)
		}
		if entryErr.Name != "" {
			details["name"] = entryErr.Name
		}
		if entryErr.Attribute != "" {
			details["attribute"] = string(entryErr.Attribute)
		}
		if entryErr.Bound != nil {
			details["bound"] = strconv.FormatFloat(*entryErr.Bound, 'f', -1, 64)
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// validationDetails maps each failing field to the rule it broke.
func validationDetails(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		details[field] = rule
	}
	return details
}

var fieldNamesOnce sync.Once

// registerJSONFieldNames makes validation errors report JSON field names.
func registerJSONFieldNames() {
	fieldNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
