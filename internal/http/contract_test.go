//go:build contract

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/blend-service/internal/domain/dto"
	"github.com/guttosm/blend-service/internal/middleware"
	"github.com/guttosm/blend-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContractRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := newTestStore(t)
	svc := service.NewFormulationService(store)
	t.Cleanup(svc.Close)

	return NewRouter(NewHealthHandler(), RouterConfig{
		Formulations:      svc,
		Catalog:           service.NewCatalogService(store, nil, nil),
		RateLimit:         100,
		RateWindow:        time.Minute,
		EnableIdempotency: true,
	})
}

func call(router *gin.Engine, method, path, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonObject(t *testing.T, raw any, field string) map[string]any {
	t.Helper()
	obj, ok := raw.(map[string]any)
	require.True(t, ok, "%s must be an object", field)
	return obj
}

func TestContract_SessionEnvelope(t *testing.T) {
	w := call(newContractRouter(t), http.MethodPost, APIPrefix+"/formulations", `{"beverage_type":"fruit_drink","flavor":"orange"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
	assert.NotZero(t, resp.Timestamp)

	session := jsonObject(t, resp.Data, "data")
	for _, field := range []string{"id", "options", "specification", "formulation", "evaluation", "created_at", "updated_at"} {
		assert.Contains(t, session, field)
	}
	formulation := jsonObject(t, session["formulation"], "formulation")
	for _, field := range []string{"entries", "diluent", "over_composed"} {
		assert.Contains(t, formulation, field)
	}
	evaluation := jsonObject(t, session["evaluation"], "evaluation")
	for _, field := range []string{"result", "compliance", "issues"} {
		assert.Contains(t, evaluation, field)
	}
}

func TestContract_ErrorEnvelopes(t *testing.T) {
	router := newContractRouter(t)

	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		wantStatus  int
		wantCode    string
		wantDetails map[string]string
	}{
		{
			name:       "malformed session options",
			method:     http.MethodPost,
			path:       APIPrefix + "/formulations",
			body:       `invalid json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:       "percentage above 100",
			method:     http.MethodPost,
			path:       APIPrefix + "/evaluate",
			body:       `{"options":{"beverage_type":"fruit_drink"},"entries":[{"slot":2,"name":"Sugar","percentage":120}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeInvalidRequest,
			wantDetails: map[string]string{
				"code": "INVALID_PERCENTAGE", "slot": "2", "bound": "100",
			},
		},
		{
			name:       "unknown session",
			method:     http.MethodGet,
			path:       APIPrefix + "/formulations/unknown",
			wantStatus: http.StatusNotFound,
			wantCode:   dto.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
			assert.NotZero(t, resp.Timestamp)
			for k, v := range tt.wantDetails {
				assert.Equal(t, v, resp.Details[k], k)
			}
		})
	}
}

func TestContract_SessionSchema(t *testing.T) {
	w := call(newContractRouter(t), http.MethodPost, APIPrefix+"/formulations",
		`{"beverage_type":"fruit_drink","volume_ml":350,"ph_mode":"linear"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data service.SessionState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 350.0, resp.Data.Options.VolumeML)
	assert.Equal(t, "linear", string(resp.Data.Options.PHMode))
	require.NotNil(t, resp.Data.Specification)
	assert.Equal(t, "fruit_drink", resp.Data.Specification.BeverageType)
	assert.Equal(t, "Water", resp.Data.Formulation.Diluent.Name)
	assert.Equal(t, 100.0, resp.Data.Evaluation.Result.DiluentPercentage)
}

func TestContract_Probes(t *testing.T) {
	router := newContractRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			w := call(router, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp["status"])
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestContract_Headers(t *testing.T) {
	router := newContractRouter(t)

	w := call(router, http.MethodGet, APIPrefix+"/catalog", "")
	for _, h := range []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"} {
		assert.NotEmpty(t, w.Header().Get(h), h)
	}

	body := `{"beverage_type":"fruit_drink"}`
	first := call(router, http.MethodPost, APIPrefix+"/formulations", body, middleware.IdempotencyKeyHeader, "contract-1")
	replay := call(router, http.MethodPost, APIPrefix+"/formulations", body, middleware.IdempotencyKeyHeader, "contract-1")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), replay.Body.String())
}
