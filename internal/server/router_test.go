package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/logger"
	"adops/internal/pkg/jwt"
	"adops/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	tokens *jwt.Service
}

func newAPI(t *testing.T) *apiClient {
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	log := logger.Discard()
	tokens := jwt.New("router-test-secret", time.Hour)
	svc := NewServices(db, log, time.UTC)
	return &apiClient{
		t:      t,
		engine: NewRouter(RouterConfig{}, db, svc, tokens, log),
		tokens: tokens,
	}
}

func (a *apiClient) do(method, path, role string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := a.tokens.GenerateToken(7, "ops@example.com", role)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHealthIsPublic(t *testing.T) {
	api := newAPI(t)
	code, env := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestAPIRequiresToken(t *testing.T) {
	api := newAPI(t)
	code, env := api.do(http.MethodGet, "/api/v1/ads", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Error.Code)
}

func TestSettingsWriteIsAdminOnly(t *testing.T) {
	api := newAPI(t)
	body := map[string]int{"max_ads_per_day": 3}

	code, _ := api.do(http.MethodPut, "/api/v1/settings", jwt.RoleStaff, body)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodPut, "/api/v1/settings", jwt.RoleAdmin, body)
	assert.Equal(t, http.StatusOK, code)

	code, env := api.do(http.MethodGet, "/api/v1/settings", jwt.RoleStaff, nil)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Settings struct {
			MaxAdsPerDay int `json:"max_ads_per_day"`
		} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.Settings.MaxAdsPerDay)
}

func TestAdFlowOverHTTP(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodPost, "/api/v1/advertisers", jwt.RoleStaff, map[string]string{
		"advertiser_name": "Acme",
	})
	require.Equal(t, http.StatusCreated, code)

	ad := map[string]any{
		"ad_name":    "Launch",
		"advertiser": "Acme",
		"placement":  "Homepage",
		"post_type":  "one_time",
		"schedule":   "2030-01-15",
		"payment":    "Paid",
		"price":      250,
	}
	code, _ = api.do(http.MethodPost, "/api/v1/ads", jwt.RoleStaff, ad)
	require.Equal(t, http.StatusCreated, code)

	ad["ad_name"] = "Launch again"
	code, env := api.do(http.MethodPost, "/api/v1/ads", jwt.RoleStaff, ad)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "DUPLICATE_WARNING", env.Error.Code)

	code, _ = api.do(http.MethodPost, "/api/v1/ads?force=true", jwt.RoleStaff, ad)
	assert.Equal(t, http.StatusCreated, code)

	code, env = api.do(http.MethodGet, "/api/v1/advertisers/Acme", jwt.RoleStaff, nil)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Advertiser struct {
			TotalSpend float64 `json:"total_spend"`
			NextAdDate *string `json:"next_ad_date"`
		} `json:"advertiser"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 500.0, data.Advertiser.TotalSpend)
	require.NotNil(t, data.Advertiser.NextAdDate)
	assert.Equal(t, "2030-01-15", *data.Advertiser.NextAdDate)

	code, env = api.do(http.MethodGet, "/api/v1/calendar?year=2030&month=1", jwt.RoleStaff, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = api.do(http.MethodGet, "/api/v1/reconciliation", jwt.RoleStaff, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUnknownRoute(t *testing.T) {
	api := newAPI(t)
	code, env := api.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
