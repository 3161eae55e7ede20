package predict

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/schoolrun/core/commute"
	"github.com/kilianp07/schoolrun/core/model"
)

func newHandler(t *testing.T, policy commute.WakePolicy) http.Handler {
	t.Helper()
	cfg := commute.DefaultConfig()
	cfg.WakePolicy = policy
	e, err := commute.NewEngine(cfg, nil)
	require.NoError(t, err)
	return NewHandler(e)
}

func TestHandlerGet(t *testing.T) {
	h := newHandler(t, commute.WakeClamp)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/predict?weather=heavy_rain&day=weekday&a=6.5&b=6.5", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out model.Prediction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, model.WeatherHeavyRain, out.Input.Weather)
	assert.InDelta(t, 30, out.SuccessProbability, 1e-9)
	assert.Equal(t, 1.6, out.Intermediates.WeatherTravelMultiplier)
	assert.True(t, strings.Index(rr.Body.String(), "run_duration") < strings.Index(rr.Body.String(), "routine_efficiency"))
}

func TestHandlerPost(t *testing.T) {
	h := newHandler(t, commute.WakeClamp)
	body := `{"weather":"light_rain","day_type":"weekday","parent_a_wake":5.5,"parent_b_wake":5.5}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rr.Code)
	var out model.Prediction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.InDelta(t, 92, out.SuccessProbability, 1e-9)
}

func TestHandlerBadRequests(t *testing.T) {
	h := newHandler(t, commute.WakeReject)
	for _, target := range []string{
		"/api/predict?weather=hail&day=weekday&a=6&b=6",
		"/api/predict?weather=clear&day=holiday&a=6&b=6",
		"/api/predict?weather=clear&day=weekday&a=six&b=6",
		"/api/predict?weather=clear&day=weekday&b=6",
		"/api/predict?weather=clear&day=weekday&a=NaN&b=6",
		"/api/predict?weather=clear&day=weekday&a=4&b=6",
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerPostMissingWake(t *testing.T) {
	h := newHandler(t, commute.WakeClamp)
	for _, body := range []string{
		`{"weather":"clear","day_type":"weekday"}`,
		`{"weather":"clear","day_type":"weekday","parent_a_wake":6}`,
		`{"weather":"clear","day_type":"weekday","parent_b_wake":6}`,
		`{"weather":"clear","day_type":"weekday","parent_a_wake":null,"parent_b_wake":6}`,
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Contains(t, rr.Body.String(), "is missing", body)
	}
}

func TestHandlerPostBodyTooLarge(t *testing.T) {
	h := newHandler(t, commute.WakeClamp)
	body := `{"weather":"clear","day_type":"weekday","parent_a_wake":6,"parent_b_wake":6,"pad":"` +
		strings.Repeat("x", maxBodyBytes) + `"}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	h := newHandler(t, commute.WakeClamp)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/predict", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
