package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/service"
)

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()
	limiter := NewRateLimiter(RateLimiterConfig{Capacity: capacity, Window: time.Minute}, logging.Discard())
	t.Cleanup(limiter.Stop)
	logger := logging.Discard()
	return NewRouter(Handlers{
		Plan:               newPlanHandler(),
		TermRecommendation: NewTermRecommendationHandler(service.NewTermRecommendationService(logger)),
		Household:          NewHouseholdHandler(service.NewHouseholdService(logger)),
	}, limiter, logger)
}

func TestRouter_PlanRoundTrip(t *testing.T) {
	router := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/mortgage/plan", planBody))
	require.Equal(t, http.StatusOK, w.Code)

	var created domain.PlanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mortgage/plans/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var found domain.PlanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mortgage/plans/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	router := newTestRouter(t, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/mortgage/compare", planBody))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/mortgage/compare", planBody))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_RecommendPeriod(t *testing.T) {
	router := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/mortgage/recommend-period", `{
		"amount": "1 000 000 kr",
		"interest_rate": "5 %",
		"interval": "Månedlig",
		"start_date": "01.01.2024",
		"min_years": 10,
		"max_years": 30,
		"max_payment": 8000,
		"preference": "minimize_interest"
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.TermRecommendationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 15, result.RecommendedYears)
}

func TestRouter_HouseholdFields(t *testing.T) {
	router := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/household/sifo-fields", `{
		"members": [{"sex": "m", "age": 45}, {"sex": "f", "age": 13, "sfo": "1"}],
		"income": 850000,
		"cars": 2
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.HouseholdResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "1", result.Properties["sfo1"])
	assert.Equal(t, "850000", result.FormFields["inntekt"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/household/sifo-fields",
		`{"members": [{"sex": "f", "age": 30, "pregnant": "1"}]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
