package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-planner/domain"
	"mortgage-planner/logging"
	"mortgage-planner/repository"
	"mortgage-planner/service"
)

const planBody = `{
	"interest_rate": "5 %",
	"interval": "Månedlig",
	"period": "25 år",
	"amount": "800 000 kr",
	"start_date": "01.06.2023",
	"kind": "serie"
}`

func newPlanHandler() *PlanHandler {
	repo := repository.NewPlanRepositoryMemory()
	cache := repository.NewMemoryCache(100, time.Hour)
	return NewPlanHandler(service.NewMortgageService(repo, cache, logging.Discard()))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalculatePlanHandler_OK(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	handler.CalculatePlan(w, jsonRequest(http.MethodPost, "/mortgage/plan", planBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.PlanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Rows, 301)
	assert.Equal(t, "2 667 kr", result.Rows[1].Principal)
}

func TestCalculatePlanHandler_CSV(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	handler.CalculatePlan(w, jsonRequest(http.MethodPost, "/mortgage/plan?format=csv", planBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	r := csv.NewReader(w.Body)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 302)
	assert.Equal(t, domain.Columns, records[0])
}

func TestCalculatePlanHandler_JSONDownload(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	handler.CalculatePlan(w, jsonRequest(http.MethodPost, "/mortgage/plan?format=json", planBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")

	var rows []domain.DisplayRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 301)
	assert.Equal(t, "800 000 kr", rows[0].Remaining)
}

type unreadablePlanRepository struct {
	repository.PlanRepository
}

func (unreadablePlanRepository) FindByID(context.Context, string) (domain.PlanResult, error) {
	return domain.PlanResult{}, errors.New("database is locked")
}

func TestGetPlanHandler_StorageFailure(t *testing.T) {
	svc := service.NewMortgageService(unreadablePlanRepository{}, repository.NewMemoryCache(10, 0), logging.Discard())
	handler := NewPlanHandler(svc)
	w := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/mortgage/plans/abc", nil)
	req.SetPathValue("id", "abc")
	handler.GetPlan(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is locked")
}

func TestCalculatePlanHandler_MethodNotAllowed(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	handler.CalculatePlan(w, httptest.NewRequest(http.MethodGet, "/mortgage/plan", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculatePlanHandler_BadRequest(t *testing.T) {
	handler := newPlanHandler()

	w := httptest.NewRecorder()
	handler.CalculatePlan(w, jsonRequest(http.MethodPost, "/mortgage/plan", `{invalid-json}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.CalculatePlan(w, jsonRequest(http.MethodPost, "/mortgage/plan",
		strings.Replace(planBody, "Månedlig", "Daglig", 1)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown payment interval")
}

func TestCalculatePlanHandler_UnsupportedMediaType(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/mortgage/plan", bytes.NewBufferString(planBody))
	handler.CalculatePlan(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCompareHandler_OK(t *testing.T) {
	handler := newPlanHandler()
	w := httptest.NewRecorder()

	handler.ComparePlans(w, jsonRequest(http.MethodPost, "/mortgage/compare", planBody))

	require.Equal(t, http.StatusOK, w.Code)
	var cmp domain.PlanComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cmp))
	assert.Equal(t, 300, cmp.Fixed.Periods)
	assert.Equal(t, 300, cmp.Serial.Periods)
}
