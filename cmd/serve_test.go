package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/config"
	"github.com/shopintel/competitor-xray/internal/model"
	"github.com/shopintel/competitor-xray/internal/pipeline"
	"github.com/shopintel/competitor-xray/internal/store"
)

func newTestAPI(t *testing.T) *apiServer {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })

	return &apiServer{
		cfg: &config.Config{
			Filters: model.FilterConfig{
				PriceMultiplierMin: 0.5,
				PriceMultiplierMax: 2.0,
				MinRating:          3.8,
				MinReviews:         100,
				TargetCategory:     "Water Bottles",
			},
			Scoring: pipeline.DefaultScoringPolicy(),
		},
		store:  st,
		source: catalog.NewSyntheticSource(),
	}
}

func doRequest(t *testing.T, api *apiServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	api.router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, newTestAPI(t), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProductsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestAPI(t), http.MethodGet, "/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 5)
}

func TestRunEndpoint(t *testing.T) {
	t.Run("ByASIN", func(t *testing.T) {
		api := newTestAPI(t)
		rec := doRequest(t, api, http.MethodPost, "/executions",
			map[string]string{"reference_asin": "B07FVTJWWF"})

		require.Equal(t, http.StatusCreated, rec.Code)

		var exec model.Execution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exec))
		assert.Equal(t, model.ExecutionStatusCompleted, exec.Status)
		assert.Len(t, exec.Steps, 4)
		assert.NotNil(t, exec.FinalOutput)
	})

	t.Run("CustomReference", func(t *testing.T) {
		api := newTestAPI(t)
		rec := doRequest(t, api, http.MethodPost, "/executions", runRequest{
			Reference: &model.Product{
				ASIN: "CUSTOM", Title: "Custom Steel Bottle 32oz",
				Price: 35.00, Rating: 4.5, Reviews: 1200, Category: "Water Bottles",
			},
		})

		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("UnknownASIN", func(t *testing.T) {
		rec := doRequest(t, newTestAPI(t), http.MethodPost, "/executions",
			map[string]string{"reference_asin": "NOPE"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingReference", func(t *testing.T) {
		rec := doRequest(t, newTestAPI(t), http.MethodPost, "/executions", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/executions", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		newTestAPI(t).router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidReference", func(t *testing.T) {
		rec := doRequest(t, newTestAPI(t), http.MethodPost, "/executions", runRequest{
			Reference: &model.Product{Title: "Free Bottle", Price: 0},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("FilterOverride", func(t *testing.T) {
		api := newTestAPI(t)
		// Impossible review floor: run completes with no winner.
		rec := doRequest(t, api, http.MethodPost, "/executions", runRequest{
			ReferenceASIN: "B07FVTJWWF",
			Filters: &model.FilterConfig{
				PriceMultiplierMin: 0.5,
				PriceMultiplierMax: 2.0,
				MinRating:          3.8,
				MinReviews:         10000000,
				TargetCategory:     "Water Bottles",
			},
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var exec model.Execution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exec))
		assert.Equal(t, model.ExecutionStatusCompleted, exec.Status)
		assert.Nil(t, exec.FinalOutput)
	})

	t.Run("InvalidFilterOverride", func(t *testing.T) {
		rec := doRequest(t, newTestAPI(t), http.MethodPost, "/executions", runRequest{
			ReferenceASIN: "B07FVTJWWF",
			Filters: &model.FilterConfig{
				PriceMultiplierMin: 3.0,
				PriceMultiplierMax: 2.0,
				MinRating:          3.8,
				MinReviews:         100,
				TargetCategory:     "Water Bottles",
			},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExecutionHistoryEndpoints(t *testing.T) {
	api := newTestAPI(t)

	// Two runs so the history has an order to assert.
	first := doRequest(t, api, http.MethodPost, "/executions",
		map[string]string{"reference_asin": "B07FVTJWWF"})
	require.Equal(t, http.StatusCreated, first.Code)
	second := doRequest(t, api, http.MethodPost, "/executions",
		map[string]string{"reference_asin": "B08JQN4JJN"})
	require.Equal(t, http.StatusCreated, second.Code)

	var firstExec, secondExec model.Execution
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstExec))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondExec))

	t.Run("ListNewestFirst", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodGet, "/executions", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var summaries []model.ExecutionSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, secondExec.ID, summaries[0].ID)
		assert.Equal(t, firstExec.ID, summaries[1].ID)
	})

	t.Run("GetByID", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodGet, "/executions/"+firstExec.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var exec model.Execution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exec))
		assert.Equal(t, firstExec.ID, exec.ID)
		assert.Len(t, exec.Steps, 4)
	})

	t.Run("GetUnknownID", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodGet, "/executions/nonexistent-id", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Clear", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodDelete, "/executions", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		list := doRequest(t, api, http.MethodGet, "/executions", nil)
		require.Equal(t, http.StatusOK, list.Code)

		var summaries []model.ExecutionSummary
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &summaries))
		assert.Empty(t, summaries)
	})
}
