package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	estimationservice "sherpa/contexts/campaign-insights/estimation-service"
	estimationhttp "sherpa/contexts/campaign-insights/estimation-service/transport/http"
)

func newTestServer() *Server {
	return New(estimationservice.NewInMemoryModule(nil), nil, ":0")
}

func forecastRequestBody() []byte {
	payload, _ := json.Marshal(estimationhttp.GenerateForecastRequest{
		CampaignID:               "campaign-1",
		BudgetPerCreator:         500,
		CreatorCount:             3,
		AverageFollowers:         10_000,
		AverageEngagementPercent: 4,
		CampaignDurationDays:     14,
		ContentType:              "video",
		Industry:                 "fashion",
	})
	return payload
}

func postForecast(t *testing.T, handler http.Handler, key string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/insights/forecasts", bytes.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateForecastEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postForecast(t, handler, "key-1", forecastRequestBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp estimationhttp.ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Status != "success" || resp.Replayed {
		t.Fatalf("unexpected response envelope: %+v", resp)
	}
	if resp.Data.ForecastID == "" {
		t.Fatal("forecast id missing")
	}
	if resp.Data.Reach.Expected != 22_500 {
		t.Fatalf("expected reach = %d, want 22500", resp.Data.Reach.Expected)
	}
	if resp.Data.Confidence != 82 {
		t.Fatalf("confidence = %d, want 82", resp.Data.Confidence)
	}
	if len(resp.Data.RiskFactors) != 3 || len(resp.Data.OptimizationTips) != 3 {
		t.Fatalf("expected 3 risks and 3 tips, got %d and %d",
			len(resp.Data.RiskFactors), len(resp.Data.OptimizationTips))
	}
}

func TestGenerateForecastEndpointReplaysAndConflicts(t *testing.T) {
	handler := newTestServer().Handler()

	first := postForecast(t, handler, "key-1", forecastRequestBody())
	if first.Code != http.StatusOK {
		t.Fatalf("first call status = %d", first.Code)
	}
	var firstResp estimationhttp.ForecastResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	retry := postForecast(t, handler, "key-1", forecastRequestBody())
	if retry.Code != http.StatusOK {
		t.Fatalf("retry status = %d", retry.Code)
	}
	var retryResp estimationhttp.ForecastResponse
	if err := json.Unmarshal(retry.Body.Bytes(), &retryResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !retryResp.Replayed || retryResp.Data.ForecastID != firstResp.Data.ForecastID {
		t.Fatalf("retry did not replay: %+v", retryResp)
	}

	var mutated estimationhttp.GenerateForecastRequest
	_ = json.Unmarshal(forecastRequestBody(), &mutated)
	mutated.CreatorCount = 5
	mutatedBody, _ := json.Marshal(mutated)

	conflict := postForecast(t, handler, "key-1", mutatedBody)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("conflict status = %d, want 409", conflict.Code)
	}
	var errResp estimationhttp.ErrorResponse
	if err := json.Unmarshal(conflict.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if errResp.Code != "idempotency_conflict" {
		t.Fatalf("error code = %s, want idempotency_conflict", errResp.Code)
	}
}

func TestGenerateForecastEndpointRejectsMissingKeyAndBadInput(t *testing.T) {
	handler := newTestServer().Handler()

	missingKey := postForecast(t, handler, "", forecastRequestBody())
	if missingKey.Code != http.StatusBadRequest {
		t.Fatalf("missing key status = %d, want 400", missingKey.Code)
	}

	var bad estimationhttp.GenerateForecastRequest
	_ = json.Unmarshal(forecastRequestBody(), &bad)
	bad.CreatorCount = 0
	badBody, _ := json.Marshal(bad)
	invalid := postForecast(t, handler, "key-1", badBody)
	if invalid.Code != http.StatusBadRequest {
		t.Fatalf("invalid input status = %d, want 400", invalid.Code)
	}

	garbage := postForecast(t, handler, "key-2", []byte("{not json"))
	if garbage.Code != http.StatusBadRequest {
		t.Fatalf("garbage body status = %d, want 400", garbage.Code)
	}
}

func TestGetAndListForecastEndpoints(t *testing.T) {
	handler := newTestServer().Handler()

	created := postForecast(t, handler, "key-1", forecastRequestBody())
	var createdResp estimationhttp.ForecastResponse
	if err := json.Unmarshal(created.Body.Bytes(), &createdResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	getReq := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/v1/insights/forecasts/%s", createdResp.Data.ForecastID), nil)
	getRec := httptest.NewRecorder()
	handler.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d", getRec.Code)
	}

	missingReq := httptest.NewRequest(http.MethodGet, "/v1/insights/forecasts/nope", nil)
	missingRec := httptest.NewRecorder()
	handler.ServeHTTP(missingRec, missingReq)
	if missingRec.Code != http.StatusNotFound {
		t.Fatalf("missing forecast status = %d, want 404", missingRec.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/insights/campaigns/campaign-1/forecasts", nil)
	listRec := httptest.NewRecorder()
	handler.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d", listRec.Code)
	}
	var listResp estimationhttp.ForecastListResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(listResp.Data) != 1 || listResp.Data[0].ForecastID != createdResp.Data.ForecastID {
		t.Fatalf("unexpected list: %+v", listResp.Data)
	}

	badLimitReq := httptest.NewRequest(http.MethodGet, "/v1/insights/campaigns/campaign-1/forecasts?limit=abc", nil)
	badLimitRec := httptest.NewRecorder()
	handler.ServeHTTP(badLimitRec, badLimitReq)
	if badLimitRec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d, want 400", badLimitRec.Code)
	}
}

func TestBudgetPlanEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	body, _ := json.Marshal(estimationhttp.BudgetPlanRequest{
		TotalBudget: 1_000,
		ContentType: "image",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/insights/budget-plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp estimationhttp.BudgetPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.Allocation.MicroInfluencers.Amount != 400 {
		t.Fatalf("micro amount = %v, want 400", resp.Data.Allocation.MicroInfluencers.Amount)
	}
	if resp.Data.ProjectedMetrics.EstimatedROI != 77 {
		t.Fatalf("roi = %d, want 77", resp.Data.ProjectedMetrics.EstimatedROI)
	}
	if resp.Data.RecommendedCriteria.MinFollowers != 5_000 {
		t.Fatalf("min followers = %d, want 5000", resp.Data.RecommendedCriteria.MinFollowers)
	}

	zeroBody, _ := json.Marshal(estimationhttp.BudgetPlanRequest{TotalBudget: 0})
	zeroReq := httptest.NewRequest(http.MethodPost, "/v1/insights/budget-plan", bytes.NewReader(zeroBody))
	zeroRec := httptest.NewRecorder()
	handler.ServeHTTP(zeroRec, zeroReq)
	if zeroRec.Code != http.StatusBadRequest {
		t.Fatalf("zero budget status = %d, want 400", zeroRec.Code)
	}
}

func TestMatchQualityEndpoints(t *testing.T) {
	handler := newTestServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/insights/match-quality?score=85", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp estimationhttp.MatchQualityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Data.Label != "Best Match" || resp.Data.TierIndex != 0 {
		t.Fatalf("unexpected quality: %+v", resp.Data)
	}

	missingReq := httptest.NewRequest(http.MethodGet, "/v1/insights/match-quality", nil)
	missingRec := httptest.NewRecorder()
	handler.ServeHTTP(missingRec, missingReq)
	if missingRec.Code != http.StatusBadRequest {
		t.Fatalf("missing score status = %d, want 400", missingRec.Code)
	}

	batchBody, _ := json.Marshal(estimationhttp.MatchQualityBatchRequest{Scores: []float64{90, 72, 55, 10}})
	batchReq := httptest.NewRequest(http.MethodPost, "/v1/insights/match-quality/batch", bytes.NewReader(batchBody))
	batchRec := httptest.NewRecorder()
	handler.ServeHTTP(batchRec, batchReq)
	if batchRec.Code != http.StatusOK {
		t.Fatalf("batch status = %d", batchRec.Code)
	}
	var batchResp estimationhttp.MatchQualityBatchResponse
	if err := json.Unmarshal(batchRec.Body.Bytes(), &batchResp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	wantLabels := []string{"Best Match", "Great Match", "Good Match", "Potential Match"}
	if len(batchResp.Data) != len(wantLabels) {
		t.Fatalf("batch size = %d, want %d", len(batchResp.Data), len(wantLabels))
	}
	for i, want := range wantLabels {
		if batchResp.Data[i].Label != want {
			t.Fatalf("batch[%d] = %s, want %s", i, batchResp.Data[i].Label, want)
		}
	}
}
