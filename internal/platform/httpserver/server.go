package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	estimationservice "sherpa/contexts/campaign-insights/estimation-service"
	estimationerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
	estimationhttp "sherpa/contexts/campaign-insights/estimation-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "sherpa/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	estimation estimationservice.Module
}

func New(
	estimation estimationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		estimation: estimation,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest-driven tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/insights/forecasts", s.handleGenerateForecast)
	s.mux.HandleFunc("GET /v1/insights/forecasts/{forecast_id}", s.handleGetForecast)
	s.mux.HandleFunc("GET /v1/insights/campaigns/{campaign_id}/forecasts", s.handleListCampaignForecasts)
	s.mux.HandleFunc("POST /v1/insights/budget-plan", s.handleBudgetPlan)
	s.mux.HandleFunc("GET /v1/insights/match-quality", s.handleMatchQuality)
	s.mux.HandleFunc("POST /v1/insights/match-quality/batch", s.handleMatchQualityBatch)
}

func (s *Server) handleGenerateForecast(w http.ResponseWriter, r *http.Request) {
	var req estimationhttp.GenerateForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEstimationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	resp, err := s.estimation.Handler.GenerateForecastHandler(r.Context(), idempotencyKey, req)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetForecast(w http.ResponseWriter, r *http.Request) {
	forecastID := r.PathValue("forecast_id")
	resp, err := s.estimation.Handler.GetForecastHandler(r.Context(), forecastID)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCampaignForecasts(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	query := r.URL.Query()

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeEstimationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	offset := 0
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		parsed, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeEstimationError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		offset = parsed
	}

	resp, err := s.estimation.Handler.ListCampaignForecastsHandler(r.Context(), campaignID, limit, offset)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBudgetPlan(w http.ResponseWriter, r *http.Request) {
	var req estimationhttp.BudgetPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEstimationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.estimation.Handler.BudgetPlanHandler(r.Context(), req)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatchQuality(w http.ResponseWriter, r *http.Request) {
	scoreRaw := r.URL.Query().Get("score")
	if scoreRaw == "" {
		writeEstimationError(w, http.StatusBadRequest, "missing_score", "score query parameter is required")
		return
	}
	score, err := strconv.ParseFloat(scoreRaw, 64)
	if err != nil {
		writeEstimationError(w, http.StatusBadRequest, "invalid_score", "score must be a number")
		return
	}

	resp, err := s.estimation.Handler.MatchQualityHandler(r.Context(), score)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMatchQualityBatch(w http.ResponseWriter, r *http.Request) {
	var req estimationhttp.MatchQualityBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEstimationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.estimation.Handler.MatchQualityBatchHandler(r.Context(), req)
	if err != nil {
		writeEstimationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEstimationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, estimationerrors.ErrInvalidParameters):
		writeEstimationError(w, http.StatusBadRequest, "invalid_parameters", err.Error())
	case errors.Is(err, estimationerrors.ErrZeroCampaignCost):
		writeEstimationError(w, http.StatusBadRequest, "zero_campaign_cost", err.Error())
	case errors.Is(err, estimationerrors.ErrInvalidBudget):
		writeEstimationError(w, http.StatusBadRequest, "invalid_budget", err.Error())
	case errors.Is(err, estimationerrors.ErrIdempotencyKeyMissing):
		writeEstimationError(w, http.StatusBadRequest, "idempotency_key_missing", err.Error())
	case errors.Is(err, estimationerrors.ErrIdempotencyConflict):
		writeEstimationError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, estimationerrors.ErrForecastNotFound):
		writeEstimationError(w, http.StatusNotFound, "forecast_not_found", err.Error())
	default:
		writeEstimationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEstimationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, estimationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
