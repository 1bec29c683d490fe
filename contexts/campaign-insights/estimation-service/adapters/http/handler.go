package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"sherpa/contexts/campaign-insights/estimation-service/application"
	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	"sherpa/contexts/campaign-insights/estimation-service/ports"
	httptransport "sherpa/contexts/campaign-insights/estimation-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GenerateForecastHandler(
	ctx context.Context,
	idempotencyKey string,
	req httptransport.GenerateForecastRequest,
) (httptransport.ForecastResponse, error) {
	snapshot, replayed, err := h.Service.GenerateForecast(ctx, idempotencyKey, ports.ForecastInput{
		CampaignID: req.CampaignID,
		Parameters: entities.CampaignParameters{
			BudgetPerCreator:         req.BudgetPerCreator,
			CreatorCount:             req.CreatorCount,
			AverageFollowers:         req.AverageFollowers,
			AverageEngagementPercent: req.AverageEngagementPercent,
			CampaignDurationDays:     req.CampaignDurationDays,
			ContentType:              entities.ContentType(req.ContentType),
			Industry:                 entities.Industry(req.Industry),
		},
	})
	if err != nil {
		return httptransport.ForecastResponse{}, err
	}
	return httptransport.ForecastResponse{
		Status:   "success",
		Replayed: replayed,
		Data:     toForecastDTO(snapshot),
	}, nil
}

func (h Handler) GetForecastHandler(
	ctx context.Context,
	forecastID string,
) (httptransport.ForecastResponse, error) {
	snapshot, err := h.Service.GetForecast(ctx, forecastID)
	if err != nil {
		return httptransport.ForecastResponse{}, err
	}
	return httptransport.ForecastResponse{
		Status: "success",
		Data:   toForecastDTO(snapshot),
	}, nil
}

func (h Handler) ListCampaignForecastsHandler(
	ctx context.Context,
	campaignID string,
	limit int,
	offset int,
) (httptransport.ForecastListResponse, error) {
	items, err := h.Service.ListCampaignForecasts(ctx, campaignID, limit, offset)
	if err != nil {
		return httptransport.ForecastListResponse{}, err
	}
	resp := httptransport.ForecastListResponse{
		Status: "success",
		Data:   make([]httptransport.ForecastDTO, 0, len(items)),
	}
	for _, item := range items {
		resp.Data = append(resp.Data, toForecastDTO(item))
	}
	return resp, nil
}

func (h Handler) BudgetPlanHandler(
	ctx context.Context,
	req httptransport.BudgetPlanRequest,
) (httptransport.BudgetPlanResponse, error) {
	plan, err := h.Service.OptimizeBudget(ctx, req.TotalBudget, entities.OfferCriteria{
		MinFollowers:  req.MinFollowers,
		MinEngagement: req.MinEngagement,
		ContentType:   entities.ContentType(req.ContentType),
		TimeframeDays: req.TimeframeDays,
	})
	if err != nil {
		return httptransport.BudgetPlanResponse{}, err
	}
	return httptransport.BudgetPlanResponse{
		Status: "success",
		Data:   toBudgetPlanDTO(plan),
	}, nil
}

func (h Handler) MatchQualityHandler(
	ctx context.Context,
	matchScore float64,
) (httptransport.MatchQualityResponse, error) {
	quality := h.Service.ClassifyMatch(ctx, matchScore)
	return httptransport.MatchQualityResponse{
		Status: "success",
		Data:   toMatchQualityDTO(quality),
	}, nil
}

func (h Handler) MatchQualityBatchHandler(
	ctx context.Context,
	req httptransport.MatchQualityBatchRequest,
) (httptransport.MatchQualityBatchResponse, error) {
	qualities := h.Service.ClassifyMatches(ctx, req.Scores)
	resp := httptransport.MatchQualityBatchResponse{
		Status: "success",
		Data:   make([]httptransport.MatchQualityDTO, 0, len(qualities)),
	}
	for _, quality := range qualities {
		resp.Data = append(resp.Data, toMatchQualityDTO(quality))
	}
	return resp, nil
}

func toForecastDTO(snapshot ports.ForecastSnapshot) httptransport.ForecastDTO {
	forecast := snapshot.Forecast
	risks := make([]httptransport.RiskFactorDTO, 0, len(forecast.RiskFactors))
	for _, risk := range forecast.RiskFactors {
		risks = append(risks, httptransport.RiskFactorDTO{
			ID:         risk.RiskID,
			Name:       risk.Name,
			Severity:   string(risk.Severity),
			Impact:     risk.Impact,
			Mitigation: risk.Mitigation,
		})
	}
	tips := make([]httptransport.OptimizationTipDTO, 0, len(forecast.OptimizationTips))
	for _, tip := range forecast.OptimizationTips {
		tips = append(tips, httptransport.OptimizationTipDTO{
			ID:         tip.TipID,
			Tip:        tip.Tip,
			Impact:     string(tip.Impact),
			Difficulty: string(tip.Difficulty),
		})
	}

	return httptransport.ForecastDTO{
		ForecastID:  snapshot.ForecastID,
		CampaignID:  snapshot.CampaignID,
		Reach:       toIntervalDTO(forecast.Reach),
		Engagement:  toIntervalDTO(forecast.Engagement),
		Clicks:      toIntervalDTO(forecast.Clicks),
		Conversions: toIntervalDTO(forecast.Conversions),
		ROI: httptransport.ROIDTO{
			Percentage: toIntervalDTO(forecast.ROI.Percentage),
			Value:      toIntervalDTO(forecast.ROI.Value),
		},
		TimeToResults: httptransport.TimeToResultsDTO{
			FirstResultsDays:    forecast.TimeToResults.FirstResultsDays,
			PeakPerformanceDays: forecast.TimeToResults.PeakPerformanceDays,
			LongevityDays:       forecast.TimeToResults.LongevityDays,
		},
		Confidence:       forecast.Confidence,
		RiskFactors:      risks,
		OptimizationTips: tips,
		CreatedAt:        snapshot.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toIntervalDTO(interval entities.Interval) httptransport.IntervalDTO {
	return httptransport.IntervalDTO{
		Lower:    interval.Lower,
		Expected: interval.Expected,
		Upper:    interval.Upper,
		Trend:    string(interval.Trend),
	}
}

func toTierAllocationDTO(tier entities.TierAllocation) httptransport.TierAllocationDTO {
	return httptransport.TierAllocationDTO{
		Percentage:     tier.Percentage,
		Amount:         tier.Amount,
		Count:          tier.Count,
		AvgReward:      tier.AvgReward,
		EstimatedReach: tier.EstimatedReach,
	}
}

func toBudgetPlanDTO(plan entities.BudgetOptimization) httptransport.BudgetPlanDTO {
	contentTypes := make([]string, 0, len(plan.RecommendedCriteria.ContentTypes))
	for _, contentType := range plan.RecommendedCriteria.ContentTypes {
		contentTypes = append(contentTypes, string(contentType))
	}
	return httptransport.BudgetPlanDTO{
		TotalBudget: plan.TotalBudget,
		Allocation: httptransport.BudgetAllocationDTO{
			MicroInfluencers: toTierAllocationDTO(plan.Allocation.MicroInfluencers),
			MidTier:          toTierAllocationDTO(plan.Allocation.MidTier),
			Premium:          toTierAllocationDTO(plan.Allocation.Premium),
		},
		ProjectedMetrics: httptransport.ProjectedMetricsDTO{
			TotalReach:           plan.ProjectedMetrics.TotalReach,
			EstimatedEngagement:  plan.ProjectedMetrics.EstimatedEngagement,
			EstimatedConversions: plan.ProjectedMetrics.EstimatedConversions,
			EstimatedROI:         plan.ProjectedMetrics.EstimatedROI,
			ConfidenceScore:      plan.ProjectedMetrics.ConfidenceScore,
		},
		RecommendedCriteria: httptransport.RecommendedCriteriaDTO{
			MinFollowers:       plan.RecommendedCriteria.MinFollowers,
			MinEngagement:      plan.RecommendedCriteria.MinEngagement,
			ContentTypes:       contentTypes,
			IdealTimeframeDays: plan.RecommendedCriteria.IdealTimeframeDays,
		},
	}
}

func toMatchQualityDTO(quality entities.MatchQuality) httptransport.MatchQualityDTO {
	return httptransport.MatchQualityDTO{
		Label:     quality.Label,
		TierIndex: quality.TierIndex,
	}
}
