package services

import (
	"math"

	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
)

// BuildForecast derives the full three-point funnel (reach, engagement,
// actions, results, ROI) plus timeline, confidence, risks, and tips from one
// set of campaign parameters. Pure and deterministic: identical input yields
// identical output.
func BuildForecast(params entities.CampaignParameters) (entities.CampaignForecast, error) {
	if !params.IsValid() {
		return entities.CampaignForecast{}, domainerrors.ErrInvalidParameters
	}
	totalCost := params.TotalCost()
	if totalCost <= 0 {
		return entities.CampaignForecast{}, domainerrors.ErrZeroCampaignCost
	}

	viewRatio := defaultViewRatio
	if params.ContentType == entities.ContentTypeVideo {
		viewRatio = videoViewRatio
	}

	totalPotentialReach := float64(params.AverageFollowers) * float64(params.CreatorCount)
	expectedReach := roundHalf(totalPotentialReach * viewRatio)
	reach := entities.Interval{
		Lower:    roundHalf(float64(expectedReach) * 0.6),
		Expected: expectedReach,
		Upper:    roundHalf(float64(expectedReach) * 1.4),
		Trend:    entities.TrendUp,
	}

	engagementRatio := params.AverageEngagementPercent / 100
	expectedEngagement := roundHalf(float64(expectedReach) * engagementRatio)
	engagement := entities.Interval{
		Lower:    roundHalf(float64(expectedEngagement) * 0.7),
		Expected: expectedEngagement,
		Upper:    roundHalf(float64(expectedEngagement) * 1.5),
		Trend:    entities.TrendStable,
	}

	expectedActionRate := baseActionRate * actionMultiplier(params)
	expectedActions := roundHalf(float64(expectedEngagement) * expectedActionRate)
	clicks := entities.Interval{
		Lower:    roundHalf(float64(expectedActions) * 0.6),
		Expected: expectedActions,
		Upper:    roundHalf(float64(expectedActions) * 1.6),
		Trend:    entities.TrendUp,
	}

	expectedResults := roundHalf(float64(expectedActions) * resultConversionRate)
	conversions := entities.Interval{
		Lower:    roundHalf(float64(expectedResults) * 0.6),
		Expected: expectedResults,
		Upper:    roundHalf(float64(expectedResults) * 1.7),
		Trend:    entities.TrendStable,
	}

	totalRevenue := float64(expectedResults) * customerValue(params.Industry)
	expectedROIPercent := roundHalf((totalRevenue/totalCost - 1) * 100)
	lowerROIPercent := roundHalf(float64(expectedROIPercent) * 0.5)
	if lowerROIPercent < 0 {
		lowerROIPercent = 0
	}
	// When the expected ROI is negative the 1.8x upper bound lands below the
	// clamped lower bound. Observed behavior; keep until product confirms a fix.
	upperROIPercent := roundHalf(float64(expectedROIPercent) * 1.8)

	roiValue := totalRevenue - totalCost
	roi := entities.ROIForecast{
		Percentage: entities.Interval{
			Lower:    lowerROIPercent,
			Expected: expectedROIPercent,
			Upper:    upperROIPercent,
			Trend:    entities.TrendUp,
		},
		Value: entities.Interval{
			Lower:    roundHalf(roiValue * 0.6),
			Expected: roundHalf(roiValue),
			Upper:    roundHalf(roiValue * 1.5),
			Trend:    entities.TrendUp,
		},
	}

	risks, tips := RisksAndTips(params)

	return entities.CampaignForecast{
		Reach:       reach,
		Engagement:  engagement,
		Clicks:      clicks,
		Conversions: conversions,
		ROI:         roi,
		TimeToResults: entities.TimeToResults{
			FirstResultsDays:    2,
			PeakPerformanceDays: int(math.Floor(float64(params.CampaignDurationDays) * 0.6)),
			LongevityDays:       params.CampaignDurationDays + 7,
		},
		Confidence:       ConfidenceScore(params),
		RiskFactors:      risks,
		OptimizationTips: tips,
	}, nil
}

// actionMultiplier composes multiplicatively: a video campaign in the fashion
// industry gets both uplifts.
func actionMultiplier(params entities.CampaignParameters) float64 {
	multiplier := 1.0
	if params.ContentType == entities.ContentTypeVideo {
		multiplier *= videoActionMultiplier
	}
	switch params.Industry {
	case entities.IndustryTechnology:
		multiplier *= technologyActionMultiplier
	case entities.IndustryFashion:
		multiplier *= fashionActionMultiplier
	}
	return multiplier
}

// roundHalf rounds half away from zero, the rule used throughout the funnel.
func roundHalf(value float64) int {
	return int(math.Round(value))
}
