package services

import "sherpa/contexts/campaign-insights/estimation-service/domain/entities"

// RisksAndTips derives the qualitative annotations shown next to a forecast.
// Always three risks and three tips; only the severities vary with input.
// Tip text is currently the same for every content type and industry.
func RisksAndTips(params entities.CampaignParameters) ([]entities.RiskFactor, []entities.OptimizationTip) {
	seasonalSeverity := entities.RiskSeverityLow
	if params.Industry == entities.IndustryFashion {
		seasonalSeverity = entities.RiskSeverityMedium
	}

	varianceSeverity := entities.RiskSeverityMedium
	if params.CreatorCount < 5 {
		varianceSeverity = entities.RiskSeverityHigh
	}

	risks := []entities.RiskFactor{
		{
			RiskID:     "seasonal-variation",
			Name:       "Seasonal variation",
			Severity:   seasonalSeverity,
			Impact:     "Engagement can swing with seasonal demand cycles",
			Mitigation: "Schedule key posts around the seasonal peaks of the industry",
		},
		{
			RiskID:     "algorithm-changes",
			Name:       "Algorithm changes",
			Severity:   entities.RiskSeverityMedium,
			Impact:     "Platform feed changes can cut organic distribution mid-campaign",
			Mitigation: "Spread content across formats so a single feed change hurts less",
		},
		{
			RiskID:     "influencer-performance-variance",
			Name:       "Influencer performance variance",
			Severity:   varianceSeverity,
			Impact:     "Individual creators can deliver well above or below their averages",
			Mitigation: "Work with more creators to average out individual variance",
		},
	}

	tips := []entities.OptimizationTip{
		{
			TipID:      "use-stories",
			Tip:        "Add story content alongside feed posts for an engagement uplift",
			Impact:     entities.TipImpactMedium,
			Difficulty: entities.TipDifficultyEasy,
		},
		{
			TipID:      "time-limited-offer",
			Tip:        "Attach a time-limited offer or discount code to drive action",
			Impact:     entities.TipImpactLarge,
			Difficulty: entities.TipDifficultyMedium,
		},
		{
			TipID:      "staggered-posting",
			Tip:        "Stagger creator posts across the campaign window instead of a single burst",
			Impact:     entities.TipImpactMedium,
			Difficulty: entities.TipDifficultyEasy,
		},
	}

	return risks, tips
}
