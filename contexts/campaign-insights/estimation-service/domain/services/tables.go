package services

import "sherpa/contexts/campaign-insights/estimation-service/domain/entities"

// Tunable constants for the estimation formulas. Kept together so the numbers
// can be adjusted and tested independently of the formulas that consume them.

const (
	videoViewRatio   = 0.75
	defaultViewRatio = 0.60

	baseActionRate       = 0.015
	resultConversionRate = 0.08

	videoActionMultiplier      = 1.2
	technologyActionMultiplier = 1.3
	fashionActionMultiplier    = 1.15

	defaultCustomerValue = 45.0
)

// Average customer value per completed result, by industry.
var customerValueByIndustry = map[entities.Industry]float64{
	entities.IndustryRetail:     45,
	entities.IndustryRestaurant: 28,
	entities.IndustryFashion:    65,
	entities.IndustryBeauty:     55,
	entities.IndustryTechnology: 120,
}

func customerValue(industry entities.Industry) float64 {
	if value, ok := customerValueByIndustry[industry]; ok {
		return value
	}
	return defaultCustomerValue
}

// budgetTier describes one creator-size bracket of the 40/40/20 split.
type budgetTier struct {
	Share           float64
	AvgReward       float64
	ReachPerCreator int
	EngagementRate  float64
}

var (
	microTier   = budgetTier{Share: 0.40, AvgReward: 150, ReachPerCreator: 8_000, EngagementRate: 0.05}
	midTier     = budgetTier{Share: 0.40, AvgReward: 350, ReachPerCreator: 30_000, EngagementRate: 0.03}
	premiumTier = budgetTier{Share: 0.20, AvgReward: 1_000, ReachPerCreator: 100_000, EngagementRate: 0.01}
)
