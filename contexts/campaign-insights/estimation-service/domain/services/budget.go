package services

import (
	"math"

	"sherpa/contexts/campaign-insights/estimation-service/domain/entities"
	domainerrors "sherpa/contexts/campaign-insights/estimation-service/domain/errors"
)

// Fixed score until the budget panel shares the forecast confidence model.
const allocationConfidenceScore = 80

const (
	allocationConversionRate = 0.01

	recommendedMinFollowers  = 5_000
	recommendedMinEngagement = 3.0
	recommendedTimeframeDays = 14
)

// AllocateBudget splits a total budget across the three creator tiers
// (micro 40%, mid 40%, premium 20%) and projects aggregate performance.
// Independent of BuildForecast but shares its funnel-conversion philosophy.
func AllocateBudget(totalBudget float64, criteria entities.OfferCriteria) (entities.BudgetOptimization, error) {
	if totalBudget <= 0 {
		return entities.BudgetOptimization{}, domainerrors.ErrInvalidBudget
	}

	micro := allocateTier(totalBudget, microTier)
	mid := allocateTier(totalBudget, midTier)
	premium := allocateTier(totalBudget, premiumTier)

	totalReach := micro.EstimatedReach + mid.EstimatedReach + premium.EstimatedReach
	estimatedEngagement := int(math.Floor(
		float64(micro.EstimatedReach)*microTier.EngagementRate +
			float64(mid.EstimatedReach)*midTier.EngagementRate +
			float64(premium.EstimatedReach)*premiumTier.EngagementRate))
	estimatedConversions := int(math.Floor(float64(estimatedEngagement) * allocationConversionRate))
	estimatedROI := roundHalf(float64(estimatedConversions) * defaultCustomerValue / totalBudget * 100)

	return entities.BudgetOptimization{
		TotalBudget: totalBudget,
		Allocation: entities.BudgetAllocation{
			MicroInfluencers: micro,
			MidTier:          mid,
			Premium:          premium,
		},
		ProjectedMetrics: entities.ProjectedMetrics{
			TotalReach:           totalReach,
			EstimatedEngagement:  estimatedEngagement,
			EstimatedConversions: estimatedConversions,
			EstimatedROI:         estimatedROI,
			ConfidenceScore:      allocationConfidenceScore,
		},
		RecommendedCriteria: recommendCriteria(criteria),
	}, nil
}

func allocateTier(totalBudget float64, tier budgetTier) entities.TierAllocation {
	amount := totalBudget * tier.Share
	count := int(math.Floor(amount / tier.AvgReward))
	return entities.TierAllocation{
		Percentage:     tier.Share * 100,
		Amount:         amount,
		Count:          count,
		AvgReward:      tier.AvgReward,
		EstimatedReach: count * tier.ReachPerCreator,
	}
}

// recommendCriteria raises the offer criteria to sensible floors and always
// suggests stories next to the offer's own content type.
func recommendCriteria(criteria entities.OfferCriteria) entities.RecommendedCriteria {
	minFollowers := criteria.MinFollowers
	if minFollowers < recommendedMinFollowers {
		minFollowers = recommendedMinFollowers
	}
	minEngagement := criteria.MinEngagement
	if minEngagement < recommendedMinEngagement {
		minEngagement = recommendedMinEngagement
	}
	timeframe := criteria.TimeframeDays
	if timeframe < recommendedTimeframeDays {
		timeframe = recommendedTimeframeDays
	}
	return entities.RecommendedCriteria{
		MinFollowers:       minFollowers,
		MinEngagement:      minEngagement,
		ContentTypes:       []entities.ContentType{criteria.ContentType, entities.ContentTypeStory},
		IdealTimeframeDays: timeframe,
	}
}
