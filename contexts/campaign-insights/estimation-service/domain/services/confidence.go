package services

import "sherpa/contexts/campaign-insights/estimation-service/domain/entities"

const (
	baseConfidence = 75
	minConfidence  = 60
	maxConfidence  = 95
)

// ConfidenceScore maps campaign parameters to a single confidence percentage
// in [60, 95]. The creator-count and engagement bonuses are cumulative: a
// count of 12 earns both the >=5 and the >=10 step.
func ConfidenceScore(params entities.CampaignParameters) int {
	score := baseConfidence

	if params.CreatorCount >= 5 {
		score += 5
	}
	if params.CreatorCount >= 10 {
		score += 3
	}

	if params.AverageEngagementPercent >= 4 {
		score += 3
	}
	if params.AverageEngagementPercent >= 6 {
		score += 2
	}

	if params.CampaignDurationDays > 21 {
		score -= 3
	}

	switch params.Industry {
	case entities.IndustryTechnology:
		score += 2
	case entities.IndustryFashion:
		score += 4
	}

	if score < minConfidence {
		return minConfidence
	}
	if score > maxConfidence {
		return maxConfidence
	}
	return score
}
