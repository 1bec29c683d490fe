package services

import "sherpa/contexts/campaign-insights/estimation-service/domain/entities"

// matchTiers are evaluated top-down; the first threshold at or below the
// score wins.
var matchTiers = []struct {
	Threshold float64
	Label     string
}{
	{Threshold: 85, Label: "Best Match"},
	{Threshold: 70, Label: "Great Match"},
	{Threshold: 50, Label: "Good Match"},
}

// ClassifyMatch buckets an externally computed 0-100 compatibility score into
// a presentation tier. Scores outside [0, 100] are not clamped; they classify
// through the same thresholds.
func ClassifyMatch(matchScore float64) entities.MatchQuality {
	for index, tier := range matchTiers {
		if matchScore >= tier.Threshold {
			return entities.MatchQuality{Label: tier.Label, TierIndex: index}
		}
	}
	return entities.MatchQuality{Label: "Potential Match", TierIndex: len(matchTiers)}
}
