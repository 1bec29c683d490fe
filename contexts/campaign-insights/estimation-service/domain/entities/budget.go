package entities

// OfferCriteria carries the existing offer settings a budget plan starts from.
type OfferCriteria struct {
	MinFollowers  int
	MinEngagement float64
	ContentType   ContentType
	TimeframeDays int
}

type TierAllocation struct {
	Percentage     float64
	Amount         float64
	Count          int
	AvgReward      float64
	EstimatedReach int
}

type BudgetAllocation struct {
	MicroInfluencers TierAllocation
	MidTier          TierAllocation
	Premium          TierAllocation
}

type ProjectedMetrics struct {
	TotalReach           int
	EstimatedEngagement  int
	EstimatedConversions int
	EstimatedROI         int
	ConfidenceScore      int
}

type RecommendedCriteria struct {
	MinFollowers       int
	MinEngagement      float64
	ContentTypes       []ContentType
	IdealTimeframeDays int
}

type BudgetOptimization struct {
	TotalBudget         float64
	Allocation          BudgetAllocation
	ProjectedMetrics    ProjectedMetrics
	RecommendedCriteria RecommendedCriteria
}
