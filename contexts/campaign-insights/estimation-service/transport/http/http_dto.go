package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IntervalDTO struct {
	Lower    int    `json:"lower"`
	Expected int    `json:"expected"`
	Upper    int    `json:"upper"`
	Trend    string `json:"trend"`
}

type ROIDTO struct {
	Percentage IntervalDTO `json:"percentage"`
	Value      IntervalDTO `json:"value"`
}

type TimeToResultsDTO struct {
	FirstResultsDays    int `json:"first_results_days"`
	PeakPerformanceDays int `json:"peak_performance_days"`
	LongevityDays       int `json:"longevity_days"`
}

type RiskFactorDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Severity   string `json:"severity"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

type OptimizationTipDTO struct {
	ID         string `json:"id"`
	Tip        string `json:"tip"`
	Impact     string `json:"impact"`
	Difficulty string `json:"difficulty"`
}

type GenerateForecastRequest struct {
	CampaignID               string  `json:"campaign_id"`
	BudgetPerCreator         float64 `json:"budget_per_creator"`
	CreatorCount             int     `json:"creator_count"`
	AverageFollowers         int     `json:"average_followers"`
	AverageEngagementPercent float64 `json:"average_engagement_percent"`
	CampaignDurationDays     int     `json:"campaign_duration_days"`
	ContentType              string  `json:"content_type"`
	Industry                 string  `json:"industry"`
}

type ForecastDTO struct {
	ForecastID       string               `json:"forecast_id"`
	CampaignID       string               `json:"campaign_id"`
	Reach            IntervalDTO          `json:"reach"`
	Engagement       IntervalDTO          `json:"engagement"`
	Clicks           IntervalDTO          `json:"clicks"`
	Conversions      IntervalDTO          `json:"conversions"`
	ROI              ROIDTO               `json:"roi"`
	TimeToResults    TimeToResultsDTO     `json:"time_to_results"`
	Confidence       int                  `json:"confidence"`
	RiskFactors      []RiskFactorDTO      `json:"risk_factors"`
	OptimizationTips []OptimizationTipDTO `json:"optimization_tips"`
	CreatedAt        string               `json:"created_at"`
}

type ForecastResponse struct {
	Status   string      `json:"status"`
	Replayed bool        `json:"replayed,omitempty"`
	Data     ForecastDTO `json:"data"`
}

type ForecastListResponse struct {
	Status string        `json:"status"`
	Data   []ForecastDTO `json:"data"`
}

type BudgetPlanRequest struct {
	TotalBudget   float64 `json:"total_budget"`
	MinFollowers  int     `json:"min_followers"`
	MinEngagement float64 `json:"min_engagement"`
	ContentType   string  `json:"content_type"`
	TimeframeDays int     `json:"timeframe_days"`
}

type TierAllocationDTO struct {
	Percentage     float64 `json:"percentage"`
	Amount         float64 `json:"amount"`
	Count          int     `json:"count"`
	AvgReward      float64 `json:"avg_reward"`
	EstimatedReach int     `json:"estimated_reach"`
}

type BudgetAllocationDTO struct {
	MicroInfluencers TierAllocationDTO `json:"micro_influencers"`
	MidTier          TierAllocationDTO `json:"mid_tier"`
	Premium          TierAllocationDTO `json:"premium"`
}

type ProjectedMetricsDTO struct {
	TotalReach           int `json:"total_reach"`
	EstimatedEngagement  int `json:"estimated_engagement"`
	EstimatedConversions int `json:"estimated_conversions"`
	EstimatedROI         int `json:"estimated_roi"`
	ConfidenceScore      int `json:"confidence_score"`
}

type RecommendedCriteriaDTO struct {
	MinFollowers       int      `json:"min_followers"`
	MinEngagement      float64  `json:"min_engagement"`
	ContentTypes       []string `json:"content_types"`
	IdealTimeframeDays int      `json:"ideal_timeframe_days"`
}

type BudgetPlanDTO struct {
	TotalBudget         float64                `json:"total_budget"`
	Allocation          BudgetAllocationDTO    `json:"allocation"`
	ProjectedMetrics    ProjectedMetricsDTO    `json:"projected_metrics"`
	RecommendedCriteria RecommendedCriteriaDTO `json:"recommended_criteria"`
}

type BudgetPlanResponse struct {
	Status string        `json:"status"`
	Data   BudgetPlanDTO `json:"data"`
}

type MatchQualityDTO struct {
	Label     string `json:"label"`
	TierIndex int    `json:"tier_index"`
}

type MatchQualityResponse struct {
	Status string          `json:"status"`
	Data   MatchQualityDTO `json:"data"`
}

type MatchQualityBatchRequest struct {
	Scores []float64 `json:"scores"`
}

type MatchQualityBatchResponse struct {
	Status string            `json:"status"`
	Data   []MatchQualityDTO `json:"data"`
}
