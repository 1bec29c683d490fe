package entities

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Interval is a three-point estimate with a qualitative trend tag.
// Lower <= Expected <= Upper holds for every funnel quantity; the ROI
// percentage interval is the documented exception (see BuildForecast).
type Interval struct {
	Lower    int
	Expected int
	Upper    int
	Trend    Trend
}

type ROIForecast struct {
	Percentage Interval
	Value      Interval
}

// TimeToResults marks the expected campaign milestones in days.
type TimeToResults struct {
	FirstResultsDays    int
	PeakPerformanceDays int
	LongevityDays       int
}

type RiskSeverity string

const (
	RiskSeverityLow    RiskSeverity = "low"
	RiskSeverityMedium RiskSeverity = "medium"
	RiskSeverityHigh   RiskSeverity = "high"
)

type RiskFactor struct {
	RiskID     string
	Name       string
	Severity   RiskSeverity
	Impact     string
	Mitigation string
}

type TipImpact string
type TipDifficulty string

const (
	TipImpactSmall  TipImpact = "small"
	TipImpactMedium TipImpact = "medium"
	TipImpactLarge  TipImpact = "large"

	TipDifficultyEasy   TipDifficulty = "easy"
	TipDifficultyMedium TipDifficulty = "medium"
	TipDifficultyHard   TipDifficulty = "hard"
)

type OptimizationTip struct {
	TipID      string
	Tip        string
	Impact     TipImpact
	Difficulty TipDifficulty
}

// CampaignForecast is a value object: built fresh per estimation request,
// never mutated. Clicks are funnel actions, conversions are end results.
type CampaignForecast struct {
	Reach            Interval
	Engagement       Interval
	Clicks           Interval
	Conversions      Interval
	ROI              ROIForecast
	TimeToResults    TimeToResults
	Confidence       int
	RiskFactors      []RiskFactor
	OptimizationTips []OptimizationTip
}
