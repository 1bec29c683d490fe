package entities

type ContentType string
type Industry string

const (
	ContentTypeImage    ContentType = "image"
	ContentTypeVideo    ContentType = "video"
	ContentTypeStory    ContentType = "story"
	ContentTypeMultiple ContentType = "multiple"

	IndustryRetail     Industry = "retail"
	IndustryRestaurant Industry = "restaurant"
	IndustryFashion    Industry = "fashion"
	IndustryBeauty     Industry = "beauty"
	IndustryTechnology Industry = "technology"
)

// CampaignParameters is the immutable input of one estimation request.
// AverageEngagementPercent is in percentage points (4 means 4%), not a fraction.
type CampaignParameters struct {
	BudgetPerCreator         float64
	CreatorCount             int
	AverageFollowers         int
	AverageEngagementPercent float64
	CampaignDurationDays     int
	ContentType              ContentType
	Industry                 Industry
}

func IsSupportedContentType(value ContentType) bool {
	switch value {
	case ContentTypeImage, ContentTypeVideo, ContentTypeStory, ContentTypeMultiple:
		return true
	default:
		return false
	}
}

// IsValid checks the stated preconditions. Unknown industries are allowed and
// fall back to the default customer value; content type must be one of the
// supported kinds because it drives the view ratio.
func (p CampaignParameters) IsValid() bool {
	return p.BudgetPerCreator >= 0 &&
		p.CreatorCount >= 1 &&
		p.AverageFollowers >= 0 &&
		p.AverageEngagementPercent >= 0 &&
		p.AverageEngagementPercent <= 100 &&
		p.CampaignDurationDays >= 1 &&
		IsSupportedContentType(p.ContentType)
}

// TotalCost is the whole campaign spend. A zero total cost makes the ROI
// percentage undefined and is rejected before any forecast math runs.
func (p CampaignParameters) TotalCost() float64 {
	return p.BudgetPerCreator * float64(p.CreatorCount)
}
