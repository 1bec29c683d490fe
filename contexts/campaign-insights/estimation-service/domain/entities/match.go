package entities

// MatchQuality is derived per creator/offer pair and never stored.
// TierIndex 0 is the best bracket, 3 the weakest.
type MatchQuality struct {
	Label     string
	TierIndex int
}
