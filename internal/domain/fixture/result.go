package fixture

// ExternalResult is a finished match reported by an independent provider.
// It lives for a single reconciliation run.
type ExternalResult struct {
	Date        string
	HomeNames   []string
	AwayNames   []string
	DisplayHome string
	DisplayAway string
	HomeScore   *int
	AwayScore   *int
}

// Scores returns both scores when they are present and non-negative.
func (r ExternalResult) Scores() (int, int, bool) {
	if r.HomeScore == nil || r.AwayScore == nil {
		return 0, 0, false
	}
	if *r.HomeScore < 0 || *r.AwayScore < 0 {
		return 0, 0, false
	}
	return *r.HomeScore, *r.AwayScore, true
}
