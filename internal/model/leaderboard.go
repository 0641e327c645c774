package model

// LeaderboardEntry is one row of the ranked user table.
//
// Rank is 1-based position after sorting by streak descending. Medal is a
// fixed label for the top three ranks and empty for everyone else.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	Streak    int    `json:"streak"`
	TotalDays int    `json:"totalDays"`
	Medal     string `json:"medal,omitempty"`
}
