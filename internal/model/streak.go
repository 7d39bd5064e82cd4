package model

// StreakRecord tracks consecutive days of use.
type StreakRecord struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
	// LastDate is the last visit day formatted as YYYY-MM-DD, empty before the first visit.
	LastDate string `json:"lastDate"`
}
