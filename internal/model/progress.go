package model

import "time"

// ProgressEntry is one quiz attempt: who, which career goal, what score,
// on what calendar day.
//
// Entries are append-only and immutable — there is no update or delete
// path anywhere in the app. CreatedAt orders entries within a day; Date is
// the wall-clock calendar date at insertion ("YYYY-MM-DD"), the value the
// dashboard and streak logic care about.
type ProgressEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Goal      string    `json:"goal"`
	Score     int       `json:"score"` // 0–100, truncated percentage
	Date      string    `json:"date"`  // "YYYY-MM-DD"
	CreatedAt time.Time `json:"createdAt"`
}
