// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account plus its streak bookkeeping.
//
// The username is the primary key — the app has no notion of opaque user
// IDs, and every table keys on the name directly. The counters live on the
// user row (not in a separate table) because they are a single-row lookup
// mutated only by the streak update.
//
// WHY string DATES?
// LastActive and LastEmailDate hold calendar dates as "YYYY-MM-DD" strings,
// not time.Time. The streak and reminder gates compare calendar days, never
// instants: "did anything happen today?" is a string equality check, with no
// timezone or sub-day precision to get wrong. An empty string means "never".
type User struct {
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // never serialized
	Streak        int       `json:"streak"`
	TotalDays     int       `json:"totalDays"`
	LastActive    string    `json:"lastActive"`    // "YYYY-MM-DD" or ""
	LastEmailDate string    `json:"lastEmailDate"` // "YYYY-MM-DD" or ""
	CreatedAt     time.Time `json:"createdAt"`
}
