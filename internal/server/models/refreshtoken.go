package models

import "time"

// RefreshToken is the server-side record of the current refresh token of a
// subject. There is at most one row per subject.
type RefreshToken struct {
	Subject   string
	Value     string
	ExpiresAt time.Time
}
