package models

import "time"

// RevokedToken is an entry of the invalidation set: a token identifier that
// was logged out before its natural expiry.
type RevokedToken struct {
	JTI           string
	InvalidatedAt time.Time
	ExpiresAt     time.Time
}
