package models

import "time"

// RefreshToken is a persisted opaque session credential. It is usable for
// the window [creation, expiry) and is deleted on logout. Several live
// tokens may exist per user at once.
type RefreshToken struct {
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
