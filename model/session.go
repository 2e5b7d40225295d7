package model

import "time"

// Session is a server-side login session. The opaque token travels in an
// HttpOnly cookie and nowhere else.
type Session struct {
	Token     string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time
}
