package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Emails   []Email   `gorm:"foreignKey:UserID" json:"-"`
	Sessions []Session `gorm:"foreignKey:UserID" json:"-"`
}
