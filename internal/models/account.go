package models

import "time"

// Account represents a registered user of the catalog.
type Account struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never plaintext
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
