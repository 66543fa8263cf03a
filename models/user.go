// File: /models/user.go
package models

import (
	"time"
)

// User is a registered account. Registration is optional; anonymous visitors
// can still respond to public events.
type User struct {
	ID        string      `json:"id" gorm:"primaryKey;size:191"`
	Name      string      `json:"name" gorm:"not null;size:255"`
	Email     string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string      `json:"password,omitempty" gorm:"not null;size:255"`
	Events    StringSlice `json:"events" gorm:"type:json"` // event ids the user has participated in
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
