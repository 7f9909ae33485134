package models

import (
	"strings"
	"time"
)

// User is an account identified by its email address
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string     `gorm:"size:255;not null;default:''" json:"name"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"-"`
	IsStaff      bool       `gorm:"not null;default:false" json:"-"`
	IsSuperuser  bool       `gorm:"not null;default:false" json:"-"`
	LastLogin    *time.Time `json:"-"`
}

// NormalizeEmail lower-cases the domain part of an address and keeps the local part as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
