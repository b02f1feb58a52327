package models

import "time"

// User is a registered author. Users are never deleted through the HTTP surface.
type User struct {
	ID           uint      `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	FirstName    string    `json:"first_name" db:"first_name" gorm:"type:varchar(150);not null;default:''"`
	LastName     string    `json:"last_name" db:"last_name" gorm:"type:varchar(150);not null;default:''"`
	Email        string    `json:"email" db:"email" gorm:"type:varchar(254);not null;default:''"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	// IsStaff is granted when a reserved admin name is registered and is
	// never changed by profile edits.
	IsStaff      bool      `json:"-" db:"is_staff" gorm:"not null;default:false"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined" gorm:"type:timestamptz;not null"`
}
