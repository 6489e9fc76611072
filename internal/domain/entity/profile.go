package entity

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAbout is the about text a fresh profile starts with.
const DefaultAbout = "Here I am using the messaging app!"

// MaxAboutLength limits the profile about text, in runes.
const MaxAboutLength = 150

// Profile extends a User with presentation fields. Exactly one profile
// exists per user; it is created in the same transaction as the user.
type Profile struct {
	ID         string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     string         `gorm:"not null;type:uuid;uniqueIndex:idx_profiles_user,where:deleted_at IS NULL" json:"user_id"`
	User       User           `json:"user"`
	Avatar     string         `gorm:"not null" json:"avatar"`
	About      string         `gorm:"not null" json:"about"`
	IsOnline   bool           `json:"is_online"`
	IsVerified bool           `json:"is_verified"`
}
