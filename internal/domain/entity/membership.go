package entity

import (
	"time"

	"gorm.io/gorm"
)

// Membership asserts that a profile belongs to a club. The
// (profile_id, club_id) pair is unique; a club owner's membership is
// created in the same transaction as the club itself.
type Membership struct {
	ID        string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ProfileID string         `gorm:"not null;type:uuid;uniqueIndex:idx_membership_profile_club,where:deleted_at IS NULL" json:"profile_id"`
	Profile   Profile        `json:"-"`
	ClubID    string         `gorm:"not null;type:uuid;uniqueIndex:idx_membership_profile_club" json:"club_id"`
	Club      Club           `json:"-"`
}
