package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultClubAbout is the about text a club starts with.
const DefaultClubAbout = "Let's talk business!"

const (
	MaxClubTitleLength = 50
	MaxClubAboutLength = 200
)

// Club is a group chat owned by a single user. The (owner_id, title)
// pair is unique. AllowedBodyTypes restricts which message body types
// may be posted to the club; empty means all types are allowed.
type Club struct {
	ID               string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID          string         `gorm:"not null;type:uuid;uniqueIndex:idx_club_owner_title,where:deleted_at IS NULL" json:"owner_id"`
	Owner            User           `json:"-"`
	Title            string         `gorm:"not null;uniqueIndex:idx_club_owner_title" json:"title"`
	About            string         `json:"about"`
	AllowedBodyTypes pq.StringArray `gorm:"type:text[]" json:"allowed_body_types"`
	InviteCodeID     string         `json:"-"`
	InviteQR         []byte         `gorm:"type:bytea" json:"-"`
}

// AllowsBodyType reports whether messages of the given body type may be
// posted to the club.
func (c *Club) AllowsBodyType(bt BodyType) bool {
	if len(c.AllowedBodyTypes) == 0 {
		return true
	}
	for _, allowed := range c.AllowedBodyTypes {
		if allowed == string(bt) {
			return true
		}
	}
	return false
}
