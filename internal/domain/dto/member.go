package dto

import "time"

// Member is one row of a club member listing: the membership joined
// with the member's profile.
type Member struct {
	ClubID     string    `json:"club_id"`
	ProfileID  string    `json:"profile_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar"`
	About      string    `json:"about"`
	IsOnline   bool      `json:"is_online"`
	IsVerified bool      `json:"is_verified"`
	JoinedAt   time.Time `json:"joined_at"`
}
