package dto

import "github.com/clubmsg/backend/internal/domain/entity"

// Profile is a profile enriched with the messages attached to it,
// newest first.
type Profile struct {
	entity.Profile
	Messages []entity.Message `json:"messages"`
}
