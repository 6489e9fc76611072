package dto

import "github.com/clubmsg/backend/internal/domain/entity"

// Club is a club enriched with its member profiles and the messages
// attached to it, newest first. Members are derived from memberships,
// not stored on the club row.
type Club struct {
	entity.Club
	Members  []entity.Profile `json:"members"`
	Messages []entity.Message `json:"messages"`
}
