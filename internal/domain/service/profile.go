package service

import (
	"context"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/dto"
	"github.com/clubmsg/backend/internal/domain/entity"
	"github.com/clubmsg/backend/internal/domain/utils/validator"
)

type ProfileStorage interface {
	Get(ctx context.Context, id string) (*entity.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
}

type presenceStorage interface {
	SetOnline(ctx context.Context, profileID string) error
	SetOffline(ctx context.Context, profileID string) error
	IsOnline(ctx context.Context, profileID string) (bool, error)
}

type ProfileService struct {
	storage  ProfileStorage
	messages MessageStorage
	presence presenceStorage
}

func NewProfileService(storage ProfileStorage, messages MessageStorage, presence presenceStorage) *ProfileService {
	return &ProfileService{
		storage:  storage,
		messages: messages,
		presence: presence,
	}
}

// GetByUserID returns the profile of a user together with the messages
// attached to it, newest first. The live presence flag overrides the
// persisted one when a presence store is wired.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*dto.Profile, error) {
	profile, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.GetByTarget(ctx, entity.TargetProfile, profile.ID)
	if err != nil {
		return nil, err
	}
	if s.presence != nil {
		if online, err := s.presence.IsOnline(ctx, profile.ID); err == nil {
			profile.IsOnline = online
		}
	}
	return &dto.Profile{Profile: *profile, Messages: messages}, nil
}

// ProfilePatch carries the updatable profile fields; nil fields are
// left untouched.
type ProfilePatch struct {
	Avatar *string `json:"avatar"`
	About  *string `json:"about"`
}

// Update patches a profile. Only the profile's own user may do it.
func (s *ProfileService) Update(ctx context.Context, requesterID, userID string, patch ProfilePatch) (*entity.Profile, error) {
	profile, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != requesterID {
		return nil, errorz.ErrForbidden
	}
	if patch.Avatar != nil {
		profile.Avatar = *patch.Avatar
	}
	if patch.About != nil {
		if !validator.ProfileAbout(*patch.About) {
			return nil, errorz.Validation("about", "must be at most 150 characters")
		}
		profile.About = *patch.About
	}
	return s.storage.Update(ctx, profile)
}

// SetOnline marks the requester's profile online in the presence
// store; the flag expires on its own if it is not refreshed.
func (s *ProfileService) SetOnline(ctx context.Context, requesterID string) error {
	profile, err := s.storage.GetByUserID(ctx, requesterID)
	if err != nil {
		return err
	}
	return s.presence.SetOnline(ctx, profile.ID)
}

func (s *ProfileService) SetOffline(ctx context.Context, requesterID string) error {
	profile, err := s.storage.GetByUserID(ctx, requesterID)
	if err != nil {
		return err
	}
	return s.presence.SetOffline(ctx, profile.ID)
}
