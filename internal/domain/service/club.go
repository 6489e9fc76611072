package service

import (
	"context"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/dto"
	"github.com/clubmsg/backend/internal/domain/entity"
	"github.com/clubmsg/backend/internal/domain/utils/validator"
)

type ClubStorage interface {
	// CreateWithOwnerMembership creates the club and the owner's
	// membership in one transaction; a club must never exist without
	// its owner being a member.
	CreateWithOwnerMembership(ctx context.Context, club *entity.Club, ownerProfileID string) (*entity.Club, error)
	Get(ctx context.Context, id string) (*entity.Club, error)
	GetAll(ctx context.Context) ([]entity.Club, error)
	Update(ctx context.Context, club *entity.Club) (*entity.Club, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ClubService struct {
	storage           ClubStorage
	membershipStorage MembershipStorage
	profileStorage    ProfileStorage
	messageStorage    MessageStorage
}

func NewClubService(storage ClubStorage, membershipStorage MembershipStorage, profileStorage ProfileStorage, messageStorage MessageStorage) *ClubService {
	return &ClubService{
		storage:           storage,
		membershipStorage: membershipStorage,
		profileStorage:    profileStorage,
		messageStorage:    messageStorage,
	}
}

// Create makes a club owned by the requester. The owner's membership
// is created atomically with the club; a duplicate (owner, title)
// pair fails with a conflict.
func (s *ClubService) Create(ctx context.Context, ownerID, title, about string, allowedBodyTypes []string) (*entity.Club, error) {
	if !validator.ClubTitle(title) {
		return nil, errorz.Validation("title", "must be between 1 and 50 characters")
	}
	if about == "" {
		about = entity.DefaultClubAbout
	}
	if !validator.ClubAbout(about) {
		return nil, errorz.Validation("about", "must be at most 200 characters")
	}
	for _, bt := range allowedBodyTypes {
		if !entity.BodyType(bt).Valid() {
			return nil, errorz.Validation("allowed_body_types", "unknown body type", entity.BodyTypes()...)
		}
	}

	ownerProfile, err := s.profileStorage.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	club := &entity.Club{
		OwnerID:          ownerID,
		Title:            title,
		About:            about,
		AllowedBodyTypes: allowedBodyTypes,
	}
	return s.storage.CreateWithOwnerMembership(ctx, club, ownerProfile.ID)
}

// GetAll returns every club enriched with its member profiles and its
// messages, newest first.
func (s *ClubService) GetAll(ctx context.Context) ([]dto.Club, error) {
	clubs, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	enriched := make([]dto.Club, 0, len(clubs))
	for i := range clubs {
		club, err := s.enrich(ctx, &clubs[i])
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, *club)
	}
	return enriched, nil
}

func (s *ClubService) Get(ctx context.Context, clubID string) (*dto.Club, error) {
	club, err := s.storage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, club)
}

// ClubPatch carries the updatable club fields; nil fields are left
// untouched.
type ClubPatch struct {
	Title            *string   `json:"title"`
	About            *string   `json:"about"`
	AllowedBodyTypes *[]string `json:"allowed_body_types"`
}

// Update patches a club. Owner only.
func (s *ClubService) Update(ctx context.Context, requesterID, clubID string, patch ClubPatch) (*entity.Club, error) {
	club, err := s.storage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.OwnerID != requesterID {
		return nil, errorz.ErrForbidden
	}
	if patch.Title != nil {
		if !validator.ClubTitle(*patch.Title) {
			return nil, errorz.Validation("title", "must be between 1 and 50 characters")
		}
		club.Title = *patch.Title
	}
	if patch.About != nil {
		if !validator.ClubAbout(*patch.About) {
			return nil, errorz.Validation("about", "must be at most 200 characters")
		}
		club.About = *patch.About
	}
	if patch.AllowedBodyTypes != nil {
		for _, bt := range *patch.AllowedBodyTypes {
			if !entity.BodyType(bt).Valid() {
				return nil, errorz.Validation("allowed_body_types", "unknown body type", entity.BodyTypes()...)
			}
		}
		club.AllowedBodyTypes = *patch.AllowedBodyTypes
	}
	return s.storage.Update(ctx, club)
}

// Delete removes a club. Owner only; the storage cascades memberships
// and the messages targeting the club.
func (s *ClubService) Delete(ctx context.Context, requesterID, clubID string) error {
	club, err := s.storage.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if club.OwnerID != requesterID {
		return errorz.ErrForbidden
	}
	return s.storage.Delete(ctx, clubID)
}

func (s *ClubService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

// enrich resolves members with an explicit two-step join: memberships
// by club, then profiles by the collected ids.
func (s *ClubService) enrich(ctx context.Context, club *entity.Club) (*dto.Club, error) {
	memberships, err := s.membershipStorage.GetByClubID(ctx, club.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ProfileID)
	}
	members, err := s.profileStorage.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	messages, err := s.messageStorage.GetByTarget(ctx, entity.TargetClub, club.ID)
	if err != nil {
		return nil, err
	}
	return &dto.Club{Club: *club, Members: members, Messages: messages}, nil
}
