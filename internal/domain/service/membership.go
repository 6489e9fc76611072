package service

import (
	"context"
	"errors"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/dto"
	"github.com/clubmsg/backend/internal/domain/entity"
)

type MembershipStorage interface {
	Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	Get(ctx context.Context, clubID, profileID string) (*entity.Membership, error)
	Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	Delete(ctx context.Context, clubID, profileID string) error
	GetByClubID(ctx context.Context, clubID string) ([]entity.Membership, error)
	GetByProfileID(ctx context.Context, profileID string) ([]entity.Membership, error)
}

// membershipClubStorage is the slice of ClubStorage the membership
// service needs.
type membershipClubStorage interface {
	Get(ctx context.Context, id string) (*entity.Club, error)
}

type MembershipService struct {
	storage        MembershipStorage
	clubStorage    membershipClubStorage
	profileStorage ProfileStorage
}

func NewMembershipService(storage MembershipStorage, clubStorage membershipClubStorage, profileStorage ProfileStorage) *MembershipService {
	return &MembershipService{
		storage:        storage,
		clubStorage:    clubStorage,
		profileStorage: profileStorage,
	}
}

// Add joins a profile to a club. Only the club owner may add members;
// adding an existing member fails with a conflict.
func (s *MembershipService) Add(ctx context.Context, requesterID, clubID, profileID string) (*entity.Membership, error) {
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.OwnerID != requesterID {
		return nil, errorz.ErrForbidden
	}
	if _, err := s.profileStorage.Get(ctx, profileID); err != nil {
		return nil, err
	}
	if _, err := s.storage.Get(ctx, clubID, profileID); err == nil {
		return nil, errorz.ErrConflict
	} else if !errors.Is(err, errorz.ErrNotFound) {
		return nil, err
	}
	return s.storage.Create(ctx, &entity.Membership{ProfileID: profileID, ClubID: clubID})
}

// Remove takes a profile out of a club. The owner may remove anyone
// except themself (a club always keeps its owner as a member); a
// member may leave on their own.
func (s *MembershipService) Remove(ctx context.Context, requesterID, clubID, profileID string) error {
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return err
	}
	target, err := s.profileStorage.Get(ctx, profileID)
	if err != nil {
		return err
	}
	if target.UserID == club.OwnerID {
		return errorz.ErrForbidden
	}
	if requesterID != club.OwnerID && requesterID != target.UserID {
		return errorz.ErrForbidden
	}
	if _, err := s.storage.Get(ctx, clubID, profileID); err != nil {
		return err
	}
	return s.storage.Delete(ctx, clubID, profileID)
}

// MembershipPatch carries the updatable membership fields; nil fields
// are left untouched.
type MembershipPatch struct {
	ProfileID *string `json:"profile_id"`
}

// Update patches a membership, reassigning the seat to another
// profile. Owner only; the owner's own membership is never
// reassignable, and moving onto an existing member is a conflict.
func (s *MembershipService) Update(ctx context.Context, requesterID, clubID, profileID string, patch MembershipPatch) (*entity.Membership, error) {
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club.OwnerID != requesterID {
		return nil, errorz.ErrForbidden
	}
	target, err := s.profileStorage.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if target.UserID == club.OwnerID {
		return nil, errorz.ErrForbidden
	}
	membership, err := s.storage.Get(ctx, clubID, profileID)
	if err != nil {
		return nil, err
	}
	if patch.ProfileID != nil && *patch.ProfileID != profileID {
		replacement, err := s.profileStorage.Get(ctx, *patch.ProfileID)
		if err != nil {
			return nil, err
		}
		if _, err := s.storage.Get(ctx, clubID, replacement.ID); err == nil {
			return nil, errorz.ErrConflict
		} else if !errors.Is(err, errorz.ErrNotFound) {
			return nil, err
		}
		membership.ProfileID = replacement.ID
	}
	return s.storage.Update(ctx, membership)
}

// GetMembers lists a club's members as an explicit two-step join:
// memberships filtered by club, then profiles resolved by the
// collected ids.
func (s *MembershipService) GetMembers(ctx context.Context, clubID string) ([]dto.Member, error) {
	if _, err := s.clubStorage.Get(ctx, clubID); err != nil {
		return nil, err
	}
	memberships, err := s.storage.GetByClubID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ProfileID)
	}
	profiles, err := s.profileStorage.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	members := make([]dto.Member, 0, len(memberships))
	for _, m := range memberships {
		p, ok := byID[m.ProfileID]
		if !ok {
			continue
		}
		members = append(members, dto.Member{
			ClubID:     m.ClubID,
			ProfileID:  p.ID,
			UserID:     p.UserID,
			Username:   p.User.Username,
			Avatar:     p.Avatar,
			About:      p.About,
			IsOnline:   p.IsOnline,
			IsVerified: p.IsVerified,
			JoinedAt:   m.CreatedAt,
		})
	}
	return members, nil
}

// GetByProfileID lists the clubs a profile belongs to.
func (s *MembershipService) GetByProfileID(ctx context.Context, profileID string) ([]entity.Membership, error) {
	return s.storage.GetByProfileID(ctx, profileID)
}

// IsMember reports whether a profile belongs to a club.
func (s *MembershipService) IsMember(ctx context.Context, clubID, profileID string) (bool, error) {
	if _, err := s.storage.Get(ctx, clubID, profileID); err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
