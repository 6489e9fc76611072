package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

// Create inserts a membership. Club and profile existence and the
// duplicate check run inside the transaction.
func (s *MembershipStorage) Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Club{}).Where("id = ?", membership.ClubID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errorz.ErrNotFound
		}
		if err := tx.Model(&entity.Profile{}).Where("id = ?", membership.ProfileID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errorz.ErrNotFound
		}
		if err := tx.Model(&entity.Membership{}).
			Where("club_id = ? AND profile_id = ?", membership.ClubID, membership.ProfileID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		return tx.Create(&membership).Error
	})
	return membership, translate(err)
}

func (s *MembershipStorage) Get(ctx context.Context, clubID, profileID string) (*entity.Membership, error) {
	var membership entity.Membership
	err := s.db.WithContext(ctx).Where("club_id = ? AND profile_id = ?", clubID, profileID).First(&membership).Error
	return &membership, translate(err)
}

func (s *MembershipStorage) Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := s.db.WithContext(ctx).Save(&membership).Error
	return membership, translate(err)
}

func (s *MembershipStorage) Delete(ctx context.Context, clubID, profileID string) error {
	return s.db.WithContext(ctx).Where("club_id = ? AND profile_id = ?", clubID, profileID).Delete(&entity.Membership{}).Error
}

func (s *MembershipStorage) GetByClubID(ctx context.Context, clubID string) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Order("created_at DESC").Find(&memberships).Error
	return memberships, err
}

func (s *MembershipStorage) GetByProfileID(ctx context.Context, profileID string) ([]entity.Membership, error) {
	var memberships []entity.Membership
	err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("created_at DESC").Find(&memberships).Error
	return memberships, err
}
