package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

type ClubStorage struct {
	db *gorm.DB
}

func NewClubStorage(db *gorm.DB) *ClubStorage {
	return &ClubStorage{
		db: db,
	}
}

// CreateWithOwnerMembership creates the club and its owner's
// membership in one transaction. A duplicate (owner_id, title) pair is
// a conflict; the check runs inside the transaction.
func (s *ClubStorage) CreateWithOwnerMembership(ctx context.Context, club *entity.Club, ownerProfileID string) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Club{}).
			Where("owner_id = ? AND title = ?", club.OwnerID, club.Title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		if err := tx.Create(&club).Error; err != nil {
			return err
		}
		return tx.Create(&entity.Membership{ProfileID: ownerProfileID, ClubID: club.ID}).Error
	})
	return club, translate(err)
}

func (s *ClubStorage) Get(ctx context.Context, id string) (*entity.Club, error) {
	var club entity.Club
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&club).Error
	return &club, translate(err)
}

func (s *ClubStorage) GetAll(ctx context.Context) ([]entity.Club, error) {
	var clubs []entity.Club
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&clubs).Error
	return clubs, err
}

// Update saves a club. A (owner_id, title) pair colliding with another
// live club is checked inside the transaction and surfaces as a
// conflict.
func (s *ClubStorage) Update(ctx context.Context, club *entity.Club) (*entity.Club, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Club{}).
			Where("owner_id = ? AND title = ? AND id <> ?", club.OwnerID, club.Title, club.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		return tx.Save(&club).Error
	})
	return club, translate(err)
}

// Delete removes a club and cascades its memberships and the messages
// targeting it.
func (s *ClubStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_id = ?", id).Delete(&entity.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", entity.TargetClub, id).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Club{}).Error
	})
}

func (s *ClubStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Club{}).Count(&count).Error
	return count, err
}
