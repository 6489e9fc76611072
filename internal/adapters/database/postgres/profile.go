package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/entity"
)

type ProfileStorage struct {
	db *gorm.DB
}

func NewProfileStorage(db *gorm.DB) *ProfileStorage {
	return &ProfileStorage{
		db: db,
	}
}

func (s *ProfileStorage) Get(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&profile).Error
	return &profile, translate(err)
}

func (s *ProfileStorage) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profile entity.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	return &profile, translate(err)
}

func (s *ProfileStorage) GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []entity.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&profiles).Error
	return profiles, err
}

func (s *ProfileStorage) Update(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	err := s.db.WithContext(ctx).Save(&profile).Error
	return profile, translate(err)
}
