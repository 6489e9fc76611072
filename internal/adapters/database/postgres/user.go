package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// CreateWithProfile creates the user and its profile in one
// transaction. Username and email uniqueness are checked inside the
// transaction and surface as conflicts; an existing profile for the
// user blocks a second creation.
func (s *UserStorage) CreateWithProfile(ctx context.Context, user *entity.User, profile *entity.Profile) (*entity.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		if err := tx.Model(&entity.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	return user, translate(err)
}

func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, translate(err)
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, translate(err)
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, translate(err)
}

func (s *UserStorage) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// Update saves a user. A username or email colliding with another live
// user is checked inside the transaction and surfaces as a conflict.
func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.User{}).
			Where("(username = ? OR email = ?) AND id <> ?", user.Username, user.Email, user.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorz.ErrConflict
		}
		return tx.Save(&user).Error
	})
	return user, translate(err)
}

// Delete removes a user and cascades: the profile, its memberships,
// the messages the user sent and the messages attached to the profile.
func (s *UserStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile entity.Profile
		err := tx.Where("user_id = ?", id).First(&profile).Error
		if err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&entity.Membership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_type = ? AND target_id = ?", entity.TargetProfile, profile.ID).Delete(&entity.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Where("sender_id = ?", id).Delete(&entity.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.User{}).Error
	})
}

func (s *UserStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
