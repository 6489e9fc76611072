package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clubmsg/backend/internal/domain/entity"
)

type MessageStorage struct {
	db *gorm.DB
}

func NewMessageStorage(db *gorm.DB) *MessageStorage {
	return &MessageStorage{
		db: db,
	}
}

func (s *MessageStorage) Create(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	err := s.db.WithContext(ctx).Create(&message).Error
	return message, translate(err)
}

func (s *MessageStorage) Get(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	err := s.db.WithContext(ctx).Preload("Sender").Where("id = ?", id).First(&message).Error
	return &message, translate(err)
}

func (s *MessageStorage) Update(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	err := s.db.WithContext(ctx).Save(&message).Error
	return message, translate(err)
}

func (s *MessageStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Message{}).Error
}

// GetByTarget returns the messages attached to one (target_type,
// target_id) pair, newest first. Newest-first is the ordering contract
// for every listing in the system.
func (s *MessageStorage) GetByTarget(ctx context.Context, targetType entity.TargetType, targetID string) ([]entity.Message, error) {
	var messages []entity.Message
	err := s.db.WithContext(ctx).Preload("Sender").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}
