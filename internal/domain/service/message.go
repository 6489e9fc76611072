package service

import (
	"context"
	"errors"

	"github.com/clubmsg/backend/internal/domain/common/errorz"
	"github.com/clubmsg/backend/internal/domain/entity"
)

type MessageStorage interface {
	Create(ctx context.Context, message *entity.Message) (*entity.Message, error)
	Get(ctx context.Context, id string) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) (*entity.Message, error)
	Delete(ctx context.Context, id string) error
	// GetByTarget returns the messages attached to one target, newest
	// first.
	GetByTarget(ctx context.Context, targetType entity.TargetType, targetID string) ([]entity.Message, error)
}

type MessageService struct {
	storage           MessageStorage
	clubStorage       membershipClubStorage
	profileStorage    ProfileStorage
	membershipStorage MembershipStorage
}

func NewMessageService(storage MessageStorage, clubStorage membershipClubStorage, profileStorage ProfileStorage, membershipStorage MembershipStorage) *MessageService {
	return &MessageService{
		storage:           storage,
		clubStorage:       clubStorage,
		profileStorage:    profileStorage,
		membershipStorage: membershipStorage,
	}
}

func validateMessageTypes(bodyType, msgType string) (entity.BodyType, entity.MsgType, error) {
	if bodyType == "" {
		bodyType = string(entity.BodyTypeText)
	}
	if msgType == "" {
		msgType = string(entity.MsgTypeDefault)
	}
	bt := entity.BodyType(bodyType)
	if !bt.Valid() {
		return "", "", errorz.Validation("body_type", "unknown body type", entity.BodyTypes()...)
	}
	mt := entity.MsgType(msgType)
	if !mt.Valid() {
		return "", "", errorz.Validation("msg_type", "unknown message type", entity.MsgTypes()...)
	}
	return bt, mt, nil
}

// SendToProfile posts a message onto a profile's wall. The target is
// stored as the tagged reference (profile, profileID).
func (s *MessageService) SendToProfile(ctx context.Context, senderID, profileID string, body *string, bodyType, msgType string) (*entity.Message, error) {
	bt, mt, err := validateMessageTypes(bodyType, msgType)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileStorage.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.storage.Create(ctx, &entity.Message{
		SenderID:   senderID,
		Body:       body,
		BodyType:   bt,
		MsgType:    mt,
		TargetType: entity.TargetProfile,
		TargetID:   profile.ID,
	})
}

// SendToClub posts a message into a club. The sender's profile must be
// a member, and the club may restrict allowed body types.
func (s *MessageService) SendToClub(ctx context.Context, senderID, clubID string, body *string, bodyType, msgType string) (*entity.Message, error) {
	bt, mt, err := validateMessageTypes(bodyType, msgType)
	if err != nil {
		return nil, err
	}
	club, err := s.clubStorage.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.AllowsBodyType(bt) {
		return nil, errorz.Validation("body_type", "not allowed in this club", club.AllowedBodyTypes...)
	}
	senderProfile, err := s.profileStorage.GetByUserID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.membershipStorage.Get(ctx, club.ID, senderProfile.ID); err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return nil, errorz.ErrForbidden
		}
		return nil, err
	}
	return s.storage.Create(ctx, &entity.Message{
		SenderID:   senderID,
		Body:       body,
		BodyType:   bt,
		MsgType:    mt,
		TargetType: entity.TargetClub,
		TargetID:   club.ID,
	})
}

// GetByTarget lists the messages attached to a profile or club, newest
// first. The target is resolved by an explicit per-kind lookup before
// the listing, so a dangling tag surfaces as not found.
func (s *MessageService) GetByTarget(ctx context.Context, targetType entity.TargetType, targetID string) ([]entity.Message, error) {
	if err := s.resolveTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}
	return s.storage.GetByTarget(ctx, targetType, targetID)
}

// Get returns a message if the requester may read it: the sender, the
// target profile's user, or a member of the target club.
func (s *MessageService) Get(ctx context.Context, requesterID, messageID string) (*entity.Message, error) {
	message, err := s.storage.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, requesterID, message); err != nil {
		return nil, err
	}
	return message, nil
}

// MessagePatch carries the updatable message fields; nil fields are
// left untouched.
type MessagePatch struct {
	Body     *string `json:"body"`
	BodyType *string `json:"body_type"`
	MsgType  *string `json:"msg_type"`
}

// Update patches a message. Sender only.
func (s *MessageService) Update(ctx context.Context, requesterID, messageID string, patch MessagePatch) (*entity.Message, error) {
	message, err := s.storage.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != requesterID {
		return nil, errorz.ErrForbidden
	}
	if patch.Body != nil {
		message.Body = patch.Body
	}
	if patch.BodyType != nil {
		bt := entity.BodyType(*patch.BodyType)
		if !bt.Valid() {
			return nil, errorz.Validation("body_type", "unknown body type", entity.BodyTypes()...)
		}
		message.BodyType = bt
	}
	if patch.MsgType != nil {
		mt := entity.MsgType(*patch.MsgType)
		if !mt.Valid() {
			return nil, errorz.Validation("msg_type", "unknown message type", entity.MsgTypes()...)
		}
		message.MsgType = mt
	}
	return s.storage.Update(ctx, message)
}

// Delete removes a message. Allowed for the sender and for the owner
// of the target (the club owner or the profile's user).
func (s *MessageService) Delete(ctx context.Context, requesterID, messageID string) error {
	message, err := s.storage.Get(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID == requesterID {
		return s.storage.Delete(ctx, messageID)
	}
	switch message.TargetType {
	case entity.TargetClub:
		club, err := s.clubStorage.Get(ctx, message.TargetID)
		if err != nil {
			return err
		}
		if club.OwnerID == requesterID {
			return s.storage.Delete(ctx, messageID)
		}
	case entity.TargetProfile:
		profile, err := s.profileStorage.Get(ctx, message.TargetID)
		if err != nil {
			return err
		}
		if profile.UserID == requesterID {
			return s.storage.Delete(ctx, messageID)
		}
	}
	return errorz.ErrForbidden
}

// resolveTarget dispatches on the target tag and checks the referenced
// entity exists and is of the declared kind.
func (s *MessageService) resolveTarget(ctx context.Context, targetType entity.TargetType, targetID string) error {
	switch targetType {
	case entity.TargetProfile:
		_, err := s.profileStorage.Get(ctx, targetID)
		return err
	case entity.TargetClub:
		_, err := s.clubStorage.Get(ctx, targetID)
		return err
	}
	return errorz.Validation("target_type", "unknown target type", entity.TargetTypes()...)
}

func (s *MessageService) authorizeRead(ctx context.Context, requesterID string, message *entity.Message) error {
	if message.SenderID == requesterID {
		return nil
	}
	switch message.TargetType {
	case entity.TargetProfile:
		profile, err := s.profileStorage.Get(ctx, message.TargetID)
		if err != nil {
			return err
		}
		if profile.UserID == requesterID {
			return nil
		}
	case entity.TargetClub:
		requesterProfile, err := s.profileStorage.GetByUserID(ctx, requesterID)
		if err != nil {
			return err
		}
		if _, err := s.membershipStorage.Get(ctx, message.TargetID, requesterProfile.ID); err == nil {
			return nil
		} else if !errors.Is(err, errorz.ErrNotFound) {
			return err
		}
	}
	return errorz.ErrForbidden
}
