package entity

import (
	"time"

	"gorm.io/gorm"
)

// TargetType tags which kind of entity a message is attached to.
type TargetType string

const (
	TargetProfile TargetType = "profile"
	TargetClub    TargetType = "club"
)

func (t TargetType) Valid() bool {
	return t == TargetProfile || t == TargetClub
}

func TargetTypes() []string {
	return []string{string(TargetProfile), string(TargetClub)}
}

// BodyType describes the kind of content carried in a message body.
type BodyType string

const (
	BodyTypeText  BodyType = "text"
	BodyTypeVideo BodyType = "video"
	BodyTypeAudio BodyType = "audio"
)

func (b BodyType) Valid() bool {
	return b == BodyTypeText || b == BodyTypeVideo || b == BodyTypeAudio
}

func BodyTypes() []string {
	return []string{string(BodyTypeText), string(BodyTypeVideo), string(BodyTypeAudio)}
}

type MsgType string

const (
	MsgTypeDefault MsgType = "default"
	MsgTypeComment MsgType = "comment"
)

func (m MsgType) Valid() bool {
	return m == MsgTypeDefault || m == MsgTypeComment
}

func MsgTypes() []string {
	return []string{string(MsgTypeDefault), string(MsgTypeComment)}
}

// Message is attached to exactly one profile or club through the
// (TargetType, TargetID) pair. There is no foreign key to the target;
// resolution is a per-kind lookup keyed on the tag.
type Message struct {
	ID         string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	SenderID   string         `gorm:"not null;type:uuid;index" json:"sender_id"`
	Sender     User           `json:"sender"`
	Body       *string        `json:"body"`
	BodyType   BodyType       `gorm:"not null;default:'text'" json:"body_type"`
	MsgType    MsgType        `gorm:"not null;default:'default'" json:"msg_type"`
	TargetType TargetType     `gorm:"not null;index:idx_message_target" json:"target_type"`
	TargetID   string         `gorm:"not null;type:uuid;index:idx_message_target" json:"target_id"`
}
