package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID            string `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	Location      string
	ProfilePhoto  string
	IsPublic      bool           `gorm:"not null"`
	SkillsOffered datatypes.JSON `gorm:"type:jsonb"`
	SkillsWanted  datatypes.JSON `gorm:"type:jsonb"`
	Availability  datatypes.JSON `gorm:"type:jsonb"`
	Rating        float64        `gorm:"not null"`
	TotalSwaps    int            `gorm:"not null"`
	IsAdmin       bool           `gorm:"not null"`
	JoinedAt      time.Time      `gorm:"not null"`
}

type SwapRequestModel struct {
	ID           string `gorm:"primaryKey"`
	FromUserID   string `gorm:"not null;index"`
	ToUserID     string `gorm:"not null;index"`
	SkillOffered string `gorm:"not null"`
	SkillWanted  string `gorm:"not null"`
	Message      string
	Status       string    `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// ConversationModel keeps the participant pair lexicographically ordered so
// the unique index enforces one conversation per unordered pair.
type ConversationModel struct {
	ID            string `gorm:"primaryKey"`
	UserA         string `gorm:"not null;uniqueIndex:idx_conversation_pair;index"`
	UserB         string `gorm:"not null;uniqueIndex:idx_conversation_pair;index"`
	LastMessageID string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

type MessageModel struct {
	ID             string    `gorm:"primaryKey"`
	ConversationID string    `gorm:"not null;index"`
	SenderID       string    `gorm:"not null"`
	ReceiverID     string    `gorm:"not null"`
	Content        string    `gorm:"type:text;not null"`
	Type           string    `gorm:"not null"`
	IsRead         bool      `gorm:"not null"`
	Status         string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

type NotificationModel struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"not null;index"`
	Category       string `gorm:"not null"`
	Type           string `gorm:"not null"`
	Title          string `gorm:"not null"`
	Message        string `gorm:"type:text;not null"`
	IsRead         bool   `gorm:"not null"`
	ActionURL      string
	ConversationID string
	SenderID       string
	CreatedAt      time.Time `gorm:"not null;index"`
}

type RatingModel struct {
	ID            string    `gorm:"primaryKey"`
	FromUserID    string    `gorm:"not null;index"`
	ToUserID      string    `gorm:"not null;index"`
	SwapRequestID string    `gorm:"uniqueIndex;not null"`
	Rating        int       `gorm:"not null"`
	Comment       string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}
