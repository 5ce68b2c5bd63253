package domain

import "time"

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

type MessageType string

const (
	MessageText        MessageType = "text"
	MessageSwapRequest MessageType = "swap_request"
	MessageSystem      MessageType = "system"
)

type MessageStatus string

const (
	MessageSending   MessageStatus = "sending"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

type NotificationCategory string

const (
	NotificationGeneral NotificationCategory = "general"
	// NotificationMessageToast entries drive the message badge/toast surface
	// and carry conversation context.
	NotificationMessageToast NotificationCategory = "message"
)

type NotificationType string

const (
	NotifyProfileSetup NotificationType = "profile_setup"
	NotifySwapRequest  NotificationType = "swap_request"
	NotifySwapAccepted NotificationType = "swap_accepted"
	NotifySwapRejected NotificationType = "swap_rejected"
	NotifyMessage      NotificationType = "message"
	NotifySystem       NotificationType = "system"
)

// LearningRequestSkill is the sentinel offered skill used when the sender has
// nothing to teach and is only asking to learn.
const LearningRequestSkill = "Learning Request"

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Location      string    `json:"location,omitempty"`
	ProfilePhoto  string    `json:"profilePhoto,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	SkillsOffered []string  `json:"skillsOffered"`
	SkillsWanted  []string  `json:"skillsWanted"`
	Availability  []string  `json:"availability"`
	Rating        float64   `json:"rating"`
	TotalSwaps    int       `json:"totalSwaps"`
	JoinedAt      time.Time `json:"joinedAt"`
	IsAdmin       bool      `json:"isAdmin,omitempty"`
}

type SwapRequest struct {
	ID           string     `json:"id"`
	FromUserID   string     `json:"fromUserId"`
	ToUserID     string     `json:"toUserId"`
	SkillOffered string     `json:"skillOffered"`
	SkillWanted  string     `json:"skillWanted"`
	Message      string     `json:"message,omitempty"`
	Status       SwapStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Conversation is a two-party thread identified by its unordered participant
// pair. Participants are kept lexicographically ordered so the pair has a
// single canonical representation.
type Conversation struct {
	ID            string    `json:"id"`
	UserA         string    `json:"-"`
	UserB         string    `json:"-"`
	LastMessageID string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Participants returns the ordered participant pair.
func (c Conversation) Participants() []string {
	return []string{c.UserA, c.UserB}
}

// HasParticipant reports whether the user belongs to the conversation.
func (c Conversation) HasParticipant(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// OtherParticipant returns the peer of the given user, or "" when the user is
// not a participant.
func (c Conversation) OtherParticipant(userID string) string {
	switch userID {
	case c.UserA:
		return c.UserB
	case c.UserB:
		return c.UserA
	}
	return ""
}

// NormalizePair orders an unordered participant pair canonically.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

type Message struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	SenderID       string        `json:"senderId"`
	ReceiverID     string        `json:"receiverId"`
	Content        string        `json:"content"`
	Type           MessageType   `json:"type"`
	IsRead         bool          `json:"isRead"`
	Status         MessageStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type Notification struct {
	ID             string               `json:"id"`
	UserID         string               `json:"userId"`
	Category       NotificationCategory `json:"category"`
	Type           NotificationType     `json:"type"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	IsRead         bool                 `json:"isRead"`
	ActionURL      string               `json:"actionUrl,omitempty"`
	ConversationID string               `json:"conversationId,omitempty"`
	SenderID       string               `json:"senderId,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

type Rating struct {
	ID            string    `json:"id"`
	FromUserID    string    `json:"fromUserId"`
	ToUserID      string    `json:"toUserId"`
	SwapRequestID string    `json:"swapRequestId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
