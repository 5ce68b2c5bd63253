package store

import "thinkbyte/pkg/domain"

// Store defines persistence operations for the marketplace collections.
// Save methods upsert by ID; Get methods report existence via the bool.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
	UserCount() (int, error)

	// swap requests
	SaveSwapRequest(domain.SwapRequest) error
	GetSwapRequest(id string) (domain.SwapRequest, bool, error)
	ListSwapRequestsForUser(userID string) ([]domain.SwapRequest, error)
	DeleteSwapRequest(id string) error

	// conversations
	SaveConversation(domain.Conversation) error
	GetConversation(id string) (domain.Conversation, bool, error)
	GetConversationByPair(userA, userB string) (domain.Conversation, bool, error)
	ListConversationsForUser(userID string) ([]domain.Conversation, error)

	// messages
	SaveMessage(domain.Message) error
	GetMessage(id string) (domain.Message, bool, error)
	ListConversationMessages(conversationID string) ([]domain.Message, error)

	// notifications
	SaveNotification(domain.Notification) error
	GetNotification(id string) (domain.Notification, bool, error)
	ListNotificationsForUser(userID string) ([]domain.Notification, error)

	// ratings
	SaveRating(domain.Rating) error
	GetRatingBySwapRequest(swapRequestID string) (domain.Rating, bool, error)
	ListRatingsForUser(toUserID string) ([]domain.Rating, error)
}

// SessionStore persists session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
