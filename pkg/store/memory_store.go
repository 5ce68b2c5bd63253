package store

import (
	"sort"
	"sync"

	"thinkbyte/pkg/domain"
)

// MemoryStore keeps all collections in-process. Used by tests and the
// zero-dependency dev mode.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[string]domain.User
	userOrder []string
	email     map[string]string // email -> user ID

	swaps     map[string]domain.SwapRequest
	swapOrder []string

	conversations map[string]domain.Conversation
	pairs         map[[2]string]string // normalized pair -> conversation ID

	messages     map[string]domain.Message
	messageOrder []string

	notifications map[string]domain.Notification
	notifyOrder   []string

	ratings map[string]domain.Rating // keyed by swap request ID
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]domain.User),
		email:         make(map[string]string),
		swaps:         make(map[string]domain.SwapRequest),
		conversations: make(map[string]domain.Conversation),
		pairs:         make(map[[2]string]string),
		messages:      make(map[string]domain.Message),
		notifications: make(map[string]domain.Notification),
		ratings:       make(map[string]domain.Rating),
	}
}

// SaveUser stores or replaces a user record.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, exists := m.users[u.ID]; exists {
		if old.Email != u.Email {
			delete(m.email, old.Email)
		}
	} else {
		m.userOrder = append(m.userOrder, u.ID)
	}
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// HasUserEmail checks if the email is taken.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// ListUsers returns users in insertion order.
func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		if u, ok := m.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// UserCount returns the number of users.
func (m *MemoryStore) UserCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// SaveSwapRequest stores or replaces a swap request.
func (m *MemoryStore) SaveSwapRequest(r domain.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.swaps[r.ID]; !exists {
		m.swapOrder = append(m.swapOrder, r.ID)
	}
	m.swaps[r.ID] = r
	return nil
}

// GetSwapRequest returns a swap request by ID.
func (m *MemoryStore) GetSwapRequest(id string) (domain.SwapRequest, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.swaps[id]
	return r, ok, nil
}

// ListSwapRequestsForUser returns requests involving the user, in
// insertion order.
func (m *MemoryStore) ListSwapRequestsForUser(userID string) ([]domain.SwapRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.SwapRequest, 0)
	for _, id := range m.swapOrder {
		if r, ok := m.swaps[id]; ok && (r.FromUserID == userID || r.ToUserID == userID) {
			res = append(res, r)
		}
	}
	return res, nil
}

// DeleteSwapRequest removes a swap request; missing IDs are a no-op.
func (m *MemoryStore) DeleteSwapRequest(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.swaps[id]; !ok {
		return nil
	}
	delete(m.swaps, id)
	filtered := m.swapOrder[:0]
	for _, item := range m.swapOrder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.swapOrder = filtered
	return nil
}

// SaveConversation stores or replaces a conversation.
func (m *MemoryStore) SaveConversation(c domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UserA, c.UserB = domain.NormalizePair(c.UserA, c.UserB)
	m.conversations[c.ID] = c
	m.pairs[[2]string{c.UserA, c.UserB}] = c.ID
	return nil
}

// GetConversation returns a conversation by ID.
func (m *MemoryStore) GetConversation(id string) (domain.Conversation, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.conversations[id]
	return c, ok, nil
}

// GetConversationByPair returns the conversation for an unordered pair.
func (m *MemoryStore) GetConversationByPair(userA, userB string) (domain.Conversation, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, b := domain.NormalizePair(userA, userB)
	id, ok := m.pairs[[2]string{a, b}]
	if !ok {
		return domain.Conversation{}, false, nil
	}
	c, exists := m.conversations[id]
	return c, exists, nil
}

// ListConversationsForUser returns the user's conversations, most recently
// updated first.
func (m *MemoryStore) ListConversationsForUser(userID string) ([]domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Conversation, 0)
	for _, c := range m.conversations {
		if c.HasParticipant(userID) {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	return res, nil
}

// SaveMessage stores or replaces a message.
func (m *MemoryStore) SaveMessage(msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.messages[msg.ID]; !exists {
		m.messageOrder = append(m.messageOrder, msg.ID)
	}
	m.messages[msg.ID] = msg
	return nil
}

// GetMessage returns a message by ID.
func (m *MemoryStore) GetMessage(id string) (domain.Message, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.messages[id]
	return msg, ok, nil
}

// ListConversationMessages returns a conversation's messages in insertion
// order.
func (m *MemoryStore) ListConversationMessages(conversationID string) ([]domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Message, 0)
	for _, id := range m.messageOrder {
		if msg, ok := m.messages[id]; ok && msg.ConversationID == conversationID {
			res = append(res, msg)
		}
	}
	return res, nil
}

// SaveNotification stores or replaces a notification.
func (m *MemoryStore) SaveNotification(n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.notifications[n.ID]; !exists {
		m.notifyOrder = append(m.notifyOrder, n.ID)
	}
	m.notifications[n.ID] = n
	return nil
}

// GetNotification returns a notification by ID.
func (m *MemoryStore) GetNotification(id string) (domain.Notification, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.notifications[id]
	return n, ok, nil
}

// ListNotificationsForUser returns the user's notifications, newest first.
func (m *MemoryStore) ListNotificationsForUser(userID string) ([]domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Notification, 0)
	for i := len(m.notifyOrder) - 1; i >= 0; i-- {
		if n, ok := m.notifications[m.notifyOrder[i]]; ok && n.UserID == userID {
			res = append(res, n)
		}
	}
	return res, nil
}

// SaveRating stores a rating keyed by its swap request.
func (m *MemoryStore) SaveRating(r domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings[r.SwapRequestID] = r
	return nil
}

// GetRatingBySwapRequest returns the rating attached to a swap request.
func (m *MemoryStore) GetRatingBySwapRequest(swapRequestID string) (domain.Rating, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.ratings[swapRequestID]
	return r, ok, nil
}

// ListRatingsForUser returns ratings addressed to the user, oldest first.
func (m *MemoryStore) ListRatingsForUser(toUserID string) ([]domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Rating, 0)
	for _, r := range m.ratings {
		if r.ToUserID == toUserID {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}
