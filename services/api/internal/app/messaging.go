package app

import (
	"fmt"
	"strings"
	"time"

	"thinkbyte/internal/delivery"
	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

const messagePreviewLimit = 80

// ConversationSummary is a conversation with its participants and last
// message resolved for listing.
type ConversationSummary struct {
	domain.Conversation
	Participants []string        `json:"participants"`
	LastMessage  *domain.Message `json:"lastMessage,omitempty"`
	UnreadCount  int             `json:"unreadCount"`
}

// EnsureConversation returns the conversation for the unordered pair,
// creating it if missing.
func (a *App) EnsureConversation(userA, userB string) (domain.Conversation, error) {
	if userA == userB {
		return domain.Conversation{}, ErrNotParticipant
	}
	for _, id := range []string{userA, userB} {
		if _, ok, err := a.store.GetUserByID(id); err != nil {
			return domain.Conversation{}, fmt.Errorf("fetch user: %w", err)
		} else if !ok {
			return domain.Conversation{}, ErrUserNotFound
		}
	}
	conv, ok, err := a.store.GetConversationByPair(userA, userB)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("fetch conversation: %w", err)
	}
	if ok {
		return conv, nil
	}
	first, second := domain.NormalizePair(userA, userB)
	now := time.Now().UTC()
	conv = domain.Conversation{
		ID:        store.NewID(),
		UserA:     first,
		UserB:     second,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveConversation(conv); err != nil {
		return domain.Conversation{}, fmt.Errorf("save conversation: %w", err)
	}
	return conv, nil
}

// SendMessage appends a text message from senderID and schedules the
// simulated delivery transitions. The returned message is still "sending".
func (a *App) SendMessage(conversationID, senderID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, ErrContentRequired
	}
	conv, ok, err := a.store.GetConversation(conversationID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch conversation: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrConversationNotFound
	}
	if !conv.HasParticipant(senderID) {
		return domain.Message{}, ErrNotParticipant
	}
	receiverID := conv.OtherParticipant(senderID)

	msg := domain.Message{
		ID:             store.NewID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Type:           domain.MessageText,
		Status:         domain.MessageSending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.store.SaveMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("save message: %w", err)
	}
	if err := a.touchConversation(conv, msg); err != nil {
		return domain.Message{}, err
	}

	sender, ok, err := a.store.GetUserByID(senderID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch sender: %w", err)
	}
	senderName := "Someone"
	if ok {
		senderName = sender.Name
	}
	if err := a.notifyMessage(receiverID, conversationID, senderID, senderName, preview(content)); err != nil {
		return domain.Message{}, err
	}

	a.scheduler.Schedule(msg.ID, []delivery.Step{
		{Status: string(domain.MessageSent), After: a.sentDelay},
		{Status: string(domain.MessageDelivered), After: a.deliveredDelay},
	})
	return msg, nil
}

// applyMessageStatus persists a scheduled delivery transition. Messages read
// in the meantime keep their read state.
func (a *App) applyMessageStatus(messageID, status string) {
	msg, ok, err := a.store.GetMessage(messageID)
	if err != nil || !ok {
		return
	}
	if msg.Status == domain.MessageRead {
		return
	}
	msg.Status = domain.MessageStatus(status)
	_ = a.store.SaveMessage(msg)
}

// MarkMessageRead marks a message read by its receiver and cancels any
// pending delivery transitions.
func (a *App) MarkMessageRead(messageID, readerID string) (domain.Message, error) {
	msg, ok, err := a.store.GetMessage(messageID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch message: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrMessageNotFound
	}
	if msg.ReceiverID != readerID {
		return domain.Message{}, ErrNotParticipant
	}
	if msg.IsRead {
		return msg, nil
	}
	a.scheduler.Cancel(messageID)
	msg.IsRead = true
	msg.Status = domain.MessageRead
	if err := a.store.SaveMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("update message: %w", err)
	}
	return msg, nil
}

// ListConversationMessages returns a conversation's messages in order;
// participants only.
func (a *App) ListConversationMessages(conversationID, userID string) ([]domain.Message, error) {
	conv, ok, err := a.store.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetch conversation: %w", err)
	}
	if !ok {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return a.store.ListConversationMessages(conversationID)
}

// ListConversations returns the user's conversations, most recently active
// first, with last message and unread count resolved.
func (a *App) ListConversations(userID string) ([]ConversationSummary, error) {
	convs, err := a.store.ListConversationsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	out := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := ConversationSummary{
			Conversation: conv,
			Participants: conv.Participants(),
		}
		if conv.LastMessageID != "" {
			if msg, ok, err := a.store.GetMessage(conv.LastMessageID); err == nil && ok {
				summary.LastMessage = &msg
			}
		}
		msgs, err := a.store.ListConversationMessages(conv.ID)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		for _, m := range msgs {
			if m.ReceiverID == userID && !m.IsRead {
				summary.UnreadCount++
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

// SimulateIncomingMessage injects an already-delivered message from senderID,
// as if the peer had replied out of band. Demo hook for the messaging UI.
func (a *App) SimulateIncomingMessage(conversationID, senderID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, ErrContentRequired
	}
	conv, ok, err := a.store.GetConversation(conversationID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch conversation: %w", err)
	}
	if !ok {
		return domain.Message{}, ErrConversationNotFound
	}
	if !conv.HasParticipant(senderID) {
		return domain.Message{}, ErrNotParticipant
	}
	receiverID := conv.OtherParticipant(senderID)

	msg := domain.Message{
		ID:             store.NewID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Type:           domain.MessageText,
		Status:         domain.MessageDelivered,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.store.SaveMessage(msg); err != nil {
		return domain.Message{}, fmt.Errorf("save message: %w", err)
	}
	if err := a.touchConversation(conv, msg); err != nil {
		return domain.Message{}, err
	}
	sender, ok, err := a.store.GetUserByID(senderID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch sender: %w", err)
	}
	senderName := "Someone"
	if ok {
		senderName = sender.Name
	}
	if err := a.notifyMessage(receiverID, conversationID, senderID, senderName, preview(content)); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (a *App) touchConversation(conv domain.Conversation, msg domain.Message) error {
	conv.LastMessageID = msg.ID
	conv.UpdatedAt = msg.CreatedAt
	if err := a.store.SaveConversation(conv); err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	return nil
}

func preview(content string) string {
	if len(content) <= messagePreviewLimit {
		return content
	}
	return content[:messagePreviewLimit] + "..."
}
