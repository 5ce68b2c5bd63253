package app

import (
	"fmt"
	"time"

	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

// Notify appends an unread notification to the user's log.
func (a *App) Notify(userID string, category domain.NotificationCategory, typ domain.NotificationType, title, message, actionURL string) (domain.Notification, error) {
	n := domain.Notification{
		ID:        store.NewID(),
		UserID:    userID,
		Category:  category,
		Type:      typ,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveNotification(n); err != nil {
		return domain.Notification{}, fmt.Errorf("save notification: %w", err)
	}
	return n, nil
}

// notifyMessage appends a message-category notification carrying the
// conversation context the badge and toast surfaces need.
func (a *App) notifyMessage(userID, conversationID, senderID, senderName, preview string) error {
	n := domain.Notification{
		ID:             store.NewID(),
		UserID:         userID,
		Category:       domain.NotificationMessageToast,
		Type:           domain.NotifyMessage,
		Title:          "New message from " + senderName,
		Message:        preview,
		ActionURL:      "/messages",
		ConversationID: conversationID,
		SenderID:       senderID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.store.SaveNotification(n); err != nil {
		return fmt.Errorf("save message notification: %w", err)
	}
	return nil
}

// ListNotificationsForUser returns the user's notifications, newest first.
func (a *App) ListNotificationsForUser(userID string) ([]domain.Notification, error) {
	return a.store.ListNotificationsForUser(userID)
}

// MarkNotificationRead marks one notification read. Only the owner may.
func (a *App) MarkNotificationRead(notificationID, userID string) error {
	n, ok, err := a.store.GetNotification(notificationID)
	if err != nil {
		return fmt.Errorf("fetch notification: %w", err)
	}
	if !ok || n.UserID != userID {
		return ErrNotificationNotFound
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	if err := a.store.SaveNotification(n); err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification for the user.
func (a *App) MarkAllNotificationsRead(userID string) error {
	list, err := a.store.ListNotificationsForUser(userID)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	for _, n := range list {
		if n.IsRead {
			continue
		}
		n.IsRead = true
		if err := a.store.SaveNotification(n); err != nil {
			return fmt.Errorf("update notification: %w", err)
		}
	}
	return nil
}

// UnreadNotificationCount counts the user's unread notifications.
func (a *App) UnreadNotificationCount(userID string) (int, error) {
	list, err := a.store.ListNotificationsForUser(userID)
	if err != nil {
		return 0, fmt.Errorf("list notifications: %w", err)
	}
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}
