package app

import (
	"errors"
	"testing"
	"time"

	"thinkbyte/pkg/domain"
)

func TestEnsureConversationIsIdempotent(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	c1, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	c2, err := a.EnsureConversation(sarah.ID, alex.ID)
	if err != nil {
		t.Fatalf("ensure reversed: %v", err)
	}
	if c1.ID != c2.ID {
		t.Fatalf("expected one conversation per pair, got %q and %q", c1.ID, c2.ID)
	}
	if _, err := a.EnsureConversation(alex.ID, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendMessageLifecycle(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")
	conv, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	msg, err := a.SendMessage(conv.ID, alex.ID, "hi Sarah")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Status != domain.MessageSending {
		t.Fatalf("expected initial status sending, got %q", msg.Status)
	}
	if msg.ReceiverID != sarah.ID {
		t.Fatalf("expected receiver %q, got %q", sarah.ID, msg.ReceiverID)
	}

	// The scheduler advances sending -> sent -> delivered.
	waitFor(t, time.Second, func() bool {
		msgs, err := a.ListConversationMessages(conv.ID, alex.ID)
		if err != nil || len(msgs) != 1 {
			return false
		}
		return msgs[0].Status == domain.MessageDelivered
	})

	// Receiver got a message-category notification with conversation context.
	list, err := a.ListNotificationsForUser(sarah.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	var found bool
	for _, n := range list {
		if n.Category == domain.NotificationMessageToast {
			found = true
			if n.ConversationID != conv.ID || n.SenderID != alex.ID {
				t.Fatalf("notification missing context: %+v", n)
			}
		}
	}
	if !found {
		t.Fatalf("expected message notification for receiver")
	}
}

func TestSendMessageValidation(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")
	mike := registerUser(t, a, "Mike", "mike@example.com")
	conv, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if _, err := a.SendMessage(conv.ID, mike.ID, "hi"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := a.SendMessage(conv.ID, alex.ID, "   "); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("expected ErrContentRequired, got %v", err)
	}
	if _, err := a.SendMessage("missing", alex.ID, "hi"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestMarkMessageReadCancelsDelivery(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")
	conv, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	msg, err := a.SendMessage(conv.ID, alex.ID, "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	// Only the receiver may mark read.
	if _, err := a.MarkMessageRead(msg.ID, alex.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	read, err := a.MarkMessageRead(msg.ID, sarah.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !read.IsRead || read.Status != domain.MessageRead {
		t.Fatalf("expected read message, got %+v", read)
	}

	// Pending delivery transitions must not downgrade the read status.
	time.Sleep(30 * time.Millisecond)
	msgs, _ := a.ListConversationMessages(conv.ID, sarah.ID)
	if msgs[0].Status != domain.MessageRead {
		t.Fatalf("delivery transition overwrote read status: %q", msgs[0].Status)
	}
}

func TestListConversationsSummaries(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")
	conv, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := a.SendMessage(conv.ID, alex.ID, "first"); err != nil {
		t.Fatalf("send: %v", err)
	}
	last, err := a.SendMessage(conv.ID, alex.ID, "second")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	summaries, err := a.ListConversations(sarah.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one conversation, got %d", len(summaries))
	}
	s := summaries[0]
	if s.LastMessage == nil || s.LastMessage.ID != last.ID {
		t.Fatalf("expected last message %q, got %+v", last.ID, s.LastMessage)
	}
	if s.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", s.UnreadCount)
	}
	if len(s.Participants) != 2 {
		t.Fatalf("expected both participants, got %v", s.Participants)
	}

	// Non-participants cannot read the thread.
	mike := registerUser(t, a, "Mike", "mike@example.com")
	if _, err := a.ListConversationMessages(conv.ID, mike.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSimulateIncomingMessage(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")
	conv, err := a.EnsureConversation(alex.ID, sarah.ID)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	msg, err := a.SimulateIncomingMessage(conv.ID, sarah.ID, "auto reply")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if msg.Status != domain.MessageDelivered {
		t.Fatalf("expected delivered, got %q", msg.Status)
	}
	if msg.ReceiverID != alex.ID {
		t.Fatalf("expected receiver %q, got %q", alex.ID, msg.ReceiverID)
	}
	list, _ := a.ListNotificationsForUser(alex.ID)
	found := false
	for _, n := range list {
		if n.Category == domain.NotificationMessageToast && n.SenderID == sarah.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected message notification for receiver")
	}
}
