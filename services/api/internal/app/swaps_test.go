package app

import (
	"errors"
	"testing"

	"thinkbyte/pkg/domain"
)

func TestCreateSwapRequestDefaults(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	req, err := a.CreateSwapRequest(alex.ID, sarah.ID, "", "Python", "teach me please")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if req.SkillOffered != domain.LearningRequestSkill {
		t.Fatalf("expected learning-request sentinel, got %q", req.SkillOffered)
	}
	if req.Status != domain.SwapPending {
		t.Fatalf("expected pending, got %q", req.Status)
	}

	// Exactly one swap_request notification for the recipient.
	list, err := a.ListNotificationsForUser(sarah.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	count := 0
	for _, n := range list {
		if n.Type == domain.NotifySwapRequest {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one swap_request notification, got %d", count)
	}
}

func TestCreateSwapRequestValidation(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")

	if _, err := a.CreateSwapRequest(alex.ID, alex.ID, "Go", "Rust", ""); !errors.Is(err, ErrSelfSwap) {
		t.Fatalf("expected ErrSelfSwap, got %v", err)
	}
	if _, err := a.CreateSwapRequest(alex.ID, "missing", "Go", "Rust", ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSwapStatusTransitions(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	req, err := a.CreateSwapRequest(alex.ID, sarah.ID, "Go", "Python", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The sender cannot accept their own request.
	if _, err := a.UpdateSwapRequestStatus(req.ID, alex.ID, domain.SwapAccepted); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	// The recipient cannot cancel.
	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapCancelled); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	// pending -> completed skips accepted.
	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	updated, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != domain.SwapAccepted {
		t.Fatalf("expected accepted, got %q", updated.Status)
	}
	// Acceptance notified the sender.
	list, _ := a.ListNotificationsForUser(alex.ID)
	found := false
	for _, n := range list {
		if n.Type == domain.NotifySwapAccepted {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected swap_accepted notification for sender")
	}

	// accepted -> rejected is not reachable.
	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	gotAlex, _ := a.GetUser(alex.ID)
	gotSarah, _ := a.GetUser(sarah.ID)
	if gotAlex.TotalSwaps != 1 || gotSarah.TotalSwaps != 1 {
		t.Fatalf("expected both swap counters bumped, got %d/%d", gotAlex.TotalSwaps, gotSarah.TotalSwaps)
	}

	// completed is terminal.
	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapAccepted); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from completed, got %v", err)
	}
}

func TestSwapCancelBySender(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	req, err := a.CreateSwapRequest(alex.ID, sarah.ID, "Go", "Python", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := a.UpdateSwapRequestStatus(req.ID, alex.ID, domain.SwapCancelled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != domain.SwapCancelled {
		t.Fatalf("expected cancelled, got %q", updated.Status)
	}
}

func TestUpdateSwapRequestStatusUnknownID(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	if _, err := a.UpdateSwapRequestStatus("missing", alex.ID, domain.SwapAccepted); !errors.Is(err, ErrSwapRequestNotFound) {
		t.Fatalf("expected ErrSwapRequestNotFound, got %v", err)
	}
}

func TestUpdateSwapRequestMessage(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	req, err := a.CreateSwapRequest(alex.ID, sarah.ID, "Go", "Python", "old note")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := a.UpdateSwapRequestMessage(req.ID, alex.ID, "new note")
	if err != nil {
		t.Fatalf("update message: %v", err)
	}
	if updated.Message != "new note" {
		t.Fatalf("message not updated: %q", updated.Message)
	}
	if _, err := a.UpdateSwapRequestMessage(req.ID, sarah.ID, "nope"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	if _, err := a.UpdateSwapRequestStatus(req.ID, sarah.ID, domain.SwapAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := a.UpdateSwapRequestMessage(req.ID, alex.ID, "too late"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after accept, got %v", err)
	}
}

func TestDeleteSwapRequest(t *testing.T) {
	a := newTestApp(t)
	alex := registerUser(t, a, "Alex", "alex@example.com")
	sarah := registerUser(t, a, "Sarah", "sarah@example.com")

	req, err := a.CreateSwapRequest(alex.ID, sarah.ID, "Go", "Python", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := a.DeleteSwapRequest(req.ID, sarah.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("recipient must not delete, got %v", err)
	}
	if err := a.DeleteSwapRequest(req.ID, alex.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Unknown IDs are a no-op.
	if err := a.DeleteSwapRequest("missing", alex.ID); err != nil {
		t.Fatalf("deleting a missing id must be a no-op, got %v", err)
	}
	list, _ := a.ListSwapRequestsForUser(alex.ID)
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %v", list)
	}
}
