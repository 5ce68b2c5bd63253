package store

import (
	"testing"
	"time"

	"thinkbyte/pkg/domain"
)

func TestMemoryStoreUserEmailIndex(t *testing.T) {
	s := NewMemoryStore()
	u := domain.User{ID: "u1", Name: "Alex", Email: "alex@example.com", JoinedAt: time.Now()}
	if err := s.SaveUser(u); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if ok, _ := s.HasUserEmail("alex@example.com"); !ok {
		t.Fatalf("expected email to be indexed")
	}

	// Changing the email drops the old index entry.
	u.Email = "alex.j@example.com"
	if err := s.SaveUser(u); err != nil {
		t.Fatalf("update user: %v", err)
	}
	if ok, _ := s.HasUserEmail("alex@example.com"); ok {
		t.Fatalf("expected stale email index to be removed")
	}
	got, ok, _ := s.GetUserByEmail("alex.j@example.com")
	if !ok || got.ID != "u1" {
		t.Fatalf("expected lookup by new email, got ok=%v id=%q", ok, got.ID)
	}
}

func TestMemoryStoreSwapRequestOrderAndDelete(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"r1", "r2", "r3"} {
		err := s.SaveSwapRequest(domain.SwapRequest{ID: id, FromUserID: "u1", ToUserID: "u2"})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	list, err := s.ListSwapRequestsForUser("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "r1" || list[2].ID != "r3" {
		t.Fatalf("unexpected order: %v", list)
	}

	if err := s.DeleteSwapRequest("r2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteSwapRequest("missing"); err != nil {
		t.Fatalf("deleting a missing id must be a no-op, got: %v", err)
	}
	list, _ = s.ListSwapRequestsForUser("u1")
	if len(list) != 2 || list[0].ID != "r1" || list[1].ID != "r3" {
		t.Fatalf("unexpected list after delete: %v", list)
	}
}

func TestMemoryStoreConversationPairLookup(t *testing.T) {
	s := NewMemoryStore()
	c := domain.Conversation{ID: "c1", UserA: "u2", UserB: "u1", UpdatedAt: time.Now()}
	if err := s.SaveConversation(c); err != nil {
		t.Fatalf("save conversation: %v", err)
	}
	// Pair lookup is order-independent.
	got, ok, _ := s.GetConversationByPair("u1", "u2")
	if !ok || got.ID != "c1" {
		t.Fatalf("pair lookup failed: ok=%v id=%q", ok, got.ID)
	}
	got, ok, _ = s.GetConversationByPair("u2", "u1")
	if !ok || got.ID != "c1" {
		t.Fatalf("reversed pair lookup failed: ok=%v id=%q", ok, got.ID)
	}
	if got.UserA != "u1" || got.UserB != "u2" {
		t.Fatalf("expected normalized pair, got %q/%q", got.UserA, got.UserB)
	}
}

func TestMemoryStoreNotificationsNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"n1", "n2", "n3"} {
		err := s.SaveNotification(domain.Notification{ID: id, UserID: "u1"})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	list, err := s.ListNotificationsForUser("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "n3" || list[2].ID != "n1" {
		t.Fatalf("expected newest first, got: %v", list)
	}
}

func TestMemoryStoreRatingPerSwapRequest(t *testing.T) {
	s := NewMemoryStore()
	err := s.SaveRating(domain.Rating{ID: "rt1", SwapRequestID: "r1", ToUserID: "u2", Rating: 5})
	if err != nil {
		t.Fatalf("save rating: %v", err)
	}
	got, ok, _ := s.GetRatingBySwapRequest("r1")
	if !ok || got.Rating != 5 {
		t.Fatalf("rating lookup failed: ok=%v rating=%d", ok, got.Rating)
	}
	if _, ok, _ := s.GetRatingBySwapRequest("r2"); ok {
		t.Fatalf("expected no rating for unrated swap")
	}
}
