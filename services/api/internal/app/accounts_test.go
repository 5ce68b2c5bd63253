package app

import (
	"errors"
	"testing"

	"thinkbyte/pkg/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	a := newTestApp(t)
	user, token, err := a.Register("Alex Johnson", "Alex@Example.com", "password123", "SF")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if user.Email != "alex@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !user.IsPublic || user.TotalSwaps != 0 || user.Rating != 0 {
		t.Fatalf("unexpected defaults: %+v", user)
	}

	got, ok := a.UserFromToken(token)
	if !ok || got.ID != user.ID {
		t.Fatalf("token did not resolve to user")
	}

	if _, _, err := a.Login("alex@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := a.Login("nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := a.Login("ALEX@example.com", "password123"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	registerUser(t, a, "Alex", "alex@example.com")
	_, _, err := a.Register("Other", "alex@example.com", "password123", "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterEmitsProfileSetupNotification(t *testing.T) {
	a := newTestApp(t)
	user := registerUser(t, a, "Alex", "alex@example.com")
	list, err := a.ListNotificationsForUser(user.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 1 || list[0].Type != domain.NotifyProfileSetup {
		t.Fatalf("expected one profile_setup notification, got %v", list)
	}
	if list[0].IsRead {
		t.Fatalf("expected notification to start unread")
	}
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)
	_, token, err := a.Register("Alex", "alex@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := a.Logout(token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := a.UserFromToken(token); ok {
		t.Fatalf("expected token invalid after logout")
	}
}

func TestUpdateProfileMerges(t *testing.T) {
	a := newTestApp(t)
	user := registerUser(t, a, "Alex", "alex@example.com")

	loc := "Portland, OR"
	skills := []string{"Go", " Rust ", ""}
	updated, err := a.UpdateProfile(user.ID, ProfileUpdate{
		Location:      &loc,
		SkillsOffered: &skills,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Portland, OR" {
		t.Fatalf("location not updated: %q", updated.Location)
	}
	if len(updated.SkillsOffered) != 2 || updated.SkillsOffered[1] != "Rust" {
		t.Fatalf("expected cleaned skill list, got %v", updated.SkillsOffered)
	}
	// Untouched fields survive.
	if updated.Name != "Alex" || updated.Email != "alex@example.com" {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	if _, err := a.UpdateProfile("missing", ProfileUpdate{Location: &loc}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIsProfileComplete(t *testing.T) {
	a := newTestApp(t)
	user := registerUser(t, a, "Alex", "alex@example.com")
	if a.IsProfileComplete(user) {
		t.Fatalf("fresh profile must be incomplete")
	}
	user.SkillsOffered = []string{"Go"}
	user.SkillsWanted = []string{"Rust"}
	user.Availability = []string{"Weekends"}
	user.Location = "SF"
	if !a.IsProfileComplete(user) {
		t.Fatalf("expected complete profile")
	}
}

func TestResetPassword(t *testing.T) {
	a := newTestApp(t)
	registerUser(t, a, "Alex", "alex@example.com")

	found, err := a.ResetPassword("alex@example.com", "newpassword1")
	if err != nil || !found {
		t.Fatalf("reset: found=%v err=%v", found, err)
	}
	if _, _, err := a.Login("alex@example.com", "newpassword1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := a.Login("alex@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}

	found, err = a.ResetPassword("nobody@example.com", "newpassword1")
	if err != nil {
		t.Fatalf("reset for unknown email must not error: %v", err)
	}
	if found {
		t.Fatalf("expected found=false for unknown email")
	}
}

func TestBrowseUsersExcludesViewerAndPrivate(t *testing.T) {
	a := newTestApp(t)
	viewer := registerUser(t, a, "Alex", "alex@example.com")
	registerUser(t, a, "Sarah", "sarah@example.com")
	hidden := registerUser(t, a, "Mike", "mike@example.com")

	private := false
	if _, err := a.UpdateProfile(hidden.ID, ProfileUpdate{IsPublic: &private}); err != nil {
		t.Fatalf("update: %v", err)
	}

	users, err := a.BrowseUsers(viewer.ID)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(users) != 1 || users[0].Email != "sarah@example.com" {
		t.Fatalf("unexpected browse result: %v", users)
	}
}
