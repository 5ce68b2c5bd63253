package app

import (
	"fmt"
	"strings"
	"time"

	"thinkbyte/pkg/auth"
	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

// ProfileUpdate carries optional profile fields; nil means leave unchanged.
// List fields replace the stored list wholesale.
type ProfileUpdate struct {
	Name          *string   `json:"name"`
	Location      *string   `json:"location"`
	ProfilePhoto  *string   `json:"profilePhoto"`
	IsPublic      *bool     `json:"isPublic"`
	SkillsOffered *[]string `json:"skillsOffered"`
	SkillsWanted  *[]string `json:"skillsWanted"`
	Availability  *[]string `json:"availability"`
}

// Register creates an account and issues a session token.
func (a *App) Register(name, email, password, location string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, "", ErrNameRequired
	}
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, "", ErrEmailAndPasswordRequired
	}
	if err := auth.ValidateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return domain.User{}, "", err
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrEmailAlreadyExists
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:            store.NewID(),
		Name:          name,
		Email:         email,
		PasswordHash:  passwordHash,
		Location:      strings.TrimSpace(location),
		IsPublic:      true,
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		Availability:  []string{},
		JoinedAt:      time.Now().UTC(),
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, "", fmt.Errorf("save user: %w", err)
	}
	_, err = a.Notify(user.ID, domain.NotificationGeneral, domain.NotifyProfileSetup,
		"Welcome to ThinkByte!",
		"Complete your profile to start exchanging skills with others.",
		"/profile")
	if err != nil {
		return domain.User{}, "", err
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(email, password string) (domain.User, string, error) {
	email = auth.NormalizeEmail(email)
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Logout invalidates a session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// UserFromToken resolves a user from a session token.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// GetUser fetches a user by ID.
func (a *App) GetUser(id string) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile merges the provided fields into the user's profile.
func (a *App) UpdateProfile(userID string, updates ProfileUpdate) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return domain.User{}, ErrNameRequired
		}
		user.Name = name
	}
	if updates.Location != nil {
		user.Location = strings.TrimSpace(*updates.Location)
	}
	if updates.ProfilePhoto != nil {
		user.ProfilePhoto = *updates.ProfilePhoto
	}
	if updates.IsPublic != nil {
		user.IsPublic = *updates.IsPublic
	}
	if updates.SkillsOffered != nil {
		user.SkillsOffered = cleanList(*updates.SkillsOffered)
	}
	if updates.SkillsWanted != nil {
		user.SkillsWanted = cleanList(*updates.SkillsWanted)
	}
	if updates.Availability != nil {
		user.Availability = cleanList(*updates.Availability)
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// SetProfilePhoto records the avatar URL after a successful upload.
func (a *App) SetProfilePhoto(userID, url string) (domain.User, error) {
	return a.UpdateProfile(userID, ProfileUpdate{ProfilePhoto: &url})
}

// IsProfileComplete reports whether the profile has everything browsing and
// matching need: name, location, at least one offered skill, one wanted skill
// and one availability slot.
func (a *App) IsProfileComplete(user domain.User) bool {
	return strings.TrimSpace(user.Name) != "" &&
		strings.TrimSpace(user.Location) != "" &&
		len(user.SkillsOffered) > 0 &&
		len(user.SkillsWanted) > 0 &&
		len(user.Availability) > 0
}

// ResetPassword overwrites the password for a matching account. The returned
// bool reports whether such an account existed; no error either way, so the
// endpoint cannot be used for account enumeration timing.
func (a *App) ResetPassword(email, newPassword string) (bool, error) {
	email = auth.NormalizeEmail(email)
	if err := auth.ValidatePassword(newPassword); err != nil {
		return false, err
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return false, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return false, nil
	}
	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = passwordHash
	if err := a.store.SaveUser(user); err != nil {
		return false, fmt.Errorf("update password: %w", err)
	}
	return true, nil
}

// BrowseUsers returns public profiles other than the viewer's.
func (a *App) BrowseUsers(viewerID string) ([]domain.User, error) {
	users, err := a.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.ID == viewerID || !u.IsPublic {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// ListUsers returns all users (admin use only).
func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
