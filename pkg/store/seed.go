package store

import (
	"fmt"
	"time"

	"thinkbyte/pkg/auth"
	"thinkbyte/pkg/domain"
)

// DemoPassword is the login password for all seeded demo accounts.
const DemoPassword = "demo1234"

// SeedDemoData fills an empty store with demo users and a couple of
// conversations so a fresh install has something to browse. It is a no-op
// when any user already exists.
func SeedDemoData(s Store) error {
	count, err := s.UserCount()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := []domain.User{
		{
			ID:            "demo-alex",
			Name:          "Alex Johnson",
			Email:         "alex@example.com",
			Location:      "San Francisco, CA",
			SkillsOffered: []string{"React", "TypeScript", "UI/UX Design"},
			SkillsWanted:  []string{"Python", "Machine Learning", "Photography"},
			Availability:  []string{"Weekends", "Evenings"},
			Rating:        4.8,
			TotalSwaps:    12,
			JoinedAt:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "demo-sarah",
			Name:          "Sarah Chen",
			Email:         "sarah@example.com",
			Location:      "New York, NY",
			SkillsOffered: []string{"Python", "Data Science", "Photography"},
			SkillsWanted:  []string{"React", "Figma", "Content Writing"},
			Availability:  []string{"Weekday evenings", "Saturday mornings"},
			Rating:        4.9,
			TotalSwaps:    8,
			JoinedAt:      time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "demo-mike",
			Name:          "Mike Rodriguez",
			Email:         "mike@example.com",
			Location:      "Austin, TX",
			SkillsOffered: []string{"Digital Marketing", "SEO", "Content Writing"},
			SkillsWanted:  []string{"Web Development", "Graphic Design"},
			Availability:  []string{"Flexible schedule"},
			Rating:        4.7,
			TotalSwaps:    15,
			JoinedAt:      time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
			IsAdmin:       true,
		},
		{
			ID:            "demo-emma",
			Name:          "Emma Wilson",
			Email:         "emma@example.com",
			Location:      "Seattle, WA",
			SkillsOffered: []string{"Graphic Design", "Illustration", "Branding"},
			SkillsWanted:  []string{"Web Development", "Digital Marketing", "Photography"},
			Availability:  []string{"Weekends", "Weekday evenings"},
			Rating:        4.6,
			TotalSwaps:    6,
			JoinedAt:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "demo-david",
			Name:          "David Kim",
			Email:         "david@example.com",
			Location:      "Los Angeles, CA",
			SkillsOffered: []string{"Machine Learning", "Python", "Data Analysis"},
			SkillsWanted:  []string{"UI/UX Design", "Mobile Development", "Music Production"},
			Availability:  []string{"Flexible schedule"},
			Rating:        4.9,
			TotalSwaps:    18,
			JoinedAt:      time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "demo-maria",
			Name:          "Maria Garcia",
			Email:         "maria@example.com",
			Location:      "Denver, CO",
			SkillsOffered: []string{"Spanish Translation", "Teaching", "Event Planning"},
			SkillsWanted:  []string{"Digital Marketing", "Graphic Design", "Photography"},
			Availability:  []string{"Weekday evenings", "Sundays"},
			Rating:        4.8,
			TotalSwaps:    7,
			JoinedAt:      time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range users {
		users[i].PasswordHash = hash
		users[i].IsPublic = true
		if err := s.SaveUser(users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].ID, err)
		}
	}

	now := time.Now().UTC()
	messages := []domain.Message{
		{
			ID:             "demo-msg-1",
			ConversationID: "demo-conv-1",
			SenderID:       "demo-sarah",
			ReceiverID:     "demo-alex",
			Content:        "Hi! I'd love to learn React from you in exchange for Python tutoring.",
			Type:           domain.MessageText,
			Status:         domain.MessageDelivered,
			CreatedAt:      now.Add(-2 * time.Hour),
		},
		{
			ID:             "demo-msg-2",
			ConversationID: "demo-conv-1",
			SenderID:       "demo-alex",
			ReceiverID:     "demo-sarah",
			Content:        "That sounds great! I'm available on weekends. When would you like to start?",
			Type:           domain.MessageText,
			IsRead:         true,
			Status:         domain.MessageRead,
			CreatedAt:      now.Add(-90 * time.Minute),
		},
		{
			ID:             "demo-msg-3",
			ConversationID: "demo-conv-2",
			SenderID:       "demo-alex",
			ReceiverID:     "demo-mike",
			Content:        "Thanks for accepting my swap request!",
			Type:           domain.MessageText,
			IsRead:         true,
			Status:         domain.MessageRead,
			CreatedAt:      now.Add(-24 * time.Hour),
		},
		{
			ID:             "demo-msg-4",
			ConversationID: "demo-conv-2",
			SenderID:       "demo-mike",
			ReceiverID:     "demo-alex",
			Content:        "You're welcome! Looking forward to our session.",
			Type:           domain.MessageText,
			IsRead:         true,
			Status:         domain.MessageRead,
			CreatedAt:      now.Add(-23 * time.Hour),
		},
	}
	conversations := []domain.Conversation{
		{
			ID:            "demo-conv-1",
			UserA:         "demo-alex",
			UserB:         "demo-sarah",
			LastMessageID: "demo-msg-2",
			CreatedAt:     now.Add(-2 * time.Hour),
			UpdatedAt:     now.Add(-90 * time.Minute),
		},
		{
			ID:            "demo-conv-2",
			UserA:         "demo-alex",
			UserB:         "demo-mike",
			LastMessageID: "demo-msg-4",
			CreatedAt:     now.Add(-24 * time.Hour),
			UpdatedAt:     now.Add(-23 * time.Hour),
		},
	}
	for _, c := range conversations {
		if err := s.SaveConversation(c); err != nil {
			return fmt.Errorf("seed conversation %s: %w", c.ID, err)
		}
	}
	for _, m := range messages {
		if err := s.SaveMessage(m); err != nil {
			return fmt.Errorf("seed message %s: %w", m.ID, err)
		}
	}
	return nil
}
