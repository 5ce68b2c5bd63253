package ai

import (
	"context"
	"strings"
)

// DefaultCannedReply is returned when no topic keyword matches.
const DefaultCannedReply = "I'm here to help with ThinkByte! Ask me about browsing users, setting up your profile, sending requests, messaging, or ratings."

// Keywords are checked in order so a message touching several topics gets a
// stable reply.
var cannedReplies = []struct {
	keyword string
	reply   string
}{
	{"hello", "Hello! I'm your ThinkByte assistant. How can I help you today?"},
	{"help", "I can help you with:\n• Browsing users and skills\n• Setting up your profile\n• Sending swap requests\n• Using the messaging system\n• Understanding the rating system"},
	{"profile", "To update your profile:\n1. Go to your Profile page\n2. Click 'Edit Profile'\n3. Add your skills, location, and availability\n4. Save your changes"},
	{"browse", "To browse users:\n1. Click 'Browse Skills' in the navigation\n2. Use filters to find specific skills or locations\n3. Click 'Send Swap Request' on any user card"},
	{"request", "To send a swap request:\n1. Find a user with compatible skills\n2. Click 'Send Swap Request'\n3. Select what you can teach and what you want to learn\n4. Add an optional message\n5. Submit the request"},
	{"message", "To use messaging:\n1. Go to the Messages tab\n2. Select a conversation\n3. Type your message and press Enter\n4. Messages are real-time between users"},
	{"rating", "After completing a swap:\n1. Go to your Swap Requests\n2. Find the completed swap\n3. Click 'Rate Swap'\n4. Give a rating and feedback\n5. This helps other users know your experience"},
}

// CannedGenerator answers from a keyword lookup table. It stands in for a
// real model when no API key is configured, so the assistant endpoint keeps
// working in demos and tests.
type CannedGenerator struct{}

// NewCannedGenerator builds the keyword-table generator.
func NewCannedGenerator() *CannedGenerator {
	return &CannedGenerator{}
}

// GenerateText matches the first topic keyword found in the message.
func (g *CannedGenerator) GenerateText(_ context.Context, _ string, userPrompt string) (string, error) {
	msg := strings.ToLower(userPrompt)
	for _, entry := range cannedReplies {
		if strings.Contains(msg, entry.keyword) {
			return entry.reply, nil
		}
	}
	return DefaultCannedReply, nil
}
