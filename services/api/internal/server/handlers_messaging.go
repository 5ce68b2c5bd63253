package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"thinkbyte/pkg/domain"
)

type createConversationRequest struct {
	UserID string `json:"userId"`
}

type sendMessageRequest struct {
	Content  string `json:"content"`
	Simulate bool   `json:"simulate"`
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodPost:
		var req createConversationRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		conv, err := s.app.EnsureConversation(user.ID, req.UserID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, conversationPayload(conv))
	case http.MethodGet:
		summaries, err := s.app.ListConversations(user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summaries)
	default:
		methodNotAllowed(w)
	}
}

// handleConversationSubtree serves /api/conversations/{id}/messages.
func (s *Server) handleConversationSubtree(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/conversations/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" || rest != "messages" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		msgs, err := s.app.ListConversationMessages(id, user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	case http.MethodPost:
		var req sendMessageRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		var (
			msg domain.Message
			err error
		)
		if req.Simulate {
			msg, err = s.app.SimulateIncomingMessage(id, user.ID, req.Content)
		} else {
			msg, err = s.app.SendMessage(id, user.ID, req.Content)
		}
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	default:
		methodNotAllowed(w)
	}
}

// handleMessageSubtree serves /api/messages/{id}/read.
func (s *Server) handleMessageSubtree(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/messages/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" || rest != "read" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	msg, err := s.app.MarkMessageRead(id, user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// conversationPayload exposes the participant pair alongside the stored
// conversation, whose pair columns are not serialized.
func conversationPayload(conv domain.Conversation) map[string]any {
	return map[string]any{
		"id":           conv.ID,
		"participants": conv.Participants(),
		"createdAt":    conv.CreatedAt,
		"updatedAt":    conv.UpdatedAt,
	}
}
