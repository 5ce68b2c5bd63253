package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"thinkbyte/pkg/domain"
)

type submitRatingRequest struct {
	SwapRequestID string `json:"swapRequestId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	list, err := s.app.ListNotificationsForUser(user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleNotificationUnreadCount(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	count, err := s.app.UnreadNotificationCount(user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleNotificationsReadAll(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := s.app.MarkAllNotificationsRead(user.ID); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNotificationSubtree serves /api/notifications/{id}/read.
func (s *Server) handleNotificationSubtree(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" || rest != "read" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if err := s.app.MarkNotificationRead(id, user.ID); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req submitRatingRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rating, err := s.app.SubmitRating(user.ID, req.SwapRequestID, req.Rating, req.Comment)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}
