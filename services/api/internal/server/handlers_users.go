package server

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"thinkbyte/pkg/domain"
	"thinkbyte/services/api/internal/app"
)

type meResponse struct {
	domain.User
	ProfileComplete bool `json:"profileComplete"`
}

func (s *Server) handleBrowseUsers(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := s.app.BrowseUsers(user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, meResponse{User: user, ProfileComplete: s.app.IsProfileComplete(user)})
	case http.MethodPatch:
		var updates app.ProfileUpdate
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&updates); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := s.app.UpdateProfile(user.ID, updates)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, meResponse{User: updated, ProfileComplete: s.app.IsProfileComplete(updated)})
	default:
		methodNotAllowed(w)
	}
}

// handleUserSubtree serves /api/users/{id} and /api/users/{id}/ratings.
func (s *Server) handleUserSubtree(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	id, rest, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch rest {
	case "":
		target, err := s.app.GetUser(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, target)
	case "ratings":
		if _, err := s.app.GetUser(id); err != nil {
			writeAppError(w, err)
			return
		}
		ratings, err := s.app.RecentRatingsForUser(id, 20)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ratings)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if s.avatars == nil {
		writeError(w, http.StatusServiceUnavailable, "avatar storage not configured")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid multipart body")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := s.allowedExtensions[ext]; !ok {
		writeError(w, http.StatusBadRequest, "unsupported file type")
		return
	}

	key := "avatars/" + user.ID + ext
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	if err := s.avatars.Put(ctx, key, file, header.Size, contentTypeFor(header, ext)); err != nil {
		writeAppError(w, err)
		return
	}
	url, err := s.avatars.PresignGet(ctx, key, 7*24*time.Hour)
	if err != nil {
		writeAppError(w, err)
		return
	}
	updated, err := s.app.SetProfilePhoto(user.ID, url)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func contentTypeFor(header *multipart.FileHeader, ext string) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := s.app.ListUsers()
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
