package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"thinkbyte/pkg/domain"
)

type createSwapRequest struct {
	ToUserID     string `json:"toUserId"`
	SkillOffered string `json:"skillOffered"`
	SkillWanted  string `json:"skillWanted"`
	Message      string `json:"message"`
}

type updateSwapRequest struct {
	Status  *string `json:"status"`
	Message *string `json:"message"`
}

func (s *Server) handleSwaps(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodPost:
		var req createSwapRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.app.CreateSwapRequest(user.ID, req.ToUserID, req.SkillOffered, req.SkillWanted, req.Message)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	case http.MethodGet:
		list, err := s.app.ListSwapRequestsForUser(user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleSwapByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := strings.TrimPrefix(r.URL.Path, "/api/swaps/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		req, err := s.app.GetSwapRequest(id, user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)
	case http.MethodPatch:
		var req updateSwapRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Status == nil && req.Message == nil {
			writeError(w, http.StatusBadRequest, "status or message is required")
			return
		}
		var (
			updated domain.SwapRequest
			err     error
		)
		if req.Status != nil {
			status, ok := parseSwapStatus(*req.Status)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown status")
				return
			}
			updated, err = s.app.UpdateSwapRequestStatus(id, user.ID, status)
		} else {
			updated, err = s.app.UpdateSwapRequestMessage(id, user.ID, *req.Message)
		}
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteSwapRequest(id, user.ID); err != nil {
			writeAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func parseSwapStatus(status string) (domain.SwapStatus, bool) {
	switch domain.SwapStatus(strings.ToLower(strings.TrimSpace(status))) {
	case domain.SwapPending:
		return domain.SwapPending, true
	case domain.SwapAccepted:
		return domain.SwapAccepted, true
	case domain.SwapRejected:
		return domain.SwapRejected, true
	case domain.SwapCompleted:
		return domain.SwapCompleted, true
	case domain.SwapCancelled:
		return domain.SwapCancelled, true
	default:
		return "", false
	}
}
