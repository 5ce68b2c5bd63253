package app

import (
	"fmt"
	"strings"
	"time"

	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

// swapTransitions is the allowed status machine. The actor role decides who
// may drive each edge: the sender can only cancel, the recipient accepts,
// rejects and confirms completion.
var swapTransitions = map[domain.SwapStatus][]domain.SwapStatus{
	domain.SwapPending:  {domain.SwapAccepted, domain.SwapRejected, domain.SwapCancelled},
	domain.SwapAccepted: {domain.SwapCompleted},
}

func transitionAllowed(from, to domain.SwapStatus) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateSwapRequest records a pending swap request and notifies the recipient.
// An empty offered skill becomes the learning-request sentinel.
func (a *App) CreateSwapRequest(fromUserID, toUserID, skillOffered, skillWanted, message string) (domain.SwapRequest, error) {
	if fromUserID == toUserID {
		return domain.SwapRequest{}, ErrSelfSwap
	}
	sender, ok, err := a.store.GetUserByID(fromUserID)
	if err != nil {
		return domain.SwapRequest{}, fmt.Errorf("fetch sender: %w", err)
	}
	if !ok {
		return domain.SwapRequest{}, ErrUserNotFound
	}
	if _, ok, err = a.store.GetUserByID(toUserID); err != nil {
		return domain.SwapRequest{}, fmt.Errorf("fetch recipient: %w", err)
	} else if !ok {
		return domain.SwapRequest{}, ErrUserNotFound
	}

	skillOffered = strings.TrimSpace(skillOffered)
	if skillOffered == "" {
		skillOffered = domain.LearningRequestSkill
	}
	now := time.Now().UTC()
	req := domain.SwapRequest{
		ID:           store.NewID(),
		FromUserID:   fromUserID,
		ToUserID:     toUserID,
		SkillOffered: skillOffered,
		SkillWanted:  strings.TrimSpace(skillWanted),
		Message:      strings.TrimSpace(message),
		Status:       domain.SwapPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.SaveSwapRequest(req); err != nil {
		return domain.SwapRequest{}, fmt.Errorf("save swap request: %w", err)
	}
	_, err = a.Notify(toUserID, domain.NotificationGeneral, domain.NotifySwapRequest,
		"New Swap Request",
		fmt.Sprintf("%s wants to learn %s from you", sender.Name, req.SkillWanted),
		"/requests")
	if err != nil {
		return domain.SwapRequest{}, err
	}
	return req, nil
}

// UpdateSwapRequestStatus drives the swap status machine on behalf of actorID.
func (a *App) UpdateSwapRequestStatus(id, actorID string, next domain.SwapStatus) (domain.SwapRequest, error) {
	req, ok, err := a.store.GetSwapRequest(id)
	if err != nil {
		return domain.SwapRequest{}, fmt.Errorf("fetch swap request: %w", err)
	}
	if !ok {
		return domain.SwapRequest{}, ErrSwapRequestNotFound
	}
	if !transitionAllowed(req.Status, next) {
		return domain.SwapRequest{}, ErrInvalidTransition
	}
	switch next {
	case domain.SwapCancelled:
		if actorID != req.FromUserID {
			return domain.SwapRequest{}, ErrNotParticipant
		}
	case domain.SwapAccepted, domain.SwapRejected, domain.SwapCompleted:
		if actorID != req.ToUserID {
			return domain.SwapRequest{}, ErrNotParticipant
		}
	default:
		return domain.SwapRequest{}, ErrInvalidTransition
	}

	req.Status = next
	req.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveSwapRequest(req); err != nil {
		return domain.SwapRequest{}, fmt.Errorf("update swap request: %w", err)
	}

	switch next {
	case domain.SwapAccepted, domain.SwapRejected:
		if err := a.notifySwapDecision(req); err != nil {
			return domain.SwapRequest{}, err
		}
	case domain.SwapCompleted:
		if err := a.recordCompletedSwap(req); err != nil {
			return domain.SwapRequest{}, err
		}
	}
	return req, nil
}

func (a *App) notifySwapDecision(req domain.SwapRequest) error {
	recipient, ok, err := a.store.GetUserByID(req.ToUserID)
	if err != nil {
		return fmt.Errorf("fetch recipient: %w", err)
	}
	name := "Someone"
	if ok {
		name = recipient.Name
	}
	typ := domain.NotifySwapAccepted
	title := "Swap Request Accepted"
	body := fmt.Sprintf("%s accepted your request to learn %s", name, req.SkillWanted)
	if req.Status == domain.SwapRejected {
		typ = domain.NotifySwapRejected
		title = "Swap Request Declined"
		body = fmt.Sprintf("%s declined your request to learn %s", name, req.SkillWanted)
	}
	_, err = a.Notify(req.FromUserID, domain.NotificationGeneral, typ, title, body, "/requests")
	return err
}

// recordCompletedSwap bumps both participants' swap counters.
func (a *App) recordCompletedSwap(req domain.SwapRequest) error {
	for _, id := range []string{req.FromUserID, req.ToUserID} {
		user, ok, err := a.store.GetUserByID(id)
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		if !ok {
			continue
		}
		user.TotalSwaps++
		if err := a.store.SaveUser(user); err != nil {
			return fmt.Errorf("update swap count: %w", err)
		}
	}
	return nil
}

// UpdateSwapRequestMessage lets the sender edit the note while still pending.
func (a *App) UpdateSwapRequestMessage(id, actorID, message string) (domain.SwapRequest, error) {
	req, ok, err := a.store.GetSwapRequest(id)
	if err != nil {
		return domain.SwapRequest{}, fmt.Errorf("fetch swap request: %w", err)
	}
	if !ok {
		return domain.SwapRequest{}, ErrSwapRequestNotFound
	}
	if actorID != req.FromUserID {
		return domain.SwapRequest{}, ErrNotParticipant
	}
	if req.Status != domain.SwapPending {
		return domain.SwapRequest{}, ErrInvalidTransition
	}
	req.Message = strings.TrimSpace(message)
	req.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveSwapRequest(req); err != nil {
		return domain.SwapRequest{}, fmt.Errorf("update swap request: %w", err)
	}
	return req, nil
}

// DeleteSwapRequest removes a pending request. Only the sender may delete;
// deleting an unknown ID is a no-op.
func (a *App) DeleteSwapRequest(id, actorID string) error {
	req, ok, err := a.store.GetSwapRequest(id)
	if err != nil {
		return fmt.Errorf("fetch swap request: %w", err)
	}
	if !ok {
		return nil
	}
	if actorID != req.FromUserID {
		return ErrNotParticipant
	}
	if req.Status != domain.SwapPending {
		return ErrInvalidTransition
	}
	if err := a.store.DeleteSwapRequest(id); err != nil {
		return fmt.Errorf("delete swap request: %w", err)
	}
	return nil
}

// ListSwapRequestsForUser returns requests the user sent or received.
func (a *App) ListSwapRequestsForUser(userID string) ([]domain.SwapRequest, error) {
	return a.store.ListSwapRequestsForUser(userID)
}

// GetSwapRequest fetches one request; participants only.
func (a *App) GetSwapRequest(id, actorID string) (domain.SwapRequest, error) {
	req, ok, err := a.store.GetSwapRequest(id)
	if err != nil {
		return domain.SwapRequest{}, fmt.Errorf("fetch swap request: %w", err)
	}
	if !ok {
		return domain.SwapRequest{}, ErrSwapRequestNotFound
	}
	if actorID != req.FromUserID && actorID != req.ToUserID {
		return domain.SwapRequest{}, ErrNotParticipant
	}
	return req, nil
}
