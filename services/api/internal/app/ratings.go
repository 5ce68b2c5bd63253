package app

import (
	"fmt"
	"math"
	"time"

	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

// SubmitRating records one rating per swap request and refreshes the rated
// user's aggregate.
func (a *App) SubmitRating(fromUserID, swapRequestID string, rating int, comment string) (domain.Rating, error) {
	if rating < 1 || rating > 5 {
		return domain.Rating{}, ErrRatingOutOfRange
	}
	req, ok, err := a.store.GetSwapRequest(swapRequestID)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("fetch swap request: %w", err)
	}
	if !ok {
		return domain.Rating{}, ErrSwapRequestNotFound
	}
	if fromUserID != req.FromUserID && fromUserID != req.ToUserID {
		return domain.Rating{}, ErrNotParticipant
	}
	if _, ok, err := a.store.GetRatingBySwapRequest(swapRequestID); err != nil {
		return domain.Rating{}, fmt.Errorf("check existing rating: %w", err)
	} else if ok {
		return domain.Rating{}, ErrAlreadyRated
	}

	toUserID := req.ToUserID
	if fromUserID == req.ToUserID {
		toUserID = req.FromUserID
	}
	r := domain.Rating{
		ID:            store.NewID(),
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		SwapRequestID: swapRequestID,
		Rating:        rating,
		Comment:       comment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := a.store.SaveRating(r); err != nil {
		return domain.Rating{}, fmt.Errorf("save rating: %w", err)
	}
	if err := a.refreshRatingAggregate(toUserID); err != nil {
		return domain.Rating{}, err
	}
	return r, nil
}

// refreshRatingAggregate recomputes the mean of all ratings addressed to the
// user, rounded to one decimal.
func (a *App) refreshRatingAggregate(userID string) error {
	ratings, err := a.store.ListRatingsForUser(userID)
	if err != nil {
		return fmt.Errorf("list ratings: %w", err)
	}
	user, ok, err := a.store.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return nil
	}
	if len(ratings) == 0 {
		user.Rating = 0
	} else {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		mean := float64(sum) / float64(len(ratings))
		user.Rating = math.Round(mean*10) / 10
	}
	if err := a.store.SaveUser(user); err != nil {
		return fmt.Errorf("update rating aggregate: %w", err)
	}
	return nil
}

// RatingForSwapRequest returns the rating for a swap request, if any.
func (a *App) RatingForSwapRequest(swapRequestID string) (domain.Rating, bool, error) {
	return a.store.GetRatingBySwapRequest(swapRequestID)
}

// HasUserRated reports whether the user already rated the swap request.
func (a *App) HasUserRated(userID, swapRequestID string) (bool, error) {
	r, ok, err := a.store.GetRatingBySwapRequest(swapRequestID)
	if err != nil {
		return false, err
	}
	return ok && r.FromUserID == userID, nil
}

// RecentRatingsForUser returns up to limit of the newest ratings addressed to
// the user.
func (a *App) RecentRatingsForUser(userID string, limit int) ([]domain.Rating, error) {
	ratings, err := a.store.ListRatingsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	// Stored oldest first; return the tail newest first.
	out := make([]domain.Rating, 0, len(ratings))
	for i := len(ratings) - 1; i >= 0; i-- {
		out = append(out, ratings[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
