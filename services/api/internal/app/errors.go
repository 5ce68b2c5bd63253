package app

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied credentials do not match.
	// This message is intended to be shown to end users and should not enable account enumeration.
	ErrInvalidCredentials = errors.New("Incorrect email address or password")

	ErrEmailAndPasswordRequired = errors.New("email and password required")
	ErrNameRequired             = errors.New("name is required")
	ErrEmailAlreadyExists       = errors.New("email already exists")

	ErrUserNotFound         = errors.New("user not found")
	ErrSwapRequestNotFound  = errors.New("swap request not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrNotParticipant    = errors.New("not a participant")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSelfSwap          = errors.New("cannot send a swap request to yourself")

	ErrAlreadyRated     = errors.New("swap request already rated")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	ErrContentRequired = errors.New("message content is required")
)
