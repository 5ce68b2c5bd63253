package app

import "errors"

// ErrMessageRequired is returned for empty chat messages.
var ErrMessageRequired = errors.New("message is required")
