package model

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrLoopStopped          = errors.New("store loop stopped")
)
