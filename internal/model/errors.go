package model

import "errors"

// Common errors used across the application
var (
	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Invite code errors
	ErrInviteNotFound    = errors.New("invalid code")
	ErrInviteAlreadyUsed = errors.New("already used")
	ErrInviteExists      = errors.New("invite code already exists")

	// Identity errors
	ErrUnauthorized = errors.New("unauthorized")
)
