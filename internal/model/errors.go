package model

import "errors"

var (
	// Account related errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session token errors. Every decode failure (bad signature, expired,
	// malformed payload) collapses into ErrInvalidToken so callers cannot
	// tell the cases apart.
	ErrInvalidToken = errors.New("invalid session token")

	// Inventory related errors
	ErrClassificationNotFound = errors.New("classification not found")
	ErrClassificationTaken    = errors.New("classification already exists")
	ErrClassificationInUse    = errors.New("classification has inventory")
	ErrVehicleNotFound        = errors.New("vehicle not found")

	// Review related errors. A review that does not exist and a review
	// owned by someone else are reported identically.
	ErrReviewNotAuthorized = errors.New("review not found or not owned by account")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
