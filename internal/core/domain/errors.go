package domain

import "errors"

// Sentinel errors for account operations.
var (
	// ErrServiceUnavailable indicates the account service call failed
	// (network error, timeout, or non-2xx response). Surfaced to the user
	// as a single generic failure notification, never as field errors.
	ErrServiceUnavailable = errors.New("account service unavailable")

	// ErrMalformedResponse indicates the account service returned a
	// representation the session reconciler cannot apply. Treated the same
	// as ErrServiceUnavailable: the session is never partially updated.
	ErrMalformedResponse = errors.New("malformed account representation")

	// ErrUserExists indicates an account with the same email already exists.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates the addressed account does not exist.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword indicates the provided current password does not match.
	// HTTP Status: 401 Unauthorized
	ErrWrongPassword = errors.New("wrong password")

	// ErrSubmissionInFlight indicates a submit was invoked while a previous
	// submission from the same form instance was still awaiting the service.
	// The second submit is ignored, not queued.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)
