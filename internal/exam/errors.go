package exam

import "errors"

var (
	// ErrMissingInput rejects a feature call before any network request.
	ErrMissingInput = errors.New("missing required input")

	// ErrNotConfigured means no credential is available for the selected
	// provider; the user has to fix their settings.
	ErrNotConfigured = errors.New("api key is not configured")

	// ErrSessionNotFound addresses an unknown or already-dropped speaking
	// session.
	ErrSessionNotFound = errors.New("speaking session not found")
)
