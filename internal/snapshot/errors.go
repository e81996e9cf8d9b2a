package snapshot

import "errors"

var (
	// ErrProviderUnavailable means the provider session is not ready.
	// Fatal for the current call; never masked by a fallback.
	ErrProviderUnavailable = errors.New("UI provider session not ready")

	// ErrEmptyResult means enumeration yielded no windows and no fallback
	// root. The caller may retry later.
	ErrEmptyResult = errors.New("no windows available")

	// ErrNodeNotFound means a full tree walk exhausted without finding the
	// requested identifier.
	ErrNodeNotFound = errors.New("node not found")
)
