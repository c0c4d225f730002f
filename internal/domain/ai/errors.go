package ai

import "errors"

// ErrNotConfigured indicates a provider has no credentials and must be
// skipped by the fallback chain.
var ErrNotConfigured = errors.New("ai provider not configured")
