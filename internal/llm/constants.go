// In file: internal/llm/constants.go
package llm

import "time"

// This file centralizes constants shared across the provider clients to
// avoid redeclaration errors.
const (
	defaultTimeout    = 120 * time.Second
	maxRetries        = 3
	initialRetryDelay = 2 * time.Second

	defaultMaxTokens = 512
)
