// Package llm wraps the remote chat-completion endpoint.
package llm

import (
	"context"
	"fmt"

	"electron/pkg/history"
)

// DefaultBaseURL is the completion endpoint used when none is configured.
const DefaultBaseURL = "https://api.aimlapi.com/v1"

// Client generates one assistant reply from a system message and the
// prior turns, in order. Implementations perform no retries; failure
// handling belongs to the caller.
type Client interface {
	Complete(ctx context.Context, systemMessage string, turns []history.Turn) (string, error)
}

// CompletionError wraps any transport, authentication, or remote-side
// failure of a completion call.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
