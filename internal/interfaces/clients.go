// Package interfaces defines service contracts for Arvest
package interfaces

import "context"

// TextGenClient generates free text from a prompt. Implementations may
// fail or time out; callers are expected to degrade, never to surface
// the error to end users.
type TextGenClient interface {
	// GenerateText returns a single free-text response for the prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Ping verifies the client can reach the upstream service.
	Ping(ctx context.Context) error

	Close() error
}
