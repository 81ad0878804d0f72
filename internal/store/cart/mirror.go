package cart

import "context"

// Mirror is the remote copy of a user's cart, kept for cross-device
// continuity. The store owns the state; the mirror only reflects it.
type Mirror interface {
	// Fetch returns the user's remote lines. An absent cart is an empty
	// slice, not an error.
	Fetch(ctx context.Context, userID string) ([]Line, error)
	// Replace overwrites the user's remote lines with exactly the given set
	// (full-replace synchronization, no diffing).
	Replace(ctx context.Context, userID string, lines []Line) error
	// Clear removes all remote lines for the user.
	Clear(ctx context.Context, userID string) error
}
